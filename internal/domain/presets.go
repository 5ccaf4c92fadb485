package domain

import (
	"fmt"
	"strings"
)

// RiskProfile pre-fills the return and inflation assumptions of a plan.
type RiskProfile struct {
	Name                   string  `yaml:"name" json:"name"`
	Description            string  `yaml:"description" json:"description"`
	NominalAnnualReturnPct float64 `yaml:"nominal_annual_return_pct" json:"nominal_annual_return_pct"`
	AnnualInflationPct     float64 `yaml:"annual_inflation_pct" json:"annual_inflation_pct"`
}

var (
	ConservativeProfile = RiskProfile{
		Name:                   "conservative",
		Description:            "Fixed income heavy portfolio",
		NominalAnnualReturnPct: 6.0,
		AnnualInflationPct:     4.5,
	}

	ModerateProfile = RiskProfile{
		Name:                   "moderate",
		Description:            "Balanced mix of fixed income and equities",
		NominalAnnualReturnPct: 8.0,
		AnnualInflationPct:     4.5,
	}

	AggressiveProfile = RiskProfile{
		Name:                   "aggressive",
		Description:            "Equity heavy portfolio",
		NominalAnnualReturnPct: 10.0,
		AnnualInflationPct:     4.5,
	}
)

// RiskProfiles returns the presets ordered from least to most aggressive.
func RiskProfiles() []RiskProfile {
	return []RiskProfile{ConservativeProfile, ModerateProfile, AggressiveProfile}
}

// LookupRiskProfile finds a preset by name, case-insensitively.
func LookupRiskProfile(name string) (RiskProfile, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range RiskProfiles() {
		if p.Name == n {
			return p, nil
		}
	}
	return RiskProfile{}, fmt.Errorf("unknown risk profile %q", name)
}
