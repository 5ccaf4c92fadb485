package domain

import "fmt"

// SensitivityParameter names a plan input swept between MinValue and MaxValue.
type SensitivityParameter struct {
	Name        string  `yaml:"name" json:"name"`
	MinValue    float64 `yaml:"min_value" json:"min_value"`
	MaxValue    float64 `yaml:"max_value" json:"max_value"`
	Steps       int     `yaml:"steps" json:"steps"`
	Unit        string  `yaml:"unit" json:"unit"`
	Description string  `yaml:"description" json:"description"`
}

const (
	ParamNominalReturn       = "nominal_return"
	ParamInflation           = "inflation"
	ParamMonthlyContribution = "monthly_contribution"
)

var (
	NominalReturnParam = SensitivityParameter{
		Name:        ParamNominalReturn,
		MinValue:    4,
		MaxValue:    12,
		Steps:       5,
		Unit:        "percent",
		Description: "Nominal annual portfolio return",
	}

	InflationParam = SensitivityParameter{
		Name:        ParamInflation,
		MinValue:    2,
		MaxValue:    7,
		Steps:       6,
		Unit:        "percent",
		Description: "Annual inflation",
	}

	MonthlyContributionParam = SensitivityParameter{
		Name:        ParamMonthlyContribution,
		MinValue:    0,
		MaxValue:    10000,
		Steps:       5,
		Unit:        "currency",
		Description: "Fixed monthly contribution",
	}
)

// GetCommonParameters returns the sweepable plan inputs with default ranges.
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{NominalReturnParam, InflationParam, MonthlyContributionParam}
}

// LookupSensitivityParameter returns the default definition for a parameter name.
func LookupSensitivityParameter(name string) (SensitivityParameter, error) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, nil
		}
	}
	return SensitivityParameter{}, fmt.Errorf("unknown sensitivity parameter %q", name)
}

// Values returns the evenly spaced sweep points, endpoints included.
func (sp SensitivityParameter) Values() []float64 {
	if sp.Steps <= 1 {
		return []float64{sp.MinValue}
	}
	out := make([]float64, sp.Steps)
	step := (sp.MaxValue - sp.MinValue) / float64(sp.Steps-1)
	for i := range out {
		out[i] = sp.MinValue + step*float64(i)
	}
	out[len(out)-1] = sp.MaxValue
	return out
}

// Apply returns a copy of params with the parameter set to v.
func (sp SensitivityParameter) Apply(params PlanParameters, v float64) PlanParameters {
	switch sp.Name {
	case ParamNominalReturn:
		params.NominalAnnualReturnPct = v
	case ParamInflation:
		params.AnnualInflationPct = v
	case ParamMonthlyContribution:
		params.MonthlyContribution = v
	}
	return params
}

// SensitivityPoint is one step of a sweep.
type SensitivityPoint struct {
	Value               float64     `json:"value"`
	RealEndingPrincipal float64     `json:"real_ending_principal"`
	RealMonthlyIncome   float64     `json:"real_monthly_income"`
	RealMultiplier      float64     `json:"real_multiplier"`
	Outcome             OutcomeTier `json:"outcome_tier"`
}

// SensitivityAnalysis is the result of sweeping one parameter.
type SensitivityAnalysis struct {
	ScenarioName string               `json:"scenario_name"`
	Parameter    SensitivityParameter `json:"parameter"`
	Base         ProjectionResult     `json:"base"`
	Points       []SensitivityPoint   `json:"points"`

	// MinimumOnTrack is the first swept value reaching on_track, nil when none does.
	MinimumOnTrack *float64 `json:"minimum_on_track,omitempty"`
}
