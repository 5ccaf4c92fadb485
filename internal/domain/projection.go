package domain

import (
	"fmt"
	"time"
)

// OutcomeTier classifies how the real passive income compares with the target.
type OutcomeTier int

const (
	OutcomeInsufficient OutcomeTier = iota
	OutcomeClose
	OutcomeOnTrack
)

var outcomeNames = map[OutcomeTier]string{
	OutcomeInsufficient: "insufficient",
	OutcomeClose:        "close",
	OutcomeOnTrack:      "on_track",
}

func (o OutcomeTier) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Label is the headline shown on summary cards.
func (o OutcomeTier) Label() string {
	switch o {
	case OutcomeOnTrack:
		return "On track"
	case OutcomeClose:
		return "Close to target"
	default:
		return "Insufficient"
	}
}

// Tone is the colour hint paired with Label.
func (o OutcomeTier) Tone() string {
	switch o {
	case OutcomeOnTrack:
		return "success"
	case OutcomeClose:
		return "warning"
	default:
		return "danger"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o OutcomeTier) MarshalText() ([]byte, error) {
	name, ok := outcomeNames[o]
	if !ok {
		return nil, fmt.Errorf("unknown outcome tier %d", int(o))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OutcomeTier) UnmarshalText(text []byte) error {
	for tier, name := range outcomeNames {
		if name == string(text) {
			*o = tier
			return nil
		}
	}
	return fmt.Errorf("unknown outcome tier %q", string(text))
}

// ProjectionResult is derived on every change to a plan and never stored.
type ProjectionResult struct {
	HorizonMonths              int         `json:"horizon_months"`
	NominalEndingPrincipal     float64     `json:"nominal_ending_principal"`
	RealEndingPrincipal        float64     `json:"real_ending_principal"`
	TotalContributed           float64     `json:"total_contributed"`
	NominalGains               float64     `json:"nominal_gains"`
	NominalMonthlyIncome       float64     `json:"nominal_monthly_income"`
	RealMonthlyIncome          float64     `json:"real_monthly_income"`
	InflationLoss              float64     `json:"inflation_loss"`
	RealMultiplier             float64     `json:"real_multiplier"`
	RequiredPrincipalForTarget float64     `json:"required_principal_for_target"`
	Outcome                    OutcomeTier `json:"outcome_tier"`
}

// YearSnapshot is the state of both compounding passes at the end of a plan year.
type YearSnapshot struct {
	Year                int     `json:"year"`
	Age                 int     `json:"age"`
	EndMonth            int     `json:"end_month"`
	NominalPrincipal    float64 `json:"nominal_principal"`
	RealPrincipal       float64 `json:"real_principal"`
	CumulativeContrib   float64 `json:"cumulative_contributed"`
	ExtrasAppliedInYear float64 `json:"extras_applied_in_year"`
}

// ScenarioSummary pairs a scenario with its projection.
type ScenarioSummary struct {
	ScenarioID     string           `json:"scenario_id,omitempty"`
	Name           string           `json:"name"`
	Params         PlanParameters   `json:"params"`
	ExtrasCount    int              `json:"extras_count"`
	RetirementDate *time.Time       `json:"retirement_date,omitempty"`
	Result         ProjectionResult `json:"result"`
	Timeline       []YearSnapshot   `json:"timeline,omitempty"`
}

// ScenarioComparison is the report model consumed by the output formatters.
type ScenarioComparison struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	Scenarios    []ScenarioSummary `json:"scenarios"`
	BestScenario string            `json:"best_scenario"`
	OnTarget     []string          `json:"on_target"`
	Assumptions  []string          `json:"assumptions"`
	Observations []string          `json:"observations,omitempty"`
}
