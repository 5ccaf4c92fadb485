package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan marks input rejected before any projection runs.
var ErrInvalidPlan = errors.New("invalid plan")

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan file (YAML; JSON is accepted as a YAML subset)
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, normalizes and validates a plan document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ApplyDefaults(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults resolves the convenience fields of each scenario: a risk profile
// fills return and inflation left at zero, a birth date sets the current age.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) error {
	for i := range config.Scenarios {
		sc := &config.Scenarios[i]

		if sc.RiskProfile != "" {
			profile, err := domain.LookupRiskProfile(sc.RiskProfile)
			if err != nil {
				return fmt.Errorf("%w: scenario %q: %v", ErrInvalidPlan, sc.Name, err)
			}
			if sc.Params.NominalAnnualReturnPct == 0 && sc.Params.AnnualInflationPct == 0 {
				sc.Params = sc.Params.ApplyProfile(profile)
			}
		}

		if sc.BirthDate != nil {
			sc.Params.CurrentAgeYears = dateutil.Age(*sc.BirthDate, nowFunc())
		}
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil || len(config.Scenarios) == 0 {
		return fmt.Errorf("%w: no scenarios provided", ErrInvalidPlan)
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if strings.TrimSpace(scenario.Name) == "" {
			return fmt.Errorf("%w: scenario %d: name is required", ErrInvalidPlan, i)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("%w: duplicate scenario name %q", ErrInvalidPlan, scenario.Name)
		}
		seen[scenario.Name] = true

		if err := ValidatePlan(scenario.Params, scenario.Extras); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", scenario.Name, err)
		}
	}

	return nil
}

// ValidatePlan checks one set of plan parameters and its extraordinary contributions.
// Retirement age at or below current age is accepted: the projection clamps the horizon.
func ValidatePlan(params domain.PlanParameters, extras []domain.ExtraordinaryContribution) error {
	if params.CurrentAgeYears < 0 {
		return fmt.Errorf("%w: current age cannot be negative", ErrInvalidPlan)
	}
	if params.RetirementAgeYears < 0 {
		return fmt.Errorf("%w: retirement age cannot be negative", ErrInvalidPlan)
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"monthly_contribution", params.MonthlyContribution},
		{"nominal_annual_return_pct", params.NominalAnnualReturnPct},
		{"annual_inflation_pct", params.AnnualInflationPct},
		{"initial_principal", params.InitialPrincipal},
		{"target_monthly_income", params.TargetMonthlyIncome},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidPlan, f.name)
		}
	}
	if params.MonthlyContribution < 0 {
		return fmt.Errorf("%w: monthly contribution cannot be negative", ErrInvalidPlan)
	}
	if params.TargetMonthlyIncome < 0 {
		return fmt.Errorf("%w: target monthly income cannot be negative", ErrInvalidPlan)
	}
	if params.NominalAnnualReturnPct <= -100 {
		return fmt.Errorf("%w: nominal return cannot be -100%% or lower", ErrInvalidPlan)
	}
	if params.AnnualInflationPct <= -100 {
		return fmt.Errorf("%w: inflation cannot be -100%% or lower", ErrInvalidPlan)
	}

	for i, c := range extras {
		if err := validateContribution(c); err != nil {
			label := c.ID
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			return fmt.Errorf("extra %s: %w", label, err)
		}
	}
	return nil
}

func validateContribution(c domain.ExtraordinaryContribution) error {
	if c.AnchorMonth < 1 || c.AnchorMonth > 12 {
		return fmt.Errorf("%w: anchor month must be between 1 and 12, got %d", ErrInvalidPlan, c.AnchorMonth)
	}
	if !isFinite(c.Amount) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidPlan)
	}
	if !c.Recurrence.IsValid() {
		return fmt.Errorf("%w: unknown recurrence %s", ErrInvalidPlan, c.Recurrence)
	}
	if !c.Evolution.Kind.IsValid() {
		return fmt.Errorf("%w: unknown evolution kind %s", ErrInvalidPlan, c.Evolution.Kind)
	}
	if !isFinite(c.Evolution.Amount) {
		return fmt.Errorf("%w: evolution amount must be a finite number", ErrInvalidPlan)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CreateExampleConfiguration creates an example plan covering each kind of extraordinary contribution
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	base := domain.PlanParameters{
		CurrentAgeYears:        35,
		RetirementAgeYears:     65,
		MonthlyContribution:    5000,
		NominalAnnualReturnPct: 10,
		AnnualInflationPct:     4.5,
		InitialPrincipal:       760000,
		TargetMonthlyIncome:    30000,
	}

	bonus := []domain.ExtraordinaryContribution{
		{
			ID:          "thirteenth-salary",
			AnchorMonth: 12,
			Amount:      15000,
			Description: "13th salary",
			Recurrence:  domain.RecurrenceAnnual,
			Evolution:   domain.GrowByPercent(4),
		},
		{
			ID:          "vacation-bonus",
			AnchorMonth: 6,
			Amount:      2000,
			Description: "Vacation bonus",
			Recurrence:  domain.RecurrenceAnnual,
			Evolution:   domain.GrowByAmount(100),
		},
	}

	conservative := base.ApplyProfile(domain.ConservativeProfile)

	late := base
	late.RetirementAgeYears = 70

	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Baseline", Params: base},
			{Name: "With bonuses", Params: base, Extras: bonus},
			{Name: "Conservative", RiskProfile: domain.ConservativeProfile.Name, Params: conservative, Extras: bonus},
			{Name: "Retire at 70", Params: late, Extras: []domain.ExtraordinaryContribution{
				{ID: "inheritance", AnchorMonth: 3, Amount: 100000, Description: "Inheritance", Recurrence: domain.RecurrenceOnce},
			}},
		},
	}
}
