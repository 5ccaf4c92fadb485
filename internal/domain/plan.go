package domain

// PlanParameters holds the scalar inputs of a retirement plan. Percentages are
// expressed in percent units (10 means 10%), currency amounts in the plan's currency.
type PlanParameters struct {
	CurrentAgeYears        int     `yaml:"current_age_years" json:"current_age_years"`
	RetirementAgeYears     int     `yaml:"retirement_age_years" json:"retirement_age_years"`
	MonthlyContribution    float64 `yaml:"monthly_contribution" json:"monthly_contribution"`
	NominalAnnualReturnPct float64 `yaml:"nominal_annual_return_pct" json:"nominal_annual_return_pct"`
	AnnualInflationPct     float64 `yaml:"annual_inflation_pct" json:"annual_inflation_pct"`
	InitialPrincipal       float64 `yaml:"initial_principal" json:"initial_principal"`
	TargetMonthlyIncome    float64 `yaml:"target_monthly_income" json:"target_monthly_income"`
}

// YearsToRetirement may be zero or negative; the simulator clamps the horizon.
func (p PlanParameters) YearsToRetirement() int {
	return p.RetirementAgeYears - p.CurrentAgeYears
}

// ApplyProfile returns a copy of p with the profile's return and inflation assumptions.
func (p PlanParameters) ApplyProfile(profile RiskProfile) PlanParameters {
	p.NominalAnnualReturnPct = profile.NominalAnnualReturnPct
	p.AnnualInflationPct = profile.AnnualInflationPct
	return p
}
