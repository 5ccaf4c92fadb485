package domain

import "time"

// Scenario is a saved plan: parameters plus its extraordinary contributions.
type Scenario struct {
	ID          string                      `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string                      `yaml:"name" json:"name"`
	RiskProfile string                      `yaml:"risk_profile,omitempty" json:"risk_profile,omitempty"`
	BirthDate   *time.Time                  `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	Params      PlanParameters              `yaml:"params" json:"params"`
	Extras      []ExtraordinaryContribution `yaml:"extras,omitempty" json:"extras"`
	UpdatedAt   time.Time                   `yaml:"-" json:"updated_at,omitempty"`
}

// ScenarioRef is a listing entry of a scenario store.
type ScenarioRef struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Configuration is the root of a plan file.
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// ProjectRequest is the body of POST /project.
type ProjectRequest struct {
	Params PlanParameters              `json:"params"`
	Extras []ExtraordinaryContribution `json:"extras"`
}
