package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rpgo/savings-projector/internal/domain"
)

// ErrScenarioNotFound is returned by Load for an unknown scenario id.
var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioRepository persists named plans together with their extraordinary contributions.
type ScenarioRepository interface {
	Load(ctx context.Context, id string) (*domain.Scenario, error)
	// Save inserts or replaces the scenario and returns its id.
	Save(ctx context.Context, scenario *domain.Scenario) (string, error)
	List(ctx context.Context) ([]domain.ScenarioRef, error)
}

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SaveParams stores bare plan parameters as an unnamed scenario.
func SaveParams(ctx context.Context, repo ScenarioRepository, params domain.PlanParameters) (string, error) {
	return repo.Save(ctx, &domain.Scenario{Params: params})
}

// LoadParams returns the plan parameters of a stored scenario.
func LoadParams(ctx context.Context, repo ScenarioRepository, id string) (domain.PlanParameters, error) {
	sc, err := repo.Load(ctx, id)
	if err != nil {
		return domain.PlanParameters{}, err
	}
	return sc.Params, nil
}

// prepareForSave assigns ids to the scenario and to contributions without one, and
// stamps the update time.
func prepareForSave(sc *domain.Scenario) {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	for i := range sc.Extras {
		if sc.Extras[i].ID == "" {
			sc.Extras[i].ID = uuid.NewString()
		}
	}
	sc.UpdatedAt = nowFunc().UTC()
}
