package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/rpgo/savings-projector/internal/domain"
)

// MemoryStore is a process-local ScenarioRepository.
type MemoryStore struct {
	mu        sync.Mutex
	scenarios map[string]domain.Scenario
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenarios: make(map[string]domain.Scenario)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*domain.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.scenarios[id]
	if !ok {
		return nil, errors.Wrapf(ErrScenarioNotFound, "id %s", id)
	}
	out := cloneScenario(sc)
	return &out, nil
}

func (s *MemoryStore) Save(_ context.Context, scenario *domain.Scenario) (string, error) {
	if scenario == nil {
		return "", errors.New("scenario is nil")
	}
	prepareForSave(scenario)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios[scenario.ID] = cloneScenario(*scenario)
	return scenario.ID, nil
}

// List returns scenarios most recently updated first.
func (s *MemoryStore) List(_ context.Context) ([]domain.ScenarioRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := make([]domain.ScenarioRef, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		refs = append(refs, domain.ScenarioRef{ID: sc.ID, Name: sc.Name, UpdatedAt: sc.UpdatedAt})
	}
	sortRefs(refs)
	return refs, nil
}

func sortRefs(refs []domain.ScenarioRef) {
	sort.Slice(refs, func(i, j int) bool {
		if !refs[i].UpdatedAt.Equal(refs[j].UpdatedAt) {
			return refs[i].UpdatedAt.After(refs[j].UpdatedAt)
		}
		return refs[i].ID < refs[j].ID
	})
}

func cloneScenario(sc domain.Scenario) domain.Scenario {
	sc.Extras = append([]domain.ExtraordinaryContribution(nil), sc.Extras...)
	if sc.BirthDate != nil {
		b := *sc.BirthDate
		sc.BirthDate = &b
	}
	return sc
}
