package output

import (
	"testing"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(name string, income, target float64, outcome domain.OutcomeTier) domain.ScenarioSummary {
	return domain.ScenarioSummary{
		Name:   name,
		Params: domain.PlanParameters{TargetMonthlyIncome: target},
		Result: domain.ProjectionResult{RealMonthlyIncome: income, Outcome: outcome},
	}
}

func TestRankScenarios(t *testing.T) {
	comparison := &domain.ScenarioComparison{Scenarios: []domain.ScenarioSummary{
		summary("A", 1000, 2000, domain.OutcomeInsufficient),
		summary("B", 3000, 2000, domain.OutcomeOnTrack),
		summary("C", 3000, 0, domain.OutcomeOnTrack),
	}}

	ranks := RankScenarios(comparison)
	require.Len(t, ranks, 3)
	assert.Equal(t, "B", ranks[0].Name, "ties keep configuration order")
	assert.Equal(t, "C", ranks[1].Name)
	assert.Equal(t, "A", ranks[2].Name)
	assert.Equal(t, 3, ranks[2].Rank)
	assert.Equal(t, 150.0, ranks[0].CoveragePct)
	assert.Equal(t, 100.0, ranks[1].CoveragePct)
	assert.Equal(t, 50.0, ranks[2].CoveragePct)
}

func TestAnalyzeScenarios(t *testing.T) {
	rec := AnalyzeScenarios(&domain.ScenarioComparison{Scenarios: []domain.ScenarioSummary{
		summary("Scenario A", 1500, 0, domain.OutcomeOnTrack),
		summary("Scenario B", 2000, 0, domain.OutcomeOnTrack),
	}})
	assert.Equal(t, "Scenario B", rec.ScenarioName)
	assert.Equal(t, "Scenario A", rec.RunnerUp)
	assert.Equal(t, 500.0, rec.IncomeLead)

	single := AnalyzeScenarios(&domain.ScenarioComparison{Scenarios: []domain.ScenarioSummary{summary("only", 1, 0, domain.OutcomeOnTrack)}})
	assert.Empty(t, single.RunnerUp)

	assert.Equal(t, Recommendation{}, AnalyzeScenarios(&domain.ScenarioComparison{}))
}
