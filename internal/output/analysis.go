package output

import (
	"sort"

	"github.com/rpgo/savings-projector/internal/domain"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName      string
	RealMonthlyIncome float64
	RunnerUp          string
	IncomeLead        float64
}

// Ranking is one row of the scenario ranking table.
type Ranking struct {
	Rank              int
	Name              string
	RealMonthlyIncome float64
	CoveragePct       float64
	Outcome           domain.OutcomeTier
}

// RankScenarios orders scenarios by real monthly income, highest first. Ties keep
// configuration order. Coverage is real income over the scenario's own target.
func RankScenarios(results *domain.ScenarioComparison) []Ranking {
	ranks := make([]Ranking, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		coverage := 100.0
		if sc.Params.TargetMonthlyIncome > 0 {
			coverage = sc.Result.RealMonthlyIncome / sc.Params.TargetMonthlyIncome * 100
		}
		ranks = append(ranks, Ranking{
			Name:              sc.Name,
			RealMonthlyIncome: sc.Result.RealMonthlyIncome,
			CoveragePct:       coverage,
			Outcome:           sc.Result.Outcome,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].RealMonthlyIncome > ranks[j].RealMonthlyIncome })
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks
}

// AnalyzeScenarios determines the scenario with the highest real monthly income and
// its lead over the runner-up.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	ranks := RankScenarios(results)
	if len(ranks) == 0 {
		return Recommendation{}
	}
	rec := Recommendation{ScenarioName: ranks[0].Name, RealMonthlyIncome: ranks[0].RealMonthlyIncome}
	if len(ranks) > 1 {
		rec.RunnerUp = ranks[1].Name
		rec.IncomeLead = ranks[0].RealMonthlyIncome - ranks[1].RealMonthlyIncome
	}
	return rec
}
