package calculation

import (
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
)

// GenerateAssumptions lists the modelling assumptions shown next to every report.
func GenerateAssumptions() []string {
	return []string{
		"Contributions are made at the start of each month and earn that month's return",
		"Monthly rates are the compound equivalent of the annual percentages",
		"Real return derived from nominal return and inflation with the Fisher relation",
		fmt.Sprintf("Passive income uses a %.0f%% annual withdrawal rule", SafeWithdrawalRate*100),
		"Extraordinary contributions enter the real-rate pass at their nominal value",
	}
}

// analyzeComparison picks the scenario with the highest real monthly income and
// lists the scenarios whose real income reaches their own target.
func (pe *ProjectionEngine) analyzeComparison(c *domain.ScenarioComparison) {
	var bestIncome float64
	c.BestScenario = ""
	c.OnTarget = nil
	c.Observations = nil

	for i, sc := range c.Scenarios {
		r := sc.Result
		if i == 0 || r.RealMonthlyIncome > bestIncome {
			bestIncome = r.RealMonthlyIncome
			c.BestScenario = sc.Name
		}
		if r.Outcome == domain.OutcomeOnTrack {
			c.OnTarget = append(c.OnTarget, sc.Name)
		}

		switch r.Outcome {
		case domain.OutcomeClose:
			gap := RequiredPrincipal(sc.Params.TargetMonthlyIncome) - r.RealEndingPrincipal
			c.Observations = append(c.Observations,
				fmt.Sprintf("%s: close to target, %.2f short in real principal", sc.Name, gap))
		case domain.OutcomeInsufficient:
			c.Observations = append(c.Observations,
				fmt.Sprintf("%s: real income covers %.0f%% of target", sc.Name, coverage(r.RealMonthlyIncome, sc.Params.TargetMonthlyIncome)))
		}
		if r.RealMultiplier < 1 {
			c.Observations = append(c.Observations,
				fmt.Sprintf("%s: real principal below amount contributed (multiplier %.2f)", sc.Name, r.RealMultiplier))
		}
	}
}

func coverage(income, target float64) float64 {
	if target <= 0 {
		return 100
	}
	return income / target * 100
}
