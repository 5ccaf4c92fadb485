package calculation

import "github.com/rpgo/savings-projector/internal/domain"

// SensitivitySweep projects the plan once per swept value of a single parameter.
// MinimumOnTrack is set to the first value (in sweep order) that reaches on_track.
func (pe *ProjectionEngine) SensitivitySweep(scenario *domain.Scenario, param domain.SensitivityParameter) domain.SensitivityAnalysis {
	analysis := domain.SensitivityAnalysis{
		ScenarioName: scenario.Name,
		Parameter:    param,
		Base:         pe.Calculate(scenario.Params, scenario.Extras),
	}

	for _, v := range param.Values() {
		params := param.Apply(scenario.Params, v)
		res := pe.Calculate(params, scenario.Extras)
		analysis.Points = append(analysis.Points, domain.SensitivityPoint{
			Value:               v,
			RealEndingPrincipal: res.RealEndingPrincipal,
			RealMonthlyIncome:   res.RealMonthlyIncome,
			RealMultiplier:      res.RealMultiplier,
			Outcome:             res.Outcome,
		})
		if res.Outcome == domain.OutcomeOnTrack && analysis.MinimumOnTrack == nil {
			value := v
			analysis.MinimumOnTrack = &value
		}
	}

	pe.Logger.Debugf("sensitivity sweep %s over %s: %d points", scenario.Name, param.Name, len(analysis.Points))
	return analysis
}
