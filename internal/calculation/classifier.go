package calculation

import "github.com/rpgo/savings-projector/internal/domain"

// CloseThreshold is the fraction of the target income that still counts as close.
const CloseThreshold = 0.7

// Classify maps the real passive income against the target. Both boundaries are inclusive.
func Classify(realMonthlyIncome, targetMonthlyIncome float64) domain.OutcomeTier {
	switch {
	case realMonthlyIncome >= targetMonthlyIncome:
		return domain.OutcomeOnTrack
	case realMonthlyIncome >= CloseThreshold*targetMonthlyIncome:
		return domain.OutcomeClose
	default:
		return domain.OutcomeInsufficient
	}
}
