package calculation

import (
	"math"

	"github.com/rpgo/savings-projector/internal/domain"
)

// ExtraSchedule maps a 0-based month index to the extraordinary cash injected that month.
type ExtraSchedule map[int]float64

// Total sums every scheduled injection.
func (s ExtraSchedule) Total() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// ExpandExtras turns contribution definitions into a per-month schedule over the horizon.
// Contributions landing in the same month are summed. Amounts are not clamped.
func ExpandExtras(contributions []domain.ExtraordinaryContribution, horizonMonths int) ExtraSchedule {
	schedule := make(ExtraSchedule)
	for _, c := range contributions {
		expandOne(schedule, c, horizonMonths)
	}
	return schedule
}

func expandOne(schedule ExtraSchedule, c domain.ExtraordinaryContribution, horizonMonths int) {
	start := c.AnchorMonth - 1
	step := c.Recurrence.StepMonths()

	if step == 0 {
		if start >= 0 && start < horizonMonths {
			schedule[start] += c.Amount
		}
		return
	}

	for k, month := 0, start; month < horizonMonths; k, month = k+1, month+step {
		if month < 0 {
			continue
		}
		schedule[month] += occurrenceValue(c, k)
	}
}

// occurrenceValue is the amount paid on the k-th occurrence (k counts from 0 per contribution).
func occurrenceValue(c domain.ExtraordinaryContribution, k int) float64 {
	if k == 0 {
		return c.Amount
	}
	switch c.Evolution.Kind {
	case domain.EvolutionPercentage:
		return c.Amount * math.Pow(1+c.Evolution.Amount/100, float64(k))
	case domain.EvolutionNominal:
		return c.Amount + c.Evolution.Amount*float64(k)
	default:
		return c.Amount
	}
}
