package calculation

import (
	"testing"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandExtras_OnceAtFirstMonth(t *testing.T) {
	for _, horizon := range []int{1, 12, 360} {
		schedule := ExpandExtras([]domain.ExtraordinaryContribution{
			{ID: "gift", AnchorMonth: 1, Amount: 2500, Recurrence: domain.RecurrenceOnce},
		}, horizon)

		assert.Equal(t, ExtraSchedule{0: 2500}, schedule, "horizon %d", horizon)
	}
}

func TestExpandExtras_OnceBeyondHorizon(t *testing.T) {
	schedule := ExpandExtras([]domain.ExtraordinaryContribution{
		{AnchorMonth: 12, Amount: 100, Recurrence: domain.RecurrenceOnce},
	}, 6)
	assert.Empty(t, schedule)
}

func TestExpandExtras_AnnualPercentageEvolution(t *testing.T) {
	schedule := ExpandExtras([]domain.ExtraordinaryContribution{{
		ID:          "bonus",
		AnchorMonth: 12,
		Amount:      1000,
		Recurrence:  domain.RecurrenceAnnual,
		Evolution:   domain.GrowByPercent(10),
	}}, 36)

	require.Len(t, schedule, 3)
	assert.InDelta(t, 1000.0, schedule[11], 0.01)
	assert.InDelta(t, 1100.0, schedule[23], 0.01)
	assert.InDelta(t, 1210.0, schedule[35], 0.01)
}

func TestExpandExtras_RecurrenceSteps(t *testing.T) {
	tests := []struct {
		name       string
		recurrence domain.Recurrence
		anchor     int
		horizon    int
		months     []int
	}{
		{"quarterly", domain.RecurrenceQuarterly, 2, 12, []int{1, 4, 7, 10}},
		{"semiannual", domain.RecurrenceSemiannual, 6, 24, []int{5, 11, 17, 23}},
		{"annual", domain.RecurrenceAnnual, 1, 36, []int{0, 12, 24}},
		{"annual anchor past short horizon", domain.RecurrenceAnnual, 7, 6, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := ExpandExtras([]domain.ExtraordinaryContribution{
				{AnchorMonth: tt.anchor, Amount: 10, Recurrence: tt.recurrence},
			}, tt.horizon)

			assert.Len(t, schedule, len(tt.months))
			for _, m := range tt.months {
				assert.Equal(t, 10.0, schedule[m], "month %d", m)
			}
		})
	}
}

func TestExpandExtras_NominalEvolution(t *testing.T) {
	schedule := ExpandExtras([]domain.ExtraordinaryContribution{{
		AnchorMonth: 2,
		Amount:      100,
		Recurrence:  domain.RecurrenceQuarterly,
		Evolution:   domain.GrowByAmount(50),
	}}, 12)

	assert.Equal(t, ExtraSchedule{1: 100, 4: 150, 7: 200, 10: 250}, schedule)
}

func TestExpandExtras_CollisionsSum(t *testing.T) {
	schedule := ExpandExtras([]domain.ExtraordinaryContribution{
		{AnchorMonth: 1, Amount: 100, Recurrence: domain.RecurrenceAnnual, Evolution: domain.GrowByAmount(100)},
		{AnchorMonth: 1, Amount: 5, Recurrence: domain.RecurrenceOnce},
	}, 36)

	assert.Equal(t, 105.0, schedule[0], "collisions on the same month are summed")
	assert.Equal(t, 200.0, schedule[12])
	assert.Equal(t, 300.0, schedule[24])
}

func TestExpandExtras_NegativeAmountsNotClamped(t *testing.T) {
	schedule := ExpandExtras([]domain.ExtraordinaryContribution{
		{AnchorMonth: 3, Amount: -400, Recurrence: domain.RecurrenceOnce},
	}, 12)
	assert.Equal(t, -400.0, schedule[2])
	assert.Equal(t, -400.0, schedule.Total())
}

func TestExpandExtras_AnchorBelowRangeSkipsLeadingOccurrence(t *testing.T) {
	schedule := ExpandExtras([]domain.ExtraordinaryContribution{{
		AnchorMonth: 0,
		Amount:      100,
		Recurrence:  domain.RecurrenceSemiannual,
		Evolution:   domain.GrowByAmount(10),
	}}, 12)

	assert.Equal(t, ExtraSchedule{5: 110, 11: 120}, schedule)

	once := ExpandExtras([]domain.ExtraordinaryContribution{
		{AnchorMonth: 0, Amount: 100, Recurrence: domain.RecurrenceOnce},
	}, 12)
	assert.Empty(t, once)
}

func TestExpandExtras_NonEvolvingIgnoresAmount(t *testing.T) {
	schedule := ExpandExtras([]domain.ExtraordinaryContribution{{
		AnchorMonth: 1,
		Amount:      50,
		Recurrence:  domain.RecurrenceAnnual,
		Evolution:   domain.Evolution{Kind: domain.EvolutionNone, Amount: 99},
	}}, 24)
	assert.Equal(t, ExtraSchedule{0: 50, 12: 50}, schedule)
}

func TestExpandExtras_Empty(t *testing.T) {
	assert.Empty(t, ExpandExtras(nil, 120))
}
