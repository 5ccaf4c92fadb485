package calculation

import (
	"testing"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_MatchesProjection(t *testing.T) {
	params := regressionParams()
	extras := []domain.ExtraordinaryContribution{
		{AnchorMonth: 12, Amount: 1000, Recurrence: domain.RecurrenceAnnual, Evolution: domain.GrowByPercent(10)},
	}

	snapshots := Timeline(params, extras)
	p := Project(params, extras)

	require.Len(t, snapshots, 30)
	last := snapshots[29]
	assert.Equal(t, 30, last.Year)
	assert.Equal(t, 65, last.Age)
	assert.Equal(t, 360, last.EndMonth)
	assert.Equal(t, p.NominalEndingPrincipal, last.NominalPrincipal)
	assert.Equal(t, p.RealEndingPrincipal, last.RealPrincipal)
	assert.InDelta(t, p.TotalContributed, last.CumulativeContrib, 1e-6)
}

func TestTimeline_YearlyExtras(t *testing.T) {
	params := domain.PlanParameters{CurrentAgeYears: 40, RetirementAgeYears: 43}
	extras := []domain.ExtraordinaryContribution{
		{AnchorMonth: 6, Amount: 100, Recurrence: domain.RecurrenceSemiannual, Evolution: domain.GrowByAmount(100)},
	}

	snapshots := Timeline(params, extras)
	require.Len(t, snapshots, 3)

	// months 5,11 | 17,23 | 29,35 -> 100+200, 300+400, 500+600
	assert.Equal(t, 300.0, snapshots[0].ExtrasAppliedInYear)
	assert.Equal(t, 700.0, snapshots[1].ExtrasAppliedInYear)
	assert.Equal(t, 1100.0, snapshots[2].ExtrasAppliedInYear)
	assert.Equal(t, 2100.0, snapshots[2].NominalPrincipal)
	assert.Equal(t, 41, snapshots[0].Age)
}

func TestTimeline_ClampedHorizon(t *testing.T) {
	snapshots := Timeline(domain.PlanParameters{CurrentAgeYears: 66, RetirementAgeYears: 65, InitialPrincipal: 10}, nil)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 1, snapshots[0].EndMonth)
	assert.Equal(t, 66, snapshots[0].Age, "one month does not add a year of age")
	assert.Equal(t, 10.0, snapshots[0].NominalPrincipal)

	same := Timeline(domain.PlanParameters{CurrentAgeYears: 30, RetirementAgeYears: 30}, nil)
	require.Len(t, same, 1)
	assert.Equal(t, 30, same[0].Age)
}

func TestTimeline_NominalGrowsFasterThanReal(t *testing.T) {
	params := regressionParams()
	for _, s := range Timeline(params, nil) {
		assert.Greater(t, s.NominalPrincipal, s.RealPrincipal, "year %d", s.Year)
	}
}
