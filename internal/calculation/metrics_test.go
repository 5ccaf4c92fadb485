package calculation

import (
	"testing"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDeriveMetrics(t *testing.T) {
	p := Projection{
		HorizonMonths:          120,
		NominalEndingPrincipal: 1_200_000,
		RealEndingPrincipal:    900_000,
		TotalContributed:       600_000,
	}
	params := domain.PlanParameters{TargetMonthlyIncome: 5000}

	r := DeriveMetrics(p, params)

	assert.Equal(t, 120, r.HorizonMonths)
	assert.Equal(t, 600_000.0, r.NominalGains)
	assert.InDelta(t, 4000.0, r.NominalMonthlyIncome, 1e-9)
	assert.InDelta(t, 3000.0, r.RealMonthlyIncome, 1e-9)
	assert.Equal(t, 300_000.0, r.InflationLoss)
	assert.InDelta(t, 1.5, r.RealMultiplier, 1e-12)
	assert.InDelta(t, 1_500_000.0, r.RequiredPrincipalForTarget, 1e-6)
}

func TestDeriveMetrics_MultiplierDenominatorFloor(t *testing.T) {
	tests := []struct {
		name        string
		contributed float64
		real        float64
		expected    float64
	}{
		{"zero contributed", 0, 42, 42},
		{"tiny contributed", 0.25, 10, 10},
		{"negative contributed", -500, 10, 10},
		{"above floor", 4, 10, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DeriveMetrics(Projection{TotalContributed: tt.contributed, RealEndingPrincipal: tt.real}, domain.PlanParameters{})
			assert.Equal(t, tt.expected, r.RealMultiplier)
		})
	}
}

func TestDeriveMetrics_MultiplierIdentity(t *testing.T) {
	params := regressionParams()
	r := DeriveMetrics(Project(params, nil), params)

	denominator := r.TotalContributed
	if denominator < 1 {
		denominator = 1
	}
	assert.InEpsilon(t, r.RealEndingPrincipal, r.RealMultiplier*denominator, 1e-6)
}

func TestDeriveMetrics_RequiredPrincipalIndependentOfProjection(t *testing.T) {
	params := domain.PlanParameters{TargetMonthlyIncome: 10000}
	a := DeriveMetrics(Projection{RealEndingPrincipal: 1}, params)
	b := DeriveMetrics(Projection{RealEndingPrincipal: 1e9}, params)

	assert.Equal(t, a.RequiredPrincipalForTarget, b.RequiredPrincipalForTarget)
	assert.InDelta(t, 3_000_000.0, a.RequiredPrincipalForTarget, 1e-6)
}

func TestDeriveMetrics_RegressionScenario(t *testing.T) {
	params := regressionParams()
	r := DeriveMetrics(Project(params, nil), params)

	assert.Greater(t, r.InflationLoss, 0.0)
	assert.Greater(t, r.RealMultiplier, 1.0)
	assert.InEpsilon(t, 3.05862016857256, r.RealMultiplier, 1e-9)
	assert.InEpsilon(t, 26100.225438485842, r.RealMonthlyIncome, 1e-9)
	assert.InEpsilon(t, 78860.03101946485, r.NominalMonthlyIncome, 1e-9)
	assert.InEpsilon(t, 21098009.305839457, r.NominalGains, 1e-9)
}
