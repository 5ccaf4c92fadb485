package calculation

import (
	"math"

	"github.com/rpgo/savings-projector/internal/domain"
)

// SafeWithdrawalRate is the annual share of a portfolio treated as sustainable passive income.
const SafeWithdrawalRate = 0.04

// MonthlyIncome applies the 4% rule to a principal and expresses it per month.
func MonthlyIncome(principal float64) float64 {
	return principal * SafeWithdrawalRate / MonthsPerYear
}

// RequiredPrincipal is the portfolio whose 4% yield covers the target monthly income.
func RequiredPrincipal(targetMonthlyIncome float64) float64 {
	return targetMonthlyIncome * MonthsPerYear / SafeWithdrawalRate
}

// DeriveMetrics computes the income and sensitivity figures of a projection.
// The outcome tier is left to Classify.
func DeriveMetrics(p Projection, params domain.PlanParameters) domain.ProjectionResult {
	return domain.ProjectionResult{
		HorizonMonths:              p.HorizonMonths,
		NominalEndingPrincipal:     p.NominalEndingPrincipal,
		RealEndingPrincipal:        p.RealEndingPrincipal,
		TotalContributed:           p.TotalContributed,
		NominalGains:               p.NominalEndingPrincipal - p.TotalContributed,
		NominalMonthlyIncome:       MonthlyIncome(p.NominalEndingPrincipal),
		RealMonthlyIncome:          MonthlyIncome(p.RealEndingPrincipal),
		InflationLoss:              p.NominalEndingPrincipal - p.RealEndingPrincipal,
		RealMultiplier:             p.RealEndingPrincipal / math.Max(p.TotalContributed, 1),
		RequiredPrincipalForTarget: RequiredPrincipal(params.TargetMonthlyIncome),
	}
}
