package calculation

import "github.com/rpgo/savings-projector/internal/domain"

// Timeline samples both compounding passes at the end of every plan year, plus the
// final month when the horizon is not a whole number of years. The last snapshot
// matches Project exactly since both run the same kernel over the same schedule.
func Timeline(params domain.PlanParameters, extras []domain.ExtraordinaryContribution) []domain.YearSnapshot {
	horizon := HorizonMonths(params)
	schedule := ExpandExtras(extras, horizon)

	nominalRate := MonthlyRate(params.NominalAnnualReturnPct)
	realRate := MonthlyRate(RealAnnualPct(params.NominalAnnualReturnPct, params.AnnualInflationPct))

	years := (horizon + MonthsPerYear - 1) / MonthsPerYear
	snapshots := make([]domain.YearSnapshot, years)

	isYearEnd := func(month int) bool {
		return (month+1)%MonthsPerYear == 0 || month == horizon-1
	}
	yearOf := func(month int) int { return month / MonthsPerYear }

	contributed := params.InitialPrincipal
	var extrasInYear float64
	simulate(params.InitialPrincipal, params.MonthlyContribution, schedule, nominalRate, horizon, func(month int, principal, extra float64) {
		contributed += params.MonthlyContribution + extra
		extrasInYear += extra
		if !isYearEnd(month) {
			return
		}
		y := yearOf(month)
		snapshots[y] = domain.YearSnapshot{
			Year:                y + 1,
			Age:                 params.CurrentAgeYears + (month+1)/MonthsPerYear,
			EndMonth:            month + 1,
			NominalPrincipal:    principal,
			CumulativeContrib:   contributed,
			ExtrasAppliedInYear: extrasInYear,
		}
		extrasInYear = 0
	})

	simulate(params.InitialPrincipal, params.MonthlyContribution, schedule, realRate, horizon, func(month int, principal, _ float64) {
		if isYearEnd(month) {
			snapshots[yearOf(month)].RealPrincipal = principal
		}
	})

	return snapshots
}
