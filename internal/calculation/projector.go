package calculation

import (
	"math"

	"github.com/rpgo/savings-projector/internal/domain"
)

// MonthsPerYear is the compounding frequency of the simulator.
const MonthsPerYear = 12

// Projection holds the raw output of the two compounding passes.
type Projection struct {
	HorizonMonths          int
	NominalEndingPrincipal float64
	RealEndingPrincipal    float64
	TotalContributed       float64
	TotalExtrasApplied     float64
}

// HorizonMonths is the simulated span, never shorter than one month.
func HorizonMonths(params domain.PlanParameters) int {
	months := params.YearsToRetirement() * MonthsPerYear
	if months < 1 {
		return 1
	}
	return months
}

// MonthlyRate converts an annual percentage into the equivalent compound monthly rate.
func MonthlyRate(annualPct float64) float64 {
	return math.Pow(1+annualPct/100, 1.0/MonthsPerYear) - 1
}

// RealAnnualPct applies the Fisher relation to a nominal return and an inflation rate.
func RealAnnualPct(nominalPct, inflationPct float64) float64 {
	return ((1+nominalPct/100)/(1+inflationPct/100) - 1) * 100
}

// Project runs the nominal and real passes over one shared extra schedule.
//
// The real pass receives the same nominal extra amounts as the nominal pass; they
// are not deflated first. This may overstate the real value of far-future extras
// and is kept until product confirms otherwise.
func Project(params domain.PlanParameters, extras []domain.ExtraordinaryContribution) Projection {
	horizon := HorizonMonths(params)
	schedule := ExpandExtras(extras, horizon)
	return projectSchedule(params, schedule, horizon)
}

func projectSchedule(params domain.PlanParameters, schedule ExtraSchedule, horizon int) Projection {
	nominalRate := MonthlyRate(params.NominalAnnualReturnPct)
	realRate := MonthlyRate(RealAnnualPct(params.NominalAnnualReturnPct, params.AnnualInflationPct))

	nominalPass := Simulate(params.InitialPrincipal, params.MonthlyContribution, schedule, nominalRate, horizon)
	realPass := Simulate(params.InitialPrincipal, params.MonthlyContribution, schedule, realRate, horizon)

	return Projection{
		HorizonMonths:          horizon,
		NominalEndingPrincipal: nominalPass.EndingPrincipal,
		RealEndingPrincipal:    realPass.EndingPrincipal,
		TotalContributed:       params.InitialPrincipal + params.MonthlyContribution*float64(horizon) + nominalPass.TotalExtrasApplied,
		TotalExtrasApplied:     nominalPass.TotalExtrasApplied,
	}
}
