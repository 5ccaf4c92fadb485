package output

import (
	"strconv"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/pkg/decimal"
)

// FormatCurrency formats an amount with a dollar sign, thousands separators and 2 decimals.
func FormatCurrency(amount float64) string { return decimal.NewMoney(amount).Format() }

// FormatPercentage formats a percentage value with 2 decimals.
func FormatPercentage(pct float64) string { return decimal.Percent(pct, 2) }

// fixed2 renders an amount for machine-readable outputs.
func fixed2(amount float64) string { return decimal.NewMoney(amount).String() }

// decimalString renders a ratio or rate with the given number of decimals.
func decimalString(v float64, places int32) string { return decimal.Fixed(v, places) }

func intToString(i int) string { return strconv.Itoa(i) }

// contributionBreakdown splits the total contributed into the initial principal, the
// fixed monthly contributions and the extraordinary contributions applied before retirement.
func contributionBreakdown(p domain.PlanParameters, r domain.ProjectionResult) (initial, recurring, extras decimal.Money) {
	initial = decimal.NewMoney(p.InitialPrincipal)
	recurring = decimal.NewMoney(p.MonthlyContribution * float64(r.HorizonMonths))
	extras = decimal.NewMoney(r.TotalContributed).Sub(decimal.Sum(initial, recurring))
	return initial, recurring, extras
}

// annualCurrency formats twelve times a monthly amount.
func annualCurrency(monthly float64) string { return decimal.NewMoney(monthly).Annual().Format() }
