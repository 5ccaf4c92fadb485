package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, "SAVINGS PROJECTION: NOMINAL vs REAL")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	if !results.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", results.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := results.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, scenario := range results.Scenarios {
		writeScenario(&buf, i, scenario)
	}

	writeDetailedComparison(&buf, results)
	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, index int, sc domain.ScenarioSummary) {
	p, r := sc.Params, sc.Result

	title := fmt.Sprintf("SCENARIO %d: %s", index+1, sc.Name)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len(title)))
	fmt.Fprintln(buf, "PLAN:")
	fmt.Fprintf(buf, "  Age:                     %d → %d (%d months)\n", p.CurrentAgeYears, p.RetirementAgeYears, r.HorizonMonths)
	if sc.RetirementDate != nil {
		fmt.Fprintf(buf, "  Retirement date:         %s\n", sc.RetirementDate.Format("2006-01-02"))
	}
	fmt.Fprintf(buf, "  Initial principal:       %s\n", FormatCurrency(p.InitialPrincipal))
	fmt.Fprintf(buf, "  Monthly contribution:    %s\n", FormatCurrency(p.MonthlyContribution))
	fmt.Fprintf(buf, "  Extraordinary entries:   %d\n", sc.ExtrasCount)
	fmt.Fprintf(buf, "  Nominal return:          %s\n", FormatPercentage(p.NominalAnnualReturnPct))
	fmt.Fprintf(buf, "  Inflation:               %s\n", FormatPercentage(p.AnnualInflationPct))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-30s %18s %18s %18s\n", "AT RETIREMENT", "NOMINAL", "REAL", "DIFFERENCE")
	fmt.Fprintln(buf, strings.Repeat("-", 86))
	cmpLine(buf, "Ending principal", r.NominalEndingPrincipal, r.RealEndingPrincipal)
	cmpLine(buf, "Monthly passive income (4%)", r.NominalMonthlyIncome, r.RealMonthlyIncome)
	fmt.Fprintln(buf, strings.Repeat("-", 86))
	fmt.Fprintf(buf, "Real annual income:        %s\n", annualCurrency(r.RealMonthlyIncome))
	fmt.Fprintf(buf, "Total contributed:         %s\n", FormatCurrency(r.TotalContributed))
	if sc.ExtrasCount > 0 {
		initial, recurring, extras := contributionBreakdown(p, r)
		fmt.Fprintf(buf, "  initial principal:       %s\n", initial.Format())
		fmt.Fprintf(buf, "  monthly contributions:   %s\n", recurring.Format())
		fmt.Fprintf(buf, "  extraordinary:           %s\n", extras.Format())
	}
	fmt.Fprintf(buf, "Nominal gains:             %s\n", FormatCurrency(r.NominalGains))
	fmt.Fprintf(buf, "Lost to inflation:         %s\n", FormatCurrency(r.InflationLoss))
	fmt.Fprintf(buf, "Real multiplier:           %sx\n", decimalString(r.RealMultiplier, 2))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Target monthly income:     %s\n", FormatCurrency(p.TargetMonthlyIncome))
	fmt.Fprintf(buf, "Required principal:        %s\n", FormatCurrency(r.RequiredPrincipalForTarget))
	fmt.Fprintf(buf, "Outcome:                   %s\n", r.Outcome.Label())
	fmt.Fprintln(buf)

	if len(sc.Timeline) > 0 {
		fmt.Fprintf(buf, "%6s %5s %18s %18s %18s %14s\n", "YEAR", "AGE", "NOMINAL", "REAL", "CONTRIBUTED", "EXTRAS")
		for _, y := range sc.Timeline {
			fmt.Fprintf(buf, "%6d %5d %18s %18s %18s %14s\n", y.Year, y.Age,
				FormatCurrency(y.NominalPrincipal), FormatCurrency(y.RealPrincipal),
				FormatCurrency(y.CumulativeContrib), FormatCurrency(y.ExtrasAppliedInYear))
		}
		fmt.Fprintln(buf)
	}
}

// writeDetailedComparison ranks the scenarios and prints the engine's observations.
func writeDetailedComparison(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	if len(results.Scenarios) == 0 {
		return
	}
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintln(buf, "SCENARIO COMPARISON (ranked by real monthly income)")
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintf(buf, "%-4s %-30s %18s %10s  %s\n", "#", "SCENARIO", "REAL INCOME", "COVERAGE", "OUTCOME")
	for _, rk := range RankScenarios(results) {
		fmt.Fprintf(buf, "%-4d %-30s %18s %10s  %s\n", rk.Rank, rk.Name, FormatCurrency(rk.RealMonthlyIncome), FormatPercentage(rk.CoveragePct), rk.Outcome.Label())
	}
	fmt.Fprintln(buf)

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintf(buf, "RECOMMENDED: %s\n", rec.ScenarioName)
		fmt.Fprintf(buf, "Real Monthly Income: %s\n", FormatCurrency(rec.RealMonthlyIncome))
		if rec.RunnerUp != "" {
			fmt.Fprintf(buf, "Ahead of %s by: %s / month\n", rec.RunnerUp, FormatCurrency(rec.IncomeLead))
		}
	}
	if len(results.OnTarget) > 0 {
		fmt.Fprintf(buf, "On target: %s\n", strings.Join(results.OnTarget, ", "))
	}
	if len(results.Observations) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "OBSERVATIONS:")
		for _, o := range results.Observations {
			fmt.Fprintf(buf, "• %s\n", o)
		}
	}
}

func cmpLine(buf *bytes.Buffer, label string, nominal, realValue float64) {
	fmt.Fprintf(buf, "%-30s %18s %18s %18s\n", label, FormatCurrency(nominal), FormatCurrency(realValue), FormatCurrency(realValue-nominal))
}
