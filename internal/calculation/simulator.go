package calculation

// SimulationResult is the outcome of one compounding pass.
type SimulationResult struct {
	EndingPrincipal    float64
	TotalExtrasApplied float64
}

// Simulate compounds a principal month by month. Each month's fixed contribution
// and scheduled extra are added before that month's interest, so they earn
// interest in the month they are made. The rate may be zero or negative.
func Simulate(initialPrincipal, fixedMonthly float64, extras ExtraSchedule, monthlyRate float64, horizonMonths int) SimulationResult {
	return simulate(initialPrincipal, fixedMonthly, extras, monthlyRate, horizonMonths, nil)
}

// simulate is the shared kernel. When observe is non-nil it is called after every
// month with the 0-based month index, the principal and the extra applied that month.
func simulate(initialPrincipal, fixedMonthly float64, extras ExtraSchedule, monthlyRate float64, horizonMonths int, observe func(month int, principal, extra float64)) SimulationResult {
	principal := initialPrincipal
	growth := 1 + monthlyRate
	var totalExtras float64

	for month := 0; month < horizonMonths; month++ {
		extra := extras[month]
		totalExtras += extra
		principal = (principal + fixedMonthly + extra) * growth
		if observe != nil {
			observe(month, principal, extra)
		}
	}

	return SimulationResult{EndingPrincipal: principal, TotalExtrasApplied: totalExtras}
}
