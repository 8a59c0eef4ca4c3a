package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	MeanRegret         float64
	MaxRegret          float64
	UniqueTargets      int
	TargetDistribution map[int]int // server index → count of requests routed
	MaxImbalance       int         // most-routed count - least-routed count among targets
	IdleBypasses       int         // decisions that queued behind work while a server sat empty
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Routings)
	if len(st.Routings) > 0 {
		totalRegret := 0.0
		for _, r := range st.Routings {
			summary.TargetDistribution[r.ChosenServer]++
			totalRegret += r.Regret
			if r.IdleBypass {
				summary.IdleBypasses++
			}
			if r.Regret > summary.MaxRegret {
				summary.MaxRegret = r.Regret
			}
		}
		summary.MeanRegret = totalRegret / float64(len(st.Routings))
	}

	summary.UniqueTargets = len(summary.TargetDistribution)

	first := true
	lo, hi := 0, 0
	for _, n := range summary.TargetDistribution {
		if first {
			lo, hi, first = n, n, false
			continue
		}
		lo, hi = min(lo, n), max(hi, n)
	}
	summary.MaxImbalance = hi - lo

	return summary
}
