package cmd

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	sim "github.com/datacenter-sim/dcsim/sim"
)

// policyRun is one finished simulation inside a comparison.
type policyRun struct {
	Sim    *sim.Simulator
	Report *sim.Report
}

// comparePolicies runs one simulation per policy with otherwise identical
// parameters. Runs share nothing and execute concurrently; results come back
// in the order of policies regardless of completion order.
func comparePolicies(base sim.Config, policies []string) ([]policyRun, error) {
	runs := make([]policyRun, len(policies))
	var g errgroup.Group
	for i, name := range policies {
		cfg := base
		cfg.Policy = name
		g.Go(func() error {
			s, err := sim.NewSimulator(cfg)
			if err != nil {
				return fmt.Errorf("policy %s: %w", name, err)
			}
			runs[i] = policyRun{Sim: s, Report: s.Run()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func reportsOf(runs []policyRun) []*sim.Report {
	reports := make([]*sim.Report, len(runs))
	for i, r := range runs {
		reports[i] = r.Report
	}
	return reports
}

// printComparison writes a one-line-per-policy summary table.
func printComparison(w io.Writer, reports []*sim.Report) {
	fmt.Fprintln(w, "=== Policy Comparison ===")
	fmt.Fprintf(w, "  %-16s %10s %10s %10s %10s\n", "policy", "mean", "p95", "p99", "drop rate")
	for _, r := range reports {
		if !r.HasResponseData {
			fmt.Fprintf(w, "  %-16s %10s %10s %10s %9.2f%%\n", r.Policy, "-", "-", "-", r.DropRate*100)
			continue
		}
		fmt.Fprintf(w, "  %-16s %10.4f %10.4f %10.4f %9.2f%%\n",
			r.Policy, r.ResponseTime.Mean, r.ResponseTime.P95, r.ResponseTime.P99, r.DropRate*100)
	}
}
