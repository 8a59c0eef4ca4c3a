package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	sim "github.com/datacenter-sim/dcsim/sim"
	"github.com/datacenter-sim/dcsim/sim/export"
	"github.com/datacenter-sim/dcsim/sim/trace"
)

// Report formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeReports renders reports in the requested format. A single report is
// encoded as one object; several are encoded as a list.
func writeReports(w io.Writer, format string, reports ...*sim.Report) error {
	switch format {
	case formatText:
		for _, r := range reports {
			r.Print(w)
		}
		return nil
	case formatJSON:
		if len(reports) == 1 {
			return reports[0].WriteJSON(w)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding reports as JSON: %w", err)
		}
		return nil
	case formatYAML:
		if len(reports) == 1 {
			return reports[0].WriteYAML(w)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding reports as YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json, yaml)", format)
	}
}

// printTraceSummary writes the routing decision summary of one run.
func printTraceSummary(w io.Writer, policy string, st *trace.SimulationTrace) {
	summary := trace.Summarize(st)
	fmt.Fprintf(w, "=== Trace Summary (%s) ===\n", policy)
	fmt.Fprintf(w, "  Routing decisions : %d\n", summary.TotalDecisions)
	fmt.Fprintf(w, "  Mean regret       : %.4f\n", summary.MeanRegret)
	fmt.Fprintf(w, "  Max regret        : %.0f\n", summary.MaxRegret)
	fmt.Fprintf(w, "  Max imbalance     : %d\n", summary.MaxImbalance)
	fmt.Fprintf(w, "  Idle bypasses     : %d\n", summary.IdleBypasses)
	for _, id := range slices.Sorted(maps.Keys(summary.TargetDistribution)) {
		fmt.Fprintf(w, "  server %-3d: %d\n", id, summary.TargetDistribution[id])
	}
}

// exportReports writes the Prometheus textfile when a path is configured.
func exportReports(path string, reports ...*sim.Report) error {
	if path == "" {
		return nil
	}
	return export.WriteTextfile(path, reports...)
}
