package hypotheses

import (
	"fmt"
	"testing"

	"github.com/datacenter-sim/dcsim/sim"
)

// =============================================================================
// H2: Past Saturation, Timeouts Absorb The Excess Load
//
// Hypothesis: with a finite timeout, raising the arrival rate beyond the
// pool's capacity raises the drop rate monotonically while throughput
// plateaus near capacity, and no request is lost from the accounting.
//
// Refuted if: drop rate decreases between consecutive arrival rates, a run
// violates arrived = completed + dropped + pending, or the highest rate's
// throughput exceeds the lowest overloaded rate's by more than 10%.
//
// With dt = 1 each service draw occupies ceil(S) ticks, so three servers at
// mu = 1.5 complete about 2.3 requests per time unit.
// =============================================================================

func TestH2_OverloadDropRateMonotone(t *testing.T) {
	rates := []float64{2, 4, 6, 8}
	reports := make([]*sim.Report, len(rates))

	fmt.Println("H2_OVERLOAD_START")
	fmt.Printf("%-6s | %8s | %10s | %10s\n", "lambda", "rho", "drop_rate", "throughput")
	fmt.Println("---")

	for i, lambda := range rates {
		cfg := sim.DefaultConfig()
		cfg.ArrivalRate = lambda
		cfg.RequestTimeout = 10
		s, err := sim.NewSimulator(cfg)
		if err != nil {
			t.Fatal(err)
		}
		reports[i] = s.Run()
		r := reports[i]
		fmt.Printf("%-6.1f | %8.3f | %10.4f | %10.4f\n", lambda, r.Utilization, r.DropRate, r.Throughput)

		if !r.Conserved() {
			t.Errorf("lambda=%v: arrived %d != completed %d + dropped %d + pending %d",
				lambda, r.Arrived, r.Completed, r.Dropped, r.Pending)
		}
	}
	fmt.Println("H2_OVERLOAD_END")

	for i := 1; i < len(reports); i++ {
		if reports[i].DropRate < reports[i-1].DropRate {
			t.Errorf("drop rate fell from %.4f to %.4f as lambda rose %v -> %v",
				reports[i-1].DropRate, reports[i].DropRate, rates[i-1], rates[i])
		}
	}

	lo, hi := reports[1].Throughput, reports[len(reports)-1].Throughput
	if hi > lo*1.1 {
		t.Errorf("throughput kept growing past saturation: %.4f -> %.4f", lo, hi)
	}
}
