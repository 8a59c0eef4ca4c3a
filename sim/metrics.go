// Tracks simulation-wide and per-server outcome counts and the response-time
// samples used for the final report.

package sim

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Distribution captures a statistical summary of a sample set.
// Percentiles use the nearest-rank method on a sorted copy: the p-th
// percentile is the sample at rank ceil(p·n).
type Distribution struct {
	Mean  float64 `json:"mean" yaml:"mean"`
	P50   float64 `json:"p50" yaml:"p50"`
	P95   float64 `json:"p95" yaml:"p95"`
	P99   float64 `json:"p99" yaml:"p99"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Count int     `json:"count" yaml:"count"`
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input. values is not modified.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:  stat.Mean(sorted, nil),
		P50:   Percentile(sorted, 50),
		P95:   Percentile(sorted, 95),
		P99:   Percentile(sorted, 99),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}

// Percentile returns the nearest-rank p-th percentile (0 <= p <= 100) of an
// ascending slice. Returns 0 for empty input.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}

// ServerMetrics holds the outcome counts attributed to one server.
type ServerMetrics struct {
	Routed    int
	Completed int
	Dropped   int
}

// Metrics accumulates outcomes for one run. Recording is pure accumulation;
// all derived statistics are computed by Report.
//
// Invariant: Arrived == Completed + Dropped + requests still held by servers.
type Metrics struct {
	Arrived   int
	Completed int
	Dropped   int

	ResponseTimes []float64 // completion - arrival, in completion order
	WaitTimes     []float64 // start - arrival, for completed requests

	PerServer []ServerMetrics
}

// NewMetrics creates an empty collector for numServers servers.
func NewMetrics(numServers int) *Metrics {
	return &Metrics{
		PerServer: make([]ServerMetrics, numServers),
	}
}

// RecordArrival counts a request that entered the system and was routed.
func (m *Metrics) RecordArrival(req *Request) {
	m.Arrived++
	if req.Server >= 0 && req.Server < len(m.PerServer) {
		m.PerServer[req.Server].Routed++
	}
}

// RecordCompletion registers a completed request's response and wait times.
func (m *Metrics) RecordCompletion(req *Request) {
	m.Completed++
	m.ResponseTimes = append(m.ResponseTimes, req.ResponseTime())
	m.WaitTimes = append(m.WaitTimes, req.WaitTime())
	if req.Server >= 0 && req.Server < len(m.PerServer) {
		m.PerServer[req.Server].Completed++
	}
}

// RecordDrop registers a request evicted by its timeout.
func (m *Metrics) RecordDrop(req *Request) {
	m.Dropped++
	if req.Server >= 0 && req.Server < len(m.PerServer) {
		m.PerServer[req.Server].Dropped++
	}
}

// DropRate is dropped / arrived, or 0 when nothing arrived.
func (m *Metrics) DropRate() float64 {
	if m.Arrived == 0 {
		return 0
	}
	return float64(m.Dropped) / float64(m.Arrived)
}
