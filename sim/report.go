package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/datacenter-sim/dcsim/sim/queueing"
)

// ServerReport is the per-server breakdown of a run.
type ServerReport struct {
	ID        int `json:"id" yaml:"id"`
	Routed    int `json:"routed" yaml:"routed"`
	Completed int `json:"completed" yaml:"completed"`
	Dropped   int `json:"dropped" yaml:"dropped"`
	Pending   int `json:"pending" yaml:"pending"`
}

// Report is the finished summary of one run, consumed by the presentation
// layer. Empirical figures come only from recorded samples; the analytic
// figures are computed from configuration and reported alongside.
type Report struct {
	Policy      string  `json:"policy" yaml:"policy"`
	Seed        int64   `json:"seed" yaml:"seed"`
	NumServers  int     `json:"num_servers" yaml:"num_servers"`
	ArrivalRate float64 `json:"arrival_rate" yaml:"arrival_rate"`
	ServiceRate float64 `json:"service_rate" yaml:"service_rate"`
	Ticks       int64   `json:"ticks" yaml:"ticks"`
	SimTime     float64 `json:"sim_time" yaml:"sim_time"`

	Arrived          int     `json:"arrived" yaml:"arrived"`
	Completed        int     `json:"completed" yaml:"completed"`
	Dropped          int     `json:"dropped" yaml:"dropped"`
	Pending          int     `json:"pending" yaml:"pending"`
	PendingQueued    int     `json:"pending_queued" yaml:"pending_queued"`
	PendingInService int     `json:"pending_in_service" yaml:"pending_in_service"`
	DropRate         float64 `json:"drop_rate" yaml:"drop_rate"`
	Throughput       float64 `json:"throughput" yaml:"throughput"`

	// HasResponseData is false when no request completed; every response
	// and wait statistic is then 0 and carries no information.
	HasResponseData bool         `json:"has_response_data" yaml:"has_response_data"`
	ResponseTime    Distribution `json:"response_time" yaml:"response_time"`
	WaitTime        Distribution `json:"wait_time" yaml:"wait_time"`

	Utilization float64        `json:"theoretical_utilization" yaml:"theoretical_utilization"`
	Analytic    queueing.MMc   `json:"analytic_mmc" yaml:"analytic_mmc"`
	Servers     []ServerReport `json:"servers" yaml:"servers"`
}

// Report computes derived statistics from the accumulated samples.
// servers is the final server state, used for the pending counts.
func (m *Metrics) Report(cfg Config, policy string, servers []*Server, ticks int64) *Report {
	simTime := float64(ticks) * cfg.DT
	r := &Report{
		Policy:      policy,
		Seed:        cfg.Seed,
		NumServers:  cfg.NumServers,
		ArrivalRate: cfg.ArrivalRate,
		ServiceRate: cfg.ServiceRate,
		Ticks:       ticks,
		SimTime:     simTime,

		Arrived:   m.Arrived,
		Completed: m.Completed,
		Dropped:   m.Dropped,
		DropRate:  m.DropRate(),

		HasResponseData: len(m.ResponseTimes) > 0,
		ResponseTime:    NewDistribution(m.ResponseTimes),
		WaitTime:        NewDistribution(m.WaitTimes),

		Utilization: cfg.Utilization(),
		Analytic:    queueing.Solve(cfg.ArrivalRate, cfg.ServiceRate, cfg.NumServers),
		Servers:     make([]ServerReport, len(m.PerServer)),
	}
	if simTime > 0 {
		r.Throughput = float64(m.Completed) / simTime
	}
	for i, ps := range m.PerServer {
		r.Servers[i] = ServerReport{ID: i, Routed: ps.Routed, Completed: ps.Completed, Dropped: ps.Dropped}
	}
	for _, s := range servers {
		n := s.QueueLength()
		r.Pending += n
		if s.Busy() {
			r.PendingInService++
			n--
		}
		r.PendingQueued += n
		if s.ID >= 0 && s.ID < len(r.Servers) {
			r.Servers[s.ID].Pending = s.QueueLength()
		}
	}
	return r
}

// Conserved reports whether arrived == completed + dropped + pending.
func (r *Report) Conserved() bool {
	return r.Arrived == r.Completed+r.Dropped+r.Pending
}

// Print writes the human-readable metrics report.
func (r *Report) Print(w io.Writer) {
	sep := strings.Repeat("=", 56)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  Data Center Simulation - %s\n", r.Policy)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  Requests arrived        : %d\n", r.Arrived)
	fmt.Fprintf(w, "  Completed requests      : %d\n", r.Completed)
	fmt.Fprintf(w, "  Dropped requests        : %d\n", r.Dropped)
	fmt.Fprintf(w, "  Pending at end          : %d (queued %d, in service %d)\n", r.Pending, r.PendingQueued, r.PendingInService)
	fmt.Fprintf(w, "  Drop rate               : %.2f%%\n", r.DropRate*100)
	fmt.Fprintf(w, "  Throughput              : %.4f req/time unit\n", r.Throughput)
	if r.HasResponseData {
		fmt.Fprintf(w, "  Mean response time      : %.4f time units\n", r.ResponseTime.Mean)
		fmt.Fprintf(w, "  Median response time    : %.4f time units\n", r.ResponseTime.P50)
		fmt.Fprintf(w, "  95th pct response time  : %.4f time units\n", r.ResponseTime.P95)
		fmt.Fprintf(w, "  Mean wait time          : %.4f time units\n", r.WaitTime.Mean)
	} else {
		fmt.Fprintln(w, "  Response time           : no completed requests")
	}
	fmt.Fprintf(w, "  Theoretical utilization : rho = %.4f\n", r.Utilization)
	if r.Analytic.Stable {
		fmt.Fprintf(w, "  M/M/c mean response     : %.4f time units (pooled queue)\n", r.Analytic.MeanResponseTime)
	} else {
		fmt.Fprintln(w, "  M/M/c mean response     : unbounded (rho >= 1)")
	}
	for _, s := range r.Servers {
		fmt.Fprintf(w, "  server %-3d routed=%-6d completed=%-6d dropped=%-6d pending=%d\n",
			s.ID, s.Routed, s.Completed, s.Dropped, s.Pending)
	}
	fmt.Fprintln(w, sep)
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report as JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding report as YAML: %w", err)
	}
	return nil
}
