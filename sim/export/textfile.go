// Package export writes finished simulation reports in the Prometheus text
// exposition format, for scraping through a node-exporter textfile collector.
package export

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/datacenter-sim/dcsim/sim"
)

const namespace = "dcsim"

// Registry builds a fresh registry holding one labeled series per report.
// Reports are distinguished by their routing policy label.
func Registry(reports ...*sim.Report) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	requests := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "requests",
		Help:      "Requests by final outcome at the end of the run.",
	}, []string{"policy", "outcome"})
	dropRate := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "drop_rate",
		Help:      "Dropped requests divided by arrived requests.",
	}, []string{"policy"})
	response := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "response_time",
		Help:      "Response time of completed requests in simulated time units.",
	}, []string{"policy", "stat"})
	utilization := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "theoretical_utilization",
		Help:      "Configured load factor lambda / (N * mu).",
	}, []string{"policy"})

	for _, c := range []prometheus.Collector{requests, dropRate, response, utilization} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	for _, r := range reports {
		requests.WithLabelValues(r.Policy, "arrived").Set(float64(r.Arrived))
		requests.WithLabelValues(r.Policy, "completed").Set(float64(r.Completed))
		requests.WithLabelValues(r.Policy, "dropped").Set(float64(r.Dropped))
		requests.WithLabelValues(r.Policy, "pending").Set(float64(r.Pending))
		dropRate.WithLabelValues(r.Policy).Set(r.DropRate)
		utilization.WithLabelValues(r.Policy).Set(r.Utilization)
		if r.HasResponseData {
			response.WithLabelValues(r.Policy, "mean").Set(r.ResponseTime.Mean)
			response.WithLabelValues(r.Policy, "p50").Set(r.ResponseTime.P50)
			response.WithLabelValues(r.Policy, "p95").Set(r.ResponseTime.P95)
		}
	}
	return reg, nil
}

// WriteTextfile writes the reports to path atomically.
func WriteTextfile(path string, reports ...*sim.Report) error {
	reg, err := Registry(reports...)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing textfile %s: %w", path, err)
	}
	return nil
}
