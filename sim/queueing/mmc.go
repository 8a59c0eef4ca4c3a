// Package queueing provides closed-form M/M/c results used as an analytic
// reference next to simulated measurements.
//
// All functions take the pooled arrival rate λ, the per-server service rate μ
// and the server count c. Results for unstable systems (ρ >= 1) are reported
// through the Stable flag rather than as errors.
package queueing

import "math"

// Utilization returns ρ = λ / (c·μ).
func Utilization(lambda, mu float64, c int) float64 {
	return lambda / (float64(c) * mu)
}

// MMc summarizes the steady state of an M/M/c queue with a single shared FIFO.
type MMc struct {
	Utilization      float64 `json:"utilization" yaml:"utilization"`
	Stable           bool    `json:"stable" yaml:"stable"`
	ProbWait         float64 `json:"prob_wait" yaml:"prob_wait"`                   // Erlang C: P(arrival must queue)
	MeanWaitTime     float64 `json:"mean_wait_time" yaml:"mean_wait_time"`         // Wq
	MeanResponseTime float64 `json:"mean_response_time" yaml:"mean_response_time"` // W = Wq + 1/μ
}

// Solve computes the M/M/c steady state. For ρ >= 1 only Utilization is
// populated and Stable is false.
func Solve(lambda, mu float64, c int) MMc {
	rho := Utilization(lambda, mu, c)
	res := MMc{Utilization: rho}
	if c <= 0 || !(rho < 1) {
		return res
	}
	res.Stable = true
	res.ProbWait = ErlangC(lambda/mu, c)
	res.MeanWaitTime = res.ProbWait / (float64(c)*mu - lambda)
	res.MeanResponseTime = res.MeanWaitTime + 1/mu
	return res
}

// ErlangC returns the probability that an arrival waits, for offered load
// a = λ/μ Erlangs on c servers. Computed through the Erlang B recursion,
// which stays numerically stable for large c.
func ErlangC(a float64, c int) float64 {
	if c <= 0 {
		return 1
	}
	rho := a / float64(c)
	if rho >= 1 {
		return 1
	}
	b := 1.0
	for k := 1; k <= c; k++ {
		b = a * b / (float64(k) + a*b)
	}
	return b / (1 - rho*(1-b))
}

// MM1ResponseTime is the mean sojourn time 1/(μ-λ) of a single M/M/1 queue,
// or +Inf when λ >= μ.
func MM1ResponseTime(lambda, mu float64) float64 {
	if lambda >= mu {
		return math.Inf(1)
	}
	return 1 / (mu - lambda)
}
