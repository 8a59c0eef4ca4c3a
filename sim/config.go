package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/datacenter-sim/dcsim/sim/queueing"
	"github.com/datacenter-sim/dcsim/sim/trace"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config is the immutable parameter record for one experiment.
// It is passed by value to NewSimulator; the simulator never mutates it.
type Config struct {
	NumServers     int     `yaml:"num_servers"`     // N, must be > 0
	ArrivalRate    float64 `yaml:"arrival_rate"`    // λ, requests per time unit
	ServiceRate    float64 `yaml:"service_rate"`    // μ, completions per time unit per server
	Duration       float64 `yaml:"sim_duration"`    // total simulated time
	DT             float64 `yaml:"dt"`              // tick size, 0 < dt <= Duration
	RequestTimeout float64 `yaml:"request_timeout"` // max queued wait; +Inf disables drops
	Seed           int64   `yaml:"seed"`            // master seed for every random stream
	Policy         string  `yaml:"policy"`          // routing policy name, "" = round-robin
	TraceLevel     string  `yaml:"trace_level"`     // "none" (default) or "decisions"
}

// DefaultConfig returns the reference experiment: 3 servers at ρ ≈ 0.44
// with a 50-unit queueing timeout.
func DefaultConfig() Config {
	return Config{
		NumServers:     3,
		ArrivalRate:    2.0,
		ServiceRate:    1.5,
		Duration:       500.0,
		DT:             1.0,
		RequestTimeout: 50.0,
		Seed:           42,
		Policy:         PolicyRoundRobin,
	}
}

// Validate rejects degenerate parameters before any simulation state is built.
func (c Config) Validate() error {
	switch {
	case c.NumServers <= 0:
		return fmt.Errorf("%w: num_servers must be > 0, got %d", ErrInvalidConfig, c.NumServers)
	case !(c.ArrivalRate > 0) || math.IsInf(c.ArrivalRate, 0):
		return fmt.Errorf("%w: arrival_rate must be a finite value > 0, got %v", ErrInvalidConfig, c.ArrivalRate)
	case !(c.ServiceRate > 0) || math.IsInf(c.ServiceRate, 0):
		return fmt.Errorf("%w: service_rate must be a finite value > 0, got %v", ErrInvalidConfig, c.ServiceRate)
	case !(c.Duration > 0) || math.IsInf(c.Duration, 0):
		return fmt.Errorf("%w: sim_duration must be a finite value > 0, got %v", ErrInvalidConfig, c.Duration)
	case !(c.DT > 0):
		return fmt.Errorf("%w: dt must be > 0, got %v", ErrInvalidConfig, c.DT)
	case c.DT > c.Duration:
		return fmt.Errorf("%w: dt (%v) must not exceed sim_duration (%v)", ErrInvalidConfig, c.DT, c.Duration)
	case !(c.RequestTimeout > 0):
		return fmt.Errorf("%w: request_timeout must be > 0 or +Inf, got %v", ErrInvalidConfig, c.RequestTimeout)
	}
	if !IsValidRoutingPolicy(c.Policy) {
		return fmt.Errorf("%w: unknown routing policy %q (valid: %v)", ErrInvalidConfig, c.Policy, ValidRoutingPolicyNames())
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	return nil
}

// timeEpsilon absorbs floating-point error in times built from tick index * dt.
const timeEpsilon = 1e-9

// NumTicks is the fixed number of ticks the run executes: floor(Duration/DT).
// A small epsilon absorbs representation error so 0.3/0.1 yields 3, not 2.
func (c Config) NumTicks() int64 {
	return int64(math.Floor(c.Duration/c.DT + timeEpsilon))
}

// Utilization is the theoretical load factor ρ = λ / (N·μ).
func (c Config) Utilization() float64 {
	return queueing.Utilization(c.ArrivalRate, c.ServiceRate, c.NumServers)
}
