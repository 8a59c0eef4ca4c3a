// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/datacenter-sim/dcsim/sim/trace"
)

// Simulator is the core object that holds simulation time, the server pool,
// the routing policy and the tick loop. One Simulator runs one experiment;
// it owns its random streams and shares no state with other instances.
type Simulator struct {
	cfg     Config
	Clock   float64
	Servers []*Server
	Policy  RoutingPolicy
	Metrics *Metrics
	// Requests holds every generated request in creation order.
	Requests []*Request
	// Trace is nil unless cfg.TraceLevel is "decisions".
	Trace *trace.SimulationTrace

	rng      *PartitionedRNG
	arrivals distuv.Poisson
	service  distuv.Exponential
	ticks    int64
	tick     int64
	nextID   int64
	hasRun   bool
}

// NewSimulator validates cfg and builds the server pool, routing policy,
// collector and seeded random streams. Returns an error wrapping
// ErrInvalidConfig for degenerate parameters.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	servers := make([]*Server, cfg.NumServers)
	for i := range servers {
		servers[i] = NewServer(i, cfg.ServiceRate)
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	s := &Simulator{
		cfg:     cfg,
		Servers: servers,
		Policy:  NewRoutingPolicy(cfg.Policy),
		Metrics: NewMetrics(cfg.NumServers),
		rng:     rng,
		arrivals: distuv.Poisson{
			Lambda: cfg.ArrivalRate * cfg.DT,
			Src:    rng.ForSubsystem(SubsystemArrivals),
		},
		service: distuv.Exponential{
			Rate: cfg.ServiceRate,
			Src:  rng.ForSubsystem(SubsystemService),
		},
		ticks: cfg.NumTicks(),
	}
	if trace.TraceLevel(cfg.TraceLevel) == trace.TraceLevelDecisions {
		s.Trace = trace.NewSimulationTrace(trace.TraceLevelDecisions)
	}
	return s, nil
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Run executes all ticks and returns the finished report.
// Requests still held by servers at the end are reported as pending.
// Panics if called more than once.
func (s *Simulator) Run() *Report {
	if s.hasRun {
		panic("Simulator.Run() called more than once")
	}
	s.hasRun = true

	logrus.Infof("[sim] starting: policy=%s lambda=%v mu=%v N=%d rho=%.3f duration=%v dt=%v ticks=%d seed=%d",
		s.Policy.Name(), s.cfg.ArrivalRate, s.cfg.ServiceRate, s.cfg.NumServers,
		s.cfg.Utilization(), s.cfg.Duration, s.cfg.DT, s.ticks, s.cfg.Seed)

	for s.tick < s.ticks {
		s.Step()
	}

	report := s.Metrics.Report(s.cfg, s.Policy.Name(), s.Servers, s.ticks)
	logrus.Infof("[sim] finished at t=%v: arrived=%d completed=%d dropped=%d pending=%d",
		s.Clock, report.Arrived, report.Completed, report.Dropped, report.Pending)
	return report
}

// Step executes one tick covering [Clock, Clock+dt):
//  1. draw a Poisson(λ·dt) arrival count;
//  2. create, route and enqueue each arrival;
//  3. advance every server by dt and record completions;
//  4. evict queued requests whose wait reached their timeout;
//  5. advance the clock.
func (s *Simulator) Step() {
	now := float64(s.tick) * s.cfg.DT
	s.Clock = now

	n := int(s.arrivals.Rand())
	for i := 0; i < n; i++ {
		s.admit(now)
	}

	completed := 0
	for _, srv := range s.Servers {
		if done := srv.Tick(now, s.cfg.DT); done != nil {
			s.Metrics.RecordCompletion(done)
			completed++
		}
	}

	dropped := 0
	for _, srv := range s.Servers {
		for _, req := range srv.DropExpired(now) {
			s.Metrics.RecordDrop(req)
			dropped++
		}
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("[tick %07d] t=%.3f arrivals=%d completed=%d dropped=%d", s.tick, now, n, completed, dropped)
	}

	s.tick++
	s.Clock = float64(s.tick) * s.cfg.DT
}

// admit creates one request at time now and hands it to the routing policy.
func (s *Simulator) admit(now float64) {
	s.nextID++
	req := NewRequest(s.nextID, now, s.sampleServiceTime(), s.cfg.RequestTimeout)

	state := s.routerState(now)
	decision := s.Policy.Route(req, state)
	if decision.Target < 0 || decision.Target >= len(s.Servers) {
		panic(fmt.Sprintf("routing policy %s returned invalid server %d", s.Policy.Name(), decision.Target))
	}
	s.Servers[decision.Target].Enqueue(req)
	s.Requests = append(s.Requests, req)
	s.Metrics.RecordArrival(req)

	if s.Trace != nil {
		lengths := make([]int, len(state.Snapshots))
		busy := make([]bool, len(state.Snapshots))
		for i, snap := range state.Snapshots {
			lengths[i] = snap.QueueLength
			busy[i] = snap.Busy
		}
		s.Trace.RecordRouting(trace.NewRoutingRecord(req.ID, now, decision.Target, decision.Reason, lengths, busy))
	}
	logrus.Tracef("<< Arrival: request %d at t=%.3f -> server %d (%s)", req.ID, now, decision.Target, decision.Reason)
}

func (s *Simulator) routerState(now float64) *RouterState {
	snapshots := make([]ServerSnapshot, len(s.Servers))
	for i, srv := range s.Servers {
		snapshots[i] = srv.Snapshot()
	}
	return &RouterState{Snapshots: snapshots, Clock: now}
}

// sampleServiceTime draws Exp(μ), floored to the smallest positive float so
// every request needs at least one tick of service.
func (s *Simulator) sampleServiceTime() float64 {
	st := s.service.Rand()
	if !(st > 0) {
		return math.SmallestNonzeroFloat64
	}
	return st
}
