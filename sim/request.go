// Defines the Request struct that models one client request in the simulation.
// Tracks arrival, service requirement, timeout, and start/completion timestamps.

package sim

import (
	"fmt"
	"math"
)

// RequestState represents the lifecycle state of a request.
type RequestState string

const (
	StateQueued    RequestState = "queued"
	StateInService RequestState = "in-service"
	StateCompleted RequestState = "completed"
	StateDropped   RequestState = "dropped"
)

// Request models a single request's lifecycle in the simulation.
// Timing fields are fixed at creation; StartTime and CompletionTime are only
// meaningful once State has moved past queued.
type Request struct {
	ID int64 // Creation order, starting at 1

	ArrivalTime float64 // Simulation time the request was generated
	ServiceTime float64 // Drawn service requirement, always > 0
	Timeout     float64 // Max queued wait before the request is dropped; +Inf disables

	State          RequestState
	Remaining      float64 // Service requirement not yet delivered
	StartTime      float64 // Time the server began serving it (valid when started)
	CompletionTime float64 // Time service finished (valid when completed)
	DropTime       float64 // Time the request was evicted (valid when dropped)

	Server int // Index of the server it was routed to; -1 until routed
}

// NewRequest creates a queued request that has not been routed yet.
func NewRequest(id int64, arrival, service, timeout float64) *Request {
	return &Request{
		ID:          id,
		ArrivalTime: arrival,
		ServiceTime: service,
		Timeout:     timeout,
		State:       StateQueued,
		Remaining:   service,
		Server:      -1,
	}
}

// Started reports whether the request has begun service.
func (req *Request) Started() bool {
	return req.State == StateInService || req.State == StateCompleted
}

// WaitTime is the time spent queued before service began.
// Returns 0 for a request that never started.
func (req *Request) WaitTime() float64 {
	if !req.Started() {
		return 0
	}
	return req.StartTime - req.ArrivalTime
}

// ResponseTime is completion minus arrival. Returns 0 unless completed.
func (req *Request) ResponseTime() float64 {
	if req.State != StateCompleted {
		return 0
	}
	return req.CompletionTime - req.ArrivalTime
}

// TimedOut reports whether a still-queued request has waited at least its
// timeout at time now. A request in service never times out.
func (req *Request) TimedOut(now float64) bool {
	if req.State != StateQueued {
		return false
	}
	// Times are products of tick index and dt, so a wait of exactly the
	// timeout can land one ulp short of it when dt is not representable.
	return now-req.ArrivalTime >= req.Timeout-timeEpsilon*math.Max(1, math.Abs(now))
}

// String returns a one-line summary of the request.
func (req *Request) String() string {
	return fmt.Sprintf("Request: (ID: %d, State: %s, Arrival: %.3f, Service: %.3f, Timeout: %v)",
		req.ID, req.State, req.ArrivalTime, req.ServiceTime, req.Timeout)
}
