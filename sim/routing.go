package sim

import "fmt"

// Routing policy names.
const (
	PolicyRoundRobin    = "round-robin"
	PolicyShortestQueue = "shortest-queue"
)

// validRoutingPolicies maps every accepted name to its canonical name.
// Empty string defaults to round-robin.
var validRoutingPolicies = map[string]string{
	"":                  PolicyRoundRobin,
	PolicyRoundRobin:    PolicyRoundRobin,
	"rotation":          PolicyRoundRobin,
	PolicyShortestQueue: PolicyShortestQueue,
	"least-loaded":      PolicyShortestQueue,
}

// IsValidRoutingPolicy reports whether name selects a known routing policy.
func IsValidRoutingPolicy(name string) bool {
	_, ok := validRoutingPolicies[name]
	return ok
}

// CanonicalRoutingPolicy resolves aliases and the empty default.
// Returns "" for unknown names.
func CanonicalRoutingPolicy(name string) string {
	return validRoutingPolicies[name]
}

// ValidRoutingPolicyNames returns the canonical policy names.
func ValidRoutingPolicyNames() []string {
	return []string{PolicyRoundRobin, PolicyShortestQueue}
}

// RouterState is the view of the server pool handed to a routing policy.
// Built by the Simulator immediately before each decision, so it reflects
// every request already routed in the current tick but none of the tick's
// service progress.
type RouterState struct {
	Snapshots []ServerSnapshot // One per server, in server index order
	Clock     float64          // Current simulation time
}

// RoutingDecision encapsulates the routing decision for a request.
type RoutingDecision struct {
	Target int    // Server index to route to
	Reason string // Human-readable explanation
}

// RoutingPolicy decides which server receives a newly arrived request.
// Decisions are a pure function of the policy's own state and the snapshot;
// policies never see future arrivals.
type RoutingPolicy interface {
	Name() string
	Route(req *Request, state *RouterState) RoutingDecision
}

// RoundRobin routes requests in rotation across servers, independent of load.
type RoundRobin struct {
	counter int
}

// Name implements RoutingPolicy.
func (rr *RoundRobin) Name() string { return PolicyRoundRobin }

// Route implements RoutingPolicy for RoundRobin.
func (rr *RoundRobin) Route(_ *Request, state *RouterState) RoutingDecision {
	snapshots := state.Snapshots
	if len(snapshots) == 0 {
		panic("RoundRobin.Route: empty snapshots")
	}
	target := snapshots[rr.counter%len(snapshots)]
	rr.counter = (rr.counter + 1) % len(snapshots)
	return RoutingDecision{
		Target: target.ID,
		Reason: fmt.Sprintf("round-robin[%d]", target.ID),
	}
}

// ShortestQueue routes requests to the server holding the fewest requests
// (queued + in service). Ties are broken by lowest server index.
type ShortestQueue struct{}

// Name implements RoutingPolicy.
func (sq *ShortestQueue) Name() string { return PolicyShortestQueue }

// Route implements RoutingPolicy for ShortestQueue.
func (sq *ShortestQueue) Route(_ *Request, state *RouterState) RoutingDecision {
	snapshots := state.Snapshots
	if len(snapshots) == 0 {
		panic("ShortestQueue.Route: empty snapshots")
	}

	minLen := snapshots[0].QueueLength
	target := snapshots[0]

	// strict < keeps the lowest index on ties
	for i := 1; i < len(snapshots); i++ {
		if snapshots[i].QueueLength < minLen {
			minLen = snapshots[i].QueueLength
			target = snapshots[i]
		}
	}

	return RoutingDecision{
		Target: target.ID,
		Reason: fmt.Sprintf("shortest-queue (len=%d)", minLen),
	}
}

// NewRoutingPolicy creates a routing policy by name (aliases accepted).
// Panics on unrecognized names; Config.Validate rejects them first.
func NewRoutingPolicy(name string) RoutingPolicy {
	switch CanonicalRoutingPolicy(name) {
	case PolicyRoundRobin:
		return &RoundRobin{}
	case PolicyShortestQueue:
		return &ShortestQueue{}
	default:
		panic(fmt.Sprintf("unknown routing policy %q", name))
	}
}
