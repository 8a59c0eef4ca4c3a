// Package trace provides decision-trace recording for routing policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import "slices"

// RoutingRecord captures a single routing decision together with the server
// pool state the policy saw.
type RoutingRecord struct {
	RequestID    int64   `json:"request_id"`
	Clock        float64 `json:"clock"`
	ChosenServer int     `json:"chosen_server"`
	Reason       string  `json:"reason"`
	QueueLengths []int   `json:"queue_lengths"` // one per server, at decision time
	Busy         []bool  `json:"busy"`          // one per server: head in service
	Regret       float64 `json:"regret"`        // chosen queue length - shortest queue length

	// IdleBypass is set when the request went to a server holding work
	// while another server held none.
	IdleBypass bool `json:"idle_bypass"`
}

// NewRoutingRecord builds a record and derives regret and idle bypass from
// the per-server state. queueLengths and busy are copied.
func NewRoutingRecord(requestID int64, clock float64, chosen int, reason string, queueLengths []int, busy []bool) RoutingRecord {
	rec := RoutingRecord{
		RequestID:    requestID,
		Clock:        clock,
		ChosenServer: chosen,
		Reason:       reason,
		QueueLengths: slices.Clone(queueLengths),
		Busy:         slices.Clone(busy),
	}
	if chosen < 0 || chosen >= len(queueLengths) {
		return rec
	}
	shortest := slices.Min(queueLengths)
	rec.Regret = float64(queueLengths[chosen] - shortest)
	rec.IdleBypass = queueLengths[chosen] > 0 && shortest == 0
	return rec
}
