// Package sim provides the discrete-time data center simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go: Request lifecycle (queued → in-service → completed | dropped)
//   - server.go: FIFO service model of one server node
//   - routing.go: RoutingPolicy and its two variants (round-robin, shortest-queue)
//   - simulator.go: The tick loop: arrivals, routing, service, timeout eviction
//   - metrics.go, report.go: Outcome accumulation and the final report
//
// # Architecture
//
// The sim package owns the engine. sim/queueing and sim/trace are leaf
// packages that sim imports; sim/export sits above sim and consumes reports:
//   - sim/queueing/: closed-form M/M/c reference figures
//   - sim/trace/: routing decision trace recording
//   - sim/export/: Prometheus textfile export of finished reports
//
// # Determinism
//
// Every random draw comes from a PartitionedRNG owned by one Simulator and
// derived from Config.Seed. Identical Config values produce identical
// per-request outcomes and identical reports.
package sim
