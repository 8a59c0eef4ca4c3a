package sim

import "fmt"

// ServerSnapshot is a read-only view of one server taken for a routing decision.
type ServerSnapshot struct {
	ID          int
	QueueLength int  // queued + in service
	Busy        bool // head of queue is in service
}

// Server models one server node: a FIFO queue served one request at a time
// at service rate μ. The queue head is the only request that can be in
// service; there is no reordering and no preemption.
type Server struct {
	ID          int
	ServiceRate float64
	WaitQ       *WaitQueue
}

// NewServer creates an idle server with an empty queue.
func NewServer(id int, serviceRate float64) *Server {
	return &Server{
		ID:          id,
		ServiceRate: serviceRate,
		WaitQ:       &WaitQueue{},
	}
}

// Enqueue appends a request to the tail of the queue. The queue is
// unbounded, so Enqueue never rejects.
func (s *Server) Enqueue(req *Request) {
	req.Server = s.ID
	s.WaitQ.Enqueue(req)
}

// Tick delivers dt units of service to the head of the queue during the
// interval [now, now+dt). A head that had not started is marked started at
// now. If its remaining requirement drops to zero or below it is popped,
// stamped complete at now+dt, and returned; the overshoot is discarded and
// the next request waits for the following tick.
func (s *Server) Tick(now, dt float64) *Request {
	head := s.WaitQ.Peek()
	if head == nil {
		return nil
	}
	if head.State == StateQueued {
		head.State = StateInService
		head.StartTime = now
	}
	head.Remaining -= dt
	if head.Remaining > 0 {
		return nil
	}
	s.WaitQ.Dequeue()
	head.Remaining = 0
	head.State = StateCompleted
	head.CompletionTime = now + dt
	return head
}

// DropExpired removes every queued request that has waited at least its
// timeout at time now, marks it dropped and returns it in queue order.
// The request in service is never dropped.
func (s *Server) DropExpired(now float64) []*Request {
	dropped := s.WaitQ.RemoveFunc(func(r *Request) bool {
		return r.TimedOut(now)
	})
	for _, r := range dropped {
		r.State = StateDropped
		r.DropTime = now
	}
	return dropped
}

// QueueLength returns the number of requests held, including the one in service.
func (s *Server) QueueLength() int {
	return s.WaitQ.Len()
}

// Busy reports whether a request is currently in service.
func (s *Server) Busy() bool {
	head := s.WaitQ.Peek()
	return head != nil && head.State == StateInService
}

// Snapshot captures the server state used by routing policies.
func (s *Server) Snapshot() ServerSnapshot {
	return ServerSnapshot{
		ID:          s.ID,
		QueueLength: s.QueueLength(),
		Busy:        s.Busy(),
	}
}

func (s *Server) String() string {
	status := "idle"
	if s.Busy() {
		status = "busy"
	}
	return fmt.Sprintf("Server(id=%d, mu=%v, status=%s, queue=%s)", s.ID, s.ServiceRate, status, s.WaitQ)
}
