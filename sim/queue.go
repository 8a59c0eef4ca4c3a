// Implements the WaitQueue, the FIFO sequence of requests held by one server.
// The head of the queue is the request in service, if any.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of requests. It is unbounded:
// requests only leave by completing or by timing out.
type WaitQueue struct {
	queue []*Request // FIFO queue of requests
}

// Enqueue adds a request to the back of the wait queue.
func (wq *WaitQueue) Enqueue(r *Request) {
	wq.queue = append(wq.queue, r)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of requests in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the request at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Request {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT
// append to or reslice it.
func (wq *WaitQueue) Items() []*Request {
	return wq.queue
}

// Dequeue removes and returns the request at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Request {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}

// RemoveFunc removes every request for which fn returns true and returns
// them in queue order. Relative order of the remaining requests is kept.
func (wq *WaitQueue) RemoveFunc(fn func(*Request) bool) []*Request {
	if fn == nil {
		panic("RemoveFunc: fn must not be nil")
	}
	var removed []*Request
	kept := wq.queue[:0]
	for _, r := range wq.queue {
		if fn(r) {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(wq.queue); i++ {
		wq.queue[i] = nil
	}
	wq.queue = kept
	return removed
}
