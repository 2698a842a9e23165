package midi

import "sync"

// Queue is an unbounded FIFO of incoming events. It is written by the
// driver callback and drained by the main loop.
type Queue struct {
	mu    sync.Mutex
	items []IncomingEvent
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends ev to the queue. It never blocks on the consumer.
func (q *Queue) Push(ev IncomingEvent) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()
}

// Pop removes the oldest event. It reports false when the queue is empty.
func (q *Queue) Pop() (IncomingEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return IncomingEvent{}, false
	}
	ev := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return ev, true
}

// Len returns the number of pending events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
