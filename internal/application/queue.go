package application

import (
	"sync"

	"artbind/internal/domain"
)

// pending is one queued notification: a property change (node set) or a
// state machine event (state set)
type pending struct {
	node   *domain.PropertyNode
	change domain.ChangeEvent
	state  *domain.StateEvent
}

// eventQueue collects notifications from engine listeners. Listeners only
// push; the registry drains on its own control flow. It has its own lock
// so engine callbacks never wait on an instance lock.
type eventQueue struct {
	mu     sync.Mutex
	items  []pending
	closed bool
}

func (q *eventQueue) push(p pending) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, p)
}

// take removes and returns everything queued so far, in push order.
func (q *eventQueue) take() []pending {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

func (q *eventQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// close drops pending items and refuses new ones.
func (q *eventQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
}
