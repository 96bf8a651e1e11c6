/*
Package mailbox implements the deferred execution queue between the UI
context and the document loop.

Each operation category owns a single slot, not a FIFO: Submit overwrites
any unconsumed payload, so only the most recent request per category is ever
delivered. A buffered tick channel wakes the document loop; Take atomically
consumes a slot and tolerates spurious wakeups. No lock is held while the
consumer performs the actual mutation.
*/
package mailbox

import "sync"

// Category identifies one mailbox slot.
type Category int

const (
	// Apply carries parameter update/create requests.
	Apply Category = iota
	// Timeline carries suppression change batches.
	Timeline
	// UnitSwitch carries document unit change requests.
	UnitSwitch

	numCategories
)

// String returns the category name for logs and metrics labels.
func (c Category) String() string {
	switch c {
	case Apply:
		return "apply"
	case Timeline:
		return "timeline"
	case UnitSwitch:
		return "unit_switch"
	default:
		return "unknown"
	}
}

// Categories lists every slot in drain order.
func Categories() []Category {
	return []Category{Apply, Timeline, UnitSwitch}
}

// Queue is the set of single-slot mailboxes plus the tick signal.
// Safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	slots [numCategories]any
	full  [numCategories]bool

	tick chan struct{}
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{tick: make(chan struct{}, 1)}
}

// Submit stores payload into the category's slot, unconditionally
// overwriting any unconsumed prior payload, then signals the document loop.
// Runs on the calling context and never blocks.
func (q *Queue) Submit(c Category, payload any) {
	q.mu.Lock()
	q.slots[c] = payload
	q.full[c] = true
	q.mu.Unlock()

	select {
	case q.tick <- struct{}{}:
	default:
		// A wakeup is already pending; the loop drains every slot per tick.
	}
}

// Take atomically removes and returns the slot's payload. ok is false when
// the slot is already empty, which the caller treats as a no-op (spurious
// re-entry is allowed).
func (q *Queue) Take(c Category) (any, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.full[c] {
		return nil, false
	}
	payload := q.slots[c]
	q.slots[c] = nil
	q.full[c] = false
	return payload, true
}

// Pending reports whether the slot currently holds a payload.
func (q *Queue) Pending(c Category) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.full[c]
}

// Tick returns the wakeup channel for the document loop.
func (q *Queue) Tick() <-chan struct{} {
	return q.tick
}
