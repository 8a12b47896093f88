package engine

// DeferredQueue is the insertion-ordered sequence of events that arrived at
// an entity but were not matched (the entity wasn't WAITING, or its
// predicate didn't match). Unlike FutureQueue it carries no time ordering —
// arrival order is the only ordering guarantee spec.md makes for
// select/findFirstDeferred, so a plain slice is the faithful rendering.
type DeferredQueue struct {
	events []Event
}

// NewDeferredQueue creates an empty DeferredQueue.
func NewDeferredQueue() *DeferredQueue {
	return &DeferredQueue{}
}

// Add appends evt to the end of the queue.
func (q *DeferredQueue) Add(evt Event) {
	q.events = append(q.events, evt)
}

// Remove deletes the event identical to evt (matched by ID, since events
// queued with ScheduleFirst all share serial -1), reporting whether
// anything was removed.
func (q *DeferredQueue) Remove(evt Event) bool {
	for i, e := range q.events {
		if e.ID == evt.ID {
			q.events = append(q.events[:i], q.events[i+1:]...)
			return true
		}
	}

	return false
}

// Len returns the number of deferred events.
func (q *DeferredQueue) Len() int { return len(q.events) }

// FindFirst returns the first event addressed to dest matching p, and
// whether one was found.
func (q *DeferredQueue) FindFirst(dest int, p Predicate) (Event, bool) {
	for _, e := range q.events {
		if e.Destination == dest && p(e) {
			return e, true
		}
	}

	return Event{}, false
}

// CountMatching returns how many deferred events addressed to dest match p.
func (q *DeferredQueue) CountMatching(dest int, p Predicate) int {
	n := 0

	for _, e := range q.events {
		if e.Destination == dest && p(e) {
			n++
		}
	}

	return n
}
