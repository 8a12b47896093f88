package engine

import "container/heap"

// FutureQueue is the total order of not-yet-processed events, keyed
// primarily by time ascending and secondarily by serial ascending. It is
// grounded on the teacher's eventHeap (sim/eventqueue.go) and
// futureEventHeap (v5/timing/queue.go), generalized from a single time key
// to the (time, serial) pair spec.md requires for deterministic same-time
// ordering.
type FutureQueue struct {
	events eventHeap
}

// NewFutureQueue creates an empty FutureQueue.
func NewFutureQueue() *FutureQueue {
	q := &FutureQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)

	return q
}

// AddEvent inserts evt in time/serial order.
func (q *FutureQueue) AddEvent(evt Event) {
	heap.Push(&q.events, evt)
}

// AddEventFirst inserts evt so that it compares before any other event
// already queued at the same time, by assigning it serial -1. This is the
// bypass used by ScheduleFirst for immediate-priority sends.
func (q *FutureQueue) AddEventFirst(evt Event) {
	evt.serial = -1
	heap.Push(&q.events, evt)
}

// Remove deletes the event in the queue identical to evt (matched by ID,
// since every AddEventFirst event shares serial -1), reporting whether
// anything was removed.
func (q *FutureQueue) Remove(evt Event) bool {
	for i, e := range q.events {
		if e.ID == evt.ID {
			heap.Remove(&q.events, i)
			return true
		}
	}

	return false
}

// RemoveAll deletes every event in evts from the queue.
func (q *FutureQueue) RemoveAll(evts []Event) {
	for _, e := range evts {
		q.Remove(e)
	}
}

// Len returns the number of queued events.
func (q *FutureQueue) Len() int { return q.events.Len() }

// IsEmpty reports whether the queue holds no events.
func (q *FutureQueue) IsEmpty() bool { return q.events.Len() == 0 }

// First returns the earliest-ordered event without removing it. It panics
// if the queue is empty; callers must check IsEmpty first, matching the
// teacher's own panic-on-misuse convention for queue peeks.
func (q *FutureQueue) First() Event {
	return q.events[0]
}

// Pop removes and returns the earliest-ordered event.
func (q *FutureQueue) Pop() Event {
	return heap.Pop(&q.events).(Event)
}

// All returns a snapshot of the queued events in ascending (time, serial)
// order. The slice is a copy; mutating it does not affect the queue.
func (q *FutureQueue) All() []Event {
	cp := make(eventHeap, len(q.events))
	copy(cp, q.events)

	out := make([]Event, 0, len(cp))
	for cp.Len() > 0 {
		out = append(out, heap.Pop(&cp).(Event))
	}

	return out
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}

	return h[i].serial < h[j].serial
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	evt := old[n-1]
	*h = old[:n-1]

	return evt
}
