package engine

// EventProcessedListener is notified after every event the engine
// processes.
type EventProcessedListener interface {
	EventProcessed(e Event)
}

// ClockTickListener is notified when the clock settles on a new value —
// after every same-time event at that instant has been processed.
type ClockTickListener interface {
	ClockTick(now VTimeInSec)
}

// PausedListener is notified when the engine enters the PAUSED state.
type PausedListener interface {
	SimulationPaused(now VTimeInSec)
}

// listenerSet is a set (duplicates suppressed by identity) of listeners of
// one kind, grounded on the teacher's HookableBase, generalized from a
// single untyped hook list to the three typed registries spec.md requires.
type listenerSet[T comparable] struct {
	listeners []T
}

func (s *listenerSet[T]) add(l T) {
	for _, existing := range s.listeners {
		if existing == l {
			return
		}
	}

	s.listeners = append(s.listeners, l)
}

// remove deletes l from the set, reporting whether it was present.
func (s *listenerSet[T]) remove(l T) bool {
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return true
		}
	}

	return false
}

// snapshot returns a copy of the registered listeners, so that a listener
// triggered mid-notification can safely register or deregister without
// corrupting the in-progress iteration.
func (s *listenerSet[T]) snapshot() []T {
	out := make([]T, len(s.listeners))
	copy(out, s.listeners)

	return out
}
