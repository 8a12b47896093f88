package engine

import "github.com/rs/xid"

// VTimeInSec is a simulated instant or duration, expressed in seconds.
type VTimeInSec float64

// EventKind discriminates the four shapes an Event can take.
type EventKind int

// The four event kinds the engine understands.
const (
	// EventNull is never valid on a scheduled event; processing one makes
	// the engine panic with an InvalidArgument *Error.
	EventNull EventKind = iota
	// EventSend carries a message from src to dest.
	EventSend
	// EventCreate carries a new Entity to be registered and started.
	EventCreate
	// EventHoldDone marks the end of a HoldEntity/PauseEntity delay.
	EventHoldDone
)

// TagUrgentWake is a reserved tag value that bypasses predicate evaluation
// entirely when delivered to a WAITING entity, waking it regardless of
// what it was waiting for.
const TagUrgentWake = 9999

func (k EventKind) String() string {
	switch k {
	case EventSend:
		return "SEND"
	case EventCreate:
		return "CREATE"
	case EventHoldDone:
		return "HOLD_DONE"
	default:
		return "NULL"
	}
}

// Event is an immutable record of a scheduled interaction. Unlike the
// teacher's polymorphic Event interface, the simulation core's event is a
// closed sum type over four kinds, so a single tagged struct is the more
// faithful rendering in Go (see the "tagged event variants" design note).
type Event struct {
	// ID is an opaque, unique trace identifier, visible to listeners and
	// used by FutureQueue and DeferredQueue as the identity key for
	// removal. It never participates in ordering.
	ID string

	Kind EventKind
	Time VTimeInSec

	// serial is the FutureQueue tie-breaker: monotonically increasing per
	// insertion, except for events queued with ScheduleFirst, which get -1
	// so they sort before any same-time event already queued.
	serial int64

	Source      int
	Destination int
	Tag         int
	Payload     interface{}

	// NewEntity is the payload for EventCreate.
	NewEntity Entity
}

func newEvent(kind EventKind, t VTimeInSec) Event {
	return Event{
		ID:          xid.New().String(),
		Kind:        kind,
		Time:        t,
		Source:      -1,
		Destination: -1,
	}
}

// Serial returns the event's queue tie-breaker value.
func (e Event) Serial() int64 {
	return e.serial
}
