package engine

// State is the cooperative scheduling state of an Entity.
type State int

// The four states an Entity can occupy.
const (
	Runnable State = iota
	Waiting
	Holding
	Finished
)

func (s State) String() string {
	switch s {
	case Runnable:
		return "RUNNABLE"
	case Waiting:
		return "WAITING"
	case Holding:
		return "HOLDING"
	default:
		return "FINISHED"
	}
}

// Entity is a cooperative actor with a state machine and a single-slot
// inbox. Per the "cyclic references" design note, an Entity never holds a
// reference to the Engine: the engine is passed into Start/Run/Shutdown as
// a parameter, and the entity only ever carries its own assigned id.
type Entity interface {
	// Name returns the entity's unique registration name.
	Name() string

	// ID returns the entity's id, or -1 before registration.
	ID() int
	setID(id int)

	State() State
	setState(s State)

	// EventBuffer returns the most recently delivered event, or nil if
	// none has been delivered since the last time it was consumed.
	EventBuffer() *Event
	setEventBuffer(e *Event)

	// Start is invoked once, when the engine transitions to RUNNING (or,
	// for an entity added while already running, when AddEntity registers
	// it or its CREATE event is processed).
	Start(eng *Engine)

	// Run is invoked by the engine's main loop for every entity currently
	// RUNNABLE. A Run call may schedule new events, call Wait/Hold to
	// suspend itself, or leave its state untouched (at which point the
	// engine will call it again on the next loop iteration while it
	// remains RUNNABLE).
	Run(eng *Engine)

	// Shutdown is invoked once, when the engine finishes running.
	Shutdown(eng *Engine)
}

// EntityBase provides the bookkeeping every Entity needs: id, name, state,
// and the single-slot event buffer. Embed it and implement Start/Run/
// Shutdown to build a concrete entity, mirroring the teacher's
// ComponentBase/HookableBase embeddable-base convention.
type EntityBase struct {
	id          int
	name        string
	state       State
	eventBuffer *Event
}

// NewEntityBase creates an EntityBase with the given name, unregistered
// (id -1) and RUNNABLE.
func NewEntityBase(name string) EntityBase {
	return EntityBase{id: -1, name: name, state: Runnable}
}

// Name returns the entity's name.
func (b *EntityBase) Name() string { return b.name }

// ID returns the entity's id, or -1 if not yet registered.
func (b *EntityBase) ID() int { return b.id }

func (b *EntityBase) setID(id int) { b.id = id }

// State returns the entity's current scheduling state.
func (b *EntityBase) State() State { return b.state }

func (b *EntityBase) setState(s State) { b.state = s }

// EventBuffer returns the most recently delivered event.
func (b *EntityBase) EventBuffer() *Event { return b.eventBuffer }

func (b *EntityBase) setEventBuffer(e *Event) { b.eventBuffer = e }

// ConsumeEvent returns the entity's buffered event, if any, and clears the
// buffer so that a subsequent call returns nil until the engine delivers
// another event. Concrete entities use this in Run to pick up the event
// that woke them from WAITING or HOLDING.
func (b *EntityBase) ConsumeEvent() *Event {
	evt := b.eventBuffer
	b.eventBuffer = nil

	return evt
}
