package engine

import (
	"math"
	"sync"
)

// minTimeBetweenEventsDefault is the default minimum time between events,
// per the external-interfaces note in spec.md §6. No code path reads it:
// Schedule, ScheduleFirst and HoldEntity accept any non-negative delay,
// including 0.
const minTimeBetweenEventsDefault VTimeInSec = 0.1

// Engine is the discrete-event simulation core: the single owner of
// simulated time, the event queues, and every registered Entity's
// lifecycle. It is grounded on the teacher's SerialEngine
// (sim/engine.go, v5/timing/serial_engine.go) for its dispatch-loop shape
// and blocking pause mechanism (here a single mutex plus a sync.Cond the
// paused loop waits on), and on CloudSim.java for the exact
// ordering, debounce, and termination semantics spec.md requires.
type Engine struct {
	mu sync.Mutex

	clock VTimeInSec

	future   *FutureQueue
	deferred *DeferredQueue

	entities  []Entity
	nameIndex map[string]int

	waitPredicates map[int]Predicate

	nextSerial int64

	started bool
	running bool

	aborted            bool
	terminateRequested bool
	terminateAtSet     bool
	terminateAt        VTimeInSec

	pauseRequested bool
	pauseAtSet     bool
	pauseAt        VTimeInSec
	paused         bool
	pauseCond      *sync.Cond

	clockTickHasWatermark bool
	clockTickWatermark    VTimeInSec

	eventProcessedListeners listenerSet[EventProcessedListener]
	clockTickListeners      listenerSet[ClockTickListener]
	pausedListeners         listenerSet[PausedListener]

	cis *CloudInformationService
}

// New creates an Engine at clock 0, with the CloudInformationService
// already registered as entity 0.
func New() *Engine {
	e := &Engine{
		future:         NewFutureQueue(),
		deferred:       NewDeferredQueue(),
		nameIndex:      make(map[string]int),
		waitPredicates: make(map[int]Predicate),
	}
	e.pauseCond = sync.NewCond(&e.mu)

	e.cis = NewCloudInformationService()
	e.addEntityLocked(e.cis)

	return e
}

// CIS returns the engine's CloudInformationService entity.
func (e *Engine) CIS() *CloudInformationService { return e.cis }

// Clock returns the current simulated time.
func (e *Engine) Clock() VTimeInSec {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.clock
}

// IsRunning reports whether the engine's main loop is currently active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.running
}

// IsPaused reports whether the engine's main loop is currently blocked
// waiting for Resume.
func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.paused
}

// NumEntities returns the number of registered entities, including the
// CloudInformationService.
func (e *Engine) NumEntities() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.entities)
}

// AddEntity registers ent and assigns it the next available id. If the
// engine is already running, ent is started immediately, mirroring the
// effect an EventCreate would have had if it arrived mid-run.
func (e *Engine) AddEntity(ent Entity) (int, error) {
	e.mu.Lock()

	if _, exists := e.nameIndex[ent.Name()]; exists {
		e.mu.Unlock()
		return -1, newInvalidArgument("entity name %q already registered", ent.Name())
	}

	id := e.addEntityLocked(ent)
	running := e.running

	e.mu.Unlock()

	if running {
		ent.Start(e)
	}

	return id, nil
}

func (e *Engine) addEntityLocked(ent Entity) int {
	id := len(e.entities)
	ent.setID(id)
	ent.setState(Runnable)
	e.entities = append(e.entities, ent)
	e.nameIndex[ent.Name()] = id

	return id
}

// GetEntity looks up a registered entity by id.
func (e *Engine) GetEntity(id int) (Entity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id < 0 || id >= len(e.entities) {
		return nil, false
	}

	return e.entities[id], true
}

// GetEntityByName looks up a registered entity by its registration name.
func (e *Engine) GetEntityByName(name string) (Entity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.nameIndex[name]
	if !ok {
		return nil, false
	}

	return e.entities[id], true
}

// RenameEntity re-indexes ent's name in the engine's name directory. It is
// required by the name->entity map consistency invariant: renaming an
// entity after registration must not leave the old name resolvable or the
// new name missing.
func (e *Engine) RenameEntity(id int, newName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id < 0 || id >= len(e.entities) {
		return newInvalidArgument("no entity with id %d", id)
	}

	if existing, exists := e.nameIndex[newName]; exists && existing != id {
		return newInvalidArgument("entity name %q already registered", newName)
	}

	for name, existing := range e.nameIndex {
		if existing == id {
			delete(e.nameIndex, name)
		}
	}
	e.nameIndex[newName] = id

	return nil
}

// Start runs the engine's dispatch loop to completion: it starts every
// registered entity, then repeatedly drains runnable entities and
// processes queued events in time order until the future queue empties,
// the engine is terminated or aborted, or a pause condition is reached
// (in which case Start blocks until Resume is called from another
// goroutine). Start may only be called once per Engine; a second call
// returns an IllegalState error.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return newIllegalState("engine already started")
	}

	e.started = true
	e.running = true
	entitiesSnapshot := make([]Entity, len(e.entities))
	copy(entitiesSnapshot, e.entities)
	e.mu.Unlock()

	for _, ent := range entitiesSnapshot {
		ent.Start(e)
	}

	e.runLoop()

	return nil
}

func (e *Engine) runLoop() {
	for {
		e.drainRunnable()

		e.mu.Lock()
		empty := e.future.IsEmpty()
		var nextTime VTimeInSec
		if !empty {
			nextTime = e.future.First().Time
		}
		e.mu.Unlock()

		if empty {
			break
		}

		if e.pauseBeforeNext(nextTime) {
			continue
		}

		now := e.processNextBatch()
		e.noteClockTick(now)

		if e.shouldStop(now) {
			break
		}
	}

	e.finishSimulation()
}

func (e *Engine) drainRunnable() {
	e.mu.Lock()
	snapshot := make([]Entity, len(e.entities))
	copy(snapshot, e.entities)
	e.mu.Unlock()

	for _, ent := range snapshot {
		if ent.State() == Runnable {
			ent.Run(e)
		}
	}
}

// processNextBatch pops and processes every queued event sharing the
// earliest time in the future queue, returning that time.
func (e *Engine) processNextBatch() VTimeInSec {
	e.mu.Lock()
	now := e.future.First().Time
	e.mu.Unlock()

	for {
		e.mu.Lock()
		if e.future.IsEmpty() || e.future.First().Time != now {
			e.mu.Unlock()
			break
		}

		evt := e.future.Pop()
		e.clock = evt.Time
		e.mu.Unlock()

		e.processEvent(evt)

		for _, l := range e.eventProcessedListeners.snapshot() {
			l.EventProcessed(evt)
		}
	}

	return now
}

func (e *Engine) shouldStop(now VTimeInSec) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.aborted || e.terminateRequested {
		return true
	}

	return e.terminateAtSet && now >= e.terminateAt
}

func (e *Engine) processEvent(evt Event) {
	switch evt.Kind {
	case EventSend:
		e.deliverSend(evt)
	case EventCreate:
		if evt.NewEntity != nil {
			e.mu.Lock()
			e.addEntityLocked(evt.NewEntity)
			e.mu.Unlock()

			evt.NewEntity.Start(e)
		}
	case EventHoldDone:
		e.deliverHoldDone(evt)
	case EventNull:
		panic(newInvalidArgument("processed a NULL event"))
	}
}

func (e *Engine) deliverSend(evt Event) {
	dest, ok := e.GetEntity(evt.Destination)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if dest.State() == Waiting {
		pred, has := e.waitPredicates[dest.ID()]
		if evt.Tag == TagUrgentWake || (has && (isSimAny(pred) || pred(evt))) {
			buf := evt
			dest.setEventBuffer(&buf)
			dest.setState(Runnable)
			delete(e.waitPredicates, dest.ID())

			return
		}
	}

	e.deferred.Add(evt)
}

func (e *Engine) deliverHoldDone(evt Event) {
	dest, ok := e.GetEntity(evt.Destination)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if dest.State() == Holding {
		buf := evt
		dest.setEventBuffer(&buf)
		dest.setState(Runnable)
	}
}

// noteClockTick fires ClockTickListeners exactly once per distinct time
// value the clock settles on, per the watermark-comparison debounce rule
// supplemented from the original source (see SPEC_FULL.md §11): two
// consecutive same-time batches must not double-fire, but a batch that
// returns to the same value a later, distinct batch already moved away
// from is never revisited, since time is monotonically non-decreasing.
func (e *Engine) noteClockTick(now VTimeInSec) {
	e.mu.Lock()
	if e.clockTickHasWatermark && e.clockTickWatermark == now {
		e.mu.Unlock()
		return
	}

	e.clockTickWatermark = now
	e.clockTickHasWatermark = true
	e.mu.Unlock()

	for _, l := range e.clockTickListeners.snapshot() {
		l.ClockTick(now)
	}
}

// pauseBeforeNext decides whether the engine should pause before
// processing the batch at nextTime, the future queue's next unprocessed
// event time — mirroring the original source's
// isNextFutureEventHappeningAfterTimeToPause check, which peeks the queue
// rather than waiting for a batch to already have been delivered past
// pauseAt. When a pending PauseAt is what triggers the pause, the clock is
// clamped to pauseAt and listeners are notified with pauseAt rather than
// whatever the clock happened to be. Reports whether it paused (and has
// since been resumed).
func (e *Engine) pauseBeforeNext(nextTime VTimeInSec) bool {
	e.mu.Lock()
	pauseAtHit := e.pauseAtSet && nextTime >= e.pauseAt
	if !e.pauseRequested && !pauseAtHit {
		e.mu.Unlock()
		return false
	}

	pauseClock := e.clock
	if pauseAtHit && e.pauseAt >= pauseClock {
		pauseClock = e.pauseAt
		e.clock = pauseClock
	}

	e.paused = true
	e.pauseRequested = false
	e.pauseAtSet = false
	e.mu.Unlock()

	for _, l := range e.pausedListeners.snapshot() {
		l.SimulationPaused(pauseClock)
	}

	e.mu.Lock()
	for e.paused {
		e.pauseCond.Wait()
	}
	e.mu.Unlock()

	return true
}

func (e *Engine) finishSimulation() {
	e.mu.Lock()
	aborted := e.aborted
	snapshot := make([]Entity, len(e.entities))
	copy(snapshot, e.entities)
	e.mu.Unlock()

	if !aborted {
		for _, ent := range snapshot {
			if ent.State() != Finished {
				ent.Run(e)
				ent.setState(Finished)
			}
		}
	}

	for _, ent := range snapshot {
		ent.Shutdown(e)
	}

	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
}

// Pause requests that the engine suspend its dispatch loop as soon as it
// next reaches a safe point (between two event batches), blocking the
// Start call until Resume is invoked. It is safe to call from a goroutine
// other than the one running Start.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.pauseRequested = true
	e.mu.Unlock()
}

// PauseAt requests that the engine pause once the clock reaches or passes
// t. It returns an InvalidArgument error if t has already passed.
func (e *Engine) PauseAt(t VTimeInSec) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t < e.clock {
		return newInvalidArgument("pause time %v already passed (clock=%v)", t, e.clock)
	}

	e.pauseAt = t
	e.pauseAtSet = true

	return nil
}

// Resume wakes a paused Start call. It is a no-op if the engine is not
// currently paused.
func (e *Engine) Resume() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()
	e.pauseCond.Broadcast()
}

// Terminate requests that the engine stop its dispatch loop as soon as it
// next reaches a safe point, then run its normal shutdown sequence
// (draining and finishing every entity).
func (e *Engine) Terminate() {
	e.mu.Lock()
	e.terminateRequested = true
	e.mu.Unlock()
}

// TerminateAt requests that the engine stop once the clock reaches or
// passes t. Unlike PauseAt, the guard is non-strict: t equal to the
// current clock is rejected with an InvalidArgument error (PauseAt accepts
// it), matching the distinct <=/< guards the original source uses for
// termination versus pausing.
func (e *Engine) TerminateAt(t VTimeInSec) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t <= e.clock {
		return newInvalidArgument("terminate time %v already passed (clock=%v)", t, e.clock)
	}

	e.terminateAt = t
	e.terminateAtSet = true

	return nil
}

// Abort stops the dispatch loop immediately and skips the final
// Run-to-completion drain of unfinished entities; Shutdown is still
// called on every entity.
func (e *Engine) Abort() {
	e.mu.Lock()
	e.aborted = true
	e.terminateRequested = true
	e.mu.Unlock()
}

// Schedule queues an event for dest, delay seconds after the current
// clock, carrying tag and payload. The returned Event's Serial orders it
// among same-time events in arrival order. A negative delay or an
// out-of-range destination returns an InvalidArgument error.
func (e *Engine) Schedule(src, dest int, delay VTimeInSec, tag int, payload interface{}) (Event, error) {
	if delay < 0 || math.IsNaN(float64(delay)) {
		return Event{}, newInvalidArgument("delay must be non-negative, got %v", delay)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if dest < 0 || dest >= len(e.entities) {
		return Event{}, newInvalidArgument("no entity with id %d", dest)
	}

	evt := newEvent(EventSend, e.clock+delay)
	evt.Source = src
	evt.Destination = dest
	evt.Tag = tag
	evt.Payload = payload
	evt.serial = e.nextSerial
	e.nextSerial++

	e.future.AddEvent(evt)

	return evt, nil
}

// ScheduleFirst queues an event exactly like Schedule, but orders it
// before any other event already queued at the same resulting time.
func (e *Engine) ScheduleFirst(src, dest int, delay VTimeInSec, tag int, payload interface{}) (Event, error) {
	if delay < 0 || math.IsNaN(float64(delay)) {
		return Event{}, newInvalidArgument("delay must be non-negative, got %v", delay)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if dest < 0 || dest >= len(e.entities) {
		return Event{}, newInvalidArgument("no entity with id %d", dest)
	}

	evt := newEvent(EventSend, e.clock+delay)
	evt.Source = src
	evt.Destination = dest
	evt.Tag = tag
	evt.Payload = payload
	evt.serial = -1

	e.future.AddEventFirst(evt)

	return evt, nil
}

// HoldEntity suspends entity id for delay seconds, after which it
// receives a HOLD_DONE event and returns to RUNNABLE.
func (e *Engine) HoldEntity(id int, delay VTimeInSec) error {
	if delay < 0 || math.IsNaN(float64(delay)) {
		return newInvalidArgument("delay must be non-negative, got %v", delay)
	}

	ent, ok := e.GetEntity(id)
	if !ok {
		return newInvalidArgument("no entity with id %d", id)
	}

	e.mu.Lock()
	evt := newEvent(EventHoldDone, e.clock+delay)
	evt.Source = id
	evt.Destination = id
	evt.serial = e.nextSerial
	e.nextSerial++
	e.future.AddEvent(evt)
	e.mu.Unlock()

	ent.setState(Holding)

	return nil
}

// PauseEntity is HoldEntity under its other name: id is suspended for
// delay seconds and then receives a HOLD_DONE event.
func (e *Engine) PauseEntity(id int, delay VTimeInSec) error {
	return e.HoldEntity(id, delay)
}

// Wait checks id's deferred queue for an event matching p, returning and
// removing it immediately if present. Otherwise it marks id WAITING with
// p so that a later matching Schedule wakes it directly, without the
// event ever touching the deferred queue.
func (e *Engine) Wait(id int, p Predicate) (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if evt, ok := e.deferred.FindFirst(id, p); ok {
		e.deferred.Remove(evt)
		return evt, true
	}

	if ent, ok := e.entityLocked(id); ok {
		ent.setState(Waiting)
		e.waitPredicates[id] = p
	}

	return Event{}, false
}

// Select checks id's deferred queue for an event matching p, without
// altering id's scheduling state.
func (e *Engine) Select(id int, p Predicate) (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if evt, ok := e.deferred.FindFirst(id, p); ok {
		e.deferred.Remove(evt)
		return evt, true
	}

	return Event{}, false
}

// Waiting returns the number of events in id's deferred queue matching p,
// without dequeuing any of them.
func (e *Engine) Waiting(id int, p Predicate) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.deferred.CountMatching(id, p)
}

func (e *Engine) entityLocked(id int) (Entity, bool) {
	if id < 0 || id >= len(e.entities) {
		return nil, false
	}

	return e.entities[id], true
}

// Cancel removes evt from the future queue, reporting whether it was
// still pending.
func (e *Engine) Cancel(evt Event) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.future.Remove(evt)
}

// CancelAll removes every future-queued event sourced by src matching p,
// returning how many were removed.
func (e *Engine) CancelAll(src int, p Predicate) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	var toRemove []Event

	for _, evt := range e.future.All() {
		if evt.Source == src && p(evt) {
			toRemove = append(toRemove, evt)
		}
	}

	e.future.RemoveAll(toRemove)

	return len(toRemove)
}

// AddEventProcessedListener registers l to be notified after every
// processed event.
func (e *Engine) AddEventProcessedListener(l EventProcessedListener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.eventProcessedListeners.add(l)
}

// RemoveEventProcessedListener deregisters l, reporting whether it was
// registered.
func (e *Engine) RemoveEventProcessedListener(l EventProcessedListener) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.eventProcessedListeners.remove(l)
}

// AddClockTickListener registers l to be notified whenever the clock
// settles on a new distinct value.
func (e *Engine) AddClockTickListener(l ClockTickListener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clockTickListeners.add(l)
}

// RemoveClockTickListener deregisters l, reporting whether it was
// registered.
func (e *Engine) RemoveClockTickListener(l ClockTickListener) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.clockTickListeners.remove(l)
}

// AddPausedListener registers l to be notified whenever the engine
// enters the paused state.
func (e *Engine) AddPausedListener(l PausedListener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pausedListeners.add(l)
}

// RemovePausedListener deregisters l, reporting whether it was
// registered.
func (e *Engine) RemovePausedListener(l PausedListener) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pausedListeners.remove(l)
}
