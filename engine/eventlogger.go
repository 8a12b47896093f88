package engine

import (
	"log"
)

// EventLogger is an EventProcessedListener that prints a line per
// processed event to a standard *log.Logger. It is grounded on the
// teacher's EventLogger/LogHookBase (sim/eventlogger.go, sim/loghook.go):
// the same shape, generalized from "hook firing before an event, given a
// Component handler" to "listener firing after an event, given the
// engine's own entity directory" since our Event is a tagged struct rather
// than a Handler-bearing interface.
type EventLogger struct {
	logger *log.Logger
	eng    *Engine
}

// NewEventLogger returns an EventLogger that writes through logger,
// resolving entity names via eng.
func NewEventLogger(logger *log.Logger, eng *Engine) *EventLogger {
	return &EventLogger{logger: logger, eng: eng}
}

// EventProcessed implements EventProcessedListener.
func (h *EventLogger) EventProcessed(e Event) {
	dest := "?"
	if ent, ok := h.eng.GetEntity(e.Destination); ok {
		dest = ent.Name()
	}

	h.logger.Printf("%.10f, %s -> %s (tag=%d)", e.Time, e.Kind, dest, e.Tag)
}
