package engine

import "reflect"

// Predicate decides whether a pending Event satisfies whatever an entity is
// waiting or selecting for.
type Predicate func(e Event) bool

// SimAny is the sentinel predicate meaning "wake on the next event
// regardless of content." Wait stores SimAny in the wait table like any
// other predicate; delivery recognizes it by identity (isSimAny) and
// matches without calling it.
var SimAny Predicate = func(Event) bool { return true }

// isSimAny reports whether p is the SimAny sentinel by identity, the same
// reference comparison the original source performs (p != SIM_ANY). Go func
// values aren't comparable with ==, so identity is checked via the
// underlying code pointer.
func isSimAny(p Predicate) bool {
	if p == nil {
		return true
	}

	return reflect.ValueOf(p).Pointer() == reflect.ValueOf(SimAny).Pointer()
}

// WithTag returns a predicate matching events carrying the given tag.
func WithTag(tag int) Predicate {
	return func(e Event) bool { return e.Tag == tag }
}

// And combines two predicates, matching only when both do.
func And(a, b Predicate) Predicate {
	return func(e Event) bool { return a(e) && b(e) }
}
