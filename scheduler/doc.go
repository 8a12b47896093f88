// Package scheduler implements the per-VM cloudlet scheduler: the
// bookkeeping that tracks which cloudlets (units of work submitted to a
// VM) are waiting, executing, paused, or finished, and the pluggable
// policy that decides how much of a VM's processing capacity each
// executing cloudlet receives and when a waiting cloudlet is admitted.
//
// BaseScheduler holds the four cloudlet lists and the bookkeeping common
// to every discipline; it calls out to a Policy value for the decisions
// that vary across disciplines (time-shared, space-shared, network-aware):
// how much of a VM's capacity an executing cloudlet is credited, which
// waiting cloudlets a processing update admits, and whether a cloudlet
// submitted this instant can go straight into exec. A field-held strategy
// is used rather than an embedded base, since Go's embedding cannot let a
// base type invoke a method the embedder has overridden.
package scheduler
