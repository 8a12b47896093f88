package scheduler

import "github.com/minucas/cloudcore/engine"

// Status is the lifecycle state of a cloudlet within a scheduler.
type Status int

// The cloudlet lifecycle states, in the order a cloudlet normally visits
// them.
const (
	StatusCreated Status = iota
	StatusReady
	StatusQueued
	StatusInExec
	StatusPaused
	StatusResumed
	StatusSuccess
	StatusFailed
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "CREATED"
	case StatusReady:
		return "READY"
	case StatusQueued:
		return "QUEUED"
	case StatusInExec:
		return "INEXEC"
	case StatusPaused:
		return "PAUSED"
	case StatusResumed:
		return "RESUMED"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailed:
		return "FAILED"
	default:
		return "CANCELED"
	}
}

// CloudletExecutionInfo wraps a Cloudlet with the bookkeeping a scheduler
// needs to track its progress: how much of its length has been executed
// so far, when it arrived, started and finished, and its current status.
type CloudletExecutionInfo struct {
	Cloudlet Cloudlet
	Status   Status

	// FinishedSoFarMI is the cumulative instruction count executed,
	// never exceeding Cloudlet.LengthMI.
	FinishedSoFarMI float64

	ArrivalTime engine.VTimeInSec
	StartTime   engine.VTimeInSec
	FinishTime  engine.VTimeInSec

	// FileTransferTime is the residual delay, set at submission, before
	// this cloudlet's instructions may begin executing (input/output
	// transfer, network delay, and similar admission-time overhead).
	// UpdateVmProcessing decrements it by each step's elapsed time and
	// credits zero instructions for as long as it remains positive.
	FileTransferTime engine.VTimeInSec

	// started tracks whether StartTime has been recorded yet, since a
	// zero VTimeInSec is itself a legal start time when the simulation
	// begins at clock 0.
	started bool

	// LastUpdateTime is the clock value UpdateVmProcessing last
	// credited this cloudlet as of, kept for inspection; the elapsed
	// delta itself is computed from the scheduler's previousTime and
	// this cloudlet's ArrivalTime, not from this field.
	LastUpdateTime engine.VTimeInSec
}

// RemainingMI returns how much instruction length is left to execute.
func (c *CloudletExecutionInfo) RemainingMI() float64 {
	remaining := c.Cloudlet.LengthMI - c.FinishedSoFarMI
	if remaining < 0 {
		return 0
	}

	return remaining
}

// IsFinished reports whether the cloudlet has executed its full length.
func (c *CloudletExecutionInfo) IsFinished() bool {
	return c.FinishedSoFarMI >= c.Cloudlet.LengthMI
}
