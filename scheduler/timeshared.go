package scheduler

import "github.com/minucas/cloudcore/engine"

// TimeSharedPolicy multiplexes a VM's full mips share across every
// executing cloudlet, dividing it evenly regardless of how many PEs each
// cloudlet requested. It never queues admission: every waiting cloudlet
// is moved into exec immediately, since time-sharing has no fixed PE
// budget to exhaust.
type TimeSharedPolicy struct{}

// AllocatedMipsForCloudlet implements Policy.
func (TimeSharedPolicy) AllocatedMipsForCloudlet(
	_ *CloudletExecutionInfo, exec []*CloudletExecutionInfo, mipsShare []float64, _ engine.VTimeInSec,
) float64 {
	if len(exec) == 0 {
		return 0
	}

	return totalMips(mipsShare) / float64(len(exec))
}

// MoveWaitingToExec implements Policy.
func (TimeSharedPolicy) MoveWaitingToExec(
	waiting, exec []*CloudletExecutionInfo, _ []float64,
) ([]*CloudletExecutionInfo, []*CloudletExecutionInfo) {
	for _, c := range waiting {
		c.Status = StatusInExec
		exec = append(exec, c)
	}

	return nil, exec
}

// TryAdmit implements Policy. Time-sharing has no PE budget to exhaust, so
// every submitted cloudlet is admitted straight into exec; the predicted
// finish time accounts for the share c will hold once it joins the other
// cloudlets already executing.
func (TimeSharedPolicy) TryAdmit(
	c *CloudletExecutionInfo, exec []*CloudletExecutionInfo, _ int, mipsShare []float64, now engine.VTimeInSec,
) (bool, engine.VTimeInSec) {
	rate := totalMips(mipsShare) / float64(len(exec)+1)
	if rate <= 0 {
		return true, 0
	}

	return true, now + c.FileTransferTime + engine.VTimeInSec(c.RemainingMI()/rate)
}
