package scheduler

import "github.com/minucas/cloudcore/engine"

// SpaceSharedPolicy dedicates whole PEs to a cloudlet rather than
// dividing a VM's mips share among every executing cloudlet: a cloudlet
// gets its requested PE count multiplied by the per-PE mips rate, for as
// long as enough PEs are free. Admission is gated by PE budget: a waiting
// cloudlet is only moved into exec while the VM still has free PEs.
type SpaceSharedPolicy struct{}

// AllocatedMipsForCloudlet implements Policy.
func (SpaceSharedPolicy) AllocatedMipsForCloudlet(
	c *CloudletExecutionInfo, _ []*CloudletExecutionInfo, mipsShare []float64, _ engine.VTimeInSec,
) float64 {
	if len(mipsShare) == 0 {
		return 0
	}

	perPE := mipsShare[0]

	return perPE * float64(c.Cloudlet.PesNumber)
}

// MoveWaitingToExec implements Policy.
func (SpaceSharedPolicy) MoveWaitingToExec(
	waiting, exec []*CloudletExecutionInfo, mipsShare []float64,
) ([]*CloudletExecutionInfo, []*CloudletExecutionInfo) {
	totalPes := len(mipsShare)
	freePes := totalPes - pesUsed(exec)

	var stillWaiting []*CloudletExecutionInfo

	for _, c := range waiting {
		if c.Cloudlet.PesNumber <= freePes {
			c.Status = StatusInExec
			exec = append(exec, c)
			freePes -= c.Cloudlet.PesNumber
		} else {
			c.Status = StatusQueued
			stillWaiting = append(stillWaiting, c)
		}
	}

	return stillWaiting, exec
}

// TryAdmit implements Policy. c is admitted straight into exec only while
// the VM still has enough free PEs for it; a rejected cloudlet still has
// its residual FileTransferTime left untouched for whichever policy called
// this (a network-aware policy folds transfer delay in before delegating
// here).
func (SpaceSharedPolicy) TryAdmit(
	c *CloudletExecutionInfo, exec []*CloudletExecutionInfo, vmPes int, mipsShare []float64, now engine.VTimeInSec,
) (bool, engine.VTimeInSec) {
	freePes := vmPes - pesUsed(exec)
	if c.Cloudlet.PesNumber > freePes {
		return false, 0
	}

	if len(mipsShare) == 0 {
		return true, 0
	}

	rate := mipsShare[0] * float64(c.Cloudlet.PesNumber)
	if rate <= 0 {
		return true, 0
	}

	return true, now + c.FileTransferTime + engine.VTimeInSec(c.RemainingMI()/rate)
}
