package scheduler

import "github.com/minucas/cloudcore/engine"

// Policy is the strategy a BaseScheduler calls through for the three
// decisions that vary across scheduling disciplines: how much of a VM's
// capacity an executing cloudlet is allocated, which waiting cloudlets
// are admitted into execution given the current mips share, and whether
// a newly submitted cloudlet can go straight into execution. A
// field-held interface rather than an embedded base, since Go embedding
// cannot let BaseScheduler's own methods dispatch to an override the way
// inheritance would in the original source.
type Policy interface {
	// AllocatedMipsForCloudlet returns the MIPS rate c should be
	// credited with over the interval ending at now, given the
	// cloudlets currently executing alongside it and the VM's total
	// mips share.
	AllocatedMipsForCloudlet(c *CloudletExecutionInfo, exec []*CloudletExecutionInfo, mipsShare []float64, now engine.VTimeInSec) float64

	// MoveWaitingToExec selects cloudlets from waiting to admit into
	// exec given the VM's mips share and the cloudlets already
	// executing, returning the updated waiting and exec slices.
	MoveWaitingToExec(waiting, exec []*CloudletExecutionInfo, mipsShare []float64) (newWaiting, newExec []*CloudletExecutionInfo)

	// TryAdmit decides, at submission time, whether c can move straight
	// into exec given the cloudlets already executing, the VM's PE
	// count, and its current mips share. If admitted, it also returns
	// the predicted finish time for c; c.FileTransferTime is folded
	// into that prediction, and TryAdmit may set or add to it (a
	// network-aware policy uses this to record transfer delay even for
	// a cloudlet it declines to admit immediately).
	TryAdmit(c *CloudletExecutionInfo, exec []*CloudletExecutionInfo, vmPes int, mipsShare []float64, now engine.VTimeInSec) (admitted bool, predictedFinish engine.VTimeInSec)
}

func totalMips(mipsShare []float64) float64 {
	total := 0.0
	for _, m := range mipsShare {
		total += m
	}

	return total
}

func pesUsed(cloudlets []*CloudletExecutionInfo) int {
	used := 0
	for _, c := range cloudlets {
		used += c.Cloudlet.PesNumber
	}

	return used
}
