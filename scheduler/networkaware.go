package scheduler

import "github.com/minucas/cloudcore/engine"

// NetworkAwarePolicy behaves like SpaceSharedPolicy for PE budgeting, but
// additionally consults a PacketScheduler so a cloudlet's effective
// progress accounts for the network delay its file and output transfers
// impose, not just PE contention.
type NetworkAwarePolicy struct {
	VmID    int
	Packets PacketScheduler
}

// NewNetworkAwarePolicy returns a NetworkAwarePolicy for the given VM,
// using NullPacketScheduler if packets is nil.
func NewNetworkAwarePolicy(vmID int, packets PacketScheduler) NetworkAwarePolicy {
	if packets == nil {
		packets = NullPacketScheduler{}
	}

	return NetworkAwarePolicy{VmID: vmID, Packets: packets}
}

// AllocatedMipsForCloudlet implements Policy. Network delay is folded into
// c.FileTransferTime once, at TryAdmit time, so the generic fileTransferTime
// decrement in UpdateVmProcessing already withholds progress while it is
// outstanding; SpaceShared's PE allocation is all that is left to apply
// here.
func (p NetworkAwarePolicy) AllocatedMipsForCloudlet(
	c *CloudletExecutionInfo, exec []*CloudletExecutionInfo, mipsShare []float64, now engine.VTimeInSec,
) float64 {
	return SpaceSharedPolicy{}.AllocatedMipsForCloudlet(c, exec, mipsShare, now)
}

// MoveWaitingToExec implements Policy, delegating PE-budget admission to
// SpaceSharedPolicy.
func (p NetworkAwarePolicy) MoveWaitingToExec(
	waiting, exec []*CloudletExecutionInfo, mipsShare []float64,
) ([]*CloudletExecutionInfo, []*CloudletExecutionInfo) {
	return SpaceSharedPolicy{}.MoveWaitingToExec(waiting, exec, mipsShare)
}

// TryAdmit implements Policy. It records this cloudlet's network transfer
// delay into its FileTransferTime exactly once — whether or not PE budget
// allows it into exec right away — so the delay is honored uniformly by
// UpdateVmProcessing's fileTransferTime handling regardless of when the
// cloudlet actually starts executing.
func (p NetworkAwarePolicy) TryAdmit(
	c *CloudletExecutionInfo, exec []*CloudletExecutionInfo, vmPes int, mipsShare []float64, now engine.VTimeInSec,
) (bool, engine.VTimeInSec) {
	c.FileTransferTime += p.Packets.NetworkDelay(p.VmID, c.Cloudlet.FileSize, c.Cloudlet.OutputSize)

	return SpaceSharedPolicy{}.TryAdmit(c, exec, vmPes, mipsShare, now)
}
