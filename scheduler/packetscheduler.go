package scheduler

import "github.com/minucas/cloudcore/engine"

// PacketScheduler is the network-aware extension point: it estimates the
// additional delay a cloudlet's network traffic imposes before its
// computation can proceed, letting NetworkAwarePolicy account for network
// contention alongside PE contention.
type PacketScheduler interface {
	// NetworkDelay returns the extra time a cloudlet with the given
	// file and output sizes must wait for its network transfers,
	// given the vm's current network share.
	NetworkDelay(vmID int, fileSize, outputSize int64) engine.VTimeInSec
}

// NullPacketScheduler is the null-object PacketScheduler: it never adds
// network delay, letting NetworkAwarePolicy degrade to plain space-sharing
// when no network model is wired in.
type NullPacketScheduler struct{}

// NetworkDelay implements PacketScheduler.
func (NullPacketScheduler) NetworkDelay(int, int64, int64) engine.VTimeInSec { return 0 }
