package scheduler

import "github.com/minucas/cloudcore/engine"

// UtilizationModel reports what fraction of its allocated share a
// cloudlet is actually consuming at a given simulated time, in [0, 1].
type UtilizationModel interface {
	Utilization(now engine.VTimeInSec) float64
}

// UtilizationFull always reports full utilization, the common default
// for CPU-bound cloudlets.
type UtilizationFull struct{}

// Utilization implements UtilizationModel.
func (UtilizationFull) Utilization(engine.VTimeInSec) float64 { return 1.0 }

// UtilizationStatic reports a fixed fraction regardless of time.
type UtilizationStatic float64

// Utilization implements UtilizationModel.
func (u UtilizationStatic) Utilization(engine.VTimeInSec) float64 { return float64(u) }
