package scheduler

import "github.com/minucas/cloudcore/engine"

// CloudletScheduler is the per-VM contract for submitting cloudlets and
// advancing their execution as simulated time passes.
type CloudletScheduler interface {
	// Submit asks the policy whether c can start right now (for a
	// PE-budgeted policy, whether the VM has enough free PEs; a
	// time-shared policy always admits) and, if so, admits it straight
	// into exec (status INEXEC) and
	// returns its predicted finish time; otherwise it queues c to
	// waiting and returns 0. fileTransferTime is the residual delay,
	// if any, before c's instructions may begin executing.
	Submit(c Cloudlet, fileTransferTime engine.VTimeInSec) engine.VTimeInSec

	// UpdateVmProcessing credits progress to every executing cloudlet
	// up to now, given the VM's current per-PE mips share, moves
	// finished cloudlets out of exec, admits waiting cloudlets the
	// policy now has room for, and returns the simulated time of the
	// next cloudlet completion the scheduler expects (or a negative
	// value if nothing is executing).
	UpdateVmProcessing(now engine.VTimeInSec, mipsShare []float64) engine.VTimeInSec

	// CloudletFinish force-completes an executing cloudlet: its length
	// is credited in full and it moves straight to FINISHED/SUCCESS,
	// reporting whether a cloudlet with id was found executing.
	CloudletFinish(id int, now engine.VTimeInSec) bool

	CloudletCancel(id int) (*CloudletExecutionInfo, bool)
	CloudletPause(id int) bool
	CloudletResume(id int, now engine.VTimeInSec) bool

	IsEmpty() bool
	UsedPes() int

	// GetCloudletToMigrate removes and returns an exec cloudlet
	// suitable for migrating away from this VM, or ok=false if none
	// is executing.
	GetCloudletToMigrate() (*CloudletExecutionInfo, bool)

	// GetCurrentRequestedRamPercentUtilization, ...Bw..., and
	// GetRequestedCpuPercentUtilization report the average fraction of
	// its allocated share the currently executing cloudlets are asking
	// for, in [0, 1].
	GetCurrentRequestedRamPercentUtilization(now engine.VTimeInSec) float64
	GetCurrentRequestedBwPercentUtilization(now engine.VTimeInSec) float64
	GetRequestedCpuPercentUtilization(now engine.VTimeInSec) float64

	GetPacketScheduler() PacketScheduler
	SetPacketScheduler(p PacketScheduler)
}

// BaseScheduler implements the bookkeeping common to every discipline —
// the four cloudlet lists, the previous-update clock, and the current
// mips share — and calls out to a Policy for the three decisions that vary
// across disciplines. Grounded on spec.md §4.3's own description of a
// shared concrete base plus a swappable policy.
type BaseScheduler struct {
	policy Policy
	vmPes  int

	waiting  []*CloudletExecutionInfo
	exec     []*CloudletExecutionInfo
	paused   []*CloudletExecutionInfo
	finished []*CloudletExecutionInfo

	previousTime     engine.VTimeInSec
	currentMipsShare []float64

	packetScheduler PacketScheduler
}

// NewBaseScheduler creates a BaseScheduler for a VM with vmPes processing
// elements and the given initial mips share, calling through to policy for
// allocation and admission decisions.
func NewBaseScheduler(policy Policy, vmPes int, mipsShare []float64) *BaseScheduler {
	return &BaseScheduler{
		policy:           policy,
		vmPes:            vmPes,
		currentMipsShare: mipsShare,
		packetScheduler:  NullPacketScheduler{},
	}
}

// Submit implements CloudletScheduler. The admission decision and, when
// admitted, the predicted finish time are delegated to the policy's
// TryAdmit, evaluated against the scheduler's own notion of "now" (its
// previousTime) since submission can happen between UpdateVmProcessing
// calls.
func (s *BaseScheduler) Submit(c Cloudlet, fileTransferTime engine.VTimeInSec) engine.VTimeInSec {
	now := s.previousTime

	info := &CloudletExecutionInfo{
		Cloudlet:         c,
		Status:           StatusReady,
		ArrivalTime:      now,
		LastUpdateTime:   now,
		FileTransferTime: fileTransferTime,
	}

	admitted, predictedFinish := s.policy.TryAdmit(info, s.exec, s.vmPes, s.currentMipsShare, now)
	if !admitted {
		info.Status = StatusQueued
		s.waiting = append(s.waiting, info)

		return 0
	}

	info.Status = StatusInExec
	info.StartTime = now
	info.started = true
	s.exec = append(s.exec, info)

	return predictedFinish
}

// Get looks up a cloudlet by id across every list the scheduler tracks.
func (s *BaseScheduler) Get(id int) (*CloudletExecutionInfo, bool) {
	for _, list := range [][]*CloudletExecutionInfo{s.waiting, s.exec, s.paused, s.finished} {
		for _, c := range list {
			if c.Cloudlet.ID == id {
				return c, true
			}
		}
	}

	return nil, false
}

// CloudletFinish implements CloudletScheduler.
func (s *BaseScheduler) CloudletFinish(id int, now engine.VTimeInSec) bool {
	c, ok := removeByID(&s.exec, id)
	if !ok {
		return false
	}

	c.FinishedSoFarMI = c.Cloudlet.LengthMI
	c.Status = StatusSuccess
	c.FinishTime = now
	c.LastUpdateTime = now
	s.finished = append(s.finished, c)

	return true
}

// GetPacketScheduler implements CloudletScheduler.
func (s *BaseScheduler) GetPacketScheduler() PacketScheduler { return s.packetScheduler }

// SetPacketScheduler implements CloudletScheduler, falling back to
// NullPacketScheduler when given nil so callers never see a nil
// PacketScheduler.
func (s *BaseScheduler) SetPacketScheduler(p PacketScheduler) {
	if p == nil {
		p = NullPacketScheduler{}
	}

	s.packetScheduler = p
}

// GetCurrentRequestedRamPercentUtilization implements CloudletScheduler.
func (s *BaseScheduler) GetCurrentRequestedRamPercentUtilization(now engine.VTimeInSec) float64 {
	return averageUtilization(s.exec, now, func(c Cloudlet) UtilizationModel { return c.UtilizationRAM })
}

// GetCurrentRequestedBwPercentUtilization implements CloudletScheduler.
func (s *BaseScheduler) GetCurrentRequestedBwPercentUtilization(now engine.VTimeInSec) float64 {
	return averageUtilization(s.exec, now, func(c Cloudlet) UtilizationModel { return c.UtilizationBW })
}

// GetRequestedCpuPercentUtilization implements CloudletScheduler.
func (s *BaseScheduler) GetRequestedCpuPercentUtilization(now engine.VTimeInSec) float64 {
	return averageUtilization(s.exec, now, func(c Cloudlet) UtilizationModel { return c.UtilizationCPU })
}

func averageUtilization(exec []*CloudletExecutionInfo, now engine.VTimeInSec, pick func(Cloudlet) UtilizationModel) float64 {
	if len(exec) == 0 {
		return 0
	}

	var total float64

	for _, c := range exec {
		if model := pick(c.Cloudlet); model != nil {
			total += model.Utilization(now)
		}
	}

	return total / float64(len(exec))
}

// UpdateVmProcessing implements CloudletScheduler's step algorithm: credit
// each executing cloudlet's own elapsed interval (decrementing any
// residual fileTransferTime before crediting instructions), retire the
// ones that finished, admit newly room-for waiting cloudlets, record the
// new mips share and clock, and predict the next completion time.
func (s *BaseScheduler) UpdateVmProcessing(now engine.VTimeInSec, mipsShare []float64) engine.VTimeInSec {
	for _, c := range s.exec {
		since := s.previousTime
		if c.ArrivalTime > since {
			since = c.ArrivalTime
		}

		delta := now - since
		if delta < 0 {
			delta = 0
		}

		if c.FileTransferTime > 0 {
			c.FileTransferTime -= delta
			if c.FileTransferTime < 0 {
				c.FileTransferTime = 0
			}
		} else {
			rate := s.policy.AllocatedMipsForCloudlet(c, s.exec, s.currentMipsShare, now)
			c.FinishedSoFarMI += rate * float64(delta)

			if c.FinishedSoFarMI > c.Cloudlet.LengthMI {
				c.FinishedSoFarMI = c.Cloudlet.LengthMI
			}
		}

		c.LastUpdateTime = now
	}

	var stillExec []*CloudletExecutionInfo

	for _, c := range s.exec {
		if c.IsFinished() {
			c.Status = StatusSuccess
			c.FinishTime = now
			s.finished = append(s.finished, c)
		} else {
			stillExec = append(stillExec, c)
		}
	}

	s.exec = stillExec

	newWaiting, newExec := s.policy.MoveWaitingToExec(s.waiting, s.exec, mipsShare)
	s.waiting = newWaiting
	s.exec = newExec

	for _, c := range s.exec {
		if !c.started {
			c.StartTime = now
			c.started = true
		}
	}

	s.previousTime = now
	s.currentMipsShare = mipsShare

	next := s.nextCompletionDelta(now, mipsShare)
	if next < 0 {
		return next
	}

	return now + next
}

func (s *BaseScheduler) nextCompletionDelta(now engine.VTimeInSec, mipsShare []float64) engine.VTimeInSec {
	best := engine.VTimeInSec(-1)

	for _, c := range s.exec {
		if c.FileTransferTime > 0 {
			if best < 0 || c.FileTransferTime < best {
				best = c.FileTransferTime
			}

			continue
		}

		rate := s.policy.AllocatedMipsForCloudlet(c, s.exec, mipsShare, now)
		if rate <= 0 {
			continue
		}

		delta := engine.VTimeInSec(c.RemainingMI() / rate)
		if best < 0 || delta < best {
			best = delta
		}
	}

	return best
}

// CloudletCancel removes the cloudlet with the given id from whichever
// list currently holds it, marking it canceled.
func (s *BaseScheduler) CloudletCancel(id int) (*CloudletExecutionInfo, bool) {
	if c, ok := removeByID(&s.waiting, id); ok {
		c.Status = StatusCanceled
		return c, true
	}

	if c, ok := removeByID(&s.exec, id); ok {
		c.Status = StatusCanceled
		return c, true
	}

	if c, ok := removeByID(&s.paused, id); ok {
		c.Status = StatusCanceled
		return c, true
	}

	if c, ok := removeByID(&s.finished, id); ok {
		c.Status = StatusCanceled
		return c, true
	}

	return nil, false
}

// CloudletPause moves an executing cloudlet to paused, reporting whether
// it was found executing.
func (s *BaseScheduler) CloudletPause(id int) bool {
	c, ok := removeByID(&s.exec, id)
	if !ok {
		return false
	}

	c.Status = StatusPaused
	s.paused = append(s.paused, c)

	return true
}

// CloudletResume moves a paused cloudlet back to waiting so the next
// UpdateVmProcessing call can re-admit it, reporting whether it was found
// paused.
func (s *BaseScheduler) CloudletResume(id int, now engine.VTimeInSec) bool {
	c, ok := removeByID(&s.paused, id)
	if !ok {
		return false
	}

	c.Status = StatusResumed
	c.LastUpdateTime = now
	s.waiting = append(s.waiting, c)

	return true
}

// IsEmpty reports whether the scheduler holds no waiting, executing, or
// paused cloudlets.
func (s *BaseScheduler) IsEmpty() bool {
	return len(s.waiting) == 0 && len(s.exec) == 0 && len(s.paused) == 0
}

// UsedPes returns the sum of PEs requested by every currently executing
// cloudlet. A BaseScheduler never lets this exceed the VM's PE count when
// driven by a PE-budgeted Policy such as SpaceSharedPolicy.
func (s *BaseScheduler) UsedPes() int {
	return pesUsed(s.exec)
}

// Finished returns every cloudlet that has completed (successfully or
// not) so far.
func (s *BaseScheduler) Finished() []*CloudletExecutionInfo {
	out := make([]*CloudletExecutionInfo, len(s.finished))
	copy(out, s.finished)

	return out
}

// GetCloudletToMigrate removes and returns the first executing cloudlet,
// the simplest migration candidate selection: the longest-resident
// cloudlet in exec.
func (s *BaseScheduler) GetCloudletToMigrate() (*CloudletExecutionInfo, bool) {
	if len(s.exec) == 0 {
		return nil, false
	}

	c := s.exec[0]
	s.exec = s.exec[1:]

	return c, true
}

func removeByID(list *[]*CloudletExecutionInfo, id int) (*CloudletExecutionInfo, bool) {
	for i, c := range *list {
		if c.Cloudlet.ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return c, true
		}
	}

	return nil, false
}
