package engine_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/minucas/cloudcore/engine"
)

// senderEntity schedules a single SEND to dest once, on its first Run call.
type senderEntity struct {
	engine.EntityBase

	dest  int
	tag   int
	delay engine.VTimeInSec
	sent  bool
}

func newSenderEntity(name string, dest, tag int, delay engine.VTimeInSec) *senderEntity {
	return &senderEntity{EntityBase: engine.NewEntityBase(name), dest: dest, tag: tag, delay: delay}
}

func (s *senderEntity) Start(*engine.Engine) {}

func (s *senderEntity) Run(eng *engine.Engine) {
	if s.sent {
		return
	}

	_, _ = eng.Schedule(s.ID(), s.dest, s.delay, s.tag, nil)
	s.sent = true
}

func (s *senderEntity) Shutdown(*engine.Engine) {}

// recorderEntity waits for any event and records every one it is woken
// for, re-arming the wait each time.
type recorderEntity struct {
	engine.EntityBase

	waiting  bool
	received []engine.Event
}

func newRecorderEntity(name string) *recorderEntity {
	return &recorderEntity{EntityBase: engine.NewEntityBase(name)}
}

func (r *recorderEntity) Start(*engine.Engine) {}

func (r *recorderEntity) Run(eng *engine.Engine) {
	if evt := r.ConsumeEvent(); evt != nil {
		r.received = append(r.received, *evt)
		r.waiting = false
	}

	if !r.waiting {
		if evt, ok := eng.Wait(r.ID(), engine.SimAny); ok {
			r.received = append(r.received, evt)
			return
		}

		r.waiting = true
	}
}

func (r *recorderEntity) Shutdown(*engine.Engine) {}

// waitPredicateEntity waits specifically for events carrying tag, re-arming
// each time it's woken — unlike recorderEntity, a send whose tag doesn't
// match is never delivered to it, except via the urgent-wake bypass.
type waitPredicateEntity struct {
	engine.EntityBase

	tag      int
	waiting  bool
	received []engine.Event
}

func newWaitPredicateEntity(name string, tag int) *waitPredicateEntity {
	return &waitPredicateEntity{EntityBase: engine.NewEntityBase(name), tag: tag}
}

func (w *waitPredicateEntity) Start(*engine.Engine) {}

func (w *waitPredicateEntity) Run(eng *engine.Engine) {
	if evt := w.ConsumeEvent(); evt != nil {
		w.received = append(w.received, *evt)
		w.waiting = false
	}

	if !w.waiting {
		if evt, ok := eng.Wait(w.ID(), engine.WithTag(w.tag)); ok {
			w.received = append(w.received, evt)
			return
		}

		w.waiting = true
	}
}

func (w *waitPredicateEntity) Shutdown(*engine.Engine) {}

// clockRecorder implements ClockTickListener, PausedListener and
// EventProcessedListener, recording every notification it receives.
type clockRecorder struct {
	mu           sync.Mutex
	ticks        []engine.VTimeInSec
	pausedAt     []engine.VTimeInSec
	eventsByTime []engine.VTimeInSec
}

func (c *clockRecorder) ClockTick(now engine.VTimeInSec) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ticks = append(c.ticks, now)
}

func (c *clockRecorder) SimulationPaused(now engine.VTimeInSec) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pausedAt = append(c.pausedAt, now)
}

func (c *clockRecorder) EventProcessed(e engine.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eventsByTime = append(c.eventsByTime, e.Time)
}

var _ = Describe("Engine", func() {
	It("runs and finishes immediately when nothing is scheduled", func() {
		eng := engine.New()

		Expect(eng.IsRunning()).To(BeFalse())
		Expect(eng.Start()).To(Succeed())
		Expect(eng.IsRunning()).To(BeFalse())
		Expect(eng.Clock()).To(Equal(engine.VTimeInSec(0)))
	})

	It("rejects a second Start call with IllegalState", func() {
		eng := engine.New()
		Expect(eng.Start()).To(Succeed())

		err := eng.Start()
		Expect(err).To(HaveOccurred())

		var engErr *engine.Error
		Expect(err).To(BeAssignableToTypeOf(engErr))
		Expect(err.(*engine.Error).Kind).To(Equal(engine.ErrIllegalState))
	})

	It("delivers a single send to its destination", func() {
		eng := engine.New()

		recv := newRecorderEntity("receiver")
		recvID, err := eng.AddEntity(recv)
		Expect(err).NotTo(HaveOccurred())

		send := newSenderEntity("sender", recvID, 42, 5)
		_, err = eng.AddEntity(send)
		Expect(err).NotTo(HaveOccurred())

		Expect(eng.Start()).To(Succeed())

		Expect(recv.received).To(HaveLen(1))
		Expect(recv.received[0].Tag).To(Equal(42))
		Expect(recv.received[0].Time).To(Equal(engine.VTimeInSec(5)))
		Expect(eng.Clock()).To(Equal(engine.VTimeInSec(5)))
	})

	It("processes same-time events as one batch and fires ClockTick once", func() {
		eng := engine.New()
		rec := &clockRecorder{}
		eng.AddClockTickListener(rec)
		eng.AddEventProcessedListener(rec)

		recv := newRecorderEntity("receiver")
		recvID, err := eng.AddEntity(recv)
		Expect(err).NotTo(HaveOccurred())

		s1 := newSenderEntity("s1", recvID, 1, 3)
		s2 := newSenderEntity("s2", recvID, 2, 3)
		_, err = eng.AddEntity(s1)
		Expect(err).NotTo(HaveOccurred())
		_, err = eng.AddEntity(s2)
		Expect(err).NotTo(HaveOccurred())

		Expect(eng.Start()).To(Succeed())

		Expect(rec.eventsByTime).To(HaveLen(2))
		Expect(rec.ticks).To(Equal([]engine.VTimeInSec{3}))

		for i := 1; i < len(rec.eventsByTime); i++ {
			Expect(rec.eventsByTime[i]).To(BeNumerically(">=", rec.eventsByTime[i-1]))
		}
	})

	It("pauses before the next event is delivered, not after", func() {
		eng := engine.New()

		recv := newRecorderEntity("receiver")
		recvID, err := eng.AddEntity(recv)
		Expect(err).NotTo(HaveOccurred())

		send := newSenderEntity("sender", recvID, 7, 10)
		_, err = eng.AddEntity(send)
		Expect(err).NotTo(HaveOccurred())

		// pauseAt (5) falls strictly before the only scheduled event (at
		// 10), so the engine must stop before delivering it, not after.
		Expect(eng.PauseAt(5)).To(Succeed())

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = eng.Start()
		}()

		Eventually(eng.IsPaused, time.Second).Should(BeTrue())
		Expect(recv.received).To(BeEmpty())
		Expect(eng.Clock()).To(Equal(engine.VTimeInSec(5)))

		eng.Resume()
		Eventually(done, time.Second).Should(BeClosed())
		Expect(recv.received).To(HaveLen(1))
		Expect(recv.received[0].Time).To(Equal(engine.VTimeInSec(10)))
		Expect(eng.Clock()).To(Equal(engine.VTimeInSec(10)))
	})

	It("bypasses predicate evaluation for the urgent-wake tag", func() {
		eng := engine.New()

		// target waits only for tag 123; a send carrying TagUrgentWake
		// must still wake it, bypassing that predicate entirely.
		target := newWaitPredicateEntity("target", 123)
		targetID, err := eng.AddEntity(target)
		Expect(err).NotTo(HaveOccurred())

		_, err = eng.Schedule(targetID, targetID, 1, engine.TagUrgentWake, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(eng.Start()).To(Succeed())

		Expect(target.received).To(HaveLen(1))
		Expect(target.received[0].Tag).To(Equal(engine.TagUrgentWake))
	})

	It("cancels a future event before it is processed", func() {
		eng := engine.New()

		recv := newRecorderEntity("receiver")
		recvID, err := eng.AddEntity(recv)
		Expect(err).NotTo(HaveOccurred())

		canceler := &cancelerEntity{EntityBase: engine.NewEntityBase("canceler"), dest: recvID}
		_, err = eng.AddEntity(canceler)
		Expect(err).NotTo(HaveOccurred())

		Expect(eng.Start()).To(Succeed())

		Expect(canceler.cancelled).To(BeTrue())
		Expect(recv.received).To(BeEmpty())
	})

	It("keeps entity ids stable across a run", func() {
		eng := engine.New()

		a := newRecorderEntity("a")
		idA, err := eng.AddEntity(a)
		Expect(err).NotTo(HaveOccurred())

		b := newRecorderEntity("b")
		idB, err := eng.AddEntity(b)
		Expect(err).NotTo(HaveOccurred())

		Expect(eng.Start()).To(Succeed())

		Expect(a.ID()).To(Equal(idA))
		Expect(b.ID()).To(Equal(idB))

		ent, ok := eng.GetEntity(idA)
		Expect(ok).To(BeTrue())
		Expect(ent.Name()).To(Equal("a"))
	})
})

// cancelerEntity schedules an event far in the future, then immediately
// cancels it on the same Run call.
type cancelerEntity struct {
	engine.EntityBase

	dest      int
	cancelled bool
	done      bool
}

func (c *cancelerEntity) Start(*engine.Engine) {}

func (c *cancelerEntity) Run(eng *engine.Engine) {
	if c.done {
		return
	}

	c.done = true

	evt, err := eng.Schedule(c.ID(), c.dest, 100, 99, nil)
	if err != nil {
		return
	}

	c.cancelled = eng.Cancel(evt)
}

func (c *cancelerEntity) Shutdown(*engine.Engine) {}
