package task

import "go.uber.org/atomic"

type statusWaiter struct {
	isInited *atomic.Bool
	waiter   chan int
}

func (w *statusWaiter) wait() {
	if w.isInited.Load() {
		return
	} else {
		<-w.waiter
	}
}

func (w *statusWaiter) init() {
	if !w.isInited.CAS(false, true) {
		return
	}
	close(w.waiter)
}

func newWaitor() *statusWaiter {
	return &statusWaiter{
		isInited: atomic.NewBool(false),
		waiter:   make(chan int),
	}
}

// HoldedStatus holds host states that plugins may wait for.
type HoldedStatus struct {
	registeredWaiter *statusWaiter
	registered       *atomic.Bool
	startedWaiter    *statusWaiter
	started          *atomic.Bool
}

func newHolder() *HoldedStatus {
	s := HoldedStatus{
		registeredWaiter: newWaitor(),
		registered:       atomic.NewBool(false),
		startedWaiter:    newWaitor(),
		started:          atomic.NewBool(false),
	}
	return &s
}

func (s *HoldedStatus) setRegistered(v bool) {
	s.registered.Store(v)
	s.registeredWaiter.init()
}

// Registered blocks until the register stage ran and reports if it did.
func (s *HoldedStatus) Registered() bool {
	s.registeredWaiter.wait()
	return s.registered.Load()
}

func (s *HoldedStatus) setStarted(v bool) {
	s.started.Store(v)
	s.startedWaiter.init()
}

// Started blocks until the server started.
func (s *HoldedStatus) Started() bool {
	s.startedWaiter.wait()
	return s.started.Load()
}
