package queuectl

import (
	"sync/atomic"
	"time"

	"github.com/romanqed/queuectl/internal"
)

const (
	stopped = iota
	started
)

// lcBase implements the strict start-once/stop-once lifecycle used by
// LogCleanWorker: Start may only be called once, and Stop must be called
// to terminate the background task.
type lcBase struct {
	state atomic.Int32
}

func (lb *lcBase) tryStart() error {
	if !lb.state.CompareAndSwap(stopped, started) {
		return ErrDoubleStarted
	}
	return nil
}

func (lb *lcBase) tryStop(timeout time.Duration, df internal.DoneFunc) error {
	if !lb.state.CompareAndSwap(started, stopped) {
		return ErrDoubleStopped
	}
	done := df()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
		return ErrStopTimeout
	}
}
