package engine

import "time"

// Task is an action waiting to run
type Task interface {
	// Cancel stops the task from running. It reports whether the
	// task was still pending.
	Cancel() bool
}

// Scheduler runs fn once d has elapsed
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

// ClockScheduler schedules on the wall clock
type ClockScheduler struct{}

func (ClockScheduler) Schedule(d time.Duration, fn func()) Task {
	return clockTask{time.AfterFunc(d, fn)}
}

type clockTask struct {
	timer *time.Timer
}

func (t clockTask) Cancel() bool {
	return t.timer.Stop()
}
