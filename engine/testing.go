package engine

import (
	"sync"
	"time"
)

// ManualScheduler holds tasks until Fire is called, so tests control time
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	s         *ManualScheduler
	delay     time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &manualTask{s: s, delay: d, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

func (t *manualTask) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.cancelled || t.fired {
		return false
	}
	t.cancelled = true
	return true
}

// Pending returns the number of tasks that have neither fired nor been cancelled
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recently scheduled task
func (s *ManualScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return 0
	}
	return s.tasks[len(s.tasks)-1].delay
}

// Fire runs every pending task, oldest first, and returns how many ran
func (s *ManualScheduler) Fire() int {
	s.mu.Lock()
	due := []*manualTask{}
	for _, t := range s.tasks {
		if !t.cancelled && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// FireCancelled runs tasks that were cancelled, as a timer that had
// already expired when it was stopped would
func (s *ManualScheduler) FireCancelled() int {
	s.mu.Lock()
	due := []*manualTask{}
	for _, t := range s.tasks {
		if t.cancelled && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}
