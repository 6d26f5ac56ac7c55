package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a deferred action. Stop reports whether the call
// prevented the action from running.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler fires on the runtime timer goroutine.
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler keeps virtual time. Nothing fires until Advance is called,
// and callbacks run on the caller's goroutine in deadline order.
type ManualScheduler struct {
	mu      sync.Mutex
	epoch   time.Time
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	owner    *ManualScheduler
	deadline time.Duration
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{epoch: time.Now().UTC()}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{owner: s, deadline: s.now + d, seq: s.seq, fn: f}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves virtual time forward and fires every timer that came due,
// including timers scheduled by callbacks within the advanced span.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}
	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// Elapsed returns the virtual time passed so far.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Now is the creation instant plus Elapsed.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch.Add(s.now)
}

// Pending returns the number of timers that are neither stopped nor fired.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].deadline == s.pending[j].deadline {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].deadline < s.pending[j].deadline
	})
	t := s.pending[0]
	if t.deadline > target {
		return nil
	}
	s.pending = s.pending[1:]
	if t.deadline > s.now {
		s.now = t.deadline
	}
	t.fired = true
	return t
}

func (t *manualTimer) Stop() bool {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
	return true
}
