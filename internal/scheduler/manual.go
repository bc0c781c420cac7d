package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a virtual-time Scheduler. Callbacks run on the goroutine that calls Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	owner   *Manual
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func NewManual() *Manual {
	return &Manual{}
}

func (that *Manual) AfterFunc(d time.Duration, f func()) Timer {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.seq++
	timer := &manualTimer{owner: that, at: that.now + d, seq: that.seq, f: f}
	that.timers = append(that.timers, timer)

	return timer
}

// Advance moves virtual time forward by d and fires every timer that falls due, in order.
func (that *Manual) Advance(d time.Duration) {
	that.mu.Lock()
	target := that.now + d
	that.mu.Unlock()

	for {
		that.mu.Lock()
		next := that.nextDue(target)
		if next == nil {
			that.now = target
			that.mu.Unlock()
			return
		}
		next.fired = true
		that.now = next.at
		that.mu.Unlock()

		next.f()
	}
}

// Pending returns the number of timers that are neither fired nor stopped.
func (that *Manual) Pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	count := 0
	for _, timer := range that.timers {
		if !timer.fired && !timer.stopped {
			count++
		}
	}

	return count
}

func (that *Manual) nextDue(target time.Duration) *manualTimer {
	due := make([]*manualTimer, 0, len(that.timers))
	for _, timer := range that.timers {
		if !timer.fired && !timer.stopped && timer.at <= target {
			due = append(due, timer)
		}
	}

	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})

	return due[0]
}

func (that *manualTimer) Stop() bool {
	that.owner.mu.Lock()
	defer that.owner.mu.Unlock()

	if that.fired || that.stopped {
		return false
	}
	that.stopped = true

	return true
}
