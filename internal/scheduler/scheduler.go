// Package scheduler runs one-shot deferred callbacks that can be cancelled.
package scheduler

import "time"

type Timer interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Realtime schedules callbacks on the runtime timer.
type Realtime struct{}

func (Realtime) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Token identifies one arming of a Slot.
type Token uint64

// Slot holds at most one pending callback. Re-arming or cancelling invalidates the token
// handed to the previous callback, so a callback that already started running can detect
// that it went stale. Slot is not safe for concurrent use: the owner serializes access,
// including the Consume call made from inside the callback.
type Slot struct {
	sched Scheduler
	timer Timer
	token Token
	armed bool
}

func NewSlot(sched Scheduler) *Slot {
	return &Slot{sched: sched}
}

// Arm cancels any pending callback and schedules f to run after d.
func (that *Slot) Arm(d time.Duration, f func(Token)) {
	that.Cancel()

	that.armed = true
	token := that.token
	that.timer = that.sched.AfterFunc(d, func() { f(token) })
}

// Cancel stops the pending callback, if any, and invalidates its token.
func (that *Slot) Cancel() {
	if that.timer != nil {
		that.timer.Stop()
		that.timer = nil
	}
	that.armed = false
	that.token++
}

// Consume reports whether token belongs to the current arming and disarms the slot if so.
func (that *Slot) Consume(token Token) bool {
	if !that.armed || token != that.token {
		return false
	}

	that.armed = false
	that.timer = nil
	that.token++

	return true
}

func (that *Slot) Armed() bool {
	return that.armed
}
