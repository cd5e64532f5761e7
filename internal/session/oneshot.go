package session

import "time"

// OneShot is a cancellable fire-once scheduled callback.
type OneShot struct {
	timer *time.Timer
}

// Schedule runs fn once after the given delay unless cancelled first.
func Schedule(delay time.Duration, fn func()) *OneShot {
	return &OneShot{timer: time.AfterFunc(delay, fn)}
}

// Cancel stops the callback if it has not fired yet.
func (o *OneShot) Cancel() {
	if o != nil && o.timer != nil {
		o.timer.Stop()
	}
}
