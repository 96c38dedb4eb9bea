package game

import "time"

// Scheduler defers engine work such as the post-trick collection pause. The
// server session implements it so deferred tasks re-enter the engine under
// its dispatch lock; the engine additionally guards every scheduled closure
// with a generation token so a stale task against a torn-down or re-dealt
// game is ignored.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// immediateScheduler runs deferred work inline, which makes local games and
// tests fully synchronous.
type immediateScheduler struct{}

func (immediateScheduler) After(d time.Duration, fn func()) {
	fn()
}
