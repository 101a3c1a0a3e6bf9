// Package gameloop implements the cooperative main update loop: a ticker
// that, once per iteration, drains a queue of scheduled continuations and
// fires due timers.
//
// The queue is the rejoin point for background work. A goroutine that needs
// to mutate loop-owned state calls NextTick with its continuation instead of
// touching the state directly; the continuation then runs on the next
// iteration, in loop context.
package gameloop

import (
	"context"
	"sync"
	"time"
)

type timer struct {
	due time.Time
	fn  func()
}

// Loop is the single-threaded owner loop. NextTick and AddTimer are safe to
// call from any goroutine; the scheduled functions themselves always execute
// from Run (or Tick), one iteration at a time.
type Loop struct {
	interval time.Duration

	mu     sync.Mutex
	queue  []func()
	timers []timer
}

// New returns a loop ticking at the given interval.
func New(interval time.Duration) *Loop {
	if interval <= 0 {
		panic("gameloop.New: interval must be > 0")
	}
	return &Loop{interval: interval}
}

// NextTick schedules fn to run on the next loop iteration.
func (l *Loop) NextTick(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// AddTimer schedules fn to run on the first loop iteration at or after d
// from now.
func (l *Loop) AddTimer(d time.Duration, fn func()) {
	l.mu.Lock()
	l.timers = append(l.timers, timer{due: time.Now().Add(d), fn: fn})
	l.mu.Unlock()
}

// Run drives the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Tick runs one loop iteration: the continuations queued before this
// iteration started, then any timers that have come due. Functions queued
// while Tick runs execute on the following iteration.
//
// Exported so hosts that drive their own frame loop can pump it, and for
// deterministic tests.
func (l *Loop) Tick() {
	now := time.Now()

	l.mu.Lock()
	pending := l.queue
	l.queue = nil

	var due []func()
	remaining := l.timers[:0]
	for _, t := range l.timers {
		if !t.due.After(now) {
			due = append(due, t.fn)
		} else {
			remaining = append(remaining, t)
		}
	}
	l.timers = remaining
	l.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	for _, fn := range due {
		fn()
	}
}
