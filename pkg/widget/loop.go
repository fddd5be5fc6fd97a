package widget

import (
	"context"
	"sync"
	"time"
)

// TimerID identifies a timer registered with Loop.AfterFunc. The zero value
// never identifies a timer.
type TimerID uint64

// Loop is a single-threaded task queue. Tasks run on whichever goroutine
// calls RunPending or Run, never concurrently with each other.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	timers map[TimerID]*time.Timer
	nextID TimerID
	wake   chan struct{}
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{
		timers: make(map[TimerID]*time.Timer),
		wake:   make(chan struct{}, 1),
	}
}

// Post queues fn to run on a later turn of the loop. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// AfterFunc schedules fn to run on the loop after d. A non-positive d queues
// fn for the next turn. The returned ID can be passed to Cancel.
func (l *Loop) AfterFunc(d time.Duration, fn func()) TimerID {
	var id TimerID
	fire := func() {
		l.mu.Lock()
		_, live := l.timers[id]
		delete(l.timers, id)
		l.mu.Unlock()
		if live {
			fn()
		}
	}

	l.mu.Lock()
	l.nextID++
	id = l.nextID
	if d <= 0 {
		l.timers[id] = nil
		l.mu.Unlock()
		l.Post(fire)
		return id
	}
	// Stored under the same lock that allocated id; fire takes the lock, so
	// it cannot run before the entry exists.
	l.timers[id] = time.AfterFunc(d, func() { l.Post(fire) })
	l.mu.Unlock()
	return id
}

// Cancel stops a pending timer. It returns false when the timer already
// fired, was already cancelled, or never existed.
func (l *Loop) Cancel(id TimerID) bool {
	l.mu.Lock()
	t, ok := l.timers[id]
	delete(l.timers, id)
	l.mu.Unlock()
	if !ok {
		return false
	}
	if t != nil {
		t.Stop()
	}
	return true
}

// Pending returns the number of timers that have not fired or been
// cancelled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// RunPending runs every queued task, including tasks queued while running,
// and returns how many ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return n
		}
		task := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		task()
		n++
	}
}

// Run drives the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
