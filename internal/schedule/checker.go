package schedule

import (
	"sync"
	"time"
)

// Checker re-runs a rollover check on a fixed cadence from its own
// goroutine. The checks themselves are idempotent between boundary
// crossings, so the cadence only bounds how long a crossing can go
// unnoticed.
type Checker struct {
	mu       sync.Mutex
	interval time.Duration
	check    func(now time.Time)
	kick     chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
}

func NewChecker(interval time.Duration, check func(now time.Time)) *Checker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Checker{
		interval: interval,
		check:    check,
		kick:     make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (c *Checker) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true
	go c.loop()
}

func (c *Checker) Stop() {
	c.mu.Lock()
	if !c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	close(c.stopCh)
	c.mu.Unlock()
	<-c.doneCh
}

// Kick requests an immediate check, used after user actions so a crossed
// boundary is handled without waiting out the cadence.
func (c *Checker) Kick() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

func (c *Checker) loop() {
	defer close(c.doneCh)

	c.check(time.Now())

	timer := time.NewTimer(c.interval)
	for {
		select {
		case <-timer.C:
			c.check(time.Now())
			timer = resetTimer(timer, c.interval)
		case <-c.kick:
			c.check(time.Now())
			timer = resetTimer(timer, c.interval)
		case <-c.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
