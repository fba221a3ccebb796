package engine

import (
	"context"
	"time"
)

// Start launches the frame loop. Calling Start on a running engine is a no-op,
// a stopped engine can be started again.
func (e *Engine) Start(ctx context.Context) error {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.done != nil {
		select {
		case <-e.done:
			// Previous loop exited on its own context, allow restart
			e.cancel()
		default:
			return nil
		}
	}

	e.mu.Lock()
	if !e.surfaceReady() {
		e.mu.Unlock()
		return ErrSurfaceUnavailable
	}
	e.resumeTimers()
	e.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	e.cancel, e.done = cancel, done

	goSafe(func() {
		defer close(done)
		e.loop(ctx)
	}, e.opts.crash)

	e.log.Debug("loop started", "interval", e.interval)
	return nil
}

// Stop cancels the frame loop and every scheduled timer, safe to call repeatedly
func (e *Engine) Stop() {
	e.runMu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	e.mu.Lock()
	e.timers.Clear()
	e.mu.Unlock()
	e.log.Debug("loop stopped")
}

// Running reports whether a frame loop is active
func (e *Engine) Running() bool {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if e.done == nil {
		return false
	}
	select {
	case <-e.done:
		return false
	default:
		return true
	}
}

// loop ticks on a deadline schedule with drift correction. A tick that overruns
// the frame budget causes the next tick to be skipped, late ticks are dropped.
func (e *Engine) loop(ctx context.Context) {
	interval := e.interval
	next := time.Now().Add(interval)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	skip := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		started := time.Now()
		if skip {
			skip = false
			e.stats.skipped.Inc()
		} else {
			e.Step()
			skip = time.Since(started) > interval
		}

		next = next.Add(interval)
		if now := time.Now(); now.After(next) {
			next = now.Add(interval)
		}
		timer.Reset(time.Until(next))
	}
}
