package engine

import "time"

// timerID identifies a scheduled callback
type timerID uint64

type timerEntry struct {
	id       timerID
	deadline time.Time
	fn       func()
}

// timerQueue is a frame-checked scheduler: callbacks fire on the first tick at
// or after their deadline, never from their own goroutine
type timerQueue struct {
	entries []timerEntry
	nextID  timerID
}

// After schedules fn at now+d
func (q *timerQueue) After(now time.Time, d time.Duration, fn func()) timerID {
	q.nextID++
	q.entries = append(q.entries, timerEntry{id: q.nextID, deadline: now.Add(d), fn: fn})
	return q.nextID
}

// Cancel removes a pending callback, returns false if it already fired
func (q *timerQueue) Cancel(id timerID) bool {
	for i, e := range q.entries {
		if e.id == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Fire runs every due callback in scheduling order, callbacks may schedule more
func (q *timerQueue) Fire(now time.Time) int {
	fired := 0
	for {
		idx := -1
		for i, e := range q.entries {
			if !now.Before(e.deadline) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fired
		}
		e := q.entries[idx]
		q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
		e.fn()
		fired++
	}
}

// Clear drops every pending callback
func (q *timerQueue) Clear() {
	q.entries = q.entries[:0]
}

// Len returns the number of pending callbacks
func (q *timerQueue) Len() int {
	return len(q.entries)
}
