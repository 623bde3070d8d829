// Package toast queues transient user notifications with timed expiry.
package toast

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Info    Type = "info"
)

const DefaultDuration = 2200 * time.Millisecond

type Toast struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Type    Type   `json:"type"`
}

type Queue struct {
	mu     sync.Mutex
	toasts []Toast
	subs   []func([]Toast)

	// after is swappable so tests can expire toasts synchronously.
	after func(d time.Duration, fn func())
}

func NewQueue() *Queue {
	return &Queue{
		after: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

func (q *Queue) Subscribe(fn func([]Toast)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subs = append(q.subs, fn)
}

// Show enqueues a toast and schedules its removal. Zero duration means
// DefaultDuration.
func (q *Queue) Show(message string, typ Type, duration time.Duration) string {
	if typ == "" {
		typ = Info
	}
	if duration <= 0 {
		duration = DefaultDuration
	}

	id := newID()
	q.mu.Lock()
	q.toasts = append(q.toasts, Toast{ID: id, Message: message, Type: typ})
	q.notifyAndUnlock()

	q.after(duration, func() { q.Remove(id) })
	return id
}

func (q *Queue) Remove(id string) {
	q.mu.Lock()
	next := q.toasts[:0]
	for _, t := range q.toasts {
		if t.ID != id {
			next = append(next, t)
		}
	}
	q.toasts = next
	q.notifyAndUnlock()
}

func (q *Queue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// notifyAndUnlock snapshots state, releases the lock, and only then calls
// subscribers, so a subscriber may call back into the queue.
func (q *Queue) notifyAndUnlock() {
	snapshot := make([]Toast, len(q.toasts))
	copy(snapshot, q.toasts)
	subs := q.subs
	q.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

func newID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
