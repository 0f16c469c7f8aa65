package notify

import (
	"context"
	"time"
)

// Severity classifies a notification for the presentation boundary.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a short-lived message pushed on every mutation outcome.
// It expires instead of relying on a UI re-render cycle to clear it.
type Notification struct {
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// Queue is the abstraction over notification backends.
type Queue interface {
	Publish(ctx context.Context, n Notification) error
	// Drain returns the pending, unexpired notifications and removes them.
	// Expired entries are silently dropped.
	Drain(ctx context.Context) ([]Notification, error)
}

// Success publishes a success notification stamped now.
func Success(ctx context.Context, q Queue, msg string) {
	_ = q.Publish(ctx, Notification{Severity: SeveritySuccess, Message: msg, At: time.Now()})
}

// Error publishes an error notification stamped now.
func Error(ctx context.Context, q Queue, msg string) {
	_ = q.Publish(ctx, Notification{Severity: SeverityError, Message: msg, At: time.Now()})
}

// InMemory is a bounded channel-backed queue for single-process runs.
type InMemory struct {
	ch  chan Notification
	ttl time.Duration
	now func() time.Time
}

// NewInMemory creates a bounded in-memory queue whose entries expire after ttl.
func NewInMemory(size int, ttl time.Duration) *InMemory {
	if size <= 0 {
		size = 64
	}
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &InMemory{ch: make(chan Notification, size), ttl: ttl, now: time.Now}
}

// Publish enqueues a notification. A full queue drops the oldest entry
// rather than blocking the mutation that produced the message.
func (q *InMemory) Publish(ctx context.Context, n Notification) error {
	for {
		select {
		case q.ch <- n:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
			select {
			case <-q.ch:
			default:
			}
		}
	}
}

// Drain empties the queue, returning only entries still within their ttl.
func (q *InMemory) Drain(ctx context.Context) ([]Notification, error) {
	var out []Notification
	cutoff := q.now().Add(-q.ttl)
	for {
		select {
		case n := <-q.ch:
			if n.At.After(cutoff) {
				out = append(out, n)
			}
		case <-ctx.Done():
			return out, ctx.Err()
		default:
			return out, nil
		}
	}
}
