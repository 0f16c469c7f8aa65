package notify

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryPublishDrainOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := NewInMemory(8, time.Minute)

	Success(ctx, q, "Camera added successfully")
	Error(ctx, q, "Attendance already marked for today")
	Success(ctx, q, "Camera unit removed")

	got, err := q.Drain(ctx)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	want := []struct {
		severity Severity
		message  string
	}{
		{SeveritySuccess, "Camera added successfully"},
		{SeverityError, "Attendance already marked for today"},
		{SeveritySuccess, "Camera unit removed"},
	}
	if len(got) != len(want) {
		t.Fatalf("drained %d notifications, want %d", len(got), len(want))
	}
	for i, n := range got {
		if n.Severity != want[i].severity || n.Message != want[i].message {
			t.Errorf("notification %d: got %q/%q, want %q/%q", i, n.Severity, n.Message, want[i].severity, want[i].message)
		}
	}

	// A second drain finds the queue cleared.
	got, err = q.Drain(ctx)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("second drain returned %d notifications, want 0", len(got))
	}
}

func TestInMemoryDropsExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := NewInMemory(8, 3*time.Second)

	base := time.Now()
	q.now = func() time.Time { return base }

	_ = q.Publish(ctx, Notification{Severity: SeveritySuccess, Message: "stale", At: base.Add(-5 * time.Second)})
	_ = q.Publish(ctx, Notification{Severity: SeveritySuccess, Message: "fresh", At: base})

	got, err := q.Drain(ctx)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(got) != 1 || got[0].Message != "fresh" {
		t.Errorf("drained %+v, want only the fresh notification", got)
	}
}

func TestInMemoryFullQueueDropsOldest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := NewInMemory(2, time.Minute)

	Success(ctx, q, "first")
	Success(ctx, q, "second")
	Success(ctx, q, "third") // evicts "first" rather than blocking

	got, err := q.Drain(ctx)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(got) != 2 || got[0].Message != "second" || got[1].Message != "third" {
		t.Errorf("drained %+v, want second and third", got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    Notification
	}{
		{
			name: "plain message",
			n:    Notification{Severity: SeveritySuccess, Message: "Camera added successfully", At: time.Unix(0, 1716195000000000000)},
		},
		{
			name: "message containing delimiter",
			n:    Notification{Severity: SeverityError, Message: "room: AC | desk 4", At: time.Unix(0, 1716195060000000000)},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := deserialize(serialize(test.n))
			if err != nil {
				t.Fatalf("deserialize: %v", err)
			}
			if got.Severity != test.n.Severity || got.Message != test.n.Message || !got.At.Equal(test.n.At) {
				t.Errorf("round trip: got %+v, want %+v", got, test.n)
			}
		})
	}
}

func TestDeserializeRejectsMalformed(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "success", "success|notanumber|msg"} {
		if _, err := deserialize(raw); err == nil {
			t.Errorf("deserialize(%q): expected error", raw)
		}
	}
}
