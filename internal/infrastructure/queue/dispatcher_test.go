package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
)

type recordingEventRepo struct {
	events chan *domain.PurchaseEvent
}

func (r *recordingEventRepo) InsertEvent(_ context.Context, e *domain.PurchaseEvent) error {
	r.events <- e
	return nil
}

func TestDispatcher_PersistsEnqueuedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &recordingEventRepo{events: make(chan *domain.PurchaseEvent, 8)}
	d := NewDispatcher(2, repo, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.PurchaseEventInput{
		PurchaseID: "purchase-1",
		UserID:     "user-1",
		CourseID:   "course-1",
		Price:      10,
		OccurredAt: time.Now().UTC(),
	})

	select {
	case e := <-repo.events:
		if e.PurchaseID != "purchase-1" || e.UserID != "user-1" {
			t.Fatalf("unexpected event: %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("event never persisted")
	}
}

func TestDispatcher_SameUserKeepsOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &recordingEventRepo{events: make(chan *domain.PurchaseEvent, 8)}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(ctx)

	for i, courseID := range []string{"course-a", "course-b", "course-c"} {
		d.Enqueue(ports.PurchaseEventInput{
			PurchaseID: "purchase-" + courseID,
			UserID:     "user-1",
			CourseID:   courseID,
			OccurredAt: time.Now().Add(time.Duration(i) * time.Millisecond),
		})
	}

	// All three events shard to the same worker, so arrival order is
	// enqueue order.
	for _, want := range []string{"course-a", "course-b", "course-c"} {
		select {
		case e := <-repo.events:
			if e.CourseID != want {
				t.Fatalf("expected %s, got %s", want, e.CourseID)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("event %s never persisted", want)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, &recordingEventRepo{events: make(chan *domain.PurchaseEvent, 1)}, zerolog.Nop())

	first := d.shardIndex("user-42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("user-42") != first {
			t.Fatalf("shard index not stable")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
