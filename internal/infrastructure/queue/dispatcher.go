package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/swa1245/course-market/internal/api/metrics"
	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes purchase events to a fixed set of workers using
// consistent hashing on the user id, so a user's audit records are appended
// in purchase order.
type Dispatcher struct {
	workers []chan ports.PurchaseEventInput
	events  ports.PurchaseEventRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, events ports.PurchaseEventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PurchaseEventInput, numWorkers),
		events:  events,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PurchaseEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its user. When the
// worker's buffer is full the event is dropped with a warning; the audit
// trail is best-effort and must never fail a purchase.
func (d *Dispatcher) Enqueue(event ports.PurchaseEventInput) {
	idx := d.shardIndex(event.UserID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("purchase_id", event.PurchaseID).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PurchaseEventInput) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.log.Debug().Int("worker_id", id).Msg("audit worker stopping")
			return
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			record := &domain.PurchaseEvent{
				PurchaseID: event.PurchaseID,
				UserID:     event.UserID,
				CourseID:   event.CourseID,
				Price:      event.Price,
				OccurredAt: event.OccurredAt,
			}
			if err := d.events.InsertEvent(ctx, record); err != nil {
				d.log.Warn().Err(err).Str("purchase_id", event.PurchaseID).Msg("failed to record purchase event")
				continue
			}
			d.log.Debug().Str("purchase_id", event.PurchaseID).Msg("purchase event recorded")
		}
	}
}
