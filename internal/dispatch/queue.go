// Package dispatch implements the message dispatch pipeline: a FIFO queue
// drained by a single worker goroutine that renders, records, and schedules
// simulated delivery for each request.
package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/smsforge/campaign-service/internal/models"
)

// ContactResolver loads a contact with its campaign template for dispatch
type ContactResolver interface {
	GetDispatchInfo(ctx context.Context, contactID int64) (*models.DispatchContact, error)
}

// Renderer personalizes a campaign template for one contact
type Renderer interface {
	Render(template string, contact *models.Contact) (string, error)
}

// Ledger records a pending message for a dispatch attempt
type Ledger interface {
	Create(ctx context.Context, campaignID, contactID int64, body string) (*models.Message, error)
}

// Scheduler schedules the asynchronous delivery resolution of a message
type Scheduler interface {
	Schedule(messageID string)
}

// Queue accepts dispatch requests and processes them in submission order on
// a single worker goroutine, so at most one drain is ever active. Submission
// is non-blocking; the queue is unbounded and holds no persistent state, so
// requests not yet drained are lost on shutdown.
type Queue struct {
	contacts  ContactResolver
	renderer  Renderer
	ledger    Ledger
	scheduler Scheduler
	logger    *slog.Logger

	mu      sync.Mutex
	pending []models.DispatchRequest

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewQueue creates a dispatch queue. Call Start before submitting.
func NewQueue(
	contacts ContactResolver,
	renderer Renderer,
	ledger Ledger,
	scheduler Scheduler,
	logger *slog.Logger,
) *Queue {
	return &Queue{
		contacts:  contacts,
		renderer:  renderer,
		ledger:    ledger,
		scheduler: scheduler,
		logger:    logger,
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the worker goroutine. Further calls are no-ops.
func (q *Queue) Start() {
	q.startOnce.Do(func() {
		go q.run()
	})
}

// Stop halts the worker after the request it is currently processing.
// Requests still queued are dropped. Safe to call more than once, and
// returns immediately when the queue was never started.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.stop)
	})
	// Consume the start slot so an unstarted queue does not wait on a
	// worker that will never run.
	q.startOnce.Do(func() {
		close(q.done)
	})
	<-q.done
}

// Submit enqueues a dispatch request and returns immediately. Requests are
// processed in submission order.
func (q *Queue) Submit(campaignID, contactID int64) {
	q.mu.Lock()
	q.pending = append(q.pending, models.DispatchRequest{
		CampaignID: campaignID,
		ContactID:  contactID,
	})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) run() {
	defer close(q.done)

	for {
		select {
		case <-q.stop:
			return
		case <-q.wake:
			q.drain()
		}
	}
}

// drain processes queued requests until none remain. It runs only on the
// worker goroutine; arrivals during a drain are appended under the lock and
// picked up by the same loop.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		req := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		select {
		case <-q.stop:
			return
		default:
		}

		q.process(req)
	}
}

// process renders and records one message, then hands it to the scheduler.
// Failures are logged and the request is dropped; they never stop the drain.
func (q *Queue) process(req models.DispatchRequest) {
	ctx := context.Background()

	info, err := q.contacts.GetDispatchInfo(ctx, req.ContactID)
	if err != nil {
		q.logger.Warn("contact not found, dropping dispatch request",
			slog.Int64("campaign_id", req.CampaignID),
			slog.Int64("contact_id", req.ContactID),
			slog.String("error", err.Error()),
		)
		return
	}

	body, err := q.renderer.Render(info.Template, &info.Contact)
	if err != nil {
		q.logger.Error("failed to render message",
			slog.Int64("campaign_id", req.CampaignID),
			slog.Int64("contact_id", req.ContactID),
			slog.String("error", err.Error()),
		)
		return
	}

	message, err := q.ledger.Create(ctx, req.CampaignID, req.ContactID, body)
	if err != nil {
		q.logger.Error("failed to record message",
			slog.Int64("campaign_id", req.CampaignID),
			slog.Int64("contact_id", req.ContactID),
			slog.String("error", err.Error()),
		)
		return
	}

	q.scheduler.Schedule(message.MessageID)
}
