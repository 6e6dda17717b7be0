package queue

import (
	"context"
	"time"

	"woninglabel_backend/internal/notify/outbox"
	"woninglabel_backend/platform/logger"
)

// Dispatcher sweeps outbox rows that are still pending, which happens when
// the enqueue at submission time failed (Redis briefly down). It claims them
// and hands them to the queue so no stored lead misses its notification.
type Dispatcher struct {
	client   *Client
	repo     *outbox.Repository
	interval time.Duration
	log      *logger.Logger
}

func NewDispatcher(client *Client, repo *outbox.Repository, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		client:   client,
		repo:     repo,
		interval: 10 * time.Second,
		log:      log,
	}
}

// Run blocks until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil || d.repo == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		records, err := d.repo.ClaimPending(ctx, 50)
		if err != nil {
			d.log.Warn("outbox claim failed", "error", err)
			continue
		}

		for _, rec := range records {
			if err := d.client.EnqueueDelivery(ctx, rec.ID); err != nil {
				d.log.NotificationError(rec.SubmissionID.String(), rec.Attempts, err)
			}
		}
	}
}
