package queue

import (
	"context"
	"fmt"

	"woninglabel_backend/internal/notify/outbox"
	"woninglabel_backend/internal/notify/webhook"
	"woninglabel_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes delivery tasks and posts them to the webhook sink,
// recording the outcome on the outbox row.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *outbox.Repository
	sender *webhook.Sender
	log    *logger.Logger
}

func NewWorker(cfg Config, repo *outbox.Repository, sender *webhook.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repo,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskWebhookDeliver, w.handleWebhookDeliver)

	return w, nil
}

func (w *Worker) handleWebhookDeliver(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseWebhookDeliverPayload(task)
	if err != nil {
		return err
	}

	outboxID, err := uuid.Parse(payload.OutboxID)
	if err != nil {
		return err
	}

	rec, err := w.repo.GetByID(ctx, outboxID)
	if err != nil {
		return err
	}

	// Already delivered by an earlier attempt.
	if rec.Status == outbox.StatusSucceeded {
		return nil
	}

	if err := w.sender.Deliver(ctx, rec.SubmissionID, rec.Payload); err != nil {
		w.log.NotificationError(rec.SubmissionID.String(), rec.Attempts+1, err)
		if markErr := w.repo.MarkFailed(ctx, outboxID, err.Error()); markErr != nil {
			w.log.DatabaseError("outbox.MarkFailed", markErr)
		}
		return err
	}

	if err := w.repo.MarkSucceeded(ctx, outboxID); err != nil {
		w.log.DatabaseError("outbox.MarkSucceeded", err)
	}

	return nil
}

// Run blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("delivery worker stopped", "error", err)
	}
}
