package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Config is the subset of application config the queue needs.
type Config interface {
	GetRedisURL() string
	GetQueueName() string
	GetConcurrency() int
}

// Client enqueues webhook delivery tasks. It implements the intake service's
// Notifier interface.
type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg Config) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueDelivery hands an outbox row to the worker. MaxRetry with backoff is
// asynq's; a task that exhausts its retries leaves the row marked failed.
func (c *Client) EnqueueDelivery(ctx context.Context, outboxID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewWebhookDeliverTask(WebhookDeliverPayload{OutboxID: outboxID.String()})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(8))
	return err
}

func queueName(cfg Config) string {
	if name := cfg.GetQueueName(); name != "" {
		return name
	}
	return "default"
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
