// Package notify delivers submitted leads to the configured webhook sink.
// Delivery is outbox-backed: rows are written transactionally with the
// submission and drained by an asynq worker, so the intake flow never blocks
// on the sink.
package notify

import (
	apphttp "woninglabel_backend/internal/http"
	"woninglabel_backend/internal/leads/intake"
	"woninglabel_backend/internal/notify/outbox"
	"woninglabel_backend/internal/notify/queue"
	"woninglabel_backend/internal/notify/webhook"
	"woninglabel_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the config subset the notify module needs.
type Config interface {
	GetRedisURL() string
	GetQueueName() string
	GetConcurrency() int
	GetWebhookURL() string
	GetWebhookSecret() string
	IsWebhookEnabled() bool
}

// Module wires the outbox repository, the webhook sender and the asynq queue
// client. It stays disabled when either the webhook sink or Redis is not
// configured; outbox rows then remain pending until the deployment adds them.
type Module struct {
	cfg     Config
	repo    *outbox.Repository
	client  *queue.Client
	log     *logger.Logger
	enabled bool
}

// NewModule creates and initializes the notify module.
func NewModule(cfg Config, pool *pgxpool.Pool, log *logger.Logger) (*Module, error) {
	m := &Module{cfg: cfg, log: log, repo: outbox.New(pool)}

	if !cfg.IsWebhookEnabled() {
		log.Info("notify module disabled: WEBHOOK_URL not configured")
		return m, nil
	}
	if cfg.GetRedisURL() == "" {
		log.Info("notify module disabled: REDIS_URL not configured")
		return m, nil
	}

	client, err := queue.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	m.client = client
	m.enabled = true
	log.Info("notify module initialized")

	return m, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notify"
}

// Notifier returns the queue client for the intake service. Returns nil when
// the module is disabled; intake then leaves outbox rows pending.
func (m *Module) Notifier() intake.Notifier {
	if m == nil || !m.enabled {
		return nil
	}
	return m.client
}

// IsEnabled returns true if both the webhook sink and Redis are configured.
func (m *Module) IsEnabled() bool {
	return m != nil && m.enabled
}

// Worker builds the asynq worker that drains the outbox. Only valid on an
// enabled module.
func (m *Module) Worker() (*queue.Worker, error) {
	sender := webhook.NewSender(m.cfg.GetWebhookURL(), m.cfg.GetWebhookSecret(), m.log)
	return queue.NewWorker(m.cfg, m.repo, sender, m.log)
}

// Dispatcher builds the sweep that re-enqueues pending outbox rows.
func (m *Module) Dispatcher() *queue.Dispatcher {
	return queue.NewDispatcher(m.client, m.repo, m.log)
}

// Close releases the queue client connection.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.client.Close()
}

// RegisterRoutes is a no-op; the notify module exposes no HTTP surface.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {}

var _ apphttp.Module = (*Module)(nil)
