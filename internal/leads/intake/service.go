package intake

import (
	"context"
	"encoding/json"
	"strings"

	"woninglabel_backend/internal/events"
	"woninglabel_backend/internal/leads/repository"
	"woninglabel_backend/internal/leads/transport"
	"woninglabel_backend/internal/pricing"
	"woninglabel_backend/platform/apperr"
	"woninglabel_backend/platform/logger"
	"woninglabel_backend/platform/phone"
	"woninglabel_backend/platform/sanitize"
	"woninglabel_backend/platform/validator"

	"github.com/google/uuid"
)

// SubmissionStore persists a submission with its outbox row atomically.
type SubmissionStore interface {
	CreateWithOutbox(ctx context.Context, params repository.CreateSubmissionParams, payload json.RawMessage) (repository.Submission, uuid.UUID, error)
}

// Notifier hands a stored outbox row to the delivery queue. Enqueueing is
// best-effort; the stored submission is never affected by a failure here.
type Notifier interface {
	EnqueueDelivery(ctx context.Context, outboxID uuid.UUID) error
}

// Service accepts finished lead payloads, persists them and triggers the
// downstream notification.
type Service struct {
	store    SubmissionStore
	notifier Notifier
	bus      events.Bus
	val      *validator.Validator
	log      *logger.Logger
}

// New creates the intake service. The notifier may be nil when no webhook
// sink is configured.
func New(store SubmissionStore, notifier Notifier, bus events.Bus, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		bus:      bus,
		val:      val,
		log:      log,
	}
}

// webhookPayload is the snapshot delivered to the notification sink. The
// submission id is added by the delivery worker.
type webhookPayload struct {
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Phone               *string `json:"phone,omitempty"`
	Address             string  `json:"address"`
	PropertyType        string  `json:"propertyType"`
	SurfaceArea         int     `json:"surfaceArea"`
	RushService         bool    `json:"rushService"`
	Message             *string `json:"message,omitempty"`
	CalculatedPrice     int     `json:"calculatedPrice"`
	Postcode            *string `json:"postcode,omitempty"`
	HouseNumber         *string `json:"houseNumber,omitempty"`
	HouseNumberAddition *string `json:"houseNumberAddition,omitempty"`
}

// Submit validates, prices and stores a lead. The returned error is a
// validation error or a persistence failure; notification problems are
// logged and retried in the background, never surfaced to the customer.
func (s *Service) Submit(ctx context.Context, req transport.SubmitRequest) (transport.SubmitResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.SubmitResponse{}, apperr.Validation("invalid submission").WithDetails(err.Error())
	}

	propertyType := pricing.PropertyType(strings.ToLower(strings.TrimSpace(req.PropertyType)))
	if !propertyType.Known() {
		return transport.SubmitResponse{}, apperr.Validation("unknown property type")
	}

	// The price snapshot is computed here, not taken from the client, so the
	// stored amount always follows the published rules.
	quote, err := pricing.Calculate(propertyType, req.SurfaceArea, req.RushService)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	params := repository.CreateSubmissionParams{
		Name:                sanitize.Text(req.Name),
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:               normalizePhone(req.Phone),
		Address:             sanitize.Text(req.Address),
		PropertyType:        string(propertyType),
		SurfaceArea:         req.SurfaceArea,
		RushService:         req.RushService,
		Message:             optionalText(req.Message),
		CalculatedPrice:     quote.TotalAmount,
		Postcode:            optionalText(strings.ToUpper(req.Postcode)),
		HouseNumber:         optionalText(req.HouseNumber),
		HouseNumberAddition: optionalText(req.HouseNumberAddition),
	}

	payload, err := json.Marshal(webhookPayload{
		Name:                params.Name,
		Email:               params.Email,
		Phone:               params.Phone,
		Address:             params.Address,
		PropertyType:        params.PropertyType,
		SurfaceArea:         params.SurfaceArea,
		RushService:         params.RushService,
		Message:             params.Message,
		CalculatedPrice:     params.CalculatedPrice,
		Postcode:            params.Postcode,
		HouseNumber:         params.HouseNumber,
		HouseNumberAddition: params.HouseNumberAddition,
	})
	if err != nil {
		return transport.SubmitResponse{}, apperr.Internal("could not encode submission")
	}

	submission, outboxID, err := s.store.CreateWithOutbox(ctx, params, payload)
	if err != nil {
		s.log.DatabaseError("intake.Submit", err)
		return transport.SubmitResponse{}, apperr.Internal("could not save your request, please try again")
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueDelivery(ctx, outboxID); err != nil {
			// The outbox row stays pending; the worker sweep picks it up.
			s.log.NotificationError(submission.ID.String(), 0, err)
		}
	}

	s.bus.Publish(ctx, events.LeadSubmitted{
		BaseEvent:       events.NewBaseEvent(),
		SubmissionID:    submission.ID,
		OutboxID:        outboxID,
		Name:            submission.Name,
		Email:           submission.Email,
		PropertyType:    submission.PropertyType,
		CalculatedPrice: submission.CalculatedPrice,
	})

	return transport.SubmitResponse{
		ID:              submission.ID,
		Status:          string(submission.Status),
		CalculatedPrice: submission.CalculatedPrice,
	}, nil
}

func normalizePhone(raw string) *string {
	normalized := phone.NormalizeE164(raw)
	if normalized == "" {
		return nil
	}
	return &normalized
}

func optionalText(raw string) *string {
	cleaned := sanitize.Text(raw)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
