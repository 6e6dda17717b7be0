package intake

import (
	"context"
	"encoding/json"
	"testing"

	"woninglabel_backend/internal/events"
	"woninglabel_backend/internal/leads/domain"
	"woninglabel_backend/internal/leads/repository"
	"woninglabel_backend/internal/leads/transport"
	"woninglabel_backend/platform/apperr"
	"woninglabel_backend/platform/logger"
	"woninglabel_backend/platform/validator"

	"github.com/google/uuid"
)

type fakeStore struct {
	created  []repository.CreateSubmissionParams
	payloads []json.RawMessage
	fail     bool
}

func (f *fakeStore) CreateWithOutbox(ctx context.Context, params repository.CreateSubmissionParams, payload json.RawMessage) (repository.Submission, uuid.UUID, error) {
	if f.fail {
		return repository.Submission{}, uuid.Nil, errTest
	}
	f.created = append(f.created, params)
	f.payloads = append(f.payloads, payload)
	return repository.Submission{
		ID:              uuid.New(),
		Name:            params.Name,
		Email:           params.Email,
		PropertyType:    params.PropertyType,
		SurfaceArea:     params.SurfaceArea,
		RushService:     params.RushService,
		CalculatedPrice: params.CalculatedPrice,
		Status:          domain.StatusNew,
	}, uuid.New(), nil
}

type failingNotifier struct {
	calls int
}

func (n *failingNotifier) EnqueueDelivery(ctx context.Context, outboxID uuid.UUID) error {
	n.calls++
	return errTest
}

func newTestService(store *fakeStore, notifier Notifier) *Service {
	log := logger.New("development")
	return New(store, notifier, events.NewInMemoryBus(log), validator.New(), log)
}

func validRequest() transport.SubmitRequest {
	return transport.SubmitRequest{
		Name:         "Jan de Vries",
		Email:        "jan@example.nl",
		Phone:        "0612345678",
		Address:      "Oudegracht 10, Utrecht",
		Postcode:     "3511 AB",
		HouseNumber:  "10",
		PropertyType: "apartment",
		SurfaceArea:  120,
		RushService:  false,
	}
}

func TestSubmitPersistsAndReturnsSnapshot(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)

	resp, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if resp.ID == uuid.Nil {
		t.Fatal("response carries no id")
	}
	if resp.Status != "new" {
		t.Errorf("status = %q, want new", resp.Status)
	}
	// 120 m² apartment, no rush: base price only.
	if resp.CalculatedPrice != 285 {
		t.Errorf("calculated price = %d, want 285", resp.CalculatedPrice)
	}
	if len(store.created) != 1 {
		t.Fatalf("stored %d submissions, want 1", len(store.created))
	}
	if store.created[0].CalculatedPrice != 285 {
		t.Errorf("stored price = %d, want 285", store.created[0].CalculatedPrice)
	}
}

func TestSubmitSucceedsWhenNotificationFails(t *testing.T) {
	store := &fakeStore{}
	notifier := &failingNotifier{}
	svc := newTestService(store, notifier)

	resp, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("a failing notifier must not fail the submission: %v", err)
	}
	if notifier.calls != 1 {
		t.Fatalf("notifier called %d times, want 1", notifier.calls)
	}
	if len(store.created) != 1 {
		t.Fatal("submission was not stored")
	}
	if resp.ID == uuid.Nil {
		t.Fatal("user-facing result must indicate success")
	}

	// The stored payload keeps every field for the later delivery attempt.
	var payload map[string]any
	if err := json.Unmarshal(store.payloads[0], &payload); err != nil {
		t.Fatalf("stored payload is not valid JSON: %v", err)
	}
	if payload["email"] != "jan@example.nl" {
		t.Errorf("payload email = %v", payload["email"])
	}
	if payload["calculatedPrice"] != float64(285) {
		t.Errorf("payload price = %v, want 285", payload["calculatedPrice"])
	}
}

func TestSubmitFailsOnPersistenceError(t *testing.T) {
	store := &fakeStore{fail: true}
	svc := newTestService(store, nil)

	_, err := svc.Submit(context.Background(), validRequest())
	if err == nil {
		t.Fatal("persistence failure must surface")
	}
	if !apperr.Is(err, apperr.KindInternal) {
		t.Errorf("error kind = %v, want internal", apperr.GetKind(err))
	}
}

func TestSubmitValidation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)

	cases := []struct {
		name   string
		mutate func(*transport.SubmitRequest)
	}{
		{"missing name", func(r *transport.SubmitRequest) { r.Name = "" }},
		{"bad email", func(r *transport.SubmitRequest) { r.Email = "not-an-email" }},
		{"unknown property type", func(r *transport.SubmitRequest) { r.PropertyType = "castle" }},
		{"zero surface area", func(r *transport.SubmitRequest) { r.SurfaceArea = 0 }},
		{"negative surface area", func(r *transport.SubmitRequest) { r.SurfaceArea = -10 }},
	}

	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)

		_, err := svc.Submit(context.Background(), req)
		if err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
			continue
		}
		if !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("%s: error kind = %v, want validation", tc.name, apperr.GetKind(err))
		}
	}

	if len(store.created) != 0 {
		t.Fatalf("validation failures must not reach the store, got %d writes", len(store.created))
	}
}

func TestSubmitNormalizesFields(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)

	req := validRequest()
	req.Email = "  Jan@Example.NL "
	req.Phone = "06 12 34 56 78"
	req.Message = "graag <b>deze week</b> bellen"

	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	stored := store.created[0]
	if stored.Email != "jan@example.nl" {
		t.Errorf("email = %q, want lowercase trimmed", stored.Email)
	}
	if stored.Phone == nil || *stored.Phone != "+31612345678" {
		t.Errorf("phone = %v, want +31612345678", stored.Phone)
	}
	if stored.Message == nil || *stored.Message != "graag deze week bellen" {
		t.Errorf("message = %v, want HTML stripped", stored.Message)
	}
}
