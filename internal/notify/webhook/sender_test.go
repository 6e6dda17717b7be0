package webhook

import (
	"context"
	"crypto/hmac"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"woninglabel_backend/platform/logger"

	"github.com/google/uuid"
)

func TestDeliverSignsAndPosts(t *testing.T) {
	const secret = "test-secret"

	var gotBody []byte
	var gotSignature string
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get(SignatureHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	sender := NewSender(sink.URL, secret, logger.New("development"))
	submissionID := uuid.New()
	lead := json.RawMessage(`{"name":"Jan de Vries","calculatedPrice":285}`)

	if err := sender.Deliver(context.Background(), submissionID, lead); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if !hmac.Equal([]byte(gotSignature), []byte(Sign(secret, gotBody))) {
		t.Errorf("signature %q does not match body", gotSignature)
	}

	var envelope Envelope
	if err := json.Unmarshal(gotBody, &envelope); err != nil {
		t.Fatalf("body is not a valid envelope: %v", err)
	}
	if envelope.SubmissionID != submissionID {
		t.Errorf("submission id = %s, want %s", envelope.SubmissionID, submissionID)
	}
	if string(envelope.Lead) != string(lead) {
		t.Errorf("lead payload = %s", envelope.Lead)
	}
}

func TestDeliverReportsSinkErrors(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer sink.Close()

	sender := NewSender(sink.URL, "secret", logger.New("development"))
	err := sender.Deliver(context.Background(), uuid.New(), json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("non-2xx response must be an error")
	}
}

func TestDeliverReportsTransportErrors(t *testing.T) {
	// Closed server: connection refused.
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sink.Close()

	sender := NewSender(sink.URL, "secret", logger.New("development"))
	if err := sender.Deliver(context.Background(), uuid.New(), json.RawMessage(`{}`)); err == nil {
		t.Fatal("transport failure must be an error")
	}
}
