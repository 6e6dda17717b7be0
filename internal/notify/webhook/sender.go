// Package webhook delivers submission snapshots to the configured sink.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"woninglabel_backend/platform/logger"

	"github.com/google/uuid"
)

// SignatureHeader carries the HMAC-SHA256 of the request body, hex encoded
// with a sha256= prefix, computed with the shared webhook secret.
const SignatureHeader = "X-Webhook-Signature"

// Envelope is the wire format posted to the sink.
type Envelope struct {
	SubmissionID uuid.UUID       `json:"submissionId"`
	DeliveredAt  time.Time       `json:"deliveredAt"`
	Lead         json.RawMessage `json:"lead"`
}

// Sender posts signed submission payloads to a single webhook URL.
type Sender struct {
	httpClient *http.Client
	url        string
	secret     string
	log        *logger.Logger
}

func NewSender(url, secret string, log *logger.Logger) *Sender {
	return &Sender{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		url:        url,
		secret:     secret,
		log:        log,
	}
}

// Deliver posts one submission to the sink. Any non-2xx response is an error
// so the caller can record the attempt and retry later.
func (s *Sender) Deliver(ctx context.Context, submissionID uuid.UUID, lead json.RawMessage) error {
	body, err := json.Marshal(Envelope{
		SubmissionID: submissionID,
		DeliveredAt:  time.Now().UTC(),
		Lead:         lead,
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, Sign(s.secret, body))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook sink returned status %d", resp.StatusCode)
	}

	s.log.Info("webhook delivered", "submissionId", submissionID, "status", resp.StatusCode)
	return nil
}

// Sign computes the signature header value for a body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
