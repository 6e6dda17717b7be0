package queue

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type stubConfig struct {
	redisURL string
	queue    string
}

func (s stubConfig) GetRedisURL() string  { return s.redisURL }
func (s stubConfig) GetQueueName() string { return s.queue }
func (s stubConfig) GetConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}

func TestNewClientRejectsMalformedURL(t *testing.T) {
	if _, err := NewClient(stubConfig{redisURL: "not-a-url"}); err == nil {
		t.Fatal("expected error for malformed redis url")
	}
}

func TestEnqueueDeliveryWritesTask(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(stubConfig{redisURL: "redis://" + mr.Addr(), queue: "notify"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if err := client.EnqueueDelivery(context.Background(), uuid.New()); err != nil {
		t.Fatalf("EnqueueDelivery: %v", err)
	}

	if len(mr.Keys()) == 0 {
		t.Fatal("expected task data in redis after enqueue")
	}
}

func TestEnqueueDeliveryOnNilClientIsNoop(t *testing.T) {
	var client *Client
	if err := client.EnqueueDelivery(context.Background(), uuid.New()); err != nil {
		t.Fatalf("nil client enqueue: %v", err)
	}
}
