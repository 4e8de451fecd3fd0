// Package cache holds Redis-backed stores for short-lived coordination
// state.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	webhookEventPrefix = "billing:webhook:event:"

	// Retention for processed event IDs. The gateway retries failed
	// deliveries for at most three days, so anything older cannot arrive
	// again through a legitimate retry.
	webhookEventTTL = 72 * time.Hour
)

// WebhookEventStore deduplicates gateway webhook deliveries by event ID.
// SETNX gives exactly one caller the first-claim on an event even when the
// gateway retries concurrently.
type WebhookEventStore struct {
	client *redis.Client
}

// NewWebhookEventStore creates a new WebhookEventStore instance
func NewWebhookEventStore(client *redis.Client) *WebhookEventStore {
	return &WebhookEventStore{client: client}
}

// Claim marks the event as being processed. Returns true if this caller is
// the first to see the event ID; false means a previous delivery already
// claimed it and the caller must treat the event as a duplicate.
func (s *WebhookEventStore) Claim(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return false, fmt.Errorf("event ID is required")
	}

	claimed, err := s.client.SetNX(ctx, webhookEventPrefix+eventID, time.Now().Unix(), webhookEventTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim webhook event: %w", err)
	}
	return claimed, nil
}

// Release drops the claim so a later retry can process the event again.
// Called when handling failed after the claim succeeded.
func (s *WebhookEventStore) Release(ctx context.Context, eventID string) error {
	if err := s.client.Del(ctx, webhookEventPrefix+eventID).Err(); err != nil {
		return fmt.Errorf("failed to release webhook event claim: %w", err)
	}
	return nil
}
