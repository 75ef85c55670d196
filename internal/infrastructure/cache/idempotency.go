package cache

import (
	"context"
	"time"
)

// StoredResponse is the recorded outcome of a request made with an Idempotency-Key
type StoredResponse struct {
	InFlight    bool   `json:"in_flight"`
	Fingerprint string `json:"fingerprint"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers request outcomes by idempotency key
type IdempotencyStore interface {
	// Reserve claims key for an in-flight request. It returns false when
	// the key is already claimed or completed.
	Reserve(ctx context.Context, key, fingerprint string, ttl time.Duration) (bool, error)
	// Complete records the response for later replay
	Complete(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	// Get returns the stored entry, nil when absent or expired
	Get(ctx context.Context, key string) (*StoredResponse, error)
	// Release drops a reservation so the request may be retried
	Release(ctx context.Context, key string) error
	Close() error
}
