package storage

import (
	"context"
	"errors"
	"net/url"
	"time"

	qualityapp "github.com/b3erp/backend/internal/application/quality"
)

var _ qualityapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage signs nothing and stores nothing. URLs it returns
// are not fetchable; it exists for local runs and tests.
type MemoryObjectStorage struct {
	BaseURL string
	expiry  time.Duration
}

// NewMemoryObjectStorage creates a store whose URLs expire after expiry
func NewMemoryObjectStorage(expiry time.Duration) *MemoryObjectStorage {
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	return &MemoryObjectStorage{
		BaseURL: "http://storage.local",
		expiry:  expiry,
	}
}

func (s *MemoryObjectStorage) signedURL(action, storageKey string) (string, time.Time) {
	expiresAt := time.Now().Add(s.expiry)
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return s.BaseURL + "/" + action + "/" + url.PathEscape(storageKey) + "?" + q.Encode(), expiresAt
}

// PresignUpload returns a fake upload URL
func (s *MemoryObjectStorage) PresignUpload(ctx context.Context, storageKey, contentType string) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	u, exp := s.signedURL("upload", storageKey)
	return u, exp, nil
}

// PresignDownload returns a fake download URL
func (s *MemoryObjectStorage) PresignDownload(ctx context.Context, storageKey, fileName string) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	u, exp := s.signedURL("download", storageKey)
	return u, exp, nil
}

// Delete removes storageKey
func (s *MemoryObjectStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}
