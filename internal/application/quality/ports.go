package quality

import (
	"context"
	"time"
)

// ObjectStorage stores inspection attachments
type ObjectStorage interface {
	PresignUpload(ctx context.Context, storageKey, contentType string) (string, time.Time, error)
	PresignDownload(ctx context.Context, storageKey, fileName string) (string, time.Time, error)
	Delete(ctx context.Context, storageKey string) error
}

// RunLocker serialises a job across instances. fn is not run when the
// lock is held elsewhere.
type RunLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
