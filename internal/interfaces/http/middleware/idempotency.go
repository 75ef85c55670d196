package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/b3erp/backend/internal/infrastructure/cache"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the request header carrying the client key
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader marks a response served from the store
	IdempotentReplayHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store  cache.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// recordingWriter keeps a copy of the response body
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a POST repeated with the same
// Idempotency-Key. A key reused with a different payload is rejected, as is
// a retry that arrives while the first request is still running.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if c.Request.Method != http.MethodPost || key == "" || cfg.Store == nil {
			c.Next()
			return
		}
		requestID := c.GetString(RequestIDKey)
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail(
				dto.ErrCodeInvalidInput, "Idempotency-Key must be at most 255 characters", requestID))
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.Fail(
					dto.ErrCodeRequestTooLarge, "Request body too large", requestID))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail(
				dto.ErrCodeInvalidInput, "Unable to read request body", requestID))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		storeKey := CurrentUsername(c) + ":" + key
		fingerprint := requestFingerprint(c.Request.Method, c.Request.URL.Path, body)

		reserved, err := cfg.Store.Reserve(ctx, storeKey, fingerprint, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable, serving without replay protection", zap.Error(err))
			c.Next()
			return
		}

		if !reserved {
			existing, err := cfg.Store.Get(ctx, storeKey)
			if err != nil || existing == nil {
				c.Next()
				return
			}
			switch {
			case existing.Fingerprint != fingerprint:
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.Fail(
					dto.ErrCodeIdempotencyConflict, "Idempotency-Key was already used with a different request", requestID))
			case existing.InFlight:
				c.AbortWithStatusJSON(http.StatusConflict, dto.Fail(
					dto.ErrCodeRequestInFlight, "A request with this Idempotency-Key is still being processed", requestID))
			default:
				c.Header(IdempotentReplayHeader, "true")
				c.Data(existing.Status, existing.ContentType, existing.Body)
				c.Abort()
			}
			return
		}

		writer := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		storeCtx := context.WithoutCancel(ctx)
		status := writer.Status()
		if status >= http.StatusInternalServerError {
			if err := cfg.Store.Release(storeCtx, storeKey); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
			return
		}
		resp := cache.StoredResponse{
			Fingerprint: fingerprint,
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := cfg.Store.Complete(storeCtx, storeKey, resp, ttl); err != nil {
			log.Warn("Failed to record idempotent response", zap.Error(err))
		}
	}
}

func requestFingerprint(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
