package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Gin context keys shared with the HTTP middleware
const (
	GinRequestIDKey = "request_id"
	GinLoggerKey    = "logger"
	GinUsernameKey  = "username"
)

const accessMessage = "HTTP Request"

// GinMiddleware attaches a request-scoped logger to the gin and request
// contexts and writes one access line per request. Paths with one of the
// quiet prefixes are served without an access line.
func GinMiddleware(base *zap.Logger, quiet ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		id := c.GetString(GinRequestIDKey)

		ctx, reqLog := WithRequestID(c.Request.Context(), base, id)
		reqLog = reqLog.With(zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		c.Set(GinLoggerKey, reqLog)
		c.Request = c.Request.WithContext(WithContext(ctx, reqLog))

		c.Next()

		if hasAnyPrefix(c.Request.URL.Path, quiet) {
			return
		}
		status := c.Writer.Status()
		if ce := GetGinLogger(c).Check(statusLevel(status), accessMessage); ce != nil {
			ce.Write(accessFields(c, status, time.Since(began))...)
		}
	}
}

func statusLevel(status int) zapcore.Level {
	if status >= http.StatusInternalServerError {
		return zapcore.ErrorLevel
	}
	if status >= http.StatusBadRequest {
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func accessFields(c *gin.Context, status int, took time.Duration) []zap.Field {
	out := make([]zap.Field, 0, 7)
	out = append(out,
		zap.Int("status", status),
		zap.Duration("latency", took),
		zap.String("client_ip", c.ClientIP()),
		zap.Int("body_size", c.Writer.Size()),
	)
	if q := c.Request.URL.RawQuery; q != "" {
		out = append(out, zap.String("query", q))
	}
	if len(c.Errors) > 0 {
		out = append(out, zap.Strings("errors", c.Errors.Errors()))
	}
	return out
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

type panicBody struct {
	Success bool      `json:"success"`
	Error   panicInfo `json:"error"`
}

type panicInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Recovery turns a handler panic into a logged 500 with the error envelope
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			id := c.GetString(GinRequestIDKey)
			base.Error("Panic recovered",
				zap.String("request_id", id),
				zap.String("route", c.Request.Method+" "+c.Request.URL.Path),
				zap.Any("error", rec),
				zap.Stack("stacktrace"),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, panicBody{
				Error: panicInfo{Code: "ERR_INTERNAL", Message: "An internal error occurred", RequestID: id},
			})
		}()
		c.Next()
	}
}

// GetGinLogger returns the request logger set by GinMiddleware, or a no-op logger
func GetGinLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Value(GinLoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
