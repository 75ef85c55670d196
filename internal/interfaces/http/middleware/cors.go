package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration. AllowOrigins entries are
// exact origins, "*", or a single-label wildcard such as
// "https://*.b3erp.example".
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig refuses every cross-origin request until origins are configured
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", RequestIDHeader, IdempotencyKeyHeader, "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

type originMatcher struct {
	any      bool
	exact    map[string]bool
	suffixes [][2]string // scheme+"://" prefix and "."+domain suffix
}

func newOriginMatcher(origins []string) originMatcher {
	m := originMatcher{exact: make(map[string]bool)}
	for _, o := range origins {
		switch {
		case o == "*":
			m.any = true
		case strings.Contains(o, "://*."):
			scheme, domain, _ := strings.Cut(o, "://*.")
			m.suffixes = append(m.suffixes, [2]string{scheme + "://", "." + domain})
		default:
			m.exact[o] = true
		}
	}
	return m
}

// allowed reports whether origin matches an exact entry or a one-label wildcard
func (m originMatcher) allowed(origin string) bool {
	if m.any || m.exact[origin] {
		return origin != ""
	}
	for _, s := range m.suffixes {
		if !strings.HasPrefix(origin, s[0]) || !strings.HasSuffix(origin, s[1]) {
			continue
		}
		label := strings.TrimSuffix(strings.TrimPrefix(origin, s[0]), s[1])
		if label != "" && !strings.ContainsAny(label, "./:") {
			return true
		}
	}
	return false
}

// CORSWithConfig builds the gin-contrib/cors handler. Requests from an
// origin outside the allow list are refused with 403; same-origin and
// origin-less requests pass untouched.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	matcher := newOriginMatcher(cfg.AllowOrigins)
	c := cors.Config{
		AllowMethods:  cfg.AllowMethods,
		AllowHeaders:  cfg.AllowHeaders,
		ExposeHeaders: cfg.ExposeHeaders,
		MaxAge:        cfg.MaxAge,
	}
	if matcher.any {
		// browsers reject credentials with a wildcard origin
		c.AllowAllOrigins = true
	} else {
		c.AllowOriginFunc = matcher.allowed
		c.AllowCredentials = cfg.AllowCredentials
	}
	return cors.New(c)
}
