package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SecurityConfig holds configuration for security headers
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool

	// CSP for JSON responses; empty disables the header
	CSP string
	// DocumentCSP replaces CSP under DocumentPaths, where HTML pages are served
	DocumentCSP   string
	DocumentPaths []string

	PermissionsPolicy string
}

// DefaultSecurityConfig locks down JSON responses and lets the swagger UI
// load its own scripts and styles. HSTS stays off until TLS terminates here.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		CSP:                   "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
		DocumentCSP:           "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; frame-ancestors 'none'",
		DocumentPaths:         []string{"/swagger/"},
		PermissionsPolicy:     "camera=(), geolocation=(), microphone=(), payment=(), usb=()",
	}
}

// Secure adds security headers using DefaultSecurityConfig
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

func (cfg SecurityConfig) options(csp string) secure.Options {
	opts := secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		PermissionsPolicy:     cfg.PermissionsPolicy,
		ContentSecurityPolicy: csp,
	}
	if cfg.HSTSEnabled {
		// TLS is terminated in front of the API, so the request itself is plain HTTP
		opts.STSSeconds = int64(cfg.HSTSMaxAge)
		opts.STSIncludeSubdomains = cfg.HSTSIncludeSubdomains
		opts.ForceSTSHeader = true
	}
	return opts
}

// SecureWithConfig adds security headers through unrolled/secure. Handlers
// may override them.
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	api := secure.New(cfg.options(cfg.CSP))
	docs := secure.New(cfg.options(cfg.DocumentCSP))

	return func(c *gin.Context) {
		s := api
		for _, p := range cfg.DocumentPaths {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				s = docs
				break
			}
		}
		if err := s.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	}
}
