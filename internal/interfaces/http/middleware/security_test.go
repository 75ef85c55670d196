package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSecure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Secure())
	router.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/swagger/*any", func(c *gin.Context) { c.String(http.StatusOK, "ui") })
	router.GET("/api/finance/invoices/:id/print", func(c *gin.Context) {
		c.Header("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
		c.String(http.StatusOK, "<html></html>")
	})

	serve := func(path string) http.Header {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Header()
	}

	api := serve("/api/ping")
	assert.Equal(t, "DENY", api.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", api.Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", api.Get("Referrer-Policy"))
	assert.Contains(t, api.Get("Content-Security-Policy"), "default-src 'none'")
	assert.Contains(t, api.Get("Permissions-Policy"), "camera=()")
	assert.Empty(t, api.Get("Strict-Transport-Security"))

	assert.Contains(t, serve("/swagger/index.html").Get("Content-Security-Policy"), "script-src 'self'")
	assert.Equal(t, "default-src 'none'; style-src 'unsafe-inline'",
		serve("/api/finance/invoices/1/print").Get("Content-Security-Policy"))
}

func TestSecureWithConfig_HSTS(t *testing.T) {
	tests := []struct {
		name     string
		cfg      SecurityConfig
		expected string
	}{
		{"disabled", SecurityConfig{HSTSMaxAge: 60}, ""},
		{"enabled", SecurityConfig{HSTSEnabled: true, HSTSMaxAge: 3600}, "max-age=3600"},
		{"subdomains", SecurityConfig{HSTSEnabled: true, HSTSMaxAge: 3600, HSTSIncludeSubdomains: true}, "max-age=3600; includeSubDomains"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(SecureWithConfig(tt.cfg))
			router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.expected, w.Header().Get("Strict-Transport-Security"))
			assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		})
	}
}
