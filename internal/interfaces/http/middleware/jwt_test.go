package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/identity"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/auth"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"github.com/b3erp/backend/internal/infrastructure/logger"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: expiration,
		Issuer:                "test-issuer",
	})
}

func newTestUser(role identity.Role) *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          "qc.lead",
		Role:              role,
		IsActive:          true,
	}
}

func issueToken(t *testing.T, svc *auth.JWTService, user *identity.User) string {
	t.Helper()
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	return token.AccessToken
}

func serveJWT(router *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set(AuthorizationHeader, header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestAuthenticate_ValidToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	user := newTestUser(identity.RoleManager)

	router := gin.New()
	router.Use(Authenticate(AuthConfig{Tokens: svc}))
	router.GET("/api/things", func(c *gin.Context) {
		claims := CurrentClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, user.ID.String(), CurrentUserID(c))
		assert.Equal(t, "qc.lead", CurrentUsername(c))
		assert.Equal(t, "qc.lead", c.GetString(logger.GinUsernameKey))
		assert.Equal(t, "qc.lead", logger.GetUsername(c.Request.Context()))
		role, ok := CurrentRole(c)
		assert.True(t, ok)
		assert.Equal(t, identity.RoleManager, role)
		c.Status(http.StatusOK)
	})

	token := issueToken(t, svc, user)
	assert.Equal(t, http.StatusOK, serveJWT(router, "/api/things", "Bearer "+token).Code)
	assert.Equal(t, http.StatusOK, serveJWT(router, "/api/things", "bearer "+token).Code)
}

func TestAuthenticate_Rejections(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	expired := newTestJWTService(-time.Minute)
	other := auth.NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Minute,
		Issuer:                "test-issuer",
	})
	user := newTestUser(identity.RoleUser)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"basic scheme", "Basic dXNlcjpwYXNz", dto.ErrCodeTokenInvalid},
		{"scheme only", "Bearer", dto.ErrCodeTokenInvalid},
		{"empty bearer", "Bearer   ", dto.ErrCodeTokenInvalid},
		{"garbage", "Bearer not-a-jwt", dto.ErrCodeTokenInvalid},
		{"expired", "Bearer " + issueToken(t, expired, user), dto.ErrCodeTokenExpired},
		{"foreign signature", "Bearer " + issueToken(t, other, user), dto.ErrCodeTokenInvalid},
	}

	router := gin.New()
	router.Use(Authenticate(AuthConfig{Tokens: svc}))
	router.GET("/api/things", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveJWT(router, "/api/things", tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestAuthenticate_PublicPaths(t *testing.T) {
	tests := []struct {
		name   string
		public []string
		path   string
		status int
	}{
		{"default health", nil, "/health", http.StatusOK},
		{"default login", nil, "/api/auth/login", http.StatusOK},
		{"default private", nil, "/api/assets", http.StatusUnauthorized},
		{"prefix", []string{"/public/*"}, "/public/catalog", http.StatusOK},
		{"exact does not prefix", []string{"/public"}, "/public/catalog", http.StatusUnauthorized},
		{"explicit list replaces defaults", []string{"/public/*"}, "/health", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Authenticate(AuthConfig{Tokens: newTestJWTService(time.Minute), Public: tt.public}))
			router.GET(tt.path, func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			assert.Equal(t, tt.status, serveJWT(router, tt.path, "").Code)
		})
	}
}

func TestAuthenticate_CustomOnErrorAndLogging(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	var seen error
	router := gin.New()
	router.Use(Authenticate(AuthConfig{
		Tokens: newTestJWTService(time.Minute),
		Logger: zap.New(core),
		OnError: func(c *gin.Context, err error) {
			seen = err
			c.JSON(http.StatusTeapot, gin.H{"custom": true})
		},
	}))
	router.GET("/private", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := serveJWT(router, "/private", "Bearer broken")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, seen, auth.ErrInvalidToken)

	entries := logs.FilterMessage("JWT authentication failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/private", entries[0].ContextMap()["path"])
}

func TestCurrentCaller_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, CurrentClaims(c))
	assert.Empty(t, CurrentUserID(c))
	assert.Empty(t, CurrentUsername(c))
	_, ok := CurrentRole(c)
	assert.False(t, ok)
}
