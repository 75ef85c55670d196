package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/b3erp/backend/internal/domain/identity"
	"github.com/b3erp/backend/internal/infrastructure/auth"
	"github.com/b3erp/backend/internal/infrastructure/logger"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Keys under which Authenticate stores the caller on the gin context
const (
	AuthClaimsKey   = "auth_claims"
	AuthUserIDKey   = "auth_user_id"
	AuthUsernameKey = "auth_username"
	AuthRoleKey     = "auth_role"
)

const AuthorizationHeader = "Authorization"

var errMissingCredentials = errors.New("missing credentials")

// DefaultPublicPaths need no token
var DefaultPublicPaths = []string{"/health", "/api/ping", "/api/system/info", "/api/auth/login"}

// TokenValidator turns a bearer token into claims
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthConfig configures Authenticate
type AuthConfig struct {
	Tokens TokenValidator
	// Public paths skip authentication. An entry ending in * matches by prefix.
	Public []string
	// OnError replaces the default 401 body
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// Authenticate requires a valid bearer token on every non-public request
// and records the caller's identity for later handlers and logs.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	public := cfg.Public
	if public == nil {
		public = DefaultPublicPaths
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || isPublic(public, c.Request.URL.Path) {
			c.Next()
			return
		}

		token, err := bearerToken(c.GetHeader(AuthorizationHeader))
		var claims *auth.Claims
		if err == nil {
			claims, err = cfg.Tokens.ValidateToken(token)
		}
		if err != nil {
			log.Warn("JWT authentication failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			if cfg.OnError != nil {
				cfg.OnError(c, err)
				c.Abort()
				return
			}
			code, msg := authFailure(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.Fail(code, msg, c.GetString(RequestIDKey)))
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthUsernameKey, claims.Username)
		c.Set(AuthRoleKey, claims.Role)
		c.Set(logger.GinUsernameKey, claims.Username)
		ctx, reqLog := logger.WithUsername(c.Request.Context(), logger.GetGinLogger(c), claims.Username)
		c.Set(logger.GinLoggerKey, reqLog)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func isPublic(public []string, path string) bool {
	for _, p := range public {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if path == p {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from an Authorization header. The scheme
// is matched case-insensitively.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingCredentials
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", auth.ErrInvalidToken
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

func authFailure(err error) (code, message string) {
	switch {
	case errors.Is(err, errMissingCredentials):
		return dto.ErrCodeUnauthorized, "Authentication required"
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return dto.ErrCodeTokenInvalid, "Token is not yet valid"
	default:
		return dto.ErrCodeTokenInvalid, "Invalid token"
	}
}

// CurrentClaims returns the validated claims, or nil on public routes
func CurrentClaims(c *gin.Context) *auth.Claims {
	claims, _ := c.Value(AuthClaimsKey).(*auth.Claims)
	return claims
}

func CurrentUserID(c *gin.Context) string   { return c.GetString(AuthUserIDKey) }
func CurrentUsername(c *gin.Context) string { return c.GetString(AuthUsernameKey) }

func CurrentRole(c *gin.Context) (identity.Role, bool) {
	role, ok := c.Value(AuthRoleKey).(identity.Role)
	return role, ok
}
