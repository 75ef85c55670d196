package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/b3erp/backend/internal/domain/identity"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when permission is denied (optional)
	OnDenied func(c *gin.Context, required []identity.Role)
}

// RequireRoles creates middleware that requires one of the listed roles
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return RequireRolesWithConfig(PermissionConfig{}, roles...)
}

// RequireRolesWithConfig creates middleware that requires one of the listed roles with custom config
func RequireRolesWithConfig(cfg PermissionConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			denyUnauthenticated(c)
			return
		}
		if !slices.Contains(roles, role) {
			handlePermissionDenied(c, cfg, roles, "User lacks required role")
			return
		}
		c.Next()
	}
}

// RouteRule matches requests by method and path. A trailing * on Path
// matches by prefix; Method "*" matches every method.
type RouteRule struct {
	Method string
	Path   string
}

// Matches checks if the rule covers the request
func (r RouteRule) Matches(method, path string) bool {
	if r.Method != "*" && !strings.EqualFold(r.Method, method) {
		return false
	}
	if strings.HasSuffix(r.Path, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(r.Path, "*"))
	}
	return r.Path == path
}

// WriteAccessConfig configures RequireWriteRole
type WriteAccessConfig struct {
	PermissionConfig
	// Exempt lists routes any authenticated role may write to
	Exempt []RouteRule
	// Public lists write routes reachable without a token, such as login
	Public []RouteRule
}

// RequireWriteRole lets reads through and restricts POST, PUT, PATCH and
// DELETE to roles that can write, except for exempt routes.
func RequireWriteRole(cfg WriteAccessConfig) gin.HandlerFunc {
	writers := []identity.Role{identity.RoleAdmin, identity.RoleManager}
	return func(c *gin.Context) {
		if !isWriteMethod(c.Request.Method) {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		for _, rule := range cfg.Public {
			if rule.Matches(c.Request.Method, path) {
				c.Next()
				return
			}
		}

		role, ok := CurrentRole(c)
		if !ok {
			denyUnauthenticated(c)
			return
		}

		for _, rule := range cfg.Exempt {
			if rule.Matches(c.Request.Method, path) {
				c.Next()
				return
			}
		}

		if !role.CanWrite() {
			handlePermissionDenied(c, cfg.PermissionConfig, writers, "Role is read-only")
			return
		}
		c.Next()
	}
}

// HasRole reports whether the authenticated user holds one of roles
func HasRole(c *gin.Context, roles ...identity.Role) bool {
	role, ok := CurrentRole(c)
	return ok && slices.Contains(roles, role)
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func denyUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(
		dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
}

// handlePermissionDenied handles permission denied scenarios
func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, required []identity.Role, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, required)
		c.Abort()
		return
	}

	if cfg.Logger != nil {
		role, _ := CurrentRole(c)
		names := make([]string, len(required))
		for i, r := range required {
			names[i] = string(r)
		}
		cfg.Logger.Warn("Permission denied",
			zap.String("reason", reason),
			zap.String("username", CurrentUsername(c)),
			zap.String("role", string(role)),
			zap.Strings("required_roles", names),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail(
		dto.ErrCodeForbidden, "Access denied: insufficient permissions", c.GetString(RequestIDKey)))
}
