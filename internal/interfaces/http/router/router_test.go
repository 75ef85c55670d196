package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func pong(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func TestNewRouter_Defaults(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "/api", r.basePath)
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.middleware)
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(NewRoutes("/quality").GET("/inspection", pong))
	r.Register(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.POST("/auth/login", pong)
	}))

	api := r.Setup()

	assert.Equal(t, "/api", api.BasePath())
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/quality/inspection").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/auth/login").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/quality/inspection").Code)
	assert.Equal(t, []string{"GET /api/quality/inspection", "POST /api/auth/login"}, r.Endpoints())
}

func TestRouter_WithBasePath(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithBasePath("/erp")).
		Register(NewRoutes("").GET("/ping", pong)).
		Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/erp/ping").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/ping").Code)
}

func TestRouter_UseRunsInOrder(t *testing.T) {
	engine := gin.New()
	var order []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			order = append(order, name)
			c.Next()
		}
	}
	r := NewRouter(engine).Use(mark("request-id"), mark("auth"))
	r.Register(NewRoutes("/assets", mark("group")).GET("", func(c *gin.Context) {
		order = append(order, "handler")
		c.Status(http.StatusOK)
	}))
	r.Setup()

	require.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/assets").Code)
	assert.Equal(t, []string{"request-id", "auth", "group", "handler"}, order)
}

func TestRouter_MiddlewareCanAbort(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	NewRouter(engine).Use(deny).Register(NewRoutes("").GET("/ping", pong)).Setup()

	// engine-level routes outside the API group are unaffected
	engine.GET("/health", pong)

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/ping").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
}

func TestRoutes_Table(t *testing.T) {
	engine := gin.New()
	table := NewRoutes("/projects").
		GET("", pong).
		POST("", pong).
		Handle(http.MethodDelete, "/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	NewRouter(engine).Register(table).Setup()

	assert.Equal(t, "/projects", table.Prefix())
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/projects").Code)
	assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodDelete, "/api/projects/1").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodPut, "/api/projects/1").Code)
}
