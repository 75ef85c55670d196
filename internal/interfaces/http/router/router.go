package router

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts a set of routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a function to RouteRegistrar
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes calls f
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

// Router mounts the API registrars under a common base path
type Router struct {
	engine     *gin.Engine
	basePath   string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// Option configures a Router
type Option func(*Router)

// WithBasePath sets the API prefix, "/api" by default
func WithBasePath(path string) Option {
	return func(r *Router) {
		r.basePath = path
	}
}

// NewRouter creates a Router over engine
func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{
		engine:   engine,
		basePath: "/api",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware that runs on every API route, after the engine's own
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register queues registrars for Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registrar and returns the API group
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group(r.basePath)
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return api
}

// Endpoints lists the mounted method and path pairs in a stable order
func (r *Router) Endpoints() []string {
	routes := r.engine.Routes()
	out := make([]string, 0, len(routes))
	for _, route := range routes {
		out = append(out, route.Method+" "+route.Path)
	}
	sort.Strings(out)
	return out
}

// Routes is a declarative table of endpoints under one prefix
type Routes struct {
	prefix     string
	middleware []gin.HandlerFunc
	endpoints  []endpoint
}

type endpoint struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewRoutes creates a route table mounted at prefix
func NewRoutes(prefix string, middleware ...gin.HandlerFunc) *Routes {
	return &Routes{prefix: prefix, middleware: middleware}
}

// Handle adds an endpoint
func (t *Routes) Handle(method, path string, handlers ...gin.HandlerFunc) *Routes {
	t.endpoints = append(t.endpoints, endpoint{method: method, path: path, handlers: handlers})
	return t
}

// GET adds a read endpoint
func (t *Routes) GET(path string, handlers ...gin.HandlerFunc) *Routes {
	return t.Handle(http.MethodGet, path, handlers...)
}

// POST adds a create or action endpoint
func (t *Routes) POST(path string, handlers ...gin.HandlerFunc) *Routes {
	return t.Handle(http.MethodPost, path, handlers...)
}

// Prefix returns the mount prefix
func (t *Routes) Prefix() string {
	return t.prefix
}

// RegisterRoutes implements RouteRegistrar
func (t *Routes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(t.prefix)
	if len(t.middleware) > 0 {
		group.Use(t.middleware...)
	}
	for _, e := range t.endpoints {
		group.Handle(e.method, e.path, e.handlers...)
	}
}
