package handler

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/b3erp/backend/internal/infrastructure/scheduler"
	"github.com/gin-gonic/gin"
)

// PoolStats exposes database connection pool counters
type PoolStats interface {
	Stats() (sql.DBStats, error)
}

// JobLister reports the background jobs of the process
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	env       string
	startTime time.Time
	pool      PoolStats
	jobs      JobLister
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version, env string) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		env:       env,
		startTime: time.Now(),
	}
}

// WithDatabase adds pool counters to the info response
func (h *SystemHandler) WithDatabase(pool PoolStats) *SystemHandler {
	h.pool = pool
	return h
}

// WithJobs adds the scheduler's jobs to the info response
func (h *SystemHandler) WithJobs(jobs JobLister) *SystemHandler {
	h.jobs = jobs
	return h
}

// DBPoolInfo is a snapshot of the connection pool
// @name HandlerDBPoolInfo
type DBPoolInfo struct {
	MaxOpen   int   `json:"max_open" example:"25"`
	Open      int   `json:"open" example:"4"`
	InUse     int   `json:"in_use" example:"1"`
	Idle      int   `json:"idle" example:"3"`
	WaitCount int64 `json:"wait_count" example:"0"`
	WaitMS    int64 `json:"wait_ms" example:"0"`
}

// JobInfo is the last known state of a background job
// @name HandlerJobInfo
type JobInfo struct {
	Name      string     `json:"name" example:"invoice-overdue-sweep"`
	Interval  string     `json:"interval" example:"1h0m0s"`
	Status    string     `json:"status" example:"SUCCESS"`
	Runs      int        `json:"runs" example:"12"`
	Failures  int        `json:"failures" example:"0"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name        string      `json:"name" example:"b3-erp"`
	Version     string      `json:"version" example:"1.0.0"`
	Environment string      `json:"environment" example:"production"`
	GoVersion   string      `json:"go_version" example:"go1.25.5"`
	Uptime      string      `json:"uptime" example:"1h30m45s"`
	Database    *DBPoolInfo `json:"database,omitempty"`
	Jobs        []JobInfo   `json:"jobs,omitempty"`
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Get system information
// @Description  Returns version, uptime, database pool counters and background jobs
// @Tags         system
// @Produce      json
// @Success      200 {object} Envelope[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:        h.name,
		Version:     h.version,
		Environment: h.env,
		GoVersion:   runtime.Version(),
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.pool != nil {
		if st, err := h.pool.Stats(); err == nil {
			info.Database = &DBPoolInfo{
				MaxOpen:   st.MaxOpenConnections,
				Open:      st.OpenConnections,
				InUse:     st.InUse,
				Idle:      st.Idle,
				WaitCount: st.WaitCount,
				WaitMS:    st.WaitDuration.Milliseconds(),
			}
		}
	}
	if h.jobs != nil {
		for _, j := range h.jobs.Jobs() {
			info.Jobs = append(info.Jobs, JobInfo{
				Name:      j.Name,
				Interval:  j.Interval.String(),
				Status:    string(j.Status),
				Runs:      j.Runs,
				Failures:  j.Failures,
				LastRunAt: j.LastRunAt,
				LastError: j.LastError,
			})
		}
	}
	h.Success(c, info)
}

// PingResponse represents the ping response
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Description  Simple ping endpoint to check if the API is responsive
// @Tags         system
// @Produce      json
// @Success      200 {object} Envelope[PingResponse]
// @Router       /ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness probes
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler over the named dependencies
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// HealthResponse is the /health body
type HealthResponse struct {
	Status string            `json:"status" example:"healthy"`
	Checks map[string]string `json:"checks"`
}

// Check godoc
// @ID           healthCheck
// @Summary      Health check
// @Description  Pings the database and other dependencies
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			resp.Checks[name] = "unhealthy: " + err.Error()
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	c.JSON(status, resp)
}


// RegisterRoutes mounts ping and system info
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", h.Ping)
	rg.GET("/system/info", h.GetSystemInfo)
}
