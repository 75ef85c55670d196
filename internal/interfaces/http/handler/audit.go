package handler

import (
	"strings"

	auditapp "github.com/b3erp/backend/internal/application/audit"
	"github.com/gin-gonic/gin"
)

// AuditLogHandler exposes the audit trail
type AuditLogHandler struct {
	BaseHandler
	service *auditapp.LogService
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(service *auditapp.LogService) *AuditLogHandler {
	return &AuditLogHandler{service: service}
}

// List godoc
// @ID           listAuditLogs
// @Summary      List audit log entries
// @Tags         audit
// @Produce      json
// @Param        aggregate_type query string false "Aggregate type, e.g. invoice"
// @Param        aggregate_id query string false "Aggregate ID" format(uuid)
// @Param        event_type query string false "Event type"
// @Param        actor query string false "Actor"
// @Param        from_date query string false "From date (YYYY-MM-DD)"
// @Param        to_date query string false "To date (YYYY-MM-DD), inclusive"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]audit.Log]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /audit-logs [get]
func (h *AuditLogHandler) List(c *gin.Context) {
	var filter auditapp.LogListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, total, filter.Page, filter.PageSize)
}

// History godoc
// @ID           auditHistory
// @Summary      Full trail of one aggregate in occurrence order
// @Tags         audit
// @Produce      json
// @Param        aggregateType path string true "Aggregate type"
// @Param        aggregateId path string true "Aggregate ID" format(uuid)
// @Success      200 {object} Envelope[[]audit.Log]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /audit-logs/{aggregateType}/{aggregateId} [get]
func (h *AuditLogHandler) History(c *gin.Context) {
	id, ok := h.parseID(c, "aggregateId", "aggregate")
	if !ok {
		return
	}

	list, err := h.service.History(c.Request.Context(), strings.ToLower(c.Param("aggregateType")), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// RegisterRoutes mounts the audit routes
func (h *AuditLogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	logs := rg.Group("/audit-logs")
	logs.GET("", h.List)
	logs.GET("/:aggregateType/:aggregateId", h.History)
}
