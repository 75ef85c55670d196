package handler

import (
	"context"

	qualityapp "github.com/b3erp/backend/internal/application/quality"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefectCodeHandler manages the defect code catalog
type DefectCodeHandler struct {
	BaseHandler
	service *qualityapp.DefectCodeService
}

// NewDefectCodeHandler creates a new defect code handler
func NewDefectCodeHandler(service *qualityapp.DefectCodeService) *DefectCodeHandler {
	return &DefectCodeHandler{service: service}
}

// List godoc
// @ID           listDefectCodes
// @Summary      List defect codes
// @Tags         quality
// @Produce      json
// @Param        search query string false "Search by code or name"
// @Param        severity query string false "Severity" Enums(critical, major, minor, cosmetic)
// @Param        category query string false "Category"
// @Param        is_active query bool false "Active flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(50)
// @Success      200 {object} Envelope[[]qualityapp.DefectCodeResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/defect-codes [get]
func (h *DefectCodeHandler) List(c *gin.Context) {
	var filter qualityapp.DefectCodeListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	h.SuccessWithMeta(c, list, total, filter.Page, pageSize)
}

// Create godoc
// @ID           createDefectCode
// @Summary      Create a defect code
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        request body qualityapp.CreateDefectCodeRequest true "Defect code"
// @Success      201 {object} Envelope[qualityapp.DefectCodeResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      409 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/defect-codes [post]
func (h *DefectCodeHandler) Create(c *gin.Context) {
	var req qualityapp.CreateDefectCodeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	code, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, code)
}

// Seed godoc
// @ID           seedDefectCodes
// @Summary      Seed the built-in defect catalog
// @Description  Inserts every built-in code not stored yet. Safe to repeat.
// @Tags         quality
// @Produce      json
// @Success      200 {object} Envelope[qualityapp.SeedResult]
// @Security     BearerAuth
// @Router       /quality/defect-codes/seed [post]
func (h *DefectCodeHandler) Seed(c *gin.Context) {
	result, err := h.service.SeedDefectCodes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get godoc
// @ID           getDefectCode
// @Summary      Get a defect code
// @Tags         quality
// @Produce      json
// @Param        code path string true "Defect code"
// @Success      200 {object} Envelope[qualityapp.DefectCodeResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/defect-codes/{code} [get]
func (h *DefectCodeHandler) Get(c *gin.Context) {
	code, err := h.service.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}

// Update godoc
// @ID           updateDefectCode
// @Summary      Update a defect code
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        code path string true "Defect code"
// @Param        request body qualityapp.UpdateDefectCodeRequest true "Defect code"
// @Success      200 {object} Envelope[qualityapp.DefectCodeResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/defect-codes/{code} [put]
func (h *DefectCodeHandler) Update(c *gin.Context) {
	var req qualityapp.UpdateDefectCodeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	code, err := h.service.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}

// Delete godoc
// @ID           deleteDefectCode
// @Summary      Delete a custom defect code
// @Tags         quality
// @Param        code path string true "Defect code"
// @Success      204
// @Failure      404 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/defect-codes/{code} [delete]
func (h *DefectCodeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes mounts the defect code routes on rg
func (h *DefectCodeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	codes := rg.Group("/quality/defect-codes")
	codes.GET("", h.List)
	codes.POST("", h.Create)
	codes.POST("/seed", h.Seed)
	codes.GET("/:code", h.Get)
	codes.PUT("/:code", h.Update)
	codes.DELETE("/:code", h.Delete)
}

// InspectionHandler handles quality inspections
type InspectionHandler struct {
	BaseHandler
	service *qualityapp.InspectionService
}

// NewInspectionHandler creates a new inspection handler
func NewInspectionHandler(service *qualityapp.InspectionService) *InspectionHandler {
	return &InspectionHandler{service: service}
}

// List godoc
// @ID           listInspections
// @Summary      List inspections
// @Tags         quality
// @Produce      json
// @Param        search query string false "Search by number, product or batch"
// @Param        status query string false "Status"
// @Param        type query string false "Inspection type"
// @Param        result query string false "Overall result" Enums(pass, fail, conditional, pending)
// @Param        from_date query string false "Created on or after (YYYY-MM-DD)"
// @Param        to_date query string false "Created on or before (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]qualityapp.InspectionListResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection [get]
func (h *InspectionHandler) List(c *gin.Context) {
	var filter qualityapp.InspectionListFilter
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

// Create godoc
// @ID           createInspection
// @Summary      Create an inspection
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        request body qualityapp.CreateInspectionRequest true "Inspection"
// @Success      201 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection [post]
func (h *InspectionHandler) Create(c *gin.Context) {
	var req qualityapp.CreateInspectionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inspection, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, inspection)
}

// Statistics godoc
// @ID           inspectionStatistics
// @Summary      Inspection statistics
// @Description  Aggregates every inspection matching the list filters
// @Tags         quality
// @Produce      json
// @Param        status query string false "Status"
// @Param        type query string false "Inspection type"
// @Param        from_date query string false "Created on or after (YYYY-MM-DD)"
// @Param        to_date query string false "Created on or before (YYYY-MM-DD)"
// @Success      200 {object} Envelope[quality.InspectionStatistics]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/statistics [get]
func (h *InspectionHandler) Statistics(c *gin.Context) {
	var filter qualityapp.InspectionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID godoc
// @ID           getInspection
// @Summary      Get an inspection
// @Tags         quality
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id} [get]
func (h *InspectionHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}

	inspection, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inspection)
}

// Update godoc
// @ID           updateInspection
// @Summary      Update an inspection
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Param        request body qualityapp.UpdateInspectionRequest true "Inspection"
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id} [put]
func (h *InspectionHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}
	var req qualityapp.UpdateInspectionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inspection, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inspection)
}

// Delete godoc
// @ID           deleteInspection
// @Summary      Delete a draft or cancelled inspection
// @Tags         quality
// @Param        id path string true "Inspection ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id} [delete]
func (h *InspectionHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// InspectionStatistics godoc
// @ID           singleInspectionStatistics
// @Summary      Statistics of one inspection
// @Tags         quality
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Success      200 {object} Envelope[quality.InspectionStatistics]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/statistics [get]
func (h *InspectionHandler) InspectionStatistics(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}

	stats, err := h.service.InspectionStatistics(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// Start godoc
// @ID           startInspection
// @Summary      Start an inspection
// @Tags         quality
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/start [post]
func (h *InspectionHandler) Start(c *gin.Context) {
	h.transition(c, h.service.Start)
}

// Submit godoc
// @ID           submitInspection
// @Summary      Submit an inspection for review
// @Tags         quality
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/submit [post]
func (h *InspectionHandler) Submit(c *gin.Context) {
	h.transition(c, h.service.Submit)
}

// Approve godoc
// @ID           approveInspection
// @Summary      Approve a reviewed inspection
// @Tags         quality
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/approve [post]
func (h *InspectionHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Reject godoc
// @ID           rejectInspection
// @Summary      Reject a reviewed inspection
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Param        request body qualityapp.TransitionRequest true "Rejection reason"
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/reject [post]
func (h *InspectionHandler) Reject(c *gin.Context) {
	h.transitionWithReason(c, h.service.Reject)
}

// Cancel godoc
// @ID           cancelInspection
// @Summary      Cancel an inspection
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Param        request body qualityapp.TransitionRequest false "Cancellation reason"
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/cancel [post]
func (h *InspectionHandler) Cancel(c *gin.Context) {
	h.transitionWithReason(c, h.service.Cancel)
}

type inspectionAction func(ctx context.Context, id uuid.UUID, actor string) (*qualityapp.InspectionResponse, error)

type inspectionReasonAction func(ctx context.Context, id uuid.UUID, actor string, req qualityapp.TransitionRequest) (*qualityapp.InspectionResponse, error)

func (h *InspectionHandler) transition(c *gin.Context, action inspectionAction) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}

	inspection, err := action(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inspection)
}

func (h *InspectionHandler) transitionWithReason(c *gin.Context, action inspectionReasonAction) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}
	var req qualityapp.TransitionRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	inspection, err := action(c.Request.Context(), id, actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inspection)
}

// RecordDefect godoc
// @ID           recordInspectionDefect
// @Summary      Record a defect
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Param        request body qualityapp.RecordDefectRequest true "Defect"
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/defects [post]
func (h *InspectionHandler) RecordDefect(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}
	var req qualityapp.RecordDefectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inspection, err := h.service.RecordDefect(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inspection)
}

// RecordResults godoc
// @ID           recordInspectionResults
// @Summary      Record inspection results
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Param        request body qualityapp.RecordResultsRequest true "Results"
// @Success      200 {object} Envelope[qualityapp.InspectionResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/results [put]
func (h *InspectionHandler) RecordResults(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}
	var req qualityapp.RecordResultsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inspection, err := h.service.RecordResults(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inspection)
}

// ListAttachments godoc
// @ID           listInspectionAttachments
// @Summary      List attachments
// @Tags         quality
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Success      200 {object} Envelope[[]qualityapp.AttachmentResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/attachments [get]
func (h *InspectionHandler) ListAttachments(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}

	attachments, err := h.service.ListAttachments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, attachments)
}

// RequestUpload godoc
// @ID           requestInspectionUpload
// @Summary      Request an attachment upload URL
// @Description  Registers the attachment and returns a presigned PUT URL for the file
// @Tags         quality
// @Accept       json
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Param        request body qualityapp.RequestUploadRequest true "File metadata"
// @Success      201 {object} Envelope[qualityapp.UploadURLResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/attachments [post]
func (h *InspectionHandler) RequestUpload(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}
	var req qualityapp.RequestUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	upload, err := h.service.RequestUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, upload)
}

// DownloadAttachment godoc
// @ID           downloadInspectionAttachment
// @Summary      Get an attachment download URL
// @Tags         quality
// @Produce      json
// @Param        id path string true "Inspection ID" format(uuid)
// @Param        attachmentId path string true "Attachment ID" format(uuid)
// @Success      200 {object} Envelope[qualityapp.DownloadURLResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/attachments/{attachmentId} [get]
func (h *InspectionHandler) DownloadAttachment(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}
	attachmentID, ok := h.parseID(c, "attachmentId", "attachment")
	if !ok {
		return
	}

	download, err := h.service.AttachmentDownload(c.Request.Context(), id, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, download)
}

// DeleteAttachment godoc
// @ID           deleteInspectionAttachment
// @Summary      Delete an attachment
// @Tags         quality
// @Param        id path string true "Inspection ID" format(uuid)
// @Param        attachmentId path string true "Attachment ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /quality/inspection/{id}/attachments/{attachmentId} [delete]
func (h *InspectionHandler) DeleteAttachment(c *gin.Context) {
	id, ok := h.parseID(c, "id", "inspection")
	if !ok {
		return
	}
	attachmentID, ok := h.parseID(c, "attachmentId", "attachment")
	if !ok {
		return
	}

	if err := h.service.DeleteAttachment(c.Request.Context(), id, attachmentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes mounts the inspection routes under /quality/inspection
// and the /quality/inspections alias
func (h *InspectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, prefix := range []string{"/quality/inspection", "/quality/inspections"} {
		g := rg.Group(prefix)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/statistics", h.Statistics)
		g.GET("/:id", h.GetByID)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.GET("/:id/statistics", h.InspectionStatistics)
		g.POST("/:id/start", h.Start)
		g.POST("/:id/submit", h.Submit)
		g.POST("/:id/approve", h.Approve)
		g.POST("/:id/reject", h.Reject)
		g.POST("/:id/cancel", h.Cancel)
		g.POST("/:id/defects", h.RecordDefect)
		g.PUT("/:id/results", h.RecordResults)
		g.GET("/:id/attachments", h.ListAttachments)
		g.POST("/:id/attachments", h.RequestUpload)
		g.GET("/:id/attachments/:attachmentId", h.DownloadAttachment)
		g.DELETE("/:id/attachments/:attachmentId", h.DeleteAttachment)
	}
}
