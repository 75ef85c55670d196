package handler

import (
	settingsapp "github.com/b3erp/backend/internal/application/settings"
	"github.com/gin-gonic/gin"
)

// NumberSeriesHandler manages document number series
type NumberSeriesHandler struct {
	BaseHandler
	service *settingsapp.NumberSeriesService
}

// NewNumberSeriesHandler creates a new number series handler
func NewNumberSeriesHandler(service *settingsapp.NumberSeriesService) *NumberSeriesHandler {
	return &NumberSeriesHandler{service: service}
}

// List godoc
// @ID           listNumberSeries
// @Summary      List number series
// @Tags         settings
// @Produce      json
// @Param        search query string false "Search by code or name"
// @Param        module query string false "Owning module"
// @Param        is_active query bool false "Active flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]settingsapp.NumberSeriesResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series [get]
func (h *NumberSeriesHandler) List(c *gin.Context) {
	var filter settingsapp.NumberSeriesListFilter
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
// @ID           createNumberSeries
// @Summary      Create a number series
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.CreateNumberSeriesRequest true "Series definition"
// @Success      201 {object} Envelope[settingsapp.NumberSeriesResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      409 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series [post]
func (h *NumberSeriesHandler) Create(c *gin.Context) {
	var req settingsapp.CreateNumberSeriesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	series, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, series)
}

// FormatPreview godoc
// @ID           previewNumberFormat
// @Summary      Render an ad-hoc format rule
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.FormatPreviewRequest true "Format rule"
// @Success      200 {object} Envelope[settingsapp.SeriesValueResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series/format [post]
func (h *NumberSeriesHandler) FormatPreview(c *gin.Context) {
	var req settingsapp.FormatPreviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	value, err := h.service.FormatPreview(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, value)
}

// GetByID godoc
// @ID           getNumberSeries
// @Summary      Get a number series
// @Tags         settings
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Success      200 {object} Envelope[settingsapp.NumberSeriesResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series/{id} [get]
func (h *NumberSeriesHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "number series")
	if !ok {
		return
	}

	series, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}

// Update godoc
// @ID           updateNumberSeries
// @Summary      Update a number series
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Param        request body settingsapp.UpdateNumberSeriesRequest true "Series definition"
// @Success      200 {object} Envelope[settingsapp.NumberSeriesResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series/{id} [put]
func (h *NumberSeriesHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "number series")
	if !ok {
		return
	}
	var req settingsapp.UpdateNumberSeriesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	series, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}

// Delete godoc
// @ID           deleteNumberSeries
// @Summary      Delete a number series
// @Tags         settings
// @Param        id path string true "Series ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series/{id} [delete]
func (h *NumberSeriesHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "number series")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Preview godoc
// @ID           previewNumberSeries
// @Summary      Preview the next value
// @Description  Returns the value the next allocation would produce without consuming it
// @Tags         settings
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Success      200 {object} Envelope[settingsapp.SeriesValueResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series/{id}/preview [get]
func (h *NumberSeriesHandler) Preview(c *gin.Context) {
	id, ok := h.parseID(c, "id", "number series")
	if !ok {
		return
	}

	value, err := h.service.Preview(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, value)
}

// Next godoc
// @ID           nextNumberSeries
// @Summary      Consume the next value
// @Tags         settings
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Success      200 {object} Envelope[settingsapp.SeriesValueResponse]
// @Failure      404 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series/{id}/next [post]
func (h *NumberSeriesHandler) Next(c *gin.Context) {
	id, ok := h.parseID(c, "id", "number series")
	if !ok {
		return
	}

	value, err := h.service.NextByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, value)
}

// Reset godoc
// @ID           resetNumberSeries
// @Summary      Reset the counter
// @Description  Restarts the counter at 1, or at the given start
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Param        request body settingsapp.ResetNumberSeriesRequest false "Start value"
// @Success      200 {object} Envelope[settingsapp.NumberSeriesResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /settings/number-series/{id}/reset [post]
func (h *NumberSeriesHandler) Reset(c *gin.Context) {
	id, ok := h.parseID(c, "id", "number series")
	if !ok {
		return
	}
	var req settingsapp.ResetNumberSeriesRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	series, err := h.service.Reset(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}

// RegisterRoutes mounts the series routes on rg
func (h *NumberSeriesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	series := rg.Group("/settings/number-series")
	series.GET("", h.List)
	series.POST("", h.Create)
	series.POST("/format", h.FormatPreview)
	series.GET("/:id", h.GetByID)
	series.PUT("/:id", h.Update)
	series.DELETE("/:id", h.Delete)
	series.GET("/:id/preview", h.Preview)
	series.POST("/:id/next", h.Next)
	series.POST("/:id/reset", h.Reset)
}
