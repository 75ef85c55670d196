package handler

import (
	"context"
	"time"

	assetapp "github.com/b3erp/backend/internal/application/asset"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssetHandler handles the fixed asset register
type AssetHandler struct {
	BaseHandler
	service *assetapp.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(service *assetapp.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// asOfQuery is the optional valuation date of a report
type asOfQuery struct {
	AsOf *time.Time `form:"as_of" time_format:"2006-01-02"`
}

func (q asOfQuery) value() time.Time {
	if q.AsOf == nil {
		return time.Time{}
	}
	return *q.AsOf
}

// List godoc
// @ID           listAssets
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Param        search query string false "Search by code, name, serial or manufacturer"
// @Param        type query string false "Asset type"
// @Param        status query string false "Status"
// @Param        condition query string false "Condition"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]assetapp.AssetResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	var filter assetapp.AssetListFilter
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
// @ID           createAsset
// @Summary      Register an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body assetapp.AssetRequest true "Asset"
// @Success      201 {object} Envelope[assetapp.AssetResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      409 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	var req assetapp.AssetRequest
	if !h.bindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, a)
}

// Statistics godoc
// @ID           assetStatistics
// @Summary      Summarise the asset register
// @Tags         assets
// @Produce      json
// @Param        type query string false "Asset type"
// @Success      200 {object} Envelope[asset.Statistics]
// @Security     BearerAuth
// @Router       /assets/statistics [get]
func (h *AssetHandler) Statistics(c *gin.Context) {
	var filter assetapp.AssetListFilter
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

// MaintenanceDue godoc
// @ID           assetsMaintenanceDue
// @Summary      List assets due for maintenance
// @Tags         assets
// @Produce      json
// @Param        as_of query string false "Date (YYYY-MM-DD), today when omitted"
// @Success      200 {object} Envelope[[]assetapp.AssetResponse]
// @Security     BearerAuth
// @Router       /assets/maintenance-due [get]
func (h *AssetHandler) MaintenanceDue(c *gin.Context) {
	var q asOfQuery
	if !h.bindQuery(c, &q) {
		return
	}

	list, err := h.service.MaintenanceDue(c.Request.Context(), q.value())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// GetByID godoc
// @ID           getAsset
// @Summary      Get an asset valued as of now
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} Envelope[assetapp.AssetResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id} [get]
func (h *AssetHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "asset")
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, a)
}

// Update godoc
// @ID           updateAsset
// @Summary      Update an asset in service
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.AssetRequest true "Asset"
// @Success      200 {object} Envelope[assetapp.AssetResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id} [put]
func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "asset")
	if !ok {
		return
	}
	var req assetapp.AssetRequest
	if !h.bindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, a)
}

// Delete godoc
// @ID           deleteAsset
// @Summary      Delete an asset not under maintenance
// @Tags         assets
// @Param        id path string true "Asset ID" format(uuid)
// @Success      204
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "asset")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetActive godoc
// @ID           setAssetActive
// @Summary      Toggle an asset between active and inactive
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.SetActiveRequest true "Activity"
// @Success      200 {object} Envelope[assetapp.AssetResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id}/active [put]
func (h *AssetHandler) SetActive(c *gin.Context) {
	id, ok := h.parseID(c, "id", "asset")
	if !ok {
		return
	}
	var req assetapp.SetActiveRequest
	if !h.bindJSON(c, &req) {
		return
	}

	a, err := h.service.SetActive(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, a)
}

// Depreciation godoc
// @ID           assetDepreciation
// @Summary      Straight-line depreciation schedule of an asset
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        as_of query string false "Valuation date (YYYY-MM-DD), today when omitted"
// @Success      200 {object} Envelope[asset.DepreciationSchedule]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id}/depreciation [get]
func (h *AssetHandler) Depreciation(c *gin.Context) {
	id, ok := h.parseID(c, "id", "asset")
	if !ok {
		return
	}
	var q asOfQuery
	if !h.bindQuery(c, &q) {
		return
	}

	schedule, err := h.service.Depreciation(c.Request.Context(), id, q.value())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// StartMaintenance godoc
// @ID           startAssetMaintenance
// @Summary      Log a maintenance visit
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.MaintenanceRequest false "Visit"
// @Success      200 {object} Envelope[assetapp.AssetResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id}/maintenance [post]
func (h *AssetHandler) StartMaintenance(c *gin.Context) {
	id, ok := h.parseID(c, "id", "asset")
	if !ok {
		return
	}
	var req assetapp.MaintenanceRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	a, err := h.service.StartMaintenance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, a)
}

// CompleteMaintenance godoc
// @ID           completeAssetMaintenance
// @Summary      Return an asset to service
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.CompleteMaintenanceRequest false "Condition after maintenance"
// @Success      200 {object} Envelope[assetapp.AssetResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id}/maintenance/complete [post]
func (h *AssetHandler) CompleteMaintenance(c *gin.Context) {
	id, ok := h.parseID(c, "id", "asset")
	if !ok {
		return
	}
	var req assetapp.CompleteMaintenanceRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	a, err := h.service.CompleteMaintenance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, a)
}

// Retire godoc
// @ID           retireAsset
// @Summary      Retire an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.ReasonRequest false "Reason"
// @Success      200 {object} Envelope[assetapp.AssetResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id}/retire [post]
func (h *AssetHandler) Retire(c *gin.Context) {
	h.leaveService(c, h.service.Retire)
}

// Sell godoc
// @ID           sellAsset
// @Summary      Record the sale of an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.ReasonRequest false "Buyer or reference"
// @Success      200 {object} Envelope[assetapp.AssetResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id}/sell [post]
func (h *AssetHandler) Sell(c *gin.Context) {
	h.leaveService(c, h.service.Sell)
}

// Dispose godoc
// @ID           disposeAsset
// @Summary      Record the disposal of an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.ReasonRequest true "Reason"
// @Success      200 {object} Envelope[assetapp.AssetResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /assets/{id}/dispose [post]
func (h *AssetHandler) Dispose(c *gin.Context) {
	h.leaveService(c, h.service.Dispose)
}

type assetExitAction func(ctx context.Context, id uuid.UUID, req assetapp.ReasonRequest) (*assetapp.AssetResponse, error)

func (h *AssetHandler) leaveService(c *gin.Context, action assetExitAction) {
	id, ok := h.parseID(c, "id", "asset")
	if !ok {
		return
	}
	var req assetapp.ReasonRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	a, err := action(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, a)
}

// RegisterRoutes mounts the asset routes
func (h *AssetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assets := rg.Group("/assets")
	assets.GET("", h.List)
	assets.POST("", h.Create)
	assets.GET("/statistics", h.Statistics)
	assets.GET("/maintenance-due", h.MaintenanceDue)
	assets.GET("/:id", h.GetByID)
	assets.PUT("/:id", h.Update)
	assets.DELETE("/:id", h.Delete)
	assets.PUT("/:id/active", h.SetActive)
	assets.GET("/:id/depreciation", h.Depreciation)
	assets.POST("/:id/maintenance", h.StartMaintenance)
	assets.POST("/:id/maintenance/complete", h.CompleteMaintenance)
	assets.POST("/:id/retire", h.Retire)
	assets.POST("/:id/sell", h.Sell)
	assets.POST("/:id/dispose", h.Dispose)
}
