package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/cnkcrm/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// erpHandler handles HTTP requests related to ERP synchronization.
type erpHandler struct {
	erpSyncService portssvc.ErpSyncSvcFacade
}

// newErpHandler creates a new erpHandler.
func newErpHandler(es portssvc.ErpSyncSvcFacade) *erpHandler {
	return &erpHandler{
		erpSyncService: es,
	}
}

// RegisterErpRoutes registers routes related to ERP sync and settings.
// The sync endpoints are rate limited: each pass re-reads the whole feed.
func RegisterErpRoutes(rg *gin.RouterGroup, erpSyncService portssvc.ErpSyncSvcFacade, syncLimiter *limiter.Limiter) {
	h := newErpHandler(erpSyncService)

	erp := rg.Group("/erp")
	{
		erp.GET("/settings", h.getSettings)
		erp.PUT("/settings", h.updateSettings)
	}

	sync := erp.Group("/sync", middleware.RateLimit(syncLimiter))
	{
		sync.POST("/customers", h.syncCustomers)
		sync.POST("/invoices", h.syncInvoices)
		sync.POST("/offers", h.syncOffers)
		sync.POST("/stock", h.syncStock)
	}
}

// syncCustomers godoc
// @Summary Sync customers from the ledger feed
// @Description Merges the feed's customer view into stored identities, matching by current code
// @Tags erp
// @Produce json
// @Success 200 {object} dto.SyncResultResponse
// @Failure 500 {object} map[string]string "Sync failed"
// @Router /erp/sync/customers [post]
func (h *erpHandler) syncCustomers(c *gin.Context) {
	h.runSync(c, h.erpSyncService.SyncCustomers)
}

// syncInvoices godoc
// @Summary Sync invoices from the ledger feed
// @Description Writes the feed's purchase invoices keyed by ledger invoice number; resyncs update in place
// @Tags erp
// @Produce json
// @Success 200 {object} dto.SyncResultResponse
// @Failure 500 {object} map[string]string "Sync failed"
// @Router /erp/sync/invoices [post]
func (h *erpHandler) syncInvoices(c *gin.Context) {
	h.runSync(c, h.erpSyncService.SyncInvoices)
}

// syncOffers godoc
// @Summary Sync offers from the ledger feed
// @Description Merges feed offers into stored offers, matching by offer number
// @Tags erp
// @Produce json
// @Success 200 {object} dto.SyncResultResponse
// @Failure 500 {object} map[string]string "Sync failed"
// @Router /erp/sync/offers [post]
func (h *erpHandler) syncOffers(c *gin.Context) {
	h.runSync(c, h.erpSyncService.SyncOffers)
}

// syncStock godoc
// @Summary Sync stock from the ledger feed
// @Description The feed carries no stock data; this records the attempt and returns zero counts
// @Tags erp
// @Produce json
// @Success 200 {object} dto.SyncResultResponse
// @Failure 500 {object} map[string]string "Sync failed"
// @Router /erp/sync/stock [post]
func (h *erpHandler) syncStock(c *gin.Context) {
	h.runSync(c, h.erpSyncService.SyncStock)
}

func (h *erpHandler) runSync(c *gin.Context, pass func(ctx context.Context) (*domain.SyncResult, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := pass(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Sync rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Sync failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncResultResponse(result))
}

// getSettings godoc
// @Summary Get ERP settings
// @Description Retrieves the ERP connection settings and last sync timestamps
// @Tags erp
// @Produce json
// @Success 200 {object} dto.ErpSettingsResponse
// @Failure 500 {object} map[string]string "Failed to get settings"
// @Router /erp/settings [get]
func (h *erpHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.erpSyncService.GetSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get erp settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}
	c.JSON(http.StatusOK, dto.ToErpSettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update ERP settings
// @Description Replaces the editable ERP connection fields; sync timestamps are preserved
// @Tags erp
// @Accept json
// @Produce json
// @Param settings body dto.UpdateErpSettingsRequest true "Settings"
// @Success 200 {object} dto.ErpSettingsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to save settings"
// @Router /erp/settings [put]
func (h *erpHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateErpSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settings, err := h.erpSyncService.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to update erp settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, dto.ToErpSettingsResponse(settings))
}
