package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/cnkcrm/crm_backend/internal/export"
	"github.com/cnkcrm/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reconciliationHandler handles HTTP requests related to reconciliation cases.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
	defaultUserID         string
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade, defaultUserID string) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
		defaultUserID:         defaultUserID,
	}
}

// registerReconciliationRoutes registers routes related to reconciliations.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade, defaultUserID string) {
	h := newReconciliationHandler(reconciliationService, defaultUserID)

	recs := rg.Group("/reconciliations")
	{
		recs.POST("", h.createReconciliation)
		recs.GET("", h.listReconciliations)
		recs.GET("/:id", h.getReconciliationByID)
		recs.GET("/:id/invoices", h.getPeriodInvoices)
		recs.GET("/:id/statement", h.downloadStatement)
		recs.POST("/:id/response", h.respond)
		recs.POST("/:id/analyze", h.analyzeDisagreement)
		recs.POST("/:id/email-sent", h.markEmailSent)
	}
}

// createReconciliation godoc
// @Summary Open a reconciliation case
// @Description Opens a pending case for one customer and one calendar month; the amount is aggregated from the ledger view
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param reconciliation body dto.CreateReconciliationRequest true "Case details"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid input or customer without ledger code"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to create reconciliation"
// @Router /reconciliations [post]
func (h *reconciliationHandler) createReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rec, err := h.reconciliationService.CreateReconciliation(c.Request.Context(), req, actingUserID(c, h.defaultUserID))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create reconciliation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reconciliation"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(rec))
}

// listReconciliations godoc
// @Summary List reconciliation cases
// @Description Retrieves a page of cases, newest first
// @Tags reconciliations
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ReconciliationResponse
// @Failure 500 {object} map[string]string "Failed to list reconciliations"
// @Router /reconciliations [get]
func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pageParams(c)

	recs, err := h.reconciliationService.ListReconciliations(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list reconciliations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reconciliations"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListReconciliationResponse(recs))
}

// getReconciliationByID godoc
// @Summary Get a reconciliation case
// @Description Retrieves one case by id
// @Tags reconciliations
// @Produce json
// @Param id path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to get reconciliation"
// @Router /reconciliations/{id} [get]
func (h *reconciliationHandler) getReconciliationByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recID := c.Param("id")

	rec, err := h.reconciliationService.GetReconciliationByID(c.Request.Context(), recID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reconciliation not found"})
			return
		}
		logger.Error("Failed to get reconciliation", slog.String("error", err.Error()), slog.String("reconciliation_id", recID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reconciliation"})
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

// getPeriodInvoices godoc
// @Summary List the ledger invoices behind a case
// @Description Returns the period's ledger invoices that the case amount was aggregated from
// @Tags reconciliations
// @Produce json
// @Param id path string true "Reconciliation ID"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to load invoices"
// @Router /reconciliations/{id}/invoices [get]
func (h *reconciliationHandler) getPeriodInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recID := c.Param("id")

	_, invoices, err := h.reconciliationService.PeriodInvoices(c.Request.Context(), recID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reconciliation not found"})
			return
		}
		logger.Error("Failed to load period invoices", slog.String("error", err.Error()), slog.String("reconciliation_id", recID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoices"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// downloadStatement godoc
// @Summary Download a reconciliation statement
// @Description Streams an xlsx statement with the case summary and its period invoices
// @Tags reconciliations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Reconciliation ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to render statement"
// @Router /reconciliations/{id}/statement [get]
func (h *reconciliationHandler) downloadStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recID := c.Param("id")

	rec, err := h.reconciliationService.GetReconciliationByID(c.Request.Context(), recID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reconciliation not found"})
			return
		}
		logger.Error("Failed to get reconciliation", slog.String("error", err.Error()), slog.String("reconciliation_id", recID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render statement"})
		return
	}

	customer, invoices, err := h.reconciliationService.PeriodInvoices(c.Request.Context(), recID)
	if err != nil {
		logger.Error("Failed to load period invoices for statement", slog.String("error", err.Error()), slog.String("reconciliation_id", recID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render statement"})
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=mutabakat-%s.xlsx", rec.Period))
	if err := export.ReconciliationStatement(c.Writer, rec, customer, invoices); err != nil {
		logger.Error("Failed to write statement", slog.String("error", err.Error()), slog.String("reconciliation_id", recID))
	}
}

// respond godoc
// @Summary Record the customer's answer
// @Description Moves a pending case to agreed or disagreed; terminal cases reject further transitions
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param id path string true "Reconciliation ID"
// @Param response body dto.ReconciliationResponseRequest true "Answer"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid input or case already closed"
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to update reconciliation"
// @Router /reconciliations/{id}/response [post]
func (h *reconciliationHandler) respond(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recID := c.Param("id")

	var req dto.ReconciliationResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Respond", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rec, err := h.reconciliationService.Respond(c.Request.Context(), recID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reconciliation not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record response", slog.String("error", err.Error()), slog.String("reconciliation_id", recID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reconciliation"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

// analyzeDisagreement godoc
// @Summary Analyze a disagreement
// @Description Runs the external analysis over the customer's disagreement text and stores the result on the case
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param id path string true "Reconciliation ID"
// @Param request body dto.AnalyzeDisagreementRequest true "Disagreement text"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid input or analysis declined"
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Analysis failed"
// @Router /reconciliations/{id}/analyze [post]
func (h *reconciliationHandler) analyzeDisagreement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recID := c.Param("id")

	var req dto.AnalyzeDisagreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AnalyzeDisagreement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rec, err := h.reconciliationService.AnalyzeDisagreement(c.Request.Context(), recID, req.CustomerResponse)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reconciliation not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Disagreement analysis failed", slog.String("error", err.Error()), slog.String("reconciliation_id", recID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

// markEmailSent godoc
// @Summary Stamp the reconciliation email time
// @Description Records that the statement email went out for this case
// @Tags reconciliations
// @Produce json
// @Param id path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to update reconciliation"
// @Router /reconciliations/{id}/email-sent [post]
func (h *reconciliationHandler) markEmailSent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recID := c.Param("id")

	rec, err := h.reconciliationService.MarkEmailSent(c.Request.Context(), recID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reconciliation not found"})
			return
		}
		logger.Error("Failed to mark email sent", slog.String("error", err.Error()), slog.String("reconciliation_id", recID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reconciliation"})
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}
