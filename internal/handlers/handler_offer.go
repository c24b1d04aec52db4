package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/cnkcrm/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// offerHandler handles HTTP requests related to offers.
type offerHandler struct {
	offerService  portssvc.OfferSvcFacade
	defaultUserID string
}

// newOfferHandler creates a new offerHandler.
func newOfferHandler(os portssvc.OfferSvcFacade, defaultUserID string) *offerHandler {
	return &offerHandler{
		offerService:  os,
		defaultUserID: defaultUserID,
	}
}

// registerOfferRoutes registers routes related to offers.
func registerOfferRoutes(rg *gin.RouterGroup, offerService portssvc.OfferSvcFacade, defaultUserID string) {
	h := newOfferHandler(offerService, defaultUserID)

	offers := rg.Group("/offers")
	{
		offers.POST("", h.createOffer)
		offers.POST("/bulk", h.bulkCreateOffers)
		offers.GET("", h.listOffers)
		offers.GET("/:id", h.getOfferByID)
	}
}

// createOffer godoc
// @Summary Create a new offer
// @Description Creates a quote for an existing customer; the offer number and totals are generated server-side
// @Tags offers
// @Accept json
// @Produce json
// @Param offer body dto.CreateOfferRequest true "Offer details"
// @Success 201 {object} dto.OfferResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create offer"
// @Router /offers [post]
func (h *offerHandler) createOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOffer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), req, actingUserID(c, h.defaultUserID))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create offer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offer"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToOfferResponse(offer))
}

// bulkCreateOffers godoc
// @Summary Create a batch of offers
// @Description Creates several quotes in one call; the whole batch is rejected if any customer is unknown
// @Tags offers
// @Accept json
// @Produce json
// @Param offers body dto.BulkCreateOffersRequest true "Offers to create"
// @Success 201 {array} dto.OfferResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create offers"
// @Router /offers/bulk [post]
func (h *offerHandler) bulkCreateOffers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkCreateOffersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkCreateOffers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	offers, err := h.offerService.BulkCreateOffers(c.Request.Context(), req, actingUserID(c, h.defaultUserID))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create offers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offers"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToListOfferResponse(offers))
}

// listOffers godoc
// @Summary List offers
// @Description Retrieves a page of offers, newest first
// @Tags offers
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.OfferResponse
// @Failure 500 {object} map[string]string "Failed to list offers"
// @Router /offers [get]
func (h *offerHandler) listOffers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pageParams(c)

	offers, err := h.offerService.ListOffers(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list offers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list offers"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListOfferResponse(offers))
}

// getOfferByID godoc
// @Summary Get an offer
// @Description Retrieves one offer by id
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} dto.OfferResponse
// @Failure 404 {object} map[string]string "Offer not found"
// @Failure 500 {object} map[string]string "Failed to get offer"
// @Router /offers/{id} [get]
func (h *offerHandler) getOfferByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	offerID := c.Param("id")

	offer, err := h.offerService.GetOfferByID(c.Request.Context(), offerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
			return
		}
		logger.Error("Failed to get offer", slog.String("error", err.Error()), slog.String("offer_id", offerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get offer"})
		return
	}
	c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}
