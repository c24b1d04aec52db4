package services

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/dto"
)

// OfferSvcFacade exposes offer creation and lookup. Offer numbers and totals
// (20% tax) are generated server-side.
type OfferSvcFacade interface {
	CreateOffer(ctx context.Context, req dto.CreateOfferRequest, creatorUserID string) (*domain.Offer, error)
	BulkCreateOffers(ctx context.Context, req dto.BulkCreateOffersRequest, creatorUserID string) ([]domain.Offer, error)
	GetOfferByID(ctx context.Context, offerID string) (*domain.Offer, error)
	ListOffers(ctx context.Context, limit int, offset int) ([]domain.Offer, error)
}
