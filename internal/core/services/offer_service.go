package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/cnkcrm/crm_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferService provides business logic for offers. Offer numbers and totals
// are always generated server-side.
type OfferService struct {
	offerRepo    portsrepo.OfferRepository
	customerRepo portsrepo.CustomerRepository
}

// NewOfferService creates a new OfferService.
func NewOfferService(offerRepo portsrepo.OfferRepository, customerRepo portsrepo.CustomerRepository) *OfferService {
	return &OfferService{offerRepo: offerRepo, customerRepo: customerRepo}
}

var _ portssvc.OfferSvcFacade = (*OfferService)(nil)

// CreateOffer creates a quote for an existing customer.
func (s *OfferService) CreateOffer(ctx context.Context, req dto.CreateOfferRequest, creatorUserID string) (*domain.Offer, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
	}

	now := time.Now()
	offer := buildOffer(req, utils.NewOfferNo(now), now, creatorUserID)

	if err := s.offerRepo.SaveOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return &offer, nil
}

// BulkCreateOffers creates a batch of quotes in a single write. Every
// customer in the batch is validated before anything is stored, so one bad
// row rejects the whole request. Offers sharing a creation millisecond get
// a random suffix on the number to keep them distinct.
func (s *OfferService) BulkCreateOffers(ctx context.Context, req dto.BulkCreateOffersRequest, creatorUserID string) ([]domain.Offer, error) {
	checked := make(map[string]struct{}, len(req.Offers))
	for _, or := range req.Offers {
		if _, ok := checked[or.CustomerID]; ok {
			continue
		}
		if _, err := s.customerRepo.FindCustomerByID(ctx, or.CustomerID); err != nil {
			return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, or.CustomerID)
		}
		checked[or.CustomerID] = struct{}{}
	}

	now := time.Now()
	offers := make([]domain.Offer, len(req.Offers))
	for i, or := range req.Offers {
		offers[i] = buildOffer(or, utils.NewBulkOfferNo(now), now, creatorUserID)
	}

	if err := s.offerRepo.BulkUpsertOffers(ctx, offers); err != nil {
		return nil, fmt.Errorf("failed to create offers: %w", err)
	}
	return offers, nil
}

// buildOffer assembles a stored offer from a request: item amounts, the
// subtotal, tax and grand total are computed here, never taken from the
// request.
func buildOffer(req dto.CreateOfferRequest, offerNo string, now time.Time, creatorUserID string) domain.Offer {
	items := make([]domain.OfferItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.OfferItem{
			ItemID:       uuid.NewString(),
			Description:  it.Description,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			UnitPrice:    it.UnitPrice,
			Amount:       it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
			DeliveryTime: it.DeliveryTime,
		}
	}

	offer := domain.Offer{
		OfferID:      uuid.NewString(),
		OfferNo:      offerNo,
		CustomerID:   req.CustomerID,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		PaymentTerm:  req.PaymentTerm,
		OfferDate:    now,
		Items:        items,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	offer.ComputeTotals()
	return offer
}

// GetOfferByID retrieves an offer by id.
func (s *OfferService) GetOfferByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	offer, err := s.offerRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer %s: %w", offerID, err)
	}
	return offer, nil
}

// ListOffers retrieves a page of offers.
func (s *OfferService) ListOffers(ctx context.Context, limit int, offset int) ([]domain.Offer, error) {
	offers, err := s.offerRepo.ListOffers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	if offers == nil {
		return []domain.Offer{}, nil
	}
	return offers, nil
}
