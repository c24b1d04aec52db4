package repositories

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
)

// OfferRepository is the persistence port for offers. Ledger-originated
// offers are merge-matched by their human-facing offer number.
type OfferRepository interface {
	SaveOffer(ctx context.Context, offer domain.Offer) error
	BulkUpsertOffers(ctx context.Context, offers []domain.Offer) error
	FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error)
	FindOffersByOfferNos(ctx context.Context, offerNos []string) ([]domain.Offer, error)
	ListOffers(ctx context.Context, limit int, offset int) ([]domain.Offer, error)
}

// OfferRepositoryWithTx combines offer operations with transaction support
type OfferRepositoryWithTx interface {
	OfferRepository
	RepositoryWithTx
}
