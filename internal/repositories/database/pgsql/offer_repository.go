package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	"github.com/cnkcrm/crm_backend/internal/models"
	"github.com/cnkcrm/crm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const offerColumns = `offer_id, offer_no, customer_id, contact_name, contact_phone, contact_email, payment_term, offer_date, items, notes, subtotal, tax, grand_total, created_at, created_by, last_updated_at, last_updated_by`

type PgxOfferRepository struct {
	BaseRepository
}

// newPgxOfferRepository creates a new repository for offer data.
func newPgxOfferRepository(pool *pgxpool.Pool) portsrepo.OfferRepositoryWithTx {
	return &PgxOfferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OfferRepositoryWithTx = (*PgxOfferRepository)(nil)

// SaveOffer inserts or updates a single offer keyed by offer_id.
func (r *PgxOfferRepository) SaveOffer(ctx context.Context, offer domain.Offer) error {
	modelOffer := mapping.ToModelOffer(offer)
	if err := r.execUpsertOffer(ctx, r.Pool, modelOffer); err != nil {
		return fmt.Errorf("failed to save offer %s: %w", modelOffer.OfferID, err)
	}
	return nil
}

// BulkUpsertOffers writes a batch of offers in a single transaction.
func (r *PgxOfferRepository) BulkUpsertOffers(ctx context.Context, offers []domain.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	for _, offer := range offers {
		modelOffer := mapping.ToModelOffer(offer)
		if err := r.execUpsertOffer(ctx, tx, modelOffer); err != nil {
			return fmt.Errorf("failed to upsert offer %s: %w", modelOffer.OfferID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxOfferRepository) execUpsertOffer(ctx context.Context, exec execer, modelOffer models.Offer) error {
	query := `
		INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (offer_id) DO UPDATE SET
			offer_no = EXCLUDED.offer_no,
			customer_id = EXCLUDED.customer_id,
			contact_name = EXCLUDED.contact_name,
			contact_phone = EXCLUDED.contact_phone,
			contact_email = EXCLUDED.contact_email,
			payment_term = EXCLUDED.payment_term,
			offer_date = EXCLUDED.offer_date,
			items = EXCLUDED.items,
			notes = EXCLUDED.notes,
			subtotal = EXCLUDED.subtotal,
			tax = EXCLUDED.tax,
			grand_total = EXCLUDED.grand_total,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := exec.Exec(ctx, query,
		modelOffer.OfferID,
		modelOffer.OfferNo,
		modelOffer.CustomerID,
		modelOffer.ContactName,
		modelOffer.ContactPhone,
		modelOffer.ContactEmail,
		modelOffer.PaymentTerm,
		modelOffer.OfferDate,
		modelOffer.Items,
		modelOffer.Notes,
		modelOffer.Subtotal,
		modelOffer.Tax,
		modelOffer.GrandTotal,
		modelOffer.CreatedAt,
		modelOffer.CreatedBy,
		modelOffer.LastUpdatedAt,
		modelOffer.LastUpdatedBy,
	)
	return err
}

// FindOfferByID retrieves an offer by its primary key.
func (r *PgxOfferRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE offer_id = $1;`
	rows, err := r.Pool.Query(ctx, query, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query offer %s: %w", offerID, err)
	}
	modelOffer, err := pgx.CollectOneRow(rows, scanOffer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find offer by id %s: %w", offerID, err)
	}
	domainOffer := mapping.ToDomainOffer(modelOffer)
	return &domainOffer, nil
}

// FindOffersByOfferNos retrieves all offers whose human-facing number is in
// the given set.
func (r *PgxOfferRepository) FindOffersByOfferNos(ctx context.Context, offerNos []string) ([]domain.Offer, error) {
	if len(offerNos) == 0 {
		return []domain.Offer{}, nil
	}
	query := `SELECT ` + offerColumns + ` FROM offers WHERE offer_no = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, offerNos)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers by offer numbers: %w", err)
	}
	modelOffers, err := pgx.CollectRows(rows, scanOffer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan offers by offer numbers: %w", err)
	}
	return mapping.ToDomainOfferSlice(modelOffers), nil
}

// ListOffers retrieves offers ordered by offer date descending.
func (r *PgxOfferRepository) ListOffers(ctx context.Context, limit int, offset int) ([]domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers ORDER BY offer_date DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	modelOffers, err := pgx.CollectRows(rows, scanOffer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan offers: %w", err)
	}
	return mapping.ToDomainOfferSlice(modelOffers), nil
}

func scanOffer(row pgx.CollectableRow) (models.Offer, error) {
	var o models.Offer
	err := row.Scan(
		&o.OfferID,
		&o.OfferNo,
		&o.CustomerID,
		&o.ContactName,
		&o.ContactPhone,
		&o.ContactEmail,
		&o.PaymentTerm,
		&o.OfferDate,
		&o.Items,
		&o.Notes,
		&o.Subtotal,
		&o.Tax,
		&o.GrandTotal,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	return o, err
}
