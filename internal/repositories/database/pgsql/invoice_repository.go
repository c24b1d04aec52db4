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

const invoiceColumns = `invoice_id, customer_id, user_id, invoice_date, total_amount, items, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts or updates a single invoice keyed by the ledger number.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	modelInv := mapping.ToModelInvoice(invoice)
	if err := r.execUpsertInvoice(ctx, r.Pool, modelInv); err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", modelInv.InvoiceID, err)
	}
	return nil
}

// BulkUpsertInvoices writes a batch of invoices in a single transaction.
// Re-running the same feed overwrites the same rows, never duplicates them.
func (r *PgxInvoiceRepository) BulkUpsertInvoices(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	for _, invoice := range invoices {
		modelInv := mapping.ToModelInvoice(invoice)
		if err := r.execUpsertInvoice(ctx, tx, modelInv); err != nil {
			return fmt.Errorf("failed to upsert invoice %s: %w", modelInv.InvoiceID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) execUpsertInvoice(ctx context.Context, exec execer, modelInv models.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (invoice_id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			user_id = EXCLUDED.user_id,
			invoice_date = EXCLUDED.invoice_date,
			total_amount = EXCLUDED.total_amount,
			items = EXCLUDED.items,
			description = EXCLUDED.description,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := exec.Exec(ctx, query,
		modelInv.InvoiceID,
		modelInv.CustomerID,
		modelInv.UserID,
		modelInv.Date,
		modelInv.TotalAmount,
		modelInv.Items,
		modelInv.Description,
		modelInv.CreatedAt,
		modelInv.CreatedBy,
		modelInv.LastUpdatedAt,
		modelInv.LastUpdatedBy,
	)
	return err
}

// ListInvoiceIDs returns every stored invoice key.
func (r *PgxInvoiceRepository) ListInvoiceIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT invoice_id FROM invoices;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice ids: %w", err)
	}
	return ids, nil
}

// FindInvoiceByID retrieves an invoice by its ledger number.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice %s: %w", invoiceID, err)
	}
	modelInv, err := pgx.CollectOneRow(rows, scanInvoice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by id %s: %w", invoiceID, err)
	}
	domainInv := mapping.ToDomainInvoice(modelInv)
	return &domainInv, nil
}

// ListInvoicesByCustomer retrieves all invoices of one customer ordered by
// date descending.
func (r *PgxInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1 ORDER BY invoice_date DESC;`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for customer %s: %w", customerID, err)
	}
	modelInvs, err := pgx.CollectRows(rows, scanInvoice)
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices for customer %s: %w", customerID, err)
	}
	return mapping.ToDomainInvoiceSlice(modelInvs), nil
}

func scanInvoice(row pgx.CollectableRow) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.CustomerID,
		&inv.UserID,
		&inv.Date,
		&inv.TotalAmount,
		&inv.Items,
		&inv.Description,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	return inv, err
}
