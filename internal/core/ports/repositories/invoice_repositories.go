package repositories

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
)

// InvoiceRepository is the persistence port for purchase invoices. Invoices
// are keyed by the ledger's own invoice number, so a bulk upsert of the same
// feed is an idempotent overwrite.
type InvoiceRepository interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	BulkUpsertInvoices(ctx context.Context, invoices []domain.Invoice) error
	// ListInvoiceIDs returns every stored invoice key; the sync pass uses it
	// to classify records as added or updated before the bulk write.
	ListInvoiceIDs(ctx context.Context) ([]string, error)
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error)
}

// InvoiceRepositoryWithTx combines invoice operations with transaction support
type InvoiceRepositoryWithTx interface {
	InvoiceRepository
	RepositoryWithTx
}
