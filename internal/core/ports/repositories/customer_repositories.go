package repositories

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
)

// CustomerRepository is the persistence port for customer identities. The
// ledger's current code is the secondary unique key used by identity
// resolution; FindCustomersByCurrentCodes is the query-by-secondary-key
// primitive the sync path depends on.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	BulkUpsertCustomers(ctx context.Context, customers []domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	FindCustomersByCurrentCodes(ctx context.Context, codes []string) ([]domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerRepositoryWithTx combines customer operations with transaction support
type CustomerRepositoryWithTx interface {
	CustomerRepository
	RepositoryWithTx
}
