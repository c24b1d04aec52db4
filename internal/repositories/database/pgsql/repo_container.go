package pgsql

import (
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	customerRepo := newPgxCustomerRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	offerRepo := newPgxOfferRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	erpSettingsRepo := newPgxErpSettingsRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CustomerRepo:       customerRepo,
		InvoiceRepo:        invoiceRepo,
		OfferRepo:          offerRepo,
		ReconciliationRepo: reconciliationRepo,
		ErpSettingsRepo:    erpSettingsRepo,
	}
}
