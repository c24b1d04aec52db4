package services

import (
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	feed portssvc.ErpFeedReader,
	analyzer portssvc.AnalyzerSvcFacade,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(repos.CustomerRepo, analyzer)
	container.Offer = NewOfferService(repos.OfferRepo, repos.CustomerRepo)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, repos.CustomerRepo, feed, analyzer)
	container.ErpSync = NewErpSyncService(feed, repos.CustomerRepo, repos.InvoiceRepo, repos.OfferRepo, repos.ErpSettingsRepo, cfg.SyncUserID)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CustomerSvcFacade       = (*CustomerService)(nil)
	_ portssvc.OfferSvcFacade          = (*OfferService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*ReconciliationService)(nil)
	_ portssvc.ErpSyncSvcFacade        = (*ErpSyncService)(nil)
)
