// Package services defines the service facade interfaces consumed by the
// HTTP handlers, plus the container that groups them for injection.
package services

// ServiceContainer holds all service facades needed by the handlers.
type ServiceContainer struct {
	Customer       CustomerSvcFacade
	Offer          OfferSvcFacade
	Reconciliation ReconciliationSvcFacade
	ErpSync        ErpSyncSvcFacade
}
