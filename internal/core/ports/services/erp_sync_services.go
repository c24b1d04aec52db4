package services

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/dto"
)

// ErpFeedReader is the ledger feed dependency of the sync and reconciliation
// services. Fetch invalidates the feed cache so a sync pass sees the latest
// content; Parsed reuses the cached result; InvoicesForPeriod is the
// whole-month aggregation view, keyed by ledger code with blank ids.
type ErpFeedReader interface {
	Fetch(ctx context.Context) (*domain.ParsedFeed, error)
	Parsed(ctx context.Context) (*domain.ParsedFeed, error)
	InvoicesForPeriod(ctx context.Context, customerCode string, period string) ([]domain.Invoice, error)
}

// ErpSyncSvcFacade runs one sync pass per entity type against the ledger
// feed and manages the ERP settings singleton. Concurrent invocations for
// the same entity type are serialized by the implementation.
type ErpSyncSvcFacade interface {
	SyncCustomers(ctx context.Context) (*domain.SyncResult, error)
	SyncInvoices(ctx context.Context) (*domain.SyncResult, error)
	SyncOffers(ctx context.Context) (*domain.SyncResult, error)
	SyncStock(ctx context.Context) (*domain.SyncResult, error)
	GetSettings(ctx context.Context) (*domain.ErpSettings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateErpSettingsRequest) (*domain.ErpSettings, error)
}
