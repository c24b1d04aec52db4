package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/cnkcrm/crm_backend/internal/middleware"
	"github.com/cnkcrm/crm_backend/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Human-facing entity labels used in sync result notifications.
const (
	syncLabelCustomers = "Müşteri"
	syncLabelInvoices  = "Fatura"
	syncLabelOffers    = "Teklif"
	syncLabelStock     = "Stok"
)

// ErpSyncService runs sync passes against the ledger feed. One mutex per
// entity type serializes concurrent passes: a second request for the same
// entity waits for the first instead of racing it on the same rows.
type ErpSyncService struct {
	feed         portssvc.ErpFeedReader
	customerRepo portsrepo.CustomerRepository
	invoiceRepo  portsrepo.InvoiceRepository
	offerRepo    portsrepo.OfferRepository
	settingsRepo portsrepo.ErpSettingsRepository
	syncUserID   string

	locks map[domain.SyncEntity]*sync.Mutex
}

// NewErpSyncService creates the sync orchestrator.
func NewErpSyncService(
	feed portssvc.ErpFeedReader,
	customerRepo portsrepo.CustomerRepository,
	invoiceRepo portsrepo.InvoiceRepository,
	offerRepo portsrepo.OfferRepository,
	settingsRepo portsrepo.ErpSettingsRepository,
	syncUserID string,
) *ErpSyncService {
	locks := make(map[domain.SyncEntity]*sync.Mutex)
	for _, e := range []domain.SyncEntity{domain.SyncCustomers, domain.SyncInvoices, domain.SyncOffers, domain.SyncStock} {
		locks[e] = &sync.Mutex{}
	}
	return &ErpSyncService{
		feed:         feed,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		offerRepo:    offerRepo,
		settingsRepo: settingsRepo,
		syncUserID:   syncUserID,
		locks:        locks,
	}
}

var _ portssvc.ErpSyncSvcFacade = (*ErpSyncService)(nil)

// SyncCustomers merges the feed's customer view into stored identities,
// matching by current code. Fields entered in the CRM (notes, contact data,
// AI annotations) survive the merge; ledger-sourced fields are overwritten.
func (s *ErpSyncService) SyncCustomers(ctx context.Context) (*domain.SyncResult, error) {
	s.locks[domain.SyncCustomers].Lock()
	defer s.locks[domain.SyncCustomers].Unlock()

	timer := prometheus.NewTimer(metrics.SyncDuration.WithLabelValues(string(domain.SyncCustomers)))
	defer timer.ObserveDuration()

	_, result, err := s.customerPass(ctx, true)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncCustomers), "error").Inc()
		return nil, err
	}

	if err := s.recordSyncTimestamp(ctx, domain.SyncCustomers); err != nil {
		return nil, err
	}
	metrics.SyncRuns.WithLabelValues(string(domain.SyncCustomers), "ok").Inc()
	return result, nil
}

// customerPass fetches the feed (invalidating the cache when refresh is
// true), merges customers by current code and bulk-writes the result. It
// returns the current-code to customer-id mapping the invoice and offer
// passes need for identity resolution.
func (s *ErpSyncService) customerPass(ctx context.Context, refresh bool) (map[string]string, *domain.SyncResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	feed, err := s.fetchFeed(ctx, refresh)
	if err != nil {
		return nil, nil, err
	}

	codes := make([]string, 0, len(feed.Customers))
	for code := range feed.Customers {
		codes = append(codes, code)
	}

	existing, err := s.customerRepo.FindCustomersByCurrentCodes(ctx, codes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load customers for merge: %w", err)
	}
	byCode := make(map[string]domain.Customer, len(existing))
	for _, c := range existing {
		byCode[c.CurrentCode] = c
	}

	now := time.Now()
	result := &domain.SyncResult{Type: syncLabelCustomers, Fetched: len(feed.Customers)}
	toWrite := make([]domain.Customer, 0, len(feed.Customers))

	for code, lc := range feed.Customers {
		if current, ok := byCode[code]; ok {
			current.ApplyLedgerFields(lc)
			current.LastUpdatedAt = now
			current.LastUpdatedBy = s.syncUserID
			toWrite = append(toWrite, current)
			result.Updated++
			metrics.SyncRecords.WithLabelValues(string(domain.SyncCustomers), "updated").Inc()
			continue
		}

		fresh := domain.Customer{
			CustomerID: uuid.NewString(),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     s.syncUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: s.syncUserID,
			},
		}
		fresh.ApplyLedgerFields(lc)
		toWrite = append(toWrite, fresh)
		result.Added++
		metrics.SyncRecords.WithLabelValues(string(domain.SyncCustomers), "added").Inc()
	}

	if err := s.customerRepo.BulkUpsertCustomers(ctx, toWrite); err != nil {
		return nil, nil, fmt.Errorf("failed to write merged customers: %w", err)
	}

	// The mapping is rebuilt from the store after the write, not from the
	// in-memory merge, so it reflects what the store actually holds for
	// each code.
	merged, err := s.customerRepo.FindCustomersByCurrentCodes(ctx, codes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload customers after merge: %w", err)
	}
	idByCode := make(map[string]string, len(merged))
	for _, c := range merged {
		idByCode[c.CurrentCode] = c.CustomerID
	}

	logger.Info("customer sync pass completed",
		slog.Int("fetched", result.Fetched),
		slog.Int("added", result.Added),
		slog.Int("updated", result.Updated),
	)
	return idByCode, result, nil
}

// SyncInvoices writes the feed's invoices, keyed by the ledger invoice
// number. A customer pass runs first so every invoice can resolve its
// customer code to an identity; rows with a code the pass could not resolve
// are dropped with a warning rather than stored half-linked.
func (s *ErpSyncService) SyncInvoices(ctx context.Context) (*domain.SyncResult, error) {
	s.locks[domain.SyncInvoices].Lock()
	defer s.locks[domain.SyncInvoices].Unlock()

	timer := prometheus.NewTimer(metrics.SyncDuration.WithLabelValues(string(domain.SyncInvoices)))
	defer timer.ObserveDuration()

	logger := middleware.GetLoggerFromCtx(ctx)

	idByCode, _, err := s.customerPass(ctx, true)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncInvoices), "error").Inc()
		return nil, err
	}

	feed, err := s.fetchFeed(ctx, false)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncInvoices), "error").Inc()
		return nil, err
	}

	existingIDs, err := s.invoiceRepo.ListInvoiceIDs(ctx)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncInvoices), "error").Inc()
		return nil, fmt.Errorf("failed to list stored invoice ids: %w", err)
	}
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	now := time.Now()
	result := &domain.SyncResult{Type: syncLabelInvoices, Fetched: len(feed.Invoices)}
	toWrite := make([]domain.Invoice, 0, len(feed.Invoices))

	for _, li := range feed.Invoices {
		customerID, ok := idByCode[li.CustomerCode]
		if !ok {
			logger.Warn("dropping invoice with unresolvable customer code",
				slog.String("invoice_id", li.InvoiceID),
				slog.String("customer_code", li.CustomerCode),
			)
			metrics.SyncRecords.WithLabelValues(string(domain.SyncInvoices), "skipped").Inc()
			continue
		}

		if _, seen := existing[li.InvoiceID]; seen {
			result.Updated++
			metrics.SyncRecords.WithLabelValues(string(domain.SyncInvoices), "updated").Inc()
		} else {
			result.Added++
			metrics.SyncRecords.WithLabelValues(string(domain.SyncInvoices), "added").Inc()
		}

		toWrite = append(toWrite, domain.Invoice{
			InvoiceID:   li.InvoiceID,
			CustomerID:  customerID,
			UserID:      s.syncUserID,
			Date:        li.Date,
			TotalAmount: li.TotalAmount,
			Items:       li.Items,
			Description: li.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     s.syncUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: s.syncUserID,
			},
		})
	}

	if err := s.invoiceRepo.BulkUpsertInvoices(ctx, toWrite); err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncInvoices), "error").Inc()
		return nil, fmt.Errorf("failed to write invoices: %w", err)
	}

	if err := s.recordSyncTimestamp(ctx, domain.SyncInvoices); err != nil {
		return nil, err
	}

	logger.Info("invoice sync pass completed",
		slog.Int("fetched", result.Fetched),
		slog.Int("added", result.Added),
		slog.Int("updated", result.Updated),
	)
	metrics.SyncRuns.WithLabelValues(string(domain.SyncInvoices), "ok").Inc()
	return result, nil
}

// SyncOffers merges the feed's offers into stored offers, matching by the
// human-facing offer number so a re-run updates rather than duplicates. As
// with invoices, an offer whose customer code cannot be resolved is dropped
// with a warning rather than stored half-linked.
func (s *ErpSyncService) SyncOffers(ctx context.Context) (*domain.SyncResult, error) {
	s.locks[domain.SyncOffers].Lock()
	defer s.locks[domain.SyncOffers].Unlock()

	timer := prometheus.NewTimer(metrics.SyncDuration.WithLabelValues(string(domain.SyncOffers)))
	defer timer.ObserveDuration()

	logger := middleware.GetLoggerFromCtx(ctx)

	idByCode, _, err := s.customerPass(ctx, true)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncOffers), "error").Inc()
		return nil, err
	}

	feed, err := s.fetchFeed(ctx, false)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncOffers), "error").Inc()
		return nil, err
	}

	offerNos := make([]string, 0, len(feed.Offers))
	for _, lo := range feed.Offers {
		offerNos = append(offerNos, lo.OfferNo)
	}
	existing, err := s.offerRepo.FindOffersByOfferNos(ctx, offerNos)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncOffers), "error").Inc()
		return nil, fmt.Errorf("failed to load offers for merge: %w", err)
	}
	byOfferNo := make(map[string]domain.Offer, len(existing))
	for _, o := range existing {
		byOfferNo[o.OfferNo] = o
	}

	now := time.Now()
	result := &domain.SyncResult{Type: syncLabelOffers, Fetched: len(feed.Offers)}
	toWrite := make([]domain.Offer, 0, len(feed.Offers))

	for _, lo := range feed.Offers {
		customerID, ok := idByCode[lo.CustomerCode]
		if !ok {
			logger.Warn("dropping offer with unresolvable customer code",
				slog.String("offer_no", lo.OfferNo),
				slog.String("customer_code", lo.CustomerCode),
			)
			metrics.SyncRecords.WithLabelValues(string(domain.SyncOffers), "skipped").Inc()
			continue
		}

		offer := domain.Offer{
			OfferNo:      lo.OfferNo,
			CustomerID:   customerID,
			ContactName:  lo.ContactName,
			ContactPhone: lo.ContactPhone,
			ContactEmail: lo.ContactEmail,
			PaymentTerm:  lo.PaymentTerm,
			OfferDate:    lo.OfferDate,
			Items:        lo.Items,
			Notes:        lo.Notes,
			Subtotal:     lo.Subtotal,
			Tax:          lo.Tax,
			GrandTotal:   lo.GrandTotal,
		}

		if current, ok := byOfferNo[lo.OfferNo]; ok {
			offer.OfferID = current.OfferID
			offer.AuditFields = current.AuditFields
			offer.LastUpdatedAt = now
			offer.LastUpdatedBy = s.syncUserID
			result.Updated++
			metrics.SyncRecords.WithLabelValues(string(domain.SyncOffers), "updated").Inc()
		} else {
			offer.OfferID = uuid.NewString()
			offer.AuditFields = domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     s.syncUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: s.syncUserID,
			}
			result.Added++
			metrics.SyncRecords.WithLabelValues(string(domain.SyncOffers), "added").Inc()
		}
		toWrite = append(toWrite, offer)
	}

	if err := s.offerRepo.BulkUpsertOffers(ctx, toWrite); err != nil {
		metrics.SyncRuns.WithLabelValues(string(domain.SyncOffers), "error").Inc()
		return nil, fmt.Errorf("failed to write offers: %w", err)
	}

	if err := s.recordSyncTimestamp(ctx, domain.SyncOffers); err != nil {
		return nil, err
	}

	logger.Info("offer sync pass completed",
		slog.Int("fetched", result.Fetched),
		slog.Int("added", result.Added),
		slog.Int("updated", result.Updated),
	)
	metrics.SyncRuns.WithLabelValues(string(domain.SyncOffers), "ok").Inc()
	return result, nil
}

// SyncStock is a deliberate no-op: the ledger feed carries no stock data.
// The pass still stamps its timestamp so the UI can show when it last ran.
func (s *ErpSyncService) SyncStock(ctx context.Context) (*domain.SyncResult, error) {
	s.locks[domain.SyncStock].Lock()
	defer s.locks[domain.SyncStock].Unlock()

	middleware.GetLoggerFromCtx(ctx).Warn("stock sync requested but the ledger feed has no stock data")

	if err := s.recordSyncTimestamp(ctx, domain.SyncStock); err != nil {
		return nil, err
	}
	metrics.SyncRuns.WithLabelValues(string(domain.SyncStock), "ok").Inc()
	return &domain.SyncResult{Type: syncLabelStock}, nil
}

// GetSettings returns the settings singleton, or its zero-value default
// before the first write.
func (s *ErpSyncService) GetSettings(ctx context.Context) (*domain.ErpSettings, error) {
	settings, err := s.settingsRepo.GetErpSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.ErpSettings{SettingsID: domain.ErpSettingsID}, nil
		}
		return nil, fmt.Errorf("failed to get erp settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces the editable connection fields, preserving the
// lastSync timestamps.
func (s *ErpSyncService) UpdateSettings(ctx context.Context, req dto.UpdateErpSettingsRequest) (*domain.ErpSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings.Server = req.Server
	settings.DatabasePath = req.DatabasePath
	settings.Username = req.Username
	settings.IsConnected = req.IsConnected

	if err := s.settingsRepo.SaveErpSettings(ctx, *settings); err != nil {
		return nil, fmt.Errorf("failed to save erp settings: %w", err)
	}
	return settings, nil
}

func (s *ErpSyncService) fetchFeed(ctx context.Context, refresh bool) (*domain.ParsedFeed, error) {
	if refresh {
		feed, err := s.feed.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch ledger feed: %w", err)
		}
		return feed, nil
	}
	feed, err := s.feed.Parsed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger feed: %w", err)
	}
	return feed, nil
}

func (s *ErpSyncService) recordSyncTimestamp(ctx context.Context, entity domain.SyncEntity) error {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	settings.SetLastSync(entity, time.Now())
	if err := s.settingsRepo.SaveErpSettings(ctx, *settings); err != nil {
		return fmt.Errorf("failed to record %s sync timestamp: %w", entity, err)
	}
	return nil
}
