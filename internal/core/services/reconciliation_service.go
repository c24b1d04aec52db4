package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/cnkcrm/crm_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationService manages reconciliation cases. The case amount is
// always aggregated from the ledger view of the customer's period, never
// taken from the caller.
type ReconciliationService struct {
	reconciliationRepo portsrepo.ReconciliationRepository
	customerRepo       portsrepo.CustomerRepository
	feed               portssvc.ErpFeedReader
	analyzer           portssvc.AnalyzerSvcFacade
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	reconciliationRepo portsrepo.ReconciliationRepository,
	customerRepo portsrepo.CustomerRepository,
	feed portssvc.ErpFeedReader,
	analyzer portssvc.AnalyzerSvcFacade,
) *ReconciliationService {
	return &ReconciliationService{
		reconciliationRepo: reconciliationRepo,
		customerRepo:       customerRepo,
		feed:               feed,
		analyzer:           analyzer,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*ReconciliationService)(nil)

// CreateReconciliation opens a pending case for one customer and one
// calendar month. The customer must carry a ledger code; the amount is the
// sum of the customer's ledger invoices within the period.
func (s *ReconciliationService) CreateReconciliation(ctx context.Context, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.Reconciliation, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s for reconciliation: %w", req.CustomerID, err)
	}
	if customer.CurrentCode == "" {
		return nil, fmt.Errorf("%w: customer %s has no ledger code, reconciliation amounts cannot be derived", apperrors.ErrValidation, req.CustomerID)
	}

	invoices, err := s.feed.InvoicesForPeriod(ctx, customer.CurrentCode, req.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period %s for customer %s: %w", req.Period, req.CustomerID, err)
	}

	amount := decimal.Zero
	for _, inv := range invoices {
		amount = amount.Add(inv.TotalAmount)
	}

	rec := domain.Reconciliation{
		ReconciliationID: uuid.NewString(),
		CustomerID:       req.CustomerID,
		Type:             req.Type,
		Period:           req.Period,
		Amount:           amount,
		Status:           domain.ReconciliationPending,
		CreatedAt:        time.Now(),
		CreatedBy:        creatorUserID,
		Notes:            req.Notes,
	}

	if err := s.reconciliationRepo.SaveReconciliation(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("reconciliation case opened",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.String("customer_id", rec.CustomerID),
		slog.String("period", rec.Period),
		slog.Int("invoice_count", len(invoices)),
	)
	return &rec, nil
}

// GetReconciliationByID retrieves a case by id.
func (s *ReconciliationService) GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation %s: %w", reconciliationID, err)
	}
	return rec, nil
}

// ListReconciliations retrieves a page of cases, newest first.
func (s *ReconciliationService) ListReconciliations(ctx context.Context, limit int, offset int) ([]domain.Reconciliation, error) {
	recs, err := s.reconciliationRepo.ListReconciliations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	if recs == nil {
		return []domain.Reconciliation{}, nil
	}
	return recs, nil
}

// PeriodInvoices returns the ledger invoices behind the case's amount, with
// the case's resolved customer id substituted for the blank ledger ids.
func (s *ReconciliationService) PeriodInvoices(ctx context.Context, reconciliationID string) (*domain.Customer, []domain.Invoice, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get reconciliation %s: %w", reconciliationID, err)
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, rec.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find customer %s for reconciliation %s: %w", rec.CustomerID, reconciliationID, err)
	}

	invoices, err := s.feed.InvoicesForPeriod(ctx, customer.CurrentCode, rec.Period)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to aggregate period %s: %w", rec.Period, err)
	}
	for i := range invoices {
		invoices[i].CustomerID = customer.CustomerID
	}
	return customer, invoices, nil
}

// Respond records the customer's answer. Terminal cases reject further
// transitions.
func (s *ReconciliationService) Respond(ctx context.Context, reconciliationID string, req dto.ReconciliationResponseRequest) (*domain.Reconciliation, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation %s: %w", reconciliationID, err)
	}
	if rec.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: reconciliation %s is already %s", apperrors.ErrValidation, reconciliationID, rec.Status)
	}

	rec.Status = req.Status
	rec.CustomerResponse = req.CustomerResponse

	if err := s.reconciliationRepo.UpdateReconciliation(ctx, *rec); err != nil {
		return nil, fmt.Errorf("failed to update reconciliation %s: %w", reconciliationID, err)
	}
	return rec, nil
}

// AnalyzeDisagreement runs the external analysis over a disagreement text
// and stores the result on the case.
func (s *ReconciliationService) AnalyzeDisagreement(ctx context.Context, reconciliationID string, customerResponse string) (*domain.Reconciliation, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation %s: %w", reconciliationID, err)
	}

	outcome, err := s.analyzer.Analyze(ctx, "reconciliation_disagreement", map[string]any{
		"reconciliation":   rec,
		"customerResponse": customerResponse,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis call failed for reconciliation %s: %w", reconciliationID, err)
	}
	if !outcome.Success {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, outcome.Text)
	}

	rec.CustomerResponse = customerResponse
	rec.AIAnalysis = outcome.Text

	if err := s.reconciliationRepo.UpdateReconciliation(ctx, *rec); err != nil {
		return nil, fmt.Errorf("failed to persist analysis for reconciliation %s: %w", reconciliationID, err)
	}
	return rec, nil
}

// MarkEmailSent stamps the time a reconciliation email went out.
func (s *ReconciliationService) MarkEmailSent(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation %s: %w", reconciliationID, err)
	}

	now := time.Now()
	rec.LastEmailSent = &now

	if err := s.reconciliationRepo.UpdateReconciliation(ctx, *rec); err != nil {
		return nil, fmt.Errorf("failed to update reconciliation %s: %w", reconciliationID, err)
	}
	return rec, nil
}
