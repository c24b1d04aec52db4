package services

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/dto"
)

// ReconciliationSvcFacade manages reconciliation cases: period-bounded
// aggregation against the ledger view, the pending→agreed|disagreed
// lifecycle, and AI disagreement analysis.
type ReconciliationSvcFacade interface {
	CreateReconciliation(ctx context.Context, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.Reconciliation, error)
	GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error)
	ListReconciliations(ctx context.Context, limit int, offset int) ([]domain.Reconciliation, error)
	// PeriodInvoices returns the ledger invoices backing the case's amount,
	// with the case's resolved customer id substituted in.
	PeriodInvoices(ctx context.Context, reconciliationID string) (*domain.Customer, []domain.Invoice, error)
	Respond(ctx context.Context, reconciliationID string, req dto.ReconciliationResponseRequest) (*domain.Reconciliation, error)
	AnalyzeDisagreement(ctx context.Context, reconciliationID string, customerResponse string) (*domain.Reconciliation, error)
	MarkEmailSent(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error)
}

// AnalyzerSvcFacade is the opaque external analysis collaborator.
type AnalyzerSvcFacade interface {
	Analyze(ctx context.Context, kind string, payload any) (*domain.AnalysisOutcome, error)
}
