package repositories

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
)

// ReconciliationRepository is the persistence port for reconciliation cases.
type ReconciliationRepository interface {
	SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error
	UpdateReconciliation(ctx context.Context, rec domain.Reconciliation) error
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error)
	ListReconciliations(ctx context.Context, limit int, offset int) ([]domain.Reconciliation, error)
}

// ReconciliationRepositoryWithTx combines reconciliation operations with transaction support
type ReconciliationRepositoryWithTx interface {
	ReconciliationRepository
	RepositoryWithTx
}
