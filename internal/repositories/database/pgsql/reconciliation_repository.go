package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	"github.com/cnkcrm/crm_backend/internal/models"
	"github.com/cnkcrm/crm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reconciliationColumns = `reconciliation_id, customer_id, recon_type, period, amount, status, created_at, created_by, last_email_sent, customer_response, notes, ai_analysis`

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryWithTx {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReconciliationRepositoryWithTx = (*PgxReconciliationRepository)(nil)

// SaveReconciliation inserts a new reconciliation case.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	modelRec := mapping.ToModelReconciliation(rec)
	query := `
		INSERT INTO reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRec.ReconciliationID,
		modelRec.CustomerID,
		modelRec.Type,
		modelRec.Period,
		modelRec.Amount,
		modelRec.Status,
		modelRec.CreatedAt,
		modelRec.CreatedBy,
		modelRec.LastEmailSent,
		modelRec.CustomerResponse,
		modelRec.Notes,
		modelRec.AIAnalysis,
	)
	if err != nil {
		return fmt.Errorf("failed to save reconciliation %s: %w", modelRec.ReconciliationID, err)
	}
	return nil
}

// UpdateReconciliation persists the mutable fields of an existing case.
func (r *PgxReconciliationRepository) UpdateReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	modelRec := mapping.ToModelReconciliation(rec)
	query := `
		UPDATE reconciliations SET
			status = $2,
			last_email_sent = $3,
			customer_response = $4,
			notes = $5,
			ai_analysis = $6
		WHERE reconciliation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelRec.ReconciliationID,
		modelRec.Status,
		modelRec.LastEmailSent,
		modelRec.CustomerResponse,
		modelRec.Notes,
		modelRec.AIAnalysis,
	)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation %s: %w", modelRec.ReconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindReconciliationByID retrieves a case by its primary key.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations WHERE reconciliation_id = $1;`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliation %s: %w", reconciliationID, err)
	}
	modelRec, err := pgx.CollectOneRow(rows, scanReconciliation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reconciliation by id %s: %w", reconciliationID, err)
	}
	domainRec := mapping.ToDomainReconciliation(modelRec)
	return &domainRec, nil
}

// ListReconciliations retrieves cases ordered by creation time descending.
func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, limit int, offset int) ([]domain.Reconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliations: %w", err)
	}
	modelRecs, err := pgx.CollectRows(rows, scanReconciliation)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reconciliations: %w", err)
	}
	return mapping.ToDomainReconciliationSlice(modelRecs), nil
}

func scanReconciliation(row pgx.CollectableRow) (models.Reconciliation, error) {
	var rec models.Reconciliation
	err := row.Scan(
		&rec.ReconciliationID,
		&rec.CustomerID,
		&rec.Type,
		&rec.Period,
		&rec.Amount,
		&rec.Status,
		&rec.CreatedAt,
		&rec.CreatedBy,
		&rec.LastEmailSent,
		&rec.CustomerResponse,
		&rec.Notes,
		&rec.AIAnalysis,
	)
	return rec, err
}
