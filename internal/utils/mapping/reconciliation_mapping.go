package mapping

import (
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/models"
)

// ToModelReconciliation converts a domain Reconciliation to a model Reconciliation
func ToModelReconciliation(d domain.Reconciliation) models.Reconciliation {
	return models.Reconciliation{
		ReconciliationID: d.ReconciliationID,
		CustomerID:       d.CustomerID,
		Type:             models.ReconciliationType(d.Type),
		Period:           d.Period,
		Amount:           d.Amount,
		Status:           models.ReconciliationStatus(d.Status),
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
		LastEmailSent:    d.LastEmailSent,
		CustomerResponse: d.CustomerResponse,
		Notes:            d.Notes,
		AIAnalysis:       d.AIAnalysis,
	}
}

// ToDomainReconciliation converts a model Reconciliation to a domain Reconciliation
func ToDomainReconciliation(m models.Reconciliation) domain.Reconciliation {
	return domain.Reconciliation{
		ReconciliationID: m.ReconciliationID,
		CustomerID:       m.CustomerID,
		Type:             domain.ReconciliationType(m.Type),
		Period:           m.Period,
		Amount:           m.Amount,
		Status:           domain.ReconciliationStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
		LastEmailSent:    m.LastEmailSent,
		CustomerResponse: m.CustomerResponse,
		Notes:            m.Notes,
		AIAnalysis:       m.AIAnalysis,
	}
}

// ToDomainReconciliationSlice converts a slice of model Reconciliations to domain Reconciliations
func ToDomainReconciliationSlice(ms []models.Reconciliation) []domain.Reconciliation {
	ds := make([]domain.Reconciliation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReconciliation(m)
	}
	return ds
}
