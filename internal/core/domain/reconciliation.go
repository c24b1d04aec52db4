package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationType is the kind of reconciliation requested from the
// customer (current account statement, BA or BS form).
type ReconciliationType string

const (
	ReconciliationCurrentAccount ReconciliationType = "current_account"
	ReconciliationBA             ReconciliationType = "ba"
	ReconciliationBS             ReconciliationType = "bs"
)

// ReconciliationStatus is the lifecycle state of a reconciliation case.
// Both agreed and disagreed are terminal.
type ReconciliationStatus string

const (
	ReconciliationPending   ReconciliationStatus = "pending"
	ReconciliationAgreed    ReconciliationStatus = "agreed"
	ReconciliationDisagreed ReconciliationStatus = "disagreed"
)

// IsTerminal reports whether no further status transition is allowed.
func (s ReconciliationStatus) IsTerminal() bool {
	return s == ReconciliationAgreed || s == ReconciliationDisagreed
}

// Reconciliation is a per-customer, per-period agreement request comparing
// internal records against the ledger's reported totals.
type Reconciliation struct {
	ReconciliationID string               `json:"reconciliationID"` // Primary Key (UUID)
	CustomerID       string               `json:"customerID"`
	Type             ReconciliationType   `json:"type"`
	Period           string               `json:"period"` // "YYYY-MM"
	Amount           decimal.Decimal      `json:"amount"`
	Status           ReconciliationStatus `json:"status"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"` // UserID Reference
	LastEmailSent    *time.Time           `json:"lastEmailSent,omitempty"`
	CustomerResponse string               `json:"customerResponse,omitempty"`
	Notes            string               `json:"notes,omitempty"`
	AIAnalysis       string               `json:"aiAnalysis,omitempty"`
}
