package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationType mirrors the domain reconciliation kind enum.
type ReconciliationType string

// ReconciliationStatus mirrors the domain lifecycle enum.
type ReconciliationStatus string

// Reconciliation represents a reconciliation case row.
type Reconciliation struct {
	ReconciliationID string               `db:"reconciliation_id"`
	CustomerID       string               `db:"customer_id"`
	Type             ReconciliationType   `db:"recon_type"`
	Period           string               `db:"period"` // "YYYY-MM"
	Amount           decimal.Decimal      `db:"amount"`
	Status           ReconciliationStatus `db:"status"`
	CreatedAt        time.Time            `db:"created_at"`
	CreatedBy        string               `db:"created_by"`
	LastEmailSent    *time.Time           `db:"last_email_sent"` // Nullable
	CustomerResponse string               `db:"customer_response"`
	Notes            string               `db:"notes"`
	AIAnalysis       string               `db:"ai_analysis"`
}
