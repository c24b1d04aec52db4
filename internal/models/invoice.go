package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one invoice line inside the jsonb items column.
type InvoiceItem struct {
	StockID   string          `json:"stockId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Invoice represents a purchase invoice row. The invoice_id column holds the
// ledger's own invoice number, which keeps resyncs idempotent at the
// constraint level.
type Invoice struct {
	InvoiceID   string          `db:"invoice_id"`
	CustomerID  string          `db:"customer_id"`
	UserID      string          `db:"user_id"`
	Date        time.Time       `db:"invoice_date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Items       []InvoiceItem   `db:"items"` // jsonb
	Description string          `db:"description"`
	AuditFields
}
