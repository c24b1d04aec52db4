package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is a single line of an invoice. Ledger-sourced invoices always
// carry exactly one synthetic line with a placeholder stock id.
type InvoiceItem struct {
	StockID   string          `json:"stockId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Invoice is a persisted purchase invoice. The InvoiceID is the ledger's own
// invoice number, used directly as the stored key so resyncs are idempotent.
type Invoice struct {
	InvoiceID   string          `json:"invoiceID"`
	CustomerID  string          `json:"customerID"` // Resolved identity, required for persistence
	UserID      string          `json:"userID"`     // Attribution; synthetic for system syncs
	Date        time.Time       `json:"date"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []InvoiceItem   `json:"items"`
	Description string          `json:"description"`
	AuditFields
}
