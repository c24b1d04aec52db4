package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferItem is one quoted line inside the jsonb items column.
type OfferItem struct {
	ItemID       string          `json:"id"`
	Description  string          `json:"cins"`
	Quantity     int             `json:"miktar"`
	Unit         string          `json:"birim"`
	UnitPrice    decimal.Decimal `json:"fiyat"`
	Amount       decimal.Decimal `json:"tutar"`
	DeliveryTime string          `json:"teslimSuresi"`
}

// Offer represents a quote row. OfferNo is the unique human-facing reference
// used to merge ledger-originated offers on resync.
type Offer struct {
	OfferID      string          `db:"offer_id"`
	OfferNo      string          `db:"offer_no"`
	CustomerID   string          `db:"customer_id"`
	ContactName  string          `db:"contact_name"`
	ContactPhone string          `db:"contact_phone"`
	ContactEmail string          `db:"contact_email"`
	PaymentTerm  string          `db:"payment_term"`
	OfferDate    time.Time       `db:"offer_date"`
	Items        []OfferItem     `db:"items"` // jsonb
	Notes        string          `db:"notes"`
	Subtotal     decimal.Decimal `db:"subtotal"`
	Tax          decimal.Decimal `db:"tax"`
	GrandTotal   decimal.Decimal `db:"grand_total"`
	AuditFields
}
