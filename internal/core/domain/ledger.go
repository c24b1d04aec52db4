package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerCustomer is the transient customer view seeded from the first
// qualifying feed row for a given current code. It is keyed by CurrentCode
// until identity resolution assigns a persistent id.
type LedgerCustomer struct {
	CurrentCode     string
	Name            string
	CommercialTitle string
	City            string
	District        string
	Country         string
	TaxOffice       string
	TaxNumber       string
}

// LedgerInvoice is a parsed purchase invoice row, still keyed by the ledger's
// customer code rather than a resolved identity.
type LedgerInvoice struct {
	InvoiceID    string
	CustomerCode string
	Date         time.Time
	TotalAmount  decimal.Decimal
	Description  string
	Items        []InvoiceItem
}

// LedgerOffer is a synthetic offer produced alongside a feed parse, keyed by
// customer code and merge-matched by OfferNo during sync.
type LedgerOffer struct {
	CustomerCode string
	OfferNo      string
	ContactName  string
	ContactPhone string
	ContactEmail string
	PaymentTerm  string
	OfferDate    time.Time
	Items        []OfferItem
	Notes        string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	GrandTotal   decimal.Decimal
}

// ParsedFeed is the normalized result of one feed parse.
type ParsedFeed struct {
	Customers map[string]LedgerCustomer
	Invoices  []LedgerInvoice
	Offers    []LedgerOffer
}
