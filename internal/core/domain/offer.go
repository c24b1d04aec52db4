package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferTaxRate is the VAT rate applied to every offer (20%).
var OfferTaxRate = decimal.NewFromFloat(0.20)

// OfferItem is a single quoted line of an offer.
type OfferItem struct {
	ItemID       string          `json:"id"`
	Description  string          `json:"cins"`
	Quantity     int             `json:"miktar"`
	Unit         string          `json:"birim"`
	UnitPrice    decimal.Decimal `json:"fiyat"`
	Amount       decimal.Decimal `json:"tutar"`
	DeliveryTime string          `json:"teslimSuresi"`
}

// Offer is a quote issued to a customer. OfferNo is the human-facing
// reference (TEK-<6 digits>, plus a 2-char disambiguator for bulk creation);
// ledger-originated offers are merge-matched by it on resync.
type Offer struct {
	OfferID      string          `json:"offerID"` // Primary Key (UUID)
	OfferNo      string          `json:"teklifNo"`
	CustomerID   string          `json:"customerID"`
	ContactName  string          `json:"contactName"`
	ContactPhone string          `json:"contactPhone"`
	ContactEmail string          `json:"contactEmail"`
	PaymentTerm  string          `json:"paymentTerm"`
	OfferDate    time.Time       `json:"offerDate"`
	Items        []OfferItem     `json:"items"`
	Notes        string          `json:"notes"`
	Subtotal     decimal.Decimal `json:"toplam"`
	Tax          decimal.Decimal `json:"kdv"`
	GrandTotal   decimal.Decimal `json:"genelToplam"`
	AuditFields
}

// ComputeTotals recalculates subtotal, tax (20%) and grand total from the
// item amounts.
func (o *Offer) ComputeTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	o.Subtotal = subtotal
	o.Tax = subtotal.Mul(OfferTaxRate)
	o.GrandTotal = subtotal.Add(o.Tax)
}
