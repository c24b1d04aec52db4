package dto

import (
	"time"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OfferItemRequest is one quoted line of a new offer. Amount is computed
// server-side from quantity and unit price.
type OfferItemRequest struct {
	Description  string          `json:"cins" binding:"required"`
	Quantity     int             `json:"miktar" binding:"required,gt=0"`
	Unit         string          `json:"birim" binding:"required"`
	UnitPrice    decimal.Decimal `json:"fiyat" binding:"required"`
	DeliveryTime string          `json:"teslimSuresi"`
}

// CreateOfferRequest defines the data needed to create an offer.
type CreateOfferRequest struct {
	CustomerID   string             `json:"customerID" binding:"required"`
	ContactName  string             `json:"contactName"`
	ContactPhone string             `json:"contactPhone"`
	ContactEmail string             `json:"contactEmail" binding:"omitempty,email"`
	PaymentTerm  string             `json:"paymentTerm"`
	Items        []OfferItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes        string             `json:"notes"`
}

// BulkCreateOffersRequest carries a batch of offers created in one call,
// e.g. quoting several contacts of the same customer at once.
type BulkCreateOffersRequest struct {
	Offers []CreateOfferRequest `json:"offers" binding:"required,min=1,dive"`
}

// OfferResponse defines the data returned for an offer.
type OfferResponse struct {
	OfferID      string             `json:"offerID"`
	OfferNo      string             `json:"teklifNo"`
	CustomerID   string             `json:"customerID"`
	ContactName  string             `json:"contactName,omitempty"`
	ContactPhone string             `json:"contactPhone,omitempty"`
	ContactEmail string             `json:"contactEmail,omitempty"`
	PaymentTerm  string             `json:"paymentTerm,omitempty"`
	OfferDate    time.Time          `json:"offerDate"`
	Items        []domain.OfferItem `json:"items"`
	Notes        string             `json:"notes,omitempty"`
	Subtotal     decimal.Decimal    `json:"toplam"`
	Tax          decimal.Decimal    `json:"kdv"`
	GrandTotal   decimal.Decimal    `json:"genelToplam"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ToOfferResponse converts a domain.Offer to its response DTO.
func ToOfferResponse(o *domain.Offer) OfferResponse {
	return OfferResponse{
		OfferID:      o.OfferID,
		OfferNo:      o.OfferNo,
		CustomerID:   o.CustomerID,
		ContactName:  o.ContactName,
		ContactPhone: o.ContactPhone,
		ContactEmail: o.ContactEmail,
		PaymentTerm:  o.PaymentTerm,
		OfferDate:    o.OfferDate,
		Items:        o.Items,
		Notes:        o.Notes,
		Subtotal:     o.Subtotal,
		Tax:          o.Tax,
		GrandTotal:   o.GrandTotal,
		CreatedAt:    o.CreatedAt,
	}
}

// ToListOfferResponse converts a slice of domain offers to DTOs.
func ToListOfferResponse(offers []domain.Offer) []OfferResponse {
	res := make([]OfferResponse, len(offers))
	for i, o := range offers {
		res[i] = ToOfferResponse(&o)
	}
	return res
}
