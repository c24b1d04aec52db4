package mapping

import (
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/models"
)

// ToModelOffer converts a domain Offer to a model Offer
func ToModelOffer(d domain.Offer) models.Offer {
	items := make([]models.OfferItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.OfferItem{
			ItemID:       it.ItemID,
			Description:  it.Description,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			UnitPrice:    it.UnitPrice,
			Amount:       it.Amount,
			DeliveryTime: it.DeliveryTime,
		}
	}
	return models.Offer{
		OfferID:      d.OfferID,
		OfferNo:      d.OfferNo,
		CustomerID:   d.CustomerID,
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		ContactEmail: d.ContactEmail,
		PaymentTerm:  d.PaymentTerm,
		OfferDate:    d.OfferDate,
		Items:        items,
		Notes:        d.Notes,
		Subtotal:     d.Subtotal,
		Tax:          d.Tax,
		GrandTotal:   d.GrandTotal,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOffer converts a model Offer to a domain Offer
func ToDomainOffer(m models.Offer) domain.Offer {
	items := make([]domain.OfferItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.OfferItem{
			ItemID:       it.ItemID,
			Description:  it.Description,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			UnitPrice:    it.UnitPrice,
			Amount:       it.Amount,
			DeliveryTime: it.DeliveryTime,
		}
	}
	return domain.Offer{
		OfferID:      m.OfferID,
		OfferNo:      m.OfferNo,
		CustomerID:   m.CustomerID,
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		PaymentTerm:  m.PaymentTerm,
		OfferDate:    m.OfferDate,
		Items:        items,
		Notes:        m.Notes,
		Subtotal:     m.Subtotal,
		Tax:          m.Tax,
		GrandTotal:   m.GrandTotal,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOfferSlice converts a slice of model Offers to domain Offers
func ToDomainOfferSlice(ms []models.Offer) []domain.Offer {
	ds := make([]domain.Offer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOffer(m)
	}
	return ds
}
