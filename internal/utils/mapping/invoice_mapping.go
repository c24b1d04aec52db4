package mapping

import (
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	items := make([]models.InvoiceItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.InvoiceItem{
			StockID:   it.StockID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return models.Invoice{
		InvoiceID:   d.InvoiceID,
		CustomerID:  d.CustomerID,
		UserID:      d.UserID,
		Date:        d.Date,
		TotalAmount: d.TotalAmount,
		Items:       items,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	items := make([]domain.InvoiceItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.InvoiceItem{
			StockID:   it.StockID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return domain.Invoice{
		InvoiceID:   m.InvoiceID,
		CustomerID:  m.CustomerID,
		UserID:      m.UserID,
		Date:        m.Date,
		TotalAmount: m.TotalAmount,
		Items:       items,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
