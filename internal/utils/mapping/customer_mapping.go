package mapping

import (
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	var code *string
	if d.CurrentCode != "" {
		c := d.CurrentCode
		code = &c
	}
	return models.Customer{
		CustomerID:      d.CustomerID,
		Name:            d.Name,
		CommercialTitle: d.CommercialTitle,
		CurrentCode:     code,
		Status:          models.CustomerStatus(d.Status),
		Address:         d.Address,
		Country:         d.Country,
		City:            d.City,
		District:        d.District,
		PostalCode:      d.PostalCode,
		Phone:           d.Phone,
		Email:           d.Email,
		TaxOffice:       d.TaxOffice,
		TaxNumber:       d.TaxNumber,
		Notes:           d.Notes,
		AISentiment:     toModelAnnotation(d.AISentiment),
		AIOpportunity:   toModelAnnotation(d.AIOpportunity),
		AINextStep:      toModelAnnotation(d.AINextStep),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	code := ""
	if m.CurrentCode != nil {
		code = *m.CurrentCode
	}
	return domain.Customer{
		CustomerID:      m.CustomerID,
		Name:            m.Name,
		CommercialTitle: m.CommercialTitle,
		CurrentCode:     code,
		Status:          domain.CustomerStatus(m.Status),
		Address:         m.Address,
		Country:         m.Country,
		City:            m.City,
		District:        m.District,
		PostalCode:      m.PostalCode,
		Phone:           m.Phone,
		Email:           m.Email,
		TaxOffice:       m.TaxOffice,
		TaxNumber:       m.TaxNumber,
		Notes:           m.Notes,
		AISentiment:     toDomainAnnotation(m.AISentiment),
		AIOpportunity:   toDomainAnnotation(m.AIOpportunity),
		AINextStep:      toDomainAnnotation(m.AINextStep),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of model Customers to domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}

func toModelAnnotation(d *domain.AIAnnotation) *models.AIAnnotation {
	if d == nil {
		return nil
	}
	return &models.AIAnnotation{Result: d.Result, Timestamp: d.Timestamp}
}

func toDomainAnnotation(m *models.AIAnnotation) *domain.AIAnnotation {
	if m == nil {
		return nil
	}
	return &domain.AIAnnotation{Result: m.Result, Timestamp: m.Timestamp}
}
