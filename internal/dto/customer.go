package dto

import (
	"time"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a customer from the
// UI. CurrentCode is optional: identities created here may never appear in
// the ledger.
type CreateCustomerRequest struct {
	Name            string `json:"name" binding:"required"`
	CommercialTitle string `json:"commercialTitle"`
	CurrentCode     string `json:"currentCode"`
	Address         string `json:"address"`
	Country         string `json:"country"`
	City            string `json:"city"`
	District        string `json:"district"`
	PostalCode      string `json:"postalCode"`
	Phone           string `json:"phone"`
	Email           string `json:"email" binding:"omitempty,email"`
	TaxOffice       string `json:"taxOffice"`
	TaxNumber       string `json:"taxNumber"`
	Notes           string `json:"notes"`
}

// UpdateCustomerRequest carries a partial update; nil fields are left
// untouched.
type UpdateCustomerRequest struct {
	Name            *string                `json:"name,omitempty"`
	CommercialTitle *string                `json:"commercialTitle,omitempty"`
	Status          *domain.CustomerStatus `json:"status,omitempty" binding:"omitempty,oneof=active passive"`
	Address         *string                `json:"address,omitempty"`
	Country         *string                `json:"country,omitempty"`
	City            *string                `json:"city,omitempty"`
	District        *string                `json:"district,omitempty"`
	PostalCode      *string                `json:"postalCode,omitempty"`
	Phone           *string                `json:"phone,omitempty"`
	Email           *string                `json:"email,omitempty" binding:"omitempty,email"`
	TaxOffice       *string                `json:"taxOffice,omitempty"`
	TaxNumber       *string                `json:"taxNumber,omitempty"`
	Notes           *string                `json:"notes,omitempty"`
}

// AIAnnotationResponse mirrors one analysis slot.
type AIAnnotationResponse struct {
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID      string                `json:"customerID"`
	Name            string                `json:"name"`
	CommercialTitle string                `json:"commercialTitle"`
	CurrentCode     string                `json:"currentCode,omitempty"`
	Status          domain.CustomerStatus `json:"status"`
	Address         string                `json:"address,omitempty"`
	Country         string                `json:"country,omitempty"`
	City            string                `json:"city,omitempty"`
	District        string                `json:"district,omitempty"`
	PostalCode      string                `json:"postalCode,omitempty"`
	Phone           string                `json:"phone,omitempty"`
	Email           string                `json:"email,omitempty"`
	TaxOffice       string                `json:"taxOffice,omitempty"`
	TaxNumber       string                `json:"taxNumber,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	AISentiment     *AIAnnotationResponse `json:"aiSentimentAnalysis,omitempty"`
	AIOpportunity   *AIAnnotationResponse `json:"aiOpportunityAnalysis,omitempty"`
	AINextStep      *AIAnnotationResponse `json:"aiNextStepSuggestion,omitempty"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	resp := CustomerResponse{
		CustomerID:      c.CustomerID,
		Name:            c.Name,
		CommercialTitle: c.CommercialTitle,
		CurrentCode:     c.CurrentCode,
		Status:          c.Status,
		Address:         c.Address,
		Country:         c.Country,
		City:            c.City,
		District:        c.District,
		PostalCode:      c.PostalCode,
		Phone:           c.Phone,
		Email:           c.Email,
		TaxOffice:       c.TaxOffice,
		TaxNumber:       c.TaxNumber,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
	}
	resp.AISentiment = toAnnotationResponse(c.AISentiment)
	resp.AIOpportunity = toAnnotationResponse(c.AIOpportunity)
	resp.AINextStep = toAnnotationResponse(c.AINextStep)
	return resp
}

func toAnnotationResponse(a *domain.AIAnnotation) *AIAnnotationResponse {
	if a == nil {
		return nil
	}
	return &AIAnnotationResponse{Result: a.Result, Timestamp: a.Timestamp}
}

// ToListCustomerResponse converts a slice of domain customers to DTOs.
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return res
}
