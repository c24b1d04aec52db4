package services

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/dto"
)

// CustomerSvcFacade exposes customer CRUD and the AI annotation slots.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	// AnalyzeCustomer runs the opaque external analysis for the given kind
	// and persists the returned text into the customer's annotation slot.
	AnalyzeCustomer(ctx context.Context, customerID string, kind domain.AnalysisKind) (*domain.Customer, error)
}
