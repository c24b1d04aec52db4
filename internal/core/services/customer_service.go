package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/cnkcrm/crm_backend/internal/middleware"
	"github.com/google/uuid"
)

// CustomerService provides business logic for customer identities and their
// AI annotation slots.
type CustomerService struct {
	customerRepo portsrepo.CustomerRepository
	analyzer     portssvc.AnalyzerSvcFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepository, analyzer portssvc.AnalyzerSvcFacade) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, analyzer: analyzer}
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

// CreateCustomer creates a customer from user input.
func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	now := time.Now()
	customer := domain.Customer{
		CustomerID:      uuid.NewString(),
		Name:            req.Name,
		CommercialTitle: req.CommercialTitle,
		CurrentCode:     req.CurrentCode,
		Status:          domain.CustomerActive,
		Address:         req.Address,
		Country:         req.Country,
		City:            req.City,
		District:        req.District,
		PostalCode:      req.PostalCode,
		Phone:           req.Phone,
		Email:           req.Email,
		TaxOffice:       req.TaxOffice,
		TaxNumber:       req.TaxNumber,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

// GetCustomerByID retrieves a customer by id.
func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers retrieves a page of customers.
func (s *CustomerService) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

// UpdateCustomer applies a partial update to a customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s for update: %w", customerID, err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.CommercialTitle != nil {
		customer.CommercialTitle = *req.CommercialTitle
	}
	if req.Status != nil {
		customer.Status = *req.Status
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Country != nil {
		customer.Country = *req.Country
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.District != nil {
		customer.District = *req.District
	}
	if req.PostalCode != nil {
		customer.PostalCode = *req.PostalCode
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.TaxOffice != nil {
		customer.TaxOffice = *req.TaxOffice
	}
	if req.TaxNumber != nil {
		customer.TaxNumber = *req.TaxNumber
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = updaterUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	return customer, nil
}

// DeleteCustomer removes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	return nil
}

// AnalyzeCustomer runs the external analysis for the given kind and persists
// the returned text into the matching annotation slot. An unsuccessful
// analysis is a validation error; the slot keeps its previous value.
func (s *CustomerService) AnalyzeCustomer(ctx context.Context, customerID string, kind domain.AnalysisKind) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch kind {
	case domain.AnalysisSentiment, domain.AnalysisOpportunity, domain.AnalysisNextStep:
	default:
		return nil, fmt.Errorf("%w: unknown analysis kind %q", apperrors.ErrValidation, kind)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s for analysis: %w", customerID, err)
	}

	outcome, err := s.analyzer.Analyze(ctx, string(kind), customer)
	if err != nil {
		return nil, fmt.Errorf("analysis call failed for customer %s: %w", customerID, err)
	}
	if !outcome.Success {
		logger.Warn("analysis declined",
			slog.String("customer_id", customerID),
			slog.String("kind", string(kind)),
		)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, outcome.Text)
	}

	customer.SetAnnotation(kind, domain.AIAnnotation{Result: outcome.Text, Timestamp: time.Now()})
	customer.LastUpdatedAt = time.Now()

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to persist analysis for customer %s: %w", customerID, err)
	}
	return customer, nil
}
