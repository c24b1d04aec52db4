package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/core/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UpdateReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) ListReconciliations(ctx context.Context, limit int, offset int) ([]domain.Reconciliation, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reconciliation), args.Error(1)
}

// --- Test Suite ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockRecRepo      *MockReconciliationRepository
	mockCustomerRepo *MockCustomerRepository
	mockFeed         *MockFeedReader
	mockAnalyzer     *MockAnalyzer
	service          portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockRecRepo = new(MockReconciliationRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockFeed = new(MockFeedReader)
	suite.mockAnalyzer = new(MockAnalyzer)
	suite.service = services.NewReconciliationService(
		suite.mockRecRepo,
		suite.mockCustomerRepo,
		suite.mockFeed,
		suite.mockAnalyzer,
	)
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestCreateReconciliation_AggregatesPeriodAmount() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	customerID := uuid.NewString()
	req := dto.CreateReconciliationRequest{
		CustomerID: customerID,
		Type:       domain.ReconciliationCurrentAccount,
		Period:     "2025-07",
	}
	customer := &domain.Customer{CustomerID: customerID, CurrentCode: "CR01332"}
	invoices := []domain.Invoice{
		{InvoiceID: "BSF2025000000001", TotalAmount: decimal.NewFromFloat(1234.56)},
		{InvoiceID: "BSF2025000000002", TotalAmount: decimal.NewFromFloat(765.44)},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(customer, nil).Once()
	suite.mockFeed.On("InvoicesForPeriod", ctx, "CR01332", "2025-07").Return(invoices, nil).Once()
	suite.mockRecRepo.On("SaveReconciliation", ctx, mock.MatchedBy(func(r domain.Reconciliation) bool {
		return r.ReconciliationID != "" &&
			r.CustomerID == customerID &&
			r.Period == "2025-07" &&
			r.Amount.Equal(decimal.NewFromInt(2000)) &&
			r.Status == domain.ReconciliationPending &&
			r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	rec, err := suite.service.CreateReconciliation(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rec)
	suite.True(rec.Amount.Equal(decimal.NewFromInt(2000)))
	suite.Equal(domain.ReconciliationPending, rec.Status)
	suite.mockRecRepo.AssertExpectations(suite.T())
	suite.mockFeed.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCreateReconciliation_NoLedgerCode() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateReconciliationRequest{
		CustomerID: customerID,
		Type:       domain.ReconciliationBA,
		Period:     "2025-07",
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()

	rec, err := suite.service.CreateReconciliation(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFeed.AssertNotCalled(suite.T(), "InvoicesForPeriod", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRecRepo.AssertNotCalled(suite.T(), "SaveReconciliation", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestPeriodInvoices_SubstitutesCustomerID() {
	ctx := context.Background()
	recID := uuid.NewString()
	customerID := uuid.NewString()
	rec := &domain.Reconciliation{ReconciliationID: recID, CustomerID: customerID, Period: "2025-07"}
	customer := &domain.Customer{CustomerID: customerID, CurrentCode: "CR01332"}
	invoices := []domain.Invoice{
		{InvoiceID: "BSF2025000000001", TotalAmount: decimal.NewFromFloat(1234.56)},
	}

	suite.mockRecRepo.On("FindReconciliationByID", ctx, recID).Return(rec, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(customer, nil).Once()
	suite.mockFeed.On("InvoicesForPeriod", ctx, "CR01332", "2025-07").Return(invoices, nil).Once()

	gotCustomer, gotInvoices, err := suite.service.PeriodInvoices(ctx, recID)

	suite.Require().NoError(err)
	suite.Equal(customer, gotCustomer)
	suite.Require().Len(gotInvoices, 1)
	suite.Equal(customerID, gotInvoices[0].CustomerID)
	suite.mockFeed.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRespond_Success() {
	ctx := context.Background()
	recID := uuid.NewString()
	rec := &domain.Reconciliation{ReconciliationID: recID, Status: domain.ReconciliationPending}
	req := dto.ReconciliationResponseRequest{
		Status:           domain.ReconciliationDisagreed,
		CustomerResponse: "Temmuz bakiyesi kayıtlarımızla uyuşmuyor",
	}

	suite.mockRecRepo.On("FindReconciliationByID", ctx, recID).Return(rec, nil).Once()
	suite.mockRecRepo.On("UpdateReconciliation", ctx, mock.MatchedBy(func(r domain.Reconciliation) bool {
		return r.Status == domain.ReconciliationDisagreed &&
			r.CustomerResponse == req.CustomerResponse
	})).Return(nil).Once()

	updated, err := suite.service.Respond(ctx, recID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationDisagreed, updated.Status)
	suite.mockRecRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRespond_TerminalStatusRejected() {
	ctx := context.Background()
	recID := uuid.NewString()
	rec := &domain.Reconciliation{ReconciliationID: recID, Status: domain.ReconciliationAgreed}

	suite.mockRecRepo.On("FindReconciliationByID", ctx, recID).Return(rec, nil).Once()

	updated, err := suite.service.Respond(ctx, recID, dto.ReconciliationResponseRequest{Status: domain.ReconciliationDisagreed})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRecRepo.AssertNotCalled(suite.T(), "UpdateReconciliation", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestAnalyzeDisagreement_Success() {
	ctx := context.Background()
	recID := uuid.NewString()
	rec := &domain.Reconciliation{ReconciliationID: recID, Status: domain.ReconciliationDisagreed}
	response := "İki fatura bizde görünmüyor"

	suite.mockRecRepo.On("FindReconciliationByID", ctx, recID).Return(rec, nil).Once()
	suite.mockAnalyzer.On("Analyze", ctx, "reconciliation_disagreement", mock.Anything).
		Return(&domain.AnalysisOutcome{Success: true, Text: "Fark iki eksik faturadan kaynaklanıyor"}, nil).Once()
	suite.mockRecRepo.On("UpdateReconciliation", ctx, mock.MatchedBy(func(r domain.Reconciliation) bool {
		return r.AIAnalysis == "Fark iki eksik faturadan kaynaklanıyor" &&
			r.CustomerResponse == response
	})).Return(nil).Once()

	updated, err := suite.service.AnalyzeDisagreement(ctx, recID, response)

	suite.Require().NoError(err)
	suite.Equal("Fark iki eksik faturadan kaynaklanıyor", updated.AIAnalysis)
	suite.mockAnalyzer.AssertExpectations(suite.T())
	suite.mockRecRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAnalyzeDisagreement_Declined() {
	ctx := context.Background()
	recID := uuid.NewString()
	rec := &domain.Reconciliation{ReconciliationID: recID}

	suite.mockRecRepo.On("FindReconciliationByID", ctx, recID).Return(rec, nil).Once()
	suite.mockAnalyzer.On("Analyze", ctx, "reconciliation_disagreement", mock.Anything).
		Return(&domain.AnalysisOutcome{Success: false, Text: "analysis service is not configured"}, nil).Once()

	updated, err := suite.service.AnalyzeDisagreement(ctx, recID, "fark var")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRecRepo.AssertNotCalled(suite.T(), "UpdateReconciliation", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestMarkEmailSent_StampsTime() {
	ctx := context.Background()
	recID := uuid.NewString()
	rec := &domain.Reconciliation{ReconciliationID: recID, Status: domain.ReconciliationPending}

	suite.mockRecRepo.On("FindReconciliationByID", ctx, recID).Return(rec, nil).Once()
	suite.mockRecRepo.On("UpdateReconciliation", ctx, mock.MatchedBy(func(r domain.Reconciliation) bool {
		return r.LastEmailSent != nil && time.Since(*r.LastEmailSent) < time.Minute
	})).Return(nil).Once()

	updated, err := suite.service.MarkEmailSent(ctx, recID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.LastEmailSent)
	suite.mockRecRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestListReconciliations_EmptyResult() {
	ctx := context.Background()

	suite.mockRecRepo.On("ListReconciliations", ctx, 20, 0).Return(nil, nil).Once()

	recs, err := suite.service.ListReconciliations(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(recs)
	suite.Empty(recs)
	suite.mockRecRepo.AssertExpectations(suite.T())
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
