package services_test

import (
	"context"
	"strings"
	"testing"

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

// --- Mock OfferRepository ---
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) SaveOffer(ctx context.Context, offer domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) BulkUpsertOffers(ctx context.Context, offers []domain.Offer) error {
	args := m.Called(ctx, offers)
	return args.Error(0)
}

func (m *MockOfferRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindOffersByOfferNos(ctx context.Context, offerNos []string) ([]domain.Offer, error) {
	args := m.Called(ctx, offerNos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListOffers(ctx context.Context, limit int, offset int) ([]domain.Offer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

// --- Test Suite ---
type OfferServiceTestSuite struct {
	suite.Suite
	mockOfferRepo    *MockOfferRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.OfferSvcFacade
}

func (suite *OfferServiceTestSuite) SetupTest() {
	suite.mockOfferRepo = new(MockOfferRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewOfferService(suite.mockOfferRepo, suite.mockCustomerRepo)
}

// --- Test Cases ---

func (suite *OfferServiceTestSuite) TestCreateOffer_ComputesTotals() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	customerID := uuid.NewString()
	req := dto.CreateOfferRequest{
		CustomerID:  customerID,
		ContactName: "Satın Alma",
		PaymentTerm: "60 gün",
		Items: []dto.OfferItemRequest{
			{Description: "SDMT120412 Karbür Uç", Quantity: 50, Unit: "adet", UnitPrice: decimal.NewFromInt(240)},
			{Description: "CG35692 Pens", Quantity: 3, Unit: "adet", UnitPrice: decimal.NewFromInt(480)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	suite.mockOfferRepo.On("SaveOffer", ctx, mock.MatchedBy(func(o domain.Offer) bool {
		// 50*240 + 3*480 = 13440, plus 20% tax.
		return o.Subtotal.Equal(decimal.NewFromInt(13440)) &&
			o.Tax.Equal(decimal.NewFromInt(2688)) &&
			o.GrandTotal.Equal(decimal.NewFromInt(16128)) &&
			o.Items[0].Amount.Equal(decimal.NewFromInt(12000)) &&
			o.Items[0].ItemID != "" &&
			o.CreatedBy == creatorUserID
	})).Return(nil).Once()

	offer, err := suite.service.CreateOffer(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(offer)
	suite.True(strings.HasPrefix(offer.OfferNo, "TEK-"))
	suite.Len(offer.OfferNo, 10)
	suite.True(offer.GrandTotal.Equal(decimal.NewFromInt(16128)))
	suite.mockOfferRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestCreateOffer_UnknownCustomer() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateOfferRequest{
		CustomerID: customerID,
		Items:      []dto.OfferItemRequest{{Description: "Freze", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	offer, err := suite.service.CreateOffer(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(offer)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOfferRepo.AssertNotCalled(suite.T(), "SaveOffer", mock.Anything, mock.Anything)
}

func (suite *OfferServiceTestSuite) TestBulkCreateOffers_DistinctNumbers() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	customerID := uuid.NewString()
	req := dto.BulkCreateOffersRequest{
		Offers: []dto.CreateOfferRequest{
			{
				CustomerID: customerID,
				Items:      []dto.OfferItemRequest{{Description: "Matkap HSS 8mm", Quantity: 10, Unit: "adet", UnitPrice: decimal.NewFromInt(120)}},
			},
			{
				CustomerID: customerID,
				Items:      []dto.OfferItemRequest{{Description: "Kılavuz M10", Quantity: 4, Unit: "adet", UnitPrice: decimal.NewFromInt(350)}},
			},
		},
	}

	// The same customer appears twice but is only looked up once.
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	suite.mockOfferRepo.On("BulkUpsertOffers", ctx, mock.MatchedBy(func(offers []domain.Offer) bool {
		return len(offers) == 2 &&
			offers[0].GrandTotal.Equal(decimal.NewFromInt(1440)) &&
			offers[1].GrandTotal.Equal(decimal.NewFromInt(1680)) &&
			offers[0].CreatedBy == creatorUserID
	})).Return(nil).Once()

	offers, err := suite.service.BulkCreateOffers(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().Len(offers, 2)
	for _, o := range offers {
		suite.True(strings.HasPrefix(o.OfferNo, "TEK-"))
		suite.Len(o.OfferNo, 12)
	}
	// Created in the same call, yet the numbers never collide.
	suite.NotEqual(offers[0].OfferNo, offers[1].OfferNo)
	suite.NotEqual(offers[0].OfferID, offers[1].OfferID)
	suite.mockOfferRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestBulkCreateOffers_UnknownCustomerRejectsBatch() {
	ctx := context.Background()
	knownID := uuid.NewString()
	unknownID := uuid.NewString()
	req := dto.BulkCreateOffersRequest{
		Offers: []dto.CreateOfferRequest{
			{CustomerID: knownID, Items: []dto.OfferItemRequest{{Description: "Pens", Quantity: 1, UnitPrice: decimal.NewFromInt(480)}}},
			{CustomerID: unknownID, Items: []dto.OfferItemRequest{{Description: "Freze", Quantity: 1, UnitPrice: decimal.NewFromInt(900)}}},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, knownID).
		Return(&domain.Customer{CustomerID: knownID}, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, unknownID).
		Return(nil, apperrors.ErrNotFound).Once()

	offers, err := suite.service.BulkCreateOffers(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(offers)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOfferRepo.AssertNotCalled(suite.T(), "BulkUpsertOffers", mock.Anything, mock.Anything)
}

func (suite *OfferServiceTestSuite) TestGetOfferByID_NotFound() {
	ctx := context.Background()
	offerID := uuid.NewString()

	suite.mockOfferRepo.On("FindOfferByID", ctx, offerID).Return(nil, apperrors.ErrNotFound).Once()

	offer, err := suite.service.GetOfferByID(ctx, offerID)

	suite.Require().Error(err)
	suite.Nil(offer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockOfferRepo.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestListOffers_EmptyResult() {
	ctx := context.Background()

	suite.mockOfferRepo.On("ListOffers", ctx, 50, 0).Return(nil, nil).Once()

	offers, err := suite.service.ListOffers(ctx, 50, 0)

	suite.Require().NoError(err)
	suite.NotNil(offers)
	suite.Empty(offers)
	suite.mockOfferRepo.AssertExpectations(suite.T())
}

func TestOfferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OfferServiceTestSuite))
}
