package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/dto"
	"github.com/cnkcrm/crm_backend/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// --- Mock ErpSyncService ---
type MockErpSyncService struct {
	mock.Mock
}

func (m *MockErpSyncService) SyncCustomers(ctx context.Context) (*domain.SyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

func (m *MockErpSyncService) SyncInvoices(ctx context.Context) (*domain.SyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

func (m *MockErpSyncService) SyncOffers(ctx context.Context) (*domain.SyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

func (m *MockErpSyncService) SyncStock(ctx context.Context) (*domain.SyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

func (m *MockErpSyncService) GetSettings(ctx context.Context) (*domain.ErpSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ErpSettings), args.Error(1)
}

func (m *MockErpSyncService) UpdateSettings(ctx context.Context, req dto.UpdateErpSettingsRequest) (*domain.ErpSettings, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ErpSettings), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ErpSyncSvcFacade = (*MockErpSyncService)(nil)

// --- Test Suite ---
type ErpHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockErpSyncService
}

func (suite *ErpHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockService = new(MockErpSyncService)

	syncLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 100})

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterErpRoutes(v1, suite.mockService, syncLimiter)
}

// --- Test Cases ---

func (suite *ErpHandlerTestSuite) TestSyncCustomers_Success() {
	result := &domain.SyncResult{Type: "Müşteri", Fetched: 12, Added: 2, Updated: 10}
	suite.mockService.On("SyncCustomers", mock.Anything).Return(result, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/erp/sync/customers", nil)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body dto.SyncResultResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("Müşteri", body.Type)
	suite.Equal(12, body.Fetched)
	suite.Equal(2, body.Added)
	suite.Equal(10, body.Updated)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ErpHandlerTestSuite) TestSyncInvoices_ServiceError() {
	suite.mockService.On("SyncInvoices", mock.Anything).Return(nil, assert.AnError).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/erp/sync/invoices", nil)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ErpHandlerTestSuite) TestGetSettings_Success() {
	lastSync := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	settings := &domain.ErpSettings{
		SettingsID:        domain.ErpSettingsID,
		Server:            "erp.local",
		IsConnected:       true,
		LastSyncCustomers: &lastSync,
	}
	suite.mockService.On("GetSettings", mock.Anything).Return(settings, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/erp/settings", nil)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body dto.ErpSettingsResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal(domain.ErpSettingsID, body.ID)
	suite.Equal("erp.local", body.Server)
	suite.True(body.IsConnected)
	suite.Require().NotNil(body.LastSyncCustomers)
	suite.True(body.LastSyncCustomers.Equal(lastSync))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ErpHandlerTestSuite) TestUpdateSettings_Success() {
	reqBody := dto.UpdateErpSettingsRequest{
		Server:       "erp.local",
		DatabasePath: "C:\\ERP\\DATA",
		Username:     "entegrasyon",
		IsConnected:  true,
	}
	updated := &domain.ErpSettings{
		SettingsID:  domain.ErpSettingsID,
		Server:      reqBody.Server,
		Username:    reqBody.Username,
		IsConnected: true,
	}
	suite.mockService.On("UpdateSettings", mock.Anything, reqBody).Return(updated, nil).Once()

	payload, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/erp/settings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body dto.ErpSettingsResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("erp.local", body.Server)
	suite.mockService.AssertExpectations(suite.T())
}

func TestErpHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErpHandlerTestSuite))
}
