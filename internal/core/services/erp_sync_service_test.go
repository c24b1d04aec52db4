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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) BulkUpsertInvoices(ctx context.Context, invoices []domain.Invoice) error {
	args := m.Called(ctx, invoices)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ListInvoiceIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// --- Mock ErpSettingsRepository ---
type MockErpSettingsRepository struct {
	mock.Mock
}

func (m *MockErpSettingsRepository) GetErpSettings(ctx context.Context) (*domain.ErpSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ErpSettings), args.Error(1)
}

func (m *MockErpSettingsRepository) SaveErpSettings(ctx context.Context, settings domain.ErpSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock ErpFeedReader ---
type MockFeedReader struct {
	mock.Mock
}

func (m *MockFeedReader) Fetch(ctx context.Context) (*domain.ParsedFeed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedFeed), args.Error(1)
}

func (m *MockFeedReader) Parsed(ctx context.Context) (*domain.ParsedFeed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedFeed), args.Error(1)
}

func (m *MockFeedReader) InvoicesForPeriod(ctx context.Context, customerCode string, period string) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerCode, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

var _ portssvc.ErpFeedReader = (*MockFeedReader)(nil)

const testSyncUserID = "user-cnk"

// --- Test Suite ---
type ErpSyncServiceTestSuite struct {
	suite.Suite
	mockFeed         *MockFeedReader
	mockCustomerRepo *MockCustomerRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockOfferRepo    *MockOfferRepository
	mockSettingsRepo *MockErpSettingsRepository
	service          portssvc.ErpSyncSvcFacade
}

func (suite *ErpSyncServiceTestSuite) SetupTest() {
	suite.mockFeed = new(MockFeedReader)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockOfferRepo = new(MockOfferRepository)
	suite.mockSettingsRepo = new(MockErpSettingsRepository)
	suite.service = services.NewErpSyncService(
		suite.mockFeed,
		suite.mockCustomerRepo,
		suite.mockInvoiceRepo,
		suite.mockOfferRepo,
		suite.mockSettingsRepo,
		testSyncUserID,
	)
}

// expectTimestampWrite wires the settings round trip a successful pass ends
// with: read the singleton (not yet written) and save it back with the
// entity's lastSync slot stamped.
func (suite *ErpSyncServiceTestSuite) expectTimestampWrite(ctx context.Context, entity domain.SyncEntity) {
	suite.mockSettingsRepo.On("GetErpSettings", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSettingsRepo.On("SaveErpSettings", ctx, mock.MatchedBy(func(s domain.ErpSettings) bool {
		if s.SettingsID != domain.ErpSettingsID {
			return false
		}
		switch entity {
		case domain.SyncCustomers:
			return s.LastSyncCustomers != nil
		case domain.SyncInvoices:
			return s.LastSyncInvoices != nil
		case domain.SyncOffers:
			return s.LastSyncOffers != nil
		case domain.SyncStock:
			return s.LastSyncStock != nil
		}
		return false
	})).Return(nil).Once()
}

// --- Test Cases ---

func (suite *ErpSyncServiceTestSuite) TestSyncCustomers_MergePreservesCrmFields() {
	ctx := context.Background()
	parsed := &domain.ParsedFeed{
		Customers: map[string]domain.LedgerCustomer{
			"CR01332": {CurrentCode: "CR01332", Name: "EUROFER DIŞ TİC. A.Ş.", CommercialTitle: "EUROFER DIŞ TİC. A.Ş.", City: "Ankara", TaxNumber: "1234567890"},
		},
	}
	annotation := &domain.AIAnnotation{Result: "Olumlu", Timestamp: time.Now()}
	existing := domain.Customer{
		CustomerID:  "cust-1",
		CurrentCode: "CR01332",
		Name:        "Eski Unvan",
		Phone:       "0312 394 43 63",
		Notes:       "Ödeme planı konuşuldu",
		Status:      domain.CustomerPassive,
		AISentiment: annotation,
	}

	suite.mockFeed.On("Fetch", ctx).Return(parsed, nil).Once()
	suite.mockCustomerRepo.On("FindCustomersByCurrentCodes", ctx, []string{"CR01332"}).
		Return([]domain.Customer{existing}, nil).Twice()
	suite.mockCustomerRepo.On("BulkUpsertCustomers", ctx, mock.MatchedBy(func(customers []domain.Customer) bool {
		if len(customers) != 1 {
			return false
		}
		c := customers[0]
		// Ledger fields overwritten, CRM-only fields and the identity kept.
		return c.CustomerID == "cust-1" &&
			c.Name == "EUROFER DIŞ TİC. A.Ş." &&
			c.Status == domain.CustomerActive &&
			c.Phone == "0312 394 43 63" &&
			c.Notes == "Ödeme planı konuşuldu" &&
			c.AISentiment == annotation &&
			c.LastUpdatedBy == testSyncUserID
	})).Return(nil).Once()
	suite.expectTimestampWrite(ctx, domain.SyncCustomers)

	result, err := suite.service.SyncCustomers(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("Müşteri", result.Type)
	suite.Equal(1, result.Fetched)
	suite.Equal(0, result.Added)
	suite.Equal(1, result.Updated)
	suite.mockFeed.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func (suite *ErpSyncServiceTestSuite) TestSyncCustomers_CreatesNewIdentity() {
	ctx := context.Background()
	parsed := &domain.ParsedFeed{
		Customers: map[string]domain.LedgerCustomer{
			"CR00980": {CurrentCode: "CR00980", Name: "CUTRON MAKİNA", City: "Ankara"},
		},
	}

	suite.mockFeed.On("Fetch", ctx).Return(parsed, nil).Once()
	suite.mockCustomerRepo.On("FindCustomersByCurrentCodes", ctx, []string{"CR00980"}).
		Return([]domain.Customer{}, nil).Once()
	suite.mockCustomerRepo.On("FindCustomersByCurrentCodes", ctx, []string{"CR00980"}).
		Return([]domain.Customer{{CustomerID: "cust-new", CurrentCode: "CR00980"}}, nil).Once()
	suite.mockCustomerRepo.On("BulkUpsertCustomers", ctx, mock.MatchedBy(func(customers []domain.Customer) bool {
		if len(customers) != 1 {
			return false
		}
		c := customers[0]
		return c.CustomerID != "" &&
			c.CurrentCode == "CR00980" &&
			c.Status == domain.CustomerActive &&
			c.CreatedBy == testSyncUserID
	})).Return(nil).Once()
	suite.expectTimestampWrite(ctx, domain.SyncCustomers)

	result, err := suite.service.SyncCustomers(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, result.Added)
	suite.Equal(0, result.Updated)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *ErpSyncServiceTestSuite) TestSyncCustomers_FeedError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockFeed.On("Fetch", ctx).Return(nil, expectedErr).Once()

	result, err := suite.service.SyncCustomers(ctx)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, expectedErr)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "BulkUpsertCustomers", mock.Anything, mock.Anything)
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "SaveErpSettings", mock.Anything, mock.Anything)
}

func (suite *ErpSyncServiceTestSuite) TestSyncInvoices_ClassifiesAndDropsUnresolved() {
	ctx := context.Background()
	parsed := &domain.ParsedFeed{
		Customers: map[string]domain.LedgerCustomer{
			"CR01332": {CurrentCode: "CR01332", Name: "EUROFER"},
		},
		Invoices: []domain.LedgerInvoice{
			{InvoiceID: "BSF2025000000001", CustomerCode: "CR01332", TotalAmount: decimal.NewFromFloat(1234.56)},
			{InvoiceID: "BSF2025000000002", CustomerCode: "CR01332", TotalAmount: decimal.NewFromFloat(99.90)},
			{InvoiceID: "BSF2025000000003", CustomerCode: "CR99999", TotalAmount: decimal.NewFromInt(10)},
		},
	}

	suite.mockFeed.On("Fetch", ctx).Return(parsed, nil).Once()
	suite.mockFeed.On("Parsed", ctx).Return(parsed, nil).Once()
	suite.mockCustomerRepo.On("FindCustomersByCurrentCodes", ctx, []string{"CR01332"}).
		Return([]domain.Customer{{CustomerID: "cust-1", CurrentCode: "CR01332"}}, nil).Twice()
	suite.mockCustomerRepo.On("BulkUpsertCustomers", ctx, mock.Anything).Return(nil).Once()
	suite.mockInvoiceRepo.On("ListInvoiceIDs", ctx).Return([]string{"BSF2025000000001"}, nil).Once()
	suite.mockInvoiceRepo.On("BulkUpsertInvoices", ctx, mock.MatchedBy(func(invoices []domain.Invoice) bool {
		// The row with the unresolvable code is dropped, the rest resolve to
		// the merged identity and carry the system user.
		if len(invoices) != 2 {
			return false
		}
		for _, inv := range invoices {
			if inv.CustomerID != "cust-1" || inv.UserID != testSyncUserID {
				return false
			}
		}
		return true
	})).Return(nil).Once()
	suite.expectTimestampWrite(ctx, domain.SyncInvoices)

	result, err := suite.service.SyncInvoices(ctx)

	suite.Require().NoError(err)
	suite.Equal("Fatura", result.Type)
	suite.Equal(3, result.Fetched)
	suite.Equal(1, result.Added)
	suite.Equal(1, result.Updated)
	suite.mockFeed.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *ErpSyncServiceTestSuite) TestSyncInvoices_Idempotent() {
	ctx := context.Background()
	parsed := &domain.ParsedFeed{
		Customers: map[string]domain.LedgerCustomer{
			"CR01332": {CurrentCode: "CR01332", Name: "EUROFER"},
		},
		Invoices: []domain.LedgerInvoice{
			{InvoiceID: "BSF2025000000001", CustomerCode: "CR01332", TotalAmount: decimal.NewFromFloat(1234.56)},
		},
	}

	suite.mockFeed.On("Fetch", ctx).Return(parsed, nil).Once()
	suite.mockFeed.On("Parsed", ctx).Return(parsed, nil).Once()
	suite.mockCustomerRepo.On("FindCustomersByCurrentCodes", ctx, []string{"CR01332"}).
		Return([]domain.Customer{{CustomerID: "cust-1", CurrentCode: "CR01332"}}, nil).Twice()
	suite.mockCustomerRepo.On("BulkUpsertCustomers", ctx, mock.Anything).Return(nil).Once()
	suite.mockInvoiceRepo.On("ListInvoiceIDs", ctx).Return([]string{"BSF2025000000001"}, nil).Once()
	suite.mockInvoiceRepo.On("BulkUpsertInvoices", ctx, mock.Anything).Return(nil).Once()
	suite.expectTimestampWrite(ctx, domain.SyncInvoices)

	result, err := suite.service.SyncInvoices(ctx)

	// A rerun of an already-stored feed reports everything as updated.
	suite.Require().NoError(err)
	suite.Equal(0, result.Added)
	suite.Equal(1, result.Updated)
}

func (suite *ErpSyncServiceTestSuite) TestSyncInvoices_ResolvesFromStoreAfterMerge() {
	ctx := context.Background()
	parsed := &domain.ParsedFeed{
		Customers: map[string]domain.LedgerCustomer{
			"CR01332": {CurrentCode: "CR01332", Name: "EUROFER"},
		},
		Invoices: []domain.LedgerInvoice{
			{InvoiceID: "BSF2025000000001", CustomerCode: "CR01332", TotalAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockFeed.On("Fetch", ctx).Return(parsed, nil).Once()
	suite.mockFeed.On("Parsed", ctx).Return(parsed, nil).Once()
	// The store resolves the code to a different identity after the upsert
	// than the pre-merge read suggested; the written invoices must follow
	// the store, not the in-memory merge.
	suite.mockCustomerRepo.On("FindCustomersByCurrentCodes", ctx, []string{"CR01332"}).
		Return([]domain.Customer{{CustomerID: "stale-1", CurrentCode: "CR01332"}}, nil).Once()
	suite.mockCustomerRepo.On("FindCustomersByCurrentCodes", ctx, []string{"CR01332"}).
		Return([]domain.Customer{{CustomerID: "canonical-1", CurrentCode: "CR01332"}}, nil).Once()
	suite.mockCustomerRepo.On("BulkUpsertCustomers", ctx, mock.Anything).Return(nil).Once()
	suite.mockInvoiceRepo.On("ListInvoiceIDs", ctx).Return([]string{}, nil).Once()
	suite.mockInvoiceRepo.On("BulkUpsertInvoices", ctx, mock.MatchedBy(func(invoices []domain.Invoice) bool {
		return len(invoices) == 1 && invoices[0].CustomerID == "canonical-1"
	})).Return(nil).Once()
	suite.expectTimestampWrite(ctx, domain.SyncInvoices)

	_, err := suite.service.SyncInvoices(ctx)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *ErpSyncServiceTestSuite) TestSyncOffers_MergesByOfferNo() {
	ctx := context.Background()
	createdAt := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	parsed := &domain.ParsedFeed{
		Customers: map[string]domain.LedgerCustomer{
			"CR01332": {CurrentCode: "CR01332", Name: "EUROFER"},
			"CR00980": {CurrentCode: "CR00980", Name: "CUTRON"},
		},
		Offers: []domain.LedgerOffer{
			{OfferNo: "TEK-584210", CustomerCode: "CR01332", Subtotal: decimal.NewFromInt(13440)},
			{OfferNo: "TEK-584211", CustomerCode: "CR00980", Subtotal: decimal.NewFromFloat(13566.20)},
			{OfferNo: "TEK-584212", CustomerCode: "CR77777", Subtotal: decimal.NewFromInt(6654)},
		},
	}
	existing := domain.Offer{
		OfferID: "offer-1",
		OfferNo: "TEK-584210",
		AuditFields: domain.AuditFields{
			CreatedAt: createdAt,
			CreatedBy: testSyncUserID,
		},
	}
	resolved := []domain.Customer{
		{CustomerID: "cust-1", CurrentCode: "CR01332"},
		{CustomerID: "cust-2", CurrentCode: "CR00980"},
	}

	suite.mockFeed.On("Fetch", ctx).Return(parsed, nil).Once()
	suite.mockFeed.On("Parsed", ctx).Return(parsed, nil).Once()
	suite.mockCustomerRepo.On("FindCustomersByCurrentCodes", ctx, mock.MatchedBy(func(codes []string) bool {
		return len(codes) == 2
	})).Return(resolved, nil).Twice()
	suite.mockCustomerRepo.On("BulkUpsertCustomers", ctx, mock.Anything).Return(nil).Once()
	suite.mockOfferRepo.On("FindOffersByOfferNos", ctx, []string{"TEK-584210", "TEK-584211", "TEK-584212"}).
		Return([]domain.Offer{existing}, nil).Once()
	suite.mockOfferRepo.On("BulkUpsertOffers", ctx, mock.MatchedBy(func(offers []domain.Offer) bool {
		if len(offers) != 2 {
			return false
		}
		byNo := make(map[string]domain.Offer, len(offers))
		for _, o := range offers {
			byNo[o.OfferNo] = o
		}
		// The unresolvable TEK-584212 is dropped. The matched offer keeps
		// its id and creation audit; the unmatched one gets a new id.
		if _, written := byNo["TEK-584212"]; written {
			return false
		}
		matched, fresh := byNo["TEK-584210"], byNo["TEK-584211"]
		return matched.OfferID == "offer-1" &&
			matched.CreatedAt.Equal(createdAt) &&
			matched.CustomerID == "cust-1" &&
			fresh.OfferID != "" &&
			fresh.CustomerID == "cust-2"
	})).Return(nil).Once()
	suite.expectTimestampWrite(ctx, domain.SyncOffers)

	result, err := suite.service.SyncOffers(ctx)

	suite.Require().NoError(err)
	suite.Equal("Teklif", result.Type)
	suite.Equal(3, result.Fetched)
	suite.Equal(1, result.Added)
	suite.Equal(1, result.Updated)
	suite.mockOfferRepo.AssertExpectations(suite.T())
}

func (suite *ErpSyncServiceTestSuite) TestSyncStock_NoOpStampsTimestamp() {
	ctx := context.Background()

	suite.expectTimestampWrite(ctx, domain.SyncStock)

	result, err := suite.service.SyncStock(ctx)

	suite.Require().NoError(err)
	suite.Equal("Stok", result.Type)
	suite.Equal(0, result.Fetched)
	suite.Equal(0, result.Added)
	suite.Equal(0, result.Updated)
	suite.mockFeed.AssertNotCalled(suite.T(), "Fetch", mock.Anything)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func (suite *ErpSyncServiceTestSuite) TestGetSettings_DefaultBeforeFirstWrite() {
	ctx := context.Background()

	suite.mockSettingsRepo.On("GetErpSettings", ctx).Return(nil, apperrors.ErrNotFound).Once()

	settings, err := suite.service.GetSettings(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(settings)
	suite.Equal(domain.ErpSettingsID, settings.SettingsID)
	suite.False(settings.IsConnected)
	suite.Nil(settings.LastSyncCustomers)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func (suite *ErpSyncServiceTestSuite) TestUpdateSettings_PreservesSyncTimestamps() {
	ctx := context.Background()
	lastSync := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	stored := &domain.ErpSettings{
		SettingsID:        domain.ErpSettingsID,
		Server:            "old-server",
		LastSyncCustomers: &lastSync,
	}
	req := dto.UpdateErpSettingsRequest{
		Server:       "erp.local",
		DatabasePath: "C:\\ERP\\DATA",
		Username:     "entegrasyon",
		IsConnected:  true,
	}

	suite.mockSettingsRepo.On("GetErpSettings", ctx).Return(stored, nil).Once()
	suite.mockSettingsRepo.On("SaveErpSettings", ctx, mock.MatchedBy(func(s domain.ErpSettings) bool {
		return s.Server == "erp.local" &&
			s.Username == "entegrasyon" &&
			s.IsConnected &&
			s.LastSyncCustomers != nil &&
			s.LastSyncCustomers.Equal(lastSync)
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettings(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("erp.local", settings.Server)
	suite.Require().NotNil(settings.LastSyncCustomers)
	suite.True(settings.LastSyncCustomers.Equal(lastSync))
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func TestErpSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ErpSyncServiceTestSuite))
}
