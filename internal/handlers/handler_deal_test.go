package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/handlers"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/estatedesk/backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DealService ---
type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) CreateSession(ctx context.Context) (*domain.DealSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealSession), args.Error(1)
}

func (m *MockDealService) GetSession(ctx context.Context, dealID string) (*domain.DealSession, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealSession), args.Error(1)
}

func (m *MockDealService) Advance(ctx context.Context, dealID string) (*domain.DealSession, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealSession), args.Error(1)
}

func (m *MockDealService) Retreat(ctx context.Context, dealID string) (*domain.DealSession, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealSession), args.Error(1)
}

func (m *MockDealService) JumpBack(ctx context.Context, dealID string, stepIndex int) (*domain.DealSession, error) {
	args := m.Called(ctx, dealID, stepIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealSession), args.Error(1)
}

func (m *MockDealService) SelectProperty(ctx context.Context, dealID string, project domain.Project, key domain.PropertyKey) (*domain.DealSession, error) {
	args := m.Called(ctx, dealID, project, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealSession), args.Error(1)
}

func (m *MockDealService) EditField(ctx context.Context, dealID string, field, value string) (*domain.DealSession, error) {
	args := m.Called(ctx, dealID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealSession), args.Error(1)
}

func (m *MockDealService) AbandonSession(ctx context.Context, dealID string) error {
	args := m.Called(ctx, dealID)
	return args.Error(0)
}

var _ portssvc.DealSvc = (*MockDealService)(nil)

// --- Mock InventoryService ---
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListAvailable(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

var _ portssvc.InventorySvc = (*MockInventoryService)(nil)

// --- Mock UserService (login only; the rest is unused in these tests) ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*models.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) DeactivateUser(ctx context.Context, userID string, deactivatedBy string) error {
	args := m.Called(ctx, userID, deactivatedBy)
	return args.Error(0)
}

func (m *MockUserService) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

var _ portssvc.UserSvc = (*MockUserService)(nil)

// --- Mock PropertyService ---
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) GetProperty(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, error) {
	args := m.Called(ctx, project, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Property), args.Error(1)
}

func (m *MockPropertyService) MarkSold(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, error) {
	args := m.Called(ctx, project, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Property), args.Error(1)
}

func (m *MockPropertyService) Reopen(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, []portssvc.CleanupFailure, error) {
	args := m.Called(ctx, project, key)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var failures []portssvc.CleanupFailure
	if args.Get(1) != nil {
		failures = args.Get(1).([]portssvc.CleanupFailure)
	}
	return args.Get(0).(domain.Property), failures, args.Error(2)
}

var _ portssvc.PropertySvc = (*MockPropertyService)(nil)

// --- Test Suite ---
type DealHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockDealService      *MockDealService
	mockInventoryService *MockInventoryService
	mockPropertyService  *MockPropertyService
	mockUserService      *MockUserService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *DealHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *DealHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockDealService = new(MockDealService)
	suite.mockInventoryService = new(MockInventoryService)
	suite.mockPropertyService = new(MockPropertyService)
	suite.mockUserService = new(MockUserService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTIssuer:         "backoffice-test",
		JWTExpiryDuration: time.Hour,
		IsProduction:      true, // keep swagger out of the test router
		LoginRateLimit:    "100-M",
	}

	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Inventory: suite.mockInventoryService,
		Deal:      suite.mockDealService,
		Property:  suite.mockPropertyService,
		User:      suite.mockUserService,
	})
}

func (suite *DealHandlerTestSuite) authedRequest(method, url string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	return req
}

// --- Test Cases ---

func (suite *DealHandlerTestSuite) TestCreateDeal_Success() {
	session := domain.NewDealSession(uuid.NewString(), time.Now())
	suite.mockDealService.On("CreateSession", mock.Anything).Return(session, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/deals", nil))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.DealSessionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(session.ID, resp.DealID)
	suite.Equal("inventory", resp.Step)
	suite.Len(resp.Steps, len(domain.DealSteps))

	suite.mockDealService.AssertExpectations(suite.T())
}

func (suite *DealHandlerTestSuite) TestDealRoutes_RequireAuth() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/deals", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDealService.AssertNotCalled(suite.T(), "CreateSession", mock.Anything)
}

func (suite *DealHandlerTestSuite) TestSelectProperty_ConflictWhenNotAvailable() {
	dealID := uuid.NewString()
	body, _ := json.Marshal(dto.SelectPropertyRequest{Project: "LivingWater", Block: "5", Lot: "12"})

	key := domain.PropertyKey{Block: "5", Lot: "12"}
	suite.mockDealService.On("SelectProperty", mock.Anything, dealID, domain.ProjectLivingWater, key).
		Return(nil, apperrors.ErrConflict).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPut, "/api/v1/deals/"+dealID+"/property", body))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockDealService.AssertExpectations(suite.T())
}

func (suite *DealHandlerTestSuite) TestSelectProperty_UnknownProject() {
	dealID := uuid.NewString()
	body, _ := json.Marshal(dto.SelectPropertyRequest{Project: "greenfields", Block: "5", Lot: "12"})

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPut, "/api/v1/deals/"+dealID+"/property", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDealService.AssertNotCalled(suite.T(), "SelectProperty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DealHandlerTestSuite) TestAdvance_NoSelectionIsBadRequest() {
	dealID := uuid.NewString()
	suite.mockDealService.On("Advance", mock.Anything, dealID).Return(nil, domain.ErrNoPropertySelected).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/deals/"+dealID+"/advance", nil))

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "select a property")
}

func (suite *DealHandlerTestSuite) TestJump_MissingIndexIsBadRequest() {
	dealID := uuid.NewString()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/deals/"+dealID+"/jump", []byte(`{}`)))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDealService.AssertNotCalled(suite.T(), "JumpBack", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DealHandlerTestSuite) TestListAvailableInventory() {
	lots := []domain.Property{
		&domain.LivingWaterProperty{Block: "1", Lot: "2", LotStatus: domain.StatusAvailable},
		&domain.HavahillsProperty{Block: "3", Lot: "4", LotStatus: domain.StatusAvailable},
	}
	suite.mockInventoryService.On("ListAvailable", mock.Anything).Return(lots, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/inventory/available", nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.PropertyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("LivingWater", resp[0].Project)
	suite.Equal("Living Water Subdivision", resp[0].ProjectDisplay)
	suite.Equal("Havahills", resp[1].Project)

	suite.mockInventoryService.AssertExpectations(suite.T())
}

func (suite *DealHandlerTestSuite) TestReopen_ReportsCleanupFailures() {
	reopened := &domain.LivingWaterProperty{Block: "5", Lot: "12", LotStatus: domain.StatusAvailable}
	failures := []portssvc.CleanupFailure{{Table: "documents", Err: apperrors.ErrNotFound}}

	key := domain.PropertyKey{Block: "5", Lot: "12"}
	suite.mockPropertyService.On("Reopen", mock.Anything, domain.ProjectLivingWater, key).
		Return(reopened, failures, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/properties/LivingWater/5/12/reopen", nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ReopenResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Available", resp.Property.Status)
	suite.Equal([]string{"documents"}, resp.CleanupFailures)

	suite.mockPropertyService.AssertExpectations(suite.T())
}

func (suite *DealHandlerTestSuite) TestLogin_IssuesToken() {
	user := &models.User{UserID: uuid.NewString(), Username: "jdoe", IsActive: true}
	suite.mockUserService.On("VerifyPassword", mock.Anything, "jdoe", "sekrit123").Return(user, nil).Once()

	body, _ := json.Marshal(dto.LoginRequest{Username: "jdoe", Password: "sekrit123"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.Token)
	suite.Equal(user.UserID, resp.User.UserID)
}

func (suite *DealHandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockUserService.On("VerifyPassword", mock.Anything, "jdoe", "wrong").
		Return(nil, apperrors.ErrForbidden).Once()

	body, _ := json.Marshal(dto.LoginRequest{Username: "jdoe", Password: "wrong"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestDealHandler(t *testing.T) {
	suite.Run(t, new(DealHandlerTestSuite))
}
