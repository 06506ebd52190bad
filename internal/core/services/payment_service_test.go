package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/core/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/estatedesk/backoffice/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPaymentRepository is a mock type for the PaymentRepository interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, status models.PaymentStatus, before time.Time, limit int) ([]models.Payment, error) {
	args := m.Called(ctx, status, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockBalanceSvc is a mock type for the BalanceSvc interface
type MockBalanceSvc struct {
	mock.Mock
}

func (m *MockBalanceSvc) CreateBalance(ctx context.Context, req dto.CreateBalanceRequest, creatorUserID string) (*models.Balance, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceSvc) GetBalanceByID(ctx context.Context, balanceID string) (*models.Balance, error) {
	args := m.Called(ctx, balanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceSvc) ListBalances(ctx context.Context, limit, offset int) ([]models.Balance, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Balance), args.Error(1)
}

func (m *MockBalanceSvc) PostPayment(ctx context.Context, clientName string, payment models.Payment, updaterUserID string) (*models.Balance, error) {
	args := m.Called(ctx, clientName, payment, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

// --- Test Suite Setup ---

type PaymentServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockPaymentRepository
	mockBalanceSvc *MockBalanceSvc
	service        portssvc.PaymentSvc
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPaymentRepository)
	suite.mockBalanceSvc = new(MockBalanceSvc)
	suite.service = services.NewPaymentService(suite.mockRepo, services.WithBalanceSvc(suite.mockBalanceSvc))
}

func (suite *PaymentServiceTestSuite) pendingPayment() *models.Payment {
	return &models.Payment{
		PaymentID:  uuid.NewString(),
		ClientName: "Jane Doe",
		Project:    "LivingWater",
		Amount:     decimal.NewFromInt(22500),
		Status:     models.PaymentPending,
	}
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestCreatePayment_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		ClientName: "Jane Doe",
		Project:    "Living Water Subdivision",
		Amount:     "22500.00",
		Method:     "bank transfer",
	}

	suite.mockRepo.On("SavePayment", ctx, mock.MatchedBy(func(p models.Payment) bool {
		return p.ClientName == "Jane Doe" &&
			p.Project == "LivingWater" &&
			p.Status == models.PaymentPending &&
			p.Amount.Equal(decimal.RequireFromString("22500.00"))
	})).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.NotEmpty(payment.PaymentID)
	suite.Equal(models.PaymentPending, payment.Status)
	suite.Equal(creatorUserID, payment.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_Validation() {
	ctx := context.Background()

	_, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ClientName: "Jane Doe", Project: "nowhere", Amount: "100",
	}, "user")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ClientName: "Jane Doe", Project: "Havahills", Amount: "abc",
	}, "user")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ClientName: "Jane Doe", Project: "Havahills", Amount: "-5",
	}, "user")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApprovePayment_PostsToBalance() {
	ctx := context.Background()
	reviewer := uuid.NewString()
	pending := suite.pendingPayment()

	suite.mockRepo.On("FindPaymentByID", ctx, pending.PaymentID).Return(pending, nil).Once()
	suite.mockRepo.On("UpdatePayment", ctx, mock.MatchedBy(func(p models.Payment) bool {
		return p.Status == models.PaymentApproved && p.ReviewedBy == reviewer && p.ReviewNote == "ok"
	})).Return(nil).Once()
	suite.mockBalanceSvc.On("PostPayment", ctx, "Jane Doe", mock.AnythingOfType("models.Payment"), reviewer).
		Return(&models.Balance{BalanceID: uuid.NewString()}, nil).Once()

	payment, err := suite.service.ApprovePayment(ctx, pending.PaymentID, "ok", reviewer)

	suite.Require().NoError(err)
	suite.Equal(models.PaymentApproved, payment.Status)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApprovePayment_MissingBalanceIsNotFatal() {
	ctx := context.Background()
	reviewer := uuid.NewString()
	pending := suite.pendingPayment()

	suite.mockRepo.On("FindPaymentByID", ctx, pending.PaymentID).Return(pending, nil).Once()
	suite.mockRepo.On("UpdatePayment", ctx, mock.AnythingOfType("models.Payment")).Return(nil).Once()
	// Reservation-fee payments have no balance row yet.
	suite.mockBalanceSvc.On("PostPayment", ctx, "Jane Doe", mock.AnythingOfType("models.Payment"), reviewer).
		Return(nil, apperrors.ErrNotFound).Once()

	payment, err := suite.service.ApprovePayment(ctx, pending.PaymentID, "", reviewer)

	suite.Require().NoError(err)
	suite.Equal(models.PaymentApproved, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestRejectPayment() {
	ctx := context.Background()
	reviewer := uuid.NewString()
	pending := suite.pendingPayment()

	suite.mockRepo.On("FindPaymentByID", ctx, pending.PaymentID).Return(pending, nil).Once()
	suite.mockRepo.On("UpdatePayment", ctx, mock.MatchedBy(func(p models.Payment) bool {
		return p.Status == models.PaymentRejected && p.ReviewNote == "receipt unreadable"
	})).Return(nil).Once()

	payment, err := suite.service.RejectPayment(ctx, pending.PaymentID, "receipt unreadable", reviewer)

	suite.Require().NoError(err)
	suite.Equal(models.PaymentRejected, payment.Status)
	// Rejection never touches the balance.
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "PostPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestReview_NonPendingIsConflict() {
	ctx := context.Background()
	approved := suite.pendingPayment()
	approved.Status = models.PaymentApproved

	suite.mockRepo.On("FindPaymentByID", ctx, approved.PaymentID).Return(approved, nil).Twice()

	_, err := suite.service.ApprovePayment(ctx, approved.PaymentID, "", "reviewer")
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.service.RejectPayment(ctx, approved.PaymentID, "", "reviewer")
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestListPayments_PagesWithToken() {
	ctx := context.Background()
	now := time.Now()

	fullPage := make([]models.Payment, 2)
	for i := range fullPage {
		fullPage[i] = models.Payment{
			PaymentID: uuid.NewString(),
			Status:    models.PaymentPending,
			AuditFields: models.AuditFields{
				CreatedAt: now.Add(-time.Duration(i) * time.Minute),
			},
		}
	}

	suite.mockRepo.On("ListPayments", ctx, models.PaymentPending, mock.AnythingOfType("time.Time"), 2).
		Return(fullPage, nil).Once()

	payments, nextToken, err := suite.service.ListPayments(ctx, models.PaymentPending, "", 2)

	suite.Require().NoError(err)
	suite.Len(payments, 2)
	// A full page yields a resume token pointing at the last row's timestamp.
	suite.Require().NotEmpty(nextToken)
	cursor, err := pagination.DecodeDateBasedToken(nextToken)
	suite.Require().NoError(err)
	suite.WithinDuration(fullPage[1].CreatedAt, cursor, time.Millisecond)
}

func (suite *PaymentServiceTestSuite) TestListPayments_ShortPageEndsPaging() {
	ctx := context.Background()

	suite.mockRepo.On("ListPayments", ctx, models.PaymentStatus(""), mock.AnythingOfType("time.Time"), 20).
		Return([]models.Payment{{PaymentID: uuid.NewString()}}, nil).Once()

	payments, nextToken, err := suite.service.ListPayments(ctx, "", "", 20)

	suite.Require().NoError(err)
	suite.Len(payments, 1)
	suite.Empty(nextToken)
}

func (suite *PaymentServiceTestSuite) TestListPayments_BadToken() {
	ctx := context.Background()

	_, _, err := suite.service.ListPayments(ctx, "", "not-base64!!!", 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListPayments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestListPayments_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("ListPayments", ctx, models.PaymentStatus(""), mock.AnythingOfType("time.Time"), 20).
		Return(nil, assert.AnError).Once()

	_, _, err := suite.service.ListPayments(ctx, "", "", 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

// --- Run Test Suite ---

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
