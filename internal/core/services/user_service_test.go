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
	"github.com/estatedesk/backoffice/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, deactivatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, deactivatedBy, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvc
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateUserRequest{Username: "jdoe", Name: "Jane Doe", Password: "sekrit123"}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "jdoe" &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "sekrit123" &&
			utils.CheckPasswordHash("sekrit123", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	// The hash never leaves the service.
	suite.Empty(user.PasswordHash)
	suite.Equal(creatorUserID, user.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "jdoe", Password: "sekrit123"}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("models.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req, "creator")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestVerifyPassword_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sekrit123")
	suite.Require().NoError(err)

	stored := &models.User{UserID: uuid.NewString(), Username: "jdoe", PasswordHash: hash, IsActive: true}
	suite.mockRepo.On("FindUserByUsername", ctx, "jdoe").Return(stored, nil).Once()

	user, err := suite.service.VerifyPassword(ctx, "jdoe", "sekrit123")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestVerifyPassword_SameErrorForAllFailures() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sekrit123")
	suite.Require().NoError(err)

	// Unknown user.
	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()
	_, unknownErr := suite.service.VerifyPassword(ctx, "ghost", "whatever")

	// Wrong password.
	active := &models.User{Username: "jdoe", PasswordHash: hash, IsActive: true}
	suite.mockRepo.On("FindUserByUsername", ctx, "jdoe").Return(active, nil).Once()
	_, wrongErr := suite.service.VerifyPassword(ctx, "jdoe", "nope")

	// Deactivated account.
	inactive := &models.User{Username: "former", PasswordHash: hash, IsActive: false}
	suite.mockRepo.On("FindUserByUsername", ctx, "former").Return(inactive, nil).Once()
	_, inactiveErr := suite.service.VerifyPassword(ctx, "former", "sekrit123")

	// All three failures are indistinguishable to the caller.
	suite.ErrorIs(unknownErr, apperrors.ErrForbidden)
	suite.ErrorIs(wrongErr, apperrors.ErrForbidden)
	suite.ErrorIs(inactiveErr, apperrors.ErrForbidden)
	suite.Equal(unknownErr.Error(), wrongErr.Error())
	suite.Equal(wrongErr.Error(), inactiveErr.Error())
}

func (suite *UserServiceTestSuite) TestListUsers_ClampsPaging() {
	ctx := context.Background()

	suite.mockRepo.On("ListUsers", ctx, 20, 0).Return([]models.User{}, nil).Once()

	_, err := suite.service.ListUsers(ctx, -5, -1)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
