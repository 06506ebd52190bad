package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReservationCommitter is a mock type for the ReservationCommitter interface
type MockReservationCommitter struct {
	mock.Mock
}

func (m *MockReservationCommitter) Commit(ctx context.Context, selected domain.Property, editedFields map[string]string) (domain.Property, error) {
	args := m.Called(ctx, selected, editedFields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Property), args.Error(1)
}

// --- Test Suite Setup ---

type DealServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockPropertyRepository
	mockCommitter *MockReservationCommitter
	service       portssvc.DealSvc
}

func (suite *DealServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPropertyRepository)
	suite.mockCommitter = new(MockReservationCommitter)
	suite.service = services.NewDealService(suite.mockRepo, suite.mockCommitter, 2*time.Hour)
}

func (suite *DealServiceTestSuite) availableLot() *domain.LivingWaterProperty {
	return &domain.LivingWaterProperty{Block: "5", Lot: "12", LotStatus: domain.StatusAvailable}
}

// startSessionWithLot creates a session and selects Block 5 Lot 12.
func (suite *DealServiceTestSuite) startSessionWithLot(ctx context.Context) *domain.DealSession {
	session, err := suite.service.CreateSession(ctx)
	suite.Require().NoError(err)

	key := domain.PropertyKey{Block: "5", Lot: "12"}
	suite.mockRepo.On("FindByKey", ctx, domain.ProjectLivingWater, key).Return(suite.availableLot(), nil).Once()

	session, err = suite.service.SelectProperty(ctx, session.ID, domain.ProjectLivingWater, key)
	suite.Require().NoError(err)
	return session
}

// --- Test Cases ---

func (suite *DealServiceTestSuite) TestCreateAndGetSession() {
	ctx := context.Background()

	session, err := suite.service.CreateSession(ctx)
	suite.Require().NoError(err)
	suite.NotEmpty(session.ID)
	suite.Equal(domain.StepInventory, session.Step())
	suite.Nil(session.Selected)

	fetched, err := suite.service.GetSession(ctx, session.ID)
	suite.Require().NoError(err)
	suite.Equal(session.ID, fetched.ID)
}

func (suite *DealServiceTestSuite) TestGetSession_NotFound() {
	ctx := context.Background()

	_, err := suite.service.GetSession(ctx, "no-such-deal")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DealServiceTestSuite) TestAdvance_RequiresSelection() {
	ctx := context.Background()
	session, err := suite.service.CreateSession(ctx)
	suite.Require().NoError(err)

	_, err = suite.service.Advance(ctx, session.ID)
	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrNoPropertySelected)

	fetched, err := suite.service.GetSession(ctx, session.ID)
	suite.Require().NoError(err)
	suite.Equal(domain.StepInventory, fetched.Step())
}

func (suite *DealServiceTestSuite) TestSelectProperty_RejectsNonAvailableLot() {
	ctx := context.Background()
	session, err := suite.service.CreateSession(ctx)
	suite.Require().NoError(err)

	key := domain.PropertyKey{Block: "5", Lot: "12"}
	reserved := &domain.LivingWaterProperty{Block: "5", Lot: "12", LotStatus: domain.StatusReserved}
	suite.mockRepo.On("FindByKey", ctx, domain.ProjectLivingWater, key).Return(reserved, nil).Once()

	_, err = suite.service.SelectProperty(ctx, session.ID, domain.ProjectLivingWater, key)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestSelectProperty_SheetCaseStatusStillCountsAsAvailable() {
	ctx := context.Background()
	session, err := suite.service.CreateSession(ctx)
	suite.Require().NoError(err)

	key := domain.PropertyKey{Block: "2", Lot: "3"}
	lot := &domain.LivingWaterProperty{Block: "2", Lot: "3", LotStatus: domain.PropertyStatus("available")}
	suite.mockRepo.On("FindByKey", ctx, domain.ProjectLivingWater, key).Return(lot, nil).Once()

	session, err = suite.service.SelectProperty(ctx, session.ID, domain.ProjectLivingWater, key)
	suite.Require().NoError(err)
	suite.NotNil(session.Selected)
}

func (suite *DealServiceTestSuite) TestSelectProperty_ResetsEdits() {
	ctx := context.Background()
	session := suite.startSessionWithLot(ctx)

	_, err := suite.service.EditField(ctx, session.ID, "Owner", "Jane Doe")
	suite.Require().NoError(err)

	key := domain.PropertyKey{Block: "6", Lot: "1"}
	other := &domain.LivingWaterProperty{Block: "6", Lot: "1", LotStatus: domain.StatusAvailable}
	suite.mockRepo.On("FindByKey", ctx, domain.ProjectLivingWater, key).Return(other, nil).Once()

	session, err = suite.service.SelectProperty(ctx, session.ID, domain.ProjectLivingWater, key)
	suite.Require().NoError(err)
	suite.Empty(session.EditedFields)
}

func (suite *DealServiceTestSuite) TestAdvance_CommitStepInvokesCommitterAndJumpsToFinish() {
	ctx := context.Background()
	session := suite.startSessionWithLot(ctx)

	_, err := suite.service.EditField(ctx, session.ID, "Owner", "Jane Doe")
	suite.Require().NoError(err)

	// Walk forward until the wizard sits on the commit step.
	for i := domain.StepIndex(domain.StepInventory); i < domain.StepIndex(domain.StepAccount); i++ {
		session, err = suite.service.Advance(ctx, session.ID)
		suite.Require().NoError(err)
	}
	suite.Require().Equal(domain.StepAccount, session.Step())

	merged := &domain.LivingWaterProperty{
		Block: "5", Lot: "12", Owner: "Jane Doe", LotStatus: domain.StatusReserved,
	}
	suite.mockCommitter.On("Commit", ctx, mock.Anything, map[string]string{"Owner": "Jane Doe"}).Return(merged, nil).Once()

	session, err = suite.service.Advance(ctx, session.ID)
	suite.Require().NoError(err)
	suite.Equal(domain.StepFinish, session.Step())
	suite.Equal(domain.StatusReserved, session.Selected.Status())
	suite.Equal("Jane Doe", session.Selected.BuyerName())

	suite.mockCommitter.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestAdvance_CommitFailureLeavesSessionInPlace() {
	ctx := context.Background()
	session := suite.startSessionWithLot(ctx)

	var err error
	for i := domain.StepIndex(domain.StepInventory); i < domain.StepIndex(domain.StepAccount); i++ {
		session, err = suite.service.Advance(ctx, session.ID)
		suite.Require().NoError(err)
	}

	suite.mockCommitter.On("Commit", ctx, mock.Anything, mock.Anything).Return(nil, apperrors.ErrConflict).Once()

	_, err = suite.service.Advance(ctx, session.ID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)

	// The wizard stays on the commit step; the operator can retry or back out.
	fetched, err := suite.service.GetSession(ctx, session.ID)
	suite.Require().NoError(err)
	suite.Equal(domain.StepAccount, fetched.Step())

	suite.mockCommitter.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestTwoSessions_SameLot_SecondCommitConflicts() {
	ctx := context.Background()
	key := domain.PropertyKey{Block: "5", Lot: "12"}

	// Both operators pick the same available lot; nothing holds it at
	// selection time.
	sessionA, err := suite.service.CreateSession(ctx)
	suite.Require().NoError(err)
	sessionB, err := suite.service.CreateSession(ctx)
	suite.Require().NoError(err)

	suite.mockRepo.On("FindByKey", ctx, domain.ProjectLivingWater, key).Return(suite.availableLot(), nil).Twice()
	_, err = suite.service.SelectProperty(ctx, sessionA.ID, domain.ProjectLivingWater, key)
	suite.Require().NoError(err)
	_, err = suite.service.SelectProperty(ctx, sessionB.ID, domain.ProjectLivingWater, key)
	suite.Require().NoError(err)

	for i := domain.StepIndex(domain.StepInventory); i < domain.StepIndex(domain.StepAccount); i++ {
		_, err = suite.service.Advance(ctx, sessionA.ID)
		suite.Require().NoError(err)
		_, err = suite.service.Advance(ctx, sessionB.ID)
		suite.Require().NoError(err)
	}

	// First commit wins the conditional write.
	merged := &domain.LivingWaterProperty{Block: "5", Lot: "12", LotStatus: domain.StatusReserved}
	suite.mockCommitter.On("Commit", ctx, mock.Anything, mock.Anything).Return(merged, nil).Once()
	sessionA, err = suite.service.Advance(ctx, sessionA.ID)
	suite.Require().NoError(err)
	suite.Equal(domain.StepFinish, sessionA.Step())

	// Second commit finds the row already Reserved.
	suite.mockCommitter.On("Commit", ctx, mock.Anything, mock.Anything).Return(nil, apperrors.ErrConflict).Once()
	_, err = suite.service.Advance(ctx, sessionB.ID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockCommitter.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestJumpBack_OnlyBackward() {
	ctx := context.Background()
	session := suite.startSessionWithLot(ctx)

	var err error
	session, err = suite.service.Advance(ctx, session.ID)
	suite.Require().NoError(err)
	session, err = suite.service.Advance(ctx, session.ID)
	suite.Require().NoError(err)
	suite.Require().Equal(domain.StepSOA, session.Step())

	session, err = suite.service.JumpBack(ctx, session.ID, 0)
	suite.Require().NoError(err)
	suite.Equal(domain.StepInventory, session.Step())

	_, err = suite.service.JumpBack(ctx, session.ID, 3)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DealServiceTestSuite) TestSessionExpiry() {
	clock := time.Now()
	now := func() time.Time { return clock }
	svc := services.NewDealService(suite.mockRepo, suite.mockCommitter, 2*time.Hour, services.WithDealClock(now))

	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	suite.Require().NoError(err)

	clock = clock.Add(time.Hour)
	_, err = svc.GetSession(ctx, session.ID)
	suite.Require().NoError(err)

	// The touch above reset the idle timer; three more hours blows past it.
	clock = clock.Add(3 * time.Hour)
	_, err = svc.GetSession(ctx, session.ID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DealServiceTestSuite) TestAbandonSession() {
	ctx := context.Background()
	session, err := suite.service.CreateSession(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.AbandonSession(ctx, session.ID))

	_, err = suite.service.GetSession(ctx, session.ID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	err = suite.service.AbandonSession(ctx, session.ID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---

func TestDealService(t *testing.T) {
	suite.Run(t, new(DealServiceTestSuite))
}
