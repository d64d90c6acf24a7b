package services_test

import (
	"context"
	"testing"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
	"github.com/familypoints/familypoints_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RedemptionServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockRewardRepo   *MockRewardRepository
	mockUserRepo     *MockUserRepository
	mockGuardianRepo *MockGuardianRepository
	service          portssvc.RedemptionSvcFacade

	parentID string
	childID  string
	child    *domain.User
	reward   *domain.Reward
}

func (suite *RedemptionServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockRewardRepo = new(MockRewardRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockGuardianRepo = new(MockGuardianRepository)
	suite.service = services.NewRedemptionService(suite.mockLedgerRepo, suite.mockRewardRepo, suite.mockUserRepo, suite.mockGuardianRepo)

	suite.parentID = uuid.NewString()
	suite.childID = uuid.NewString()
	suite.child = &domain.User{UserID: suite.childID, Role: domain.RoleChild}
	suite.reward = &domain.Reward{
		RewardID: uuid.NewString(),
		ParentID: suite.parentID,
		Name:     "Movie night",
		Cost:     100,
	}
}

func (suite *RedemptionServiceTestSuite) TestSelfRedeem_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.childID).Return(suite.child, nil).Once()
	suite.mockRewardRepo.On("FindRewardByID", ctx, suite.reward.RewardID).Return(suite.reward, nil).Once()
	suite.mockGuardianRepo.On("Guards", ctx, suite.parentID, suite.childID).Return(true, nil).Once()
	suite.mockLedgerRepo.On("SaveRedemption", ctx, mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.ChildID == suite.childID &&
			entry.ParentID == nil &&
			entry.Points == -100 &&
			entry.Kind == domain.KindRedemption &&
			entry.Description == "Redeemed reward: Movie night"
	}), int64(100)).Return(nil).Once()

	entry, err := suite.service.SelfRedeem(ctx, suite.childID, suite.reward.RewardID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(int64(-100), entry.Points)
	suite.Nil(entry.ParentID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RedemptionServiceTestSuite) TestSelfRedeem_InsufficientFunds() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.childID).Return(suite.child, nil).Once()
	suite.mockRewardRepo.On("FindRewardByID", ctx, suite.reward.RewardID).Return(suite.reward, nil).Once()
	suite.mockGuardianRepo.On("Guards", ctx, suite.parentID, suite.childID).Return(true, nil).Once()
	suite.mockLedgerRepo.On("SaveRedemption", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(100)).Return(apperrors.ErrInsufficientFunds).Once()

	entry, err := suite.service.SelfRedeem(ctx, suite.childID, suite.reward.RewardID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *RedemptionServiceTestSuite) TestSelfRedeem_InvisibleRewardReadsAsAbsent() {
	ctx := context.Background()

	// The reward exists but its issuer does not guard this child.
	suite.mockUserRepo.On("FindUserByID", ctx, suite.childID).Return(suite.child, nil).Once()
	suite.mockRewardRepo.On("FindRewardByID", ctx, suite.reward.RewardID).Return(suite.reward, nil).Once()
	suite.mockGuardianRepo.On("Guards", ctx, suite.parentID, suite.childID).Return(false, nil).Once()

	entry, err := suite.service.SelfRedeem(ctx, suite.childID, suite.reward.RewardID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveRedemption", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RedemptionServiceTestSuite) TestSelfRedeem_ParentCannotSelfRedeem() {
	ctx := context.Background()
	parent := &domain.User{UserID: suite.parentID, Role: domain.RoleParent}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.parentID).Return(parent, nil).Once()

	entry, err := suite.service.SelfRedeem(ctx, suite.parentID, suite.reward.RewardID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRewardRepo.AssertNotCalled(suite.T(), "FindRewardByID", mock.Anything, mock.Anything)
}

func (suite *RedemptionServiceTestSuite) TestSelfRedeem_RewardNotFound() {
	ctx := context.Background()
	rewardID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.childID).Return(suite.child, nil).Once()
	suite.mockRewardRepo.On("FindRewardByID", ctx, rewardID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.SelfRedeem(ctx, suite.childID, rewardID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RedemptionServiceTestSuite) TestSelfRedeem_FreeRewardAppendsZeroEntry() {
	ctx := context.Background()
	freeReward := &domain.Reward{
		RewardID: uuid.NewString(),
		ParentID: suite.parentID,
		Name:     "Hug",
		Cost:     0,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.childID).Return(suite.child, nil).Once()
	suite.mockRewardRepo.On("FindRewardByID", ctx, freeReward.RewardID).Return(freeReward, nil).Once()
	suite.mockGuardianRepo.On("Guards", ctx, suite.parentID, suite.childID).Return(true, nil).Once()
	suite.mockLedgerRepo.On("SaveRedemption", ctx, mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.Points == 0 && entry.Kind == domain.KindRedemption
	}), int64(0)).Return(nil).Once()

	entry, err := suite.service.SelfRedeem(ctx, suite.childID, freeReward.RewardID)

	suite.Require().NoError(err)
	suite.Equal(int64(0), entry.Points)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestRedemptionService(t *testing.T) {
	suite.Run(t, new(RedemptionServiceTestSuite))
}
