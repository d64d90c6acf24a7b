package services_test

import (
	"context"
	"testing"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
	"github.com/familypoints/familypoints_app/internal/core/services"
	"github.com/familypoints/familypoints_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockUserRepo     *MockUserRepository
	mockGuardianRepo *MockGuardianRepository
	service          portssvc.LedgerSvcFacade

	parentID string
	childID  string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockGuardianRepo = new(MockGuardianRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockUserRepo, suite.mockGuardianRepo)

	suite.parentID = uuid.NewString()
	suite.childID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) expectGuardingParent(ctx context.Context) {
	parent := &domain.User{UserID: suite.parentID, Role: domain.RoleParent}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.parentID).Return(parent, nil).Once()
	suite.mockGuardianRepo.On("Guards", ctx, suite.parentID, suite.childID).Return(true, nil).Once()
}

// --- ParentAdjust Tests ---

func (suite *LedgerServiceTestSuite) TestParentAdjust_GrantNormalizesNegativeInput() {
	ctx := context.Background()
	suite.expectGuardingParent(ctx)

	// A grant submitted with a negative delta must still credit the child.
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.Points == 50 && entry.Kind == domain.KindGrant && entry.ChildID == suite.childID
	})).Return(nil).Once()

	entry, err := suite.service.ParentAdjust(ctx, suite.parentID, suite.childID, dto.CreateAdjustmentRequest{
		Points: -50,
		Kind:   domain.KindGrant,
	})

	suite.Require().NoError(err)
	suite.Equal(int64(50), entry.Points)
	suite.Require().NotNil(entry.ParentID)
	suite.Equal(suite.parentID, *entry.ParentID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestParentAdjust_DeductionNormalizesPositiveInput() {
	ctx := context.Background()
	suite.expectGuardingParent(ctx)

	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.Points == -30 && entry.Kind == domain.KindDeduction
	})).Return(nil).Once()

	entry, err := suite.service.ParentAdjust(ctx, suite.parentID, suite.childID, dto.CreateAdjustmentRequest{
		Points: 30,
		Kind:   domain.KindDeduction,
	})

	suite.Require().NoError(err)
	suite.Equal(int64(-30), entry.Points)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestParentAdjust_RedemptionKindRejected() {
	ctx := context.Background()

	entry, err := suite.service.ParentAdjust(ctx, suite.parentID, suite.childID, dto.CreateAdjustmentRequest{
		Points: 10,
		Kind:   domain.KindRedemption,
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestParentAdjust_NotGuardian() {
	ctx := context.Background()
	parent := &domain.User{UserID: suite.parentID, Role: domain.RoleParent}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.parentID).Return(parent, nil).Once()
	suite.mockGuardianRepo.On("Guards", ctx, suite.parentID, suite.childID).Return(false, nil).Once()

	entry, err := suite.service.ParentAdjust(ctx, suite.parentID, suite.childID, dto.CreateAdjustmentRequest{
		Points: 10,
		Kind:   domain.KindGrant,
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

// --- GetBalance Tests ---

func (suite *LedgerServiceTestSuite) TestGetBalance_ChildReadsOwn() {
	ctx := context.Background()
	child := &domain.User{UserID: suite.childID, Role: domain.RoleChild}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.childID).Return(child, nil).Once()
	suite.mockLedgerRepo.On("SumPointsByChild", ctx, suite.childID).Return(int64(-20), nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.childID, suite.childID)

	suite.Require().NoError(err)
	suite.Equal(int64(-20), balance)
}

func (suite *LedgerServiceTestSuite) TestGetBalance_ChildCannotReadSibling() {
	ctx := context.Background()
	child := &domain.User{UserID: suite.childID, Role: domain.RoleChild}
	siblingID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.childID).Return(child, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.childID, siblingID)

	suite.Require().Error(err)
	suite.Zero(balance)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SumPointsByChild", mock.Anything, mock.Anything)
}

// --- ListTransactions Tests ---

func (suite *LedgerServiceTestSuite) TestListTransactions_ParentDefaultsLimit() {
	ctx := context.Background()
	suite.expectGuardingParent(ctx)

	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), ChildID: suite.childID, Points: 10, Kind: domain.KindGrant},
	}
	suite.mockLedgerRepo.On("ListEntriesByChild", ctx, suite.childID, 50, 0).Return(entries, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.parentID, suite.childID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal(entries[0].EntryID, resp.Transactions[0].EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- ListFamilyTransactions Tests ---

func (suite *LedgerServiceTestSuite) TestListFamilyTransactions_ParentGetsCombinedFeed() {
	ctx := context.Background()
	parent := &domain.User{UserID: suite.parentID, Role: domain.RoleParent}
	otherChildID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.parentID).Return(parent, nil).Once()
	suite.mockGuardianRepo.On("ListChildIDsByParent", ctx, suite.parentID).
		Return([]string{suite.childID, otherChildID}, nil).Once()

	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), ChildID: otherChildID, Points: -15, Kind: domain.KindDeduction},
		{EntryID: uuid.NewString(), ChildID: suite.childID, Points: 10, Kind: domain.KindGrant},
	}
	suite.mockLedgerRepo.On("ListEntriesByChildren", ctx, []string{suite.childID, otherChildID}, 50, 0).
		Return(entries, nil).Once()

	resp, err := suite.service.ListFamilyTransactions(ctx, suite.parentID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Transactions, 2)
	suite.Equal(otherChildID, resp.Transactions[0].ChildID)
	suite.Equal(suite.childID, resp.Transactions[1].ChildID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListFamilyTransactions_ChildSeesOnlyOwn() {
	ctx := context.Background()
	child := &domain.User{UserID: suite.childID, Role: domain.RoleChild}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.childID).Return(child, nil).Once()

	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), ChildID: suite.childID, Points: -40, Kind: domain.KindRedemption},
	}
	suite.mockLedgerRepo.On("ListEntriesByChildren", ctx, []string{suite.childID}, 25, 0).
		Return(entries, nil).Once()

	resp, err := suite.service.ListFamilyTransactions(ctx, suite.childID, dto.ListTransactionsParams{Limit: 25})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal(suite.childID, resp.Transactions[0].ChildID)
	suite.mockGuardianRepo.AssertNotCalled(suite.T(), "ListChildIDsByParent", mock.Anything, mock.Anything)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
