package services_test

import (
	"context"
	"testing"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
	"github.com/familypoints/familypoints_app/internal/core/services"
	"github.com/familypoints/familypoints_app/internal/dto"
	"github.com/familypoints/familypoints_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockGuardianRepo *MockGuardianRepository
	mockLedgerRepo   *MockLedgerRepository
	service          portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockGuardianRepo = new(MockGuardianRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockGuardianRepo, suite.mockLedgerRepo)
}

// --- CreateUser Tests ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "mom",
		Password: "password123",
		Name:     "Mom",
		Role:     domain.RoleParent,
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "mom" &&
			user.Role == domain.RoleParent &&
			user.PasswordHash != "" &&
			user.PasswordHash != "password123"
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.UserID)
	suite.Equal("mom", created.Username)
	suite.True(utils.CheckPasswordHash("password123", created.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_InvalidRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "someone",
		Password: "password123",
		Role:     domain.UserRole("ADMIN"),
	}

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "mom",
		Password: "password123",
		Role:     domain.RoleParent,
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- CreateChild Tests ---

func (suite *UserServiceTestSuite) TestCreateChild_SuccessLinksParent() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.User{UserID: parentID, Role: domain.RoleParent}

	suite.mockUserRepo.On("FindUserByID", ctx, parentID).Return(parent, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleChild && user.CreatedBy == parentID
	})).Return(nil).Once()
	suite.mockGuardianRepo.On("LinkChild", ctx, parentID, mock.AnythingOfType("string")).Return(nil).Once()

	child, err := suite.service.CreateChild(ctx, parentID, dto.CreateChildRequest{
		Username: "kiddo",
		Password: "password123",
		Name:     "Kiddo",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(child)
	suite.Equal(domain.RoleChild, child.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockGuardianRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateChild_CallerIsChild() {
	ctx := context.Background()
	callerID := uuid.NewString()
	caller := &domain.User{UserID: callerID, Role: domain.RoleChild}

	suite.mockUserRepo.On("FindUserByID", ctx, callerID).Return(caller, nil).Once()

	child, err := suite.service.CreateChild(ctx, callerID, dto.CreateChildRequest{
		Username: "kiddo",
		Password: "password123",
	})

	suite.Require().Error(err)
	suite.Nil(child)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

// --- LinkChild Tests ---

func (suite *UserServiceTestSuite) TestLinkChild_Success() {
	ctx := context.Background()
	parentID := uuid.NewString()
	childID := uuid.NewString()
	parent := &domain.User{UserID: parentID, Role: domain.RoleParent}
	child := &domain.User{UserID: childID, Role: domain.RoleChild}

	suite.mockUserRepo.On("FindUserByID", ctx, parentID).Return(parent, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, childID).Return(child, nil).Once()
	suite.mockGuardianRepo.On("LinkChild", ctx, parentID, childID).Return(nil).Once()

	err := suite.service.LinkChild(ctx, parentID, childID)

	suite.Require().NoError(err)
	suite.mockGuardianRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestLinkChild_TargetNotAChild() {
	ctx := context.Background()
	parentID := uuid.NewString()
	otherParentID := uuid.NewString()
	parent := &domain.User{UserID: parentID, Role: domain.RoleParent}
	otherParent := &domain.User{UserID: otherParentID, Role: domain.RoleParent}

	suite.mockUserRepo.On("FindUserByID", ctx, parentID).Return(parent, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, otherParentID).Return(otherParent, nil).Once()

	err := suite.service.LinkChild(ctx, parentID, otherParentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGuardianRepo.AssertNotCalled(suite.T(), "LinkChild", mock.Anything, mock.Anything, mock.Anything)
}

// --- ListChildren Tests ---

func (suite *UserServiceTestSuite) TestListChildren_ParentSeesGuardedWithBalances() {
	ctx := context.Background()
	parentID := uuid.NewString()
	childID := uuid.NewString()
	parent := &domain.User{UserID: parentID, Role: domain.RoleParent}
	child := domain.User{UserID: childID, Username: "kiddo", Role: domain.RoleChild}

	suite.mockUserRepo.On("FindUserByID", ctx, parentID).Return(parent, nil).Once()
	suite.mockGuardianRepo.On("ListChildIDsByParent", ctx, parentID).Return([]string{childID}, nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, []string{childID}).Return(map[string]domain.User{childID: child}, nil).Once()
	suite.mockLedgerRepo.On("SumPointsByChild", ctx, childID).Return(int64(120), nil).Once()

	resp, err := suite.service.ListChildren(ctx, parentID)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Children, 1)
	suite.Equal(childID, resp.Children[0].UserID)
	suite.Equal(int64(120), resp.Children[0].Balance)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListChildren_ChildSeesOnlySelf() {
	ctx := context.Background()
	childID := uuid.NewString()
	child := &domain.User{UserID: childID, Role: domain.RoleChild}

	suite.mockUserRepo.On("FindUserByID", ctx, childID).Return(child, nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, []string{childID}).Return(map[string]domain.User{childID: *child}, nil).Once()
	suite.mockLedgerRepo.On("SumPointsByChild", ctx, childID).Return(int64(0), nil).Once()

	resp, err := suite.service.ListChildren(ctx, childID)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Children, 1)
	suite.Equal(childID, resp.Children[0].UserID)
	suite.mockGuardianRepo.AssertNotCalled(suite.T(), "ListChildIDsByParent", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListChildren_UnknownPrincipal() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ListChildren(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
