package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
	"github.com/familypoints/familypoints_app/internal/dto"
	"github.com/familypoints/familypoints_app/internal/middleware"
	"github.com/familypoints/familypoints_app/internal/utils"
)

// userService manages user registration and the parent-child guardianship
// links. Balances in child listings come from the ledger, derived fresh per
// call.
type userService struct {
	userRepo     portsrepo.UserRepositoryFacade
	guardianRepo portsrepo.GuardianRepositoryFacade
	ledgerRepo   portsrepo.LedgerReader
	authz        *authorizer
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, guardianRepo portsrepo.GuardianRepositoryFacade, ledgerRepo portsrepo.LedgerReader) portssvc.UserSvcFacade {
	return &userService{
		userRepo:     userRepo,
		guardianRepo: guardianRepo,
		ledgerRepo:   ledgerRepo,
		authz:        newAuthorizer(userRepo, guardianRepo),
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) newUser(username, password, name string, role domain.UserRole) (*domain.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	return &domain.User{
		UserID:       userID,
		Username:     username,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// CreateUser registers a new parent or child principal.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: role must be PARENT or CHILD", apperrors.ErrValidation)
	}

	user, err := s.newUser(req.Username, req.Password, req.Name, req.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return user, nil
}

// CreateChild creates a child account and links the creating parent as its
// guardian.
func (s *userService) CreateChild(ctx context.Context, parentID string, req dto.CreateChildRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authz.requireParent(ctx, parentID); err != nil {
		logger.Warn("Authorization failed for CreateChild", slog.String("error", err.Error()))
		return nil, err
	}

	child, err := s.newUser(req.Username, req.Password, req.Name, domain.RoleChild)
	if err != nil {
		return nil, err
	}
	child.CreatedBy = parentID
	child.LastUpdatedBy = parentID

	if err := s.userRepo.SaveUser(ctx, *child); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to save child user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save child: %w", err)
	}

	if err := s.guardianRepo.LinkChild(ctx, parentID, child.UserID); err != nil {
		logger.Error("Failed to link created child", slog.String("error", err.Error()), slog.String("child_id", child.UserID))
		return nil, fmt.Errorf("failed to link child: %w", err)
	}

	logger.Info("Child created and linked", slog.String("child_id", child.UserID), slog.String("parent_id", parentID))
	return child, nil
}

// LinkChild links an existing child to the given parent.
func (s *userService) LinkChild(ctx context.Context, parentID string, childID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authz.requireParent(ctx, parentID); err != nil {
		logger.Warn("Authorization failed for LinkChild", slog.String("error", err.Error()))
		return err
	}

	child, err := s.userRepo.FindUserByID(ctx, childID)
	if err != nil {
		return err
	}
	if !child.IsChild() {
		return fmt.Errorf("%w: user %s is not a child", apperrors.ErrValidation, childID)
	}

	if err := s.guardianRepo.LinkChild(ctx, parentID, childID); err != nil {
		logger.Error("Failed to link child", slog.String("error", err.Error()), slog.String("child_id", childID))
		return fmt.Errorf("failed to link child: %w", err)
	}

	logger.Info("Child linked", slog.String("child_id", childID), slog.String("parent_id", parentID))
	return nil
}

// GetUserByID retrieves a user by their unique identifier.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by their unique username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// ListChildren retrieves the children visible to the principal, with derived
// balances: a parent sees guarded children, a child sees only themselves.
func (s *userService) ListChildren(ctx context.Context, requestingUserID string) (*dto.ListChildrenResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.authz.requireUser(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	var childIDs []string
	if user.IsChild() {
		childIDs = []string{user.UserID}
	} else {
		childIDs, err = s.guardianRepo.ListChildIDsByParent(ctx, user.UserID)
		if err != nil {
			logger.Error("Failed to list guarded children", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to list children: %w", err)
		}
	}

	children, err := s.userRepo.FindUsersByIDs(ctx, childIDs)
	if err != nil {
		logger.Error("Failed to fetch child users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch children: %w", err)
	}

	responses := make([]dto.ChildResponse, 0, len(childIDs))
	for _, childID := range childIDs {
		child, found := children[childID]
		if !found {
			logger.Warn("Guarded child missing from users table", slog.String("child_id", childID))
			continue
		}
		balance, err := s.ledgerRepo.SumPointsByChild(ctx, childID)
		if err != nil {
			logger.Error("Failed to derive child balance", slog.String("error", err.Error()), slog.String("child_id", childID))
			return nil, fmt.Errorf("failed to derive balance: %w", err)
		}
		responses = append(responses, dto.ToChildResponse(&child, balance))
	}

	return &dto.ListChildrenResponse{Children: responses}, nil
}
