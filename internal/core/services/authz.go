package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
)

// authorizer evaluates the capability predicates gating every operation:
// which principal role may act, and which child records a principal may
// touch. All checks run before any ledger mutation is attempted.
type authorizer struct {
	userRepo     portsrepo.UserReader
	guardianRepo portsrepo.GuardianReader
}

func newAuthorizer(userRepo portsrepo.UserReader, guardianRepo portsrepo.GuardianReader) *authorizer {
	return &authorizer{userRepo: userRepo, guardianRepo: guardianRepo}
}

// requireUser resolves the acting principal. An unknown principal ID is an
// authentication failure, not a lookup miss.
func (a *authorizer) requireUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := a.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve principal %s: %w", userID, err)
	}
	return user, nil
}

// requireParent resolves the principal and checks they are a parent.
func (a *authorizer) requireParent(ctx context.Context, userID string) (*domain.User, error) {
	user, err := a.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsParent() {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

// requireChild resolves the principal and checks they are a child.
func (a *authorizer) requireChild(ctx context.Context, userID string) (*domain.User, error) {
	user, err := a.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsChild() {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

// requireParentOf checks the principal is a parent guarding childID.
func (a *authorizer) requireParentOf(ctx context.Context, parentID string, childID string) (*domain.User, error) {
	parent, err := a.requireParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	guards, err := a.guardianRepo.Guards(ctx, parentID, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to check guardianship: %w", err)
	}
	if !guards {
		return nil, apperrors.ErrForbidden
	}
	return parent, nil
}

// requireCanViewChild checks the principal may read childID's records: the
// child themselves, or a guarding parent.
func (a *authorizer) requireCanViewChild(ctx context.Context, requestingUserID string, childID string) (*domain.User, error) {
	user, err := a.requireUser(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if user.IsChild() {
		if user.UserID != childID {
			return nil, apperrors.ErrForbidden
		}
		return user, nil
	}
	guards, err := a.guardianRepo.Guards(ctx, requestingUserID, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to check guardianship: %w", err)
	}
	if !guards {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

// rewardVisibleTo reports whether the principal may see the reward: its
// issuer, or a child guarded by the issuer. Callers conflate invisibility
// with absence.
func (a *authorizer) rewardVisibleTo(ctx context.Context, user *domain.User, reward *domain.Reward) (bool, error) {
	if user.IsParent() {
		return reward.ParentID == user.UserID, nil
	}
	guards, err := a.guardianRepo.Guards(ctx, reward.ParentID, user.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to check guardianship: %w", err)
	}
	return guards, nil
}
