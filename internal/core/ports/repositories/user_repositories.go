package repositories

import (
	"context"

	"github.com/familypoints/familypoints_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUsersByIDs retrieves multiple users by their IDs.
	FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// username is already taken.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// GuardianReader defines read operations over the parent-child membership.
// The core treats this membership as read-only input for every capability check.
type GuardianReader interface {
	// Guards reports whether parentID guards childID.
	Guards(ctx context.Context, parentID string, childID string) (bool, error)

	// ListChildIDsByParent retrieves the IDs of all children a parent guards.
	ListChildIDsByParent(ctx context.Context, parentID string) ([]string, error)

	// ListParentIDsByChild retrieves the IDs of all parents guarding a child.
	ListParentIDsByChild(ctx context.Context, childID string) ([]string, error)
}

// GuardianWriter defines write operations over the parent-child membership.
type GuardianWriter interface {
	// LinkChild records that parentID guards childID. Linking an already
	// linked pair is a no-op.
	LinkChild(ctx context.Context, parentID string, childID string) error
}

// GuardianRepositoryFacade combines all guardianship repository interfaces.
type GuardianRepositoryFacade interface {
	GuardianReader
	GuardianWriter
}
