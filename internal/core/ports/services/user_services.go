package services

import (
	"context"

	"github.com/familypoints/familypoints_app/internal/core/domain"
	"github.com/familypoints/familypoints_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by their unique username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListChildren retrieves the children visible to the requesting
	// principal, with their derived balances. A parent sees the children
	// they guard; a child sees only themselves.
	ListChildren(ctx context.Context, requestingUserID string) (*dto.ListChildrenResponse, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser registers a new parent or child principal.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// CreateChild creates a child account and links the creating parent as
	// its guardian.
	CreateChild(ctx context.Context, parentID string, req dto.CreateChildRequest) (*domain.User, error)

	// LinkChild links an existing child to the given parent.
	LinkChild(ctx context.Context, parentID string, childID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
