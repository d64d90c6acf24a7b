package dto

import (
	"time"

	"github.com/familypoints/familypoints_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required,min=8"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=PARENT CHILD"`
}

// CreateChildRequest defines the data a parent supplies to create a child
// account. The child is linked to the creating parent automatically.
type CreateChildRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ChildResponse is a child user together with their derived balance.
type ChildResponse struct {
	UserResponse
	Balance int64 `json:"balance"`
}

// ListChildrenResponse wraps the list of children visible to a principal.
type ListChildrenResponse struct {
	Children []ChildResponse `json:"children"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ToChildResponse converts a domain.User and balance to ChildResponse DTO.
func ToChildResponse(user *domain.User, balance int64) ChildResponse {
	return ChildResponse{
		UserResponse: ToUserResponse(user),
		Balance:      balance,
	}
}
