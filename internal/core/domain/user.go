package domain

// UserRole distinguishes the two kinds of principals in the system.
type UserRole string

const (
	RoleParent UserRole = "PARENT"
	RoleChild  UserRole = "CHILD"
)

// IsValid reports whether the role is one of the known roles.
func (r UserRole) IsValid() bool {
	return r == RoleParent || r == RoleChild
}

// User represents an authenticated principal: a parent or a child.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"` // Never expose the hash in JSON responses
	AuditFields
}

// IsParent reports whether the user is a parent principal.
func (u *User) IsParent() bool {
	return u.Role == RoleParent
}

// IsChild reports whether the user is a child principal.
func (u *User) IsChild() bool {
	return u.Role == RoleChild
}
