package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateUsername is returned when creating a user with a taken username.
var ErrDuplicateUsername = errors.New("username already in use")

// UserRole is the application role stored on the user record.
type UserRole string

const (
	RoleEmployee  UserRole = "employee"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether the role is one of the declared roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleEmployee, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered user. Role lives on the user row.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatar_url"`
	TaxRate      float64   `json:"tax_rate"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserFilter narrows List. Nil fields match everything.
type UserFilter struct {
	Username *string
	Role     *UserRole
}

// PasswordHasher handles hashing and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, username, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

// AuthService defines signup and login.
type AuthService interface {
	SignUp(ctx context.Context, user *User, password string) (*User, error)
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
}

// UserService defines user profile and admin operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}
