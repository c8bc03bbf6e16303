package user

import (
	"net/http"
	"time"

	"github.com/lumenview/screen-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "role must be advertiser or screen_owner")
)

// Account roles. Advertisers run campaigns and book screens; screen owners
// list screens and manage their inventory. System admin is a separate flag,
// never assignable through registration.
const (
	RoleAdvertiser  = "advertiser"
	RoleScreenOwner = "screen_owner"
)

// User represents an account in the marketplace.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Role         string
	FirstName    string
	LastName     string
	CompanyName  string
	PhoneNumber  string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
	// IsVerified means the account passed identity review; unverified
	// screen owners cannot have their screens verified.
	IsVerified    bool
	IsSystemAdmin bool
}

// FullName joins the first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Email    string
	Role     string
	IsActive *bool // pointer to distinguish between false and nil (not set)

	Page     int
	PageSize int
}
