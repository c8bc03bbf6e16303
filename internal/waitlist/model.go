package waitlist

import (
	"net/http"
	"time"

	"github.com/lumenview/screen-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "waitlist entry not found")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrEmailAlreadyListed = apperror.New(http.StatusConflict, "email is already on the waitlist")
	ErrInvalidUserType    = apperror.New(http.StatusBadRequest, "user type must be advertiser or screen_owner")
	ErrAlreadyInvited     = apperror.New(http.StatusConflict, "entry has already been invited")
)

// Entry statuses. Entries move pending -> invited -> registered; invited
// is set by an admin, registered when the invitee creates an account.
const (
	StatusPending    = "pending"
	StatusInvited    = "invited"
	StatusRegistered = "registered"
)

// Entry is a pre-launch signup waiting for an invitation.
type Entry struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	CompanyName string
	PhoneNumber string
	UserType    string // advertiser or screen_owner
	Status      string
	InvitedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing waitlist entries.
type Filter struct {
	UserType string
	Status   string
	Keyword  string
	Page     int
	PageSize int
}
