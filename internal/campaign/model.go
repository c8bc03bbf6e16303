package campaign

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenview/screen-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "campaign not found")
	ErrCreativeNotFound   = apperror.New(http.StatusNotFound, "creative not found")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "campaign name is required")
	ErrInvalidDateRange   = apperror.New(http.StatusBadRequest, "start date must be before end date")
	ErrNegativeBudget     = apperror.New(http.StatusBadRequest, "budget cannot be negative")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid campaign status")
	ErrInvalidCreative    = apperror.New(http.StatusBadRequest, "creative name, type and content url are required")
	ErrReasonRequired     = apperror.New(http.StatusBadRequest, "rejection reason is required")
	ErrAlreadyApproved    = apperror.New(http.StatusConflict, "creative is already approved")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidCreativeTyp = apperror.New(http.StatusBadRequest, "creative type must be image, video or html")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a campaign status received over the wire.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusActive, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Campaign is an advertiser's budgeted run of creatives across screens.
type Campaign struct {
	ID              string
	AdvertiserID    string
	Name            string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	Budget          decimal.Decimal
	Status          Status
	TargetAudience  string
	TargetLocations string
	// Spent is the sum of prices of the campaign's non-cancelled bookings,
	// computed at load time.
	Spent     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining returns the unspent part of the budget.
func (c *Campaign) Remaining() decimal.Decimal {
	return c.Budget.Sub(c.Spent)
}

// IsRunning reports whether the campaign is active and inside its date range.
func (c *Campaign) IsRunning(now time.Time) bool {
	return c.Status == StatusActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// CreativeType enumerates the supported ad formats.
var validCreativeTypes = map[string]bool{
	"image": true,
	"video": true,
	"html":  true,
}

// Creative is a single ad asset belonging to a campaign. It must be
// approved before it can run on a screen.
type Creative struct {
	ID              string
	CampaignID      string
	Name            string
	Type            string // image, video, html
	ContentURL      string
	ThumbnailURL    string
	DurationSeconds int
	IsApproved      bool
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Approve marks the creative approved and clears any prior rejection.
func (cr *Creative) Approve() {
	cr.IsApproved = true
	cr.RejectionReason = ""
}

// Reject marks the creative rejected with the given reason.
func (cr *Creative) Reject(reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	cr.IsApproved = false
	cr.RejectionReason = reason
	return nil
}

// Filter defines parameters for listing campaigns.
type Filter struct {
	AdvertiserID string
	Status       string
	Keyword      string
	Page         int
	PageSize     int
}
