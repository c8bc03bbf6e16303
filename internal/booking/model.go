package booking

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenview/screen-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict         = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange     = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidTransition    = apperror.New(http.StatusConflict, "invalid booking status transition")
	ErrInvalidPaymentStatus = apperror.New(http.StatusBadRequest, "invalid payment status")
	ErrScreenNotFound       = apperror.New(http.StatusNotFound, "screen not found")
	ErrScreenNotAvailable   = apperror.New(http.StatusConflict, "screen is not available for the requested time slot")
	ErrCampaignNotFound     = apperror.New(http.StatusNotFound, "campaign not found")
	ErrCreativeNotFound     = apperror.New(http.StatusNotFound, "creative not found")
	ErrCreativeNotApproved  = apperror.New(http.StatusConflict, "creative has not been approved")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast        = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// validTransitions is the booking state machine. Cancelled and completed
// are terminal. Confirming an already-confirmed booking is a no-op rather
// than an error, so idempotent retries from payment callbacks are safe.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusConfirmed, StatusCancelled, StatusCompleted},
}

// CanTransitionTo reports whether the state machine permits moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status transitions are possible.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ParsePaymentStatus validates a payment status received over the wire.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return PaymentStatus(s), nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

// Booking is a reservation of a screen for a concrete time interval, tied
// to one campaign and one creative. Price is fixed at creation time in the
// screen's rate card currency.
type Booking struct {
	ID               string
	ScreenID         string
	ScreenName       string
	CampaignID       string
	CampaignName     string
	CreativeID       string
	CreativeName     string
	AdvertiserID     string
	StartTime        time.Time
	EndTime          time.Time
	Price            decimal.Decimal
	Currency         string
	Status           Status
	PaymentStatus    PaymentStatus
	PaymentReference string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Confirm moves the booking to confirmed. Only pending and confirmed
// bookings may be confirmed.
func (b *Booking) Confirm() error {
	return b.transition(StatusConfirmed)
}

// Cancel moves the booking to cancelled, freeing the slot for future
// bookings. Terminal bookings cannot be cancelled.
func (b *Booking) Cancel() error {
	return b.transition(StatusCancelled)
}

// Complete marks a confirmed booking as completed.
func (b *Booking) Complete() error {
	return b.transition(StatusCompleted)
}

func (b *Booking) transition(next Status) error {
	if !b.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.Status = next
	return nil
}

// SetPaymentStatus updates the independent payment sub-state, recording the
// external payment reference when one is supplied.
func (b *Booking) SetPaymentStatus(status PaymentStatus, reference string) error {
	switch status {
	case PaymentPending, PaymentPaid, PaymentRefunded:
	default:
		return ErrInvalidPaymentStatus
	}
	b.PaymentStatus = status
	if reference != "" {
		b.PaymentReference = reference
	}
	return nil
}

// Filter defines parameters for listing bookings.
type Filter struct {
	AdvertiserID string
	ScreenID     string
	CampaignID   string
	Status       string
	StartTime    *time.Time // bookings ending after this time
	EndTime      *time.Time // bookings starting before this time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
