package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenview/screen-booking-backend/internal/booking"
	"github.com/lumenview/screen-booking-backend/internal/pkg/request"
	scrHttp "github.com/lumenview/screen-booking-backend/internal/screen/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	ScreenID      string     `form:"screen_id" binding:"omitempty,uuid"`
	CampaignID    string     `form:"campaign_id" binding:"omitempty,uuid"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	AdvertiserID  string     `form:"advertiser_id" binding:"omitempty,uuid"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return booking.ErrInvalidTimeRange
		}
	}
	return nil
}

// CampaignTag is a brief representation of a campaign.
type CampaignTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreativeTag is a brief representation of a creative.
type CreativeTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID               string            `json:"id"`
	Screen           scrHttp.ScreenTag `json:"screen"`
	Campaign         CampaignTag       `json:"campaign"`
	Creative         CreativeTag       `json:"creative"`
	AdvertiserID     string            `json:"advertiser_id"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	Price            decimal.Decimal   `json:"price"`
	Currency         string            `json:"currency"`
	Status           string            `json:"status"`
	PaymentStatus    string            `json:"payment_status"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		Screen:           scrHttp.ScreenTag{ID: b.ScreenID, Name: b.ScreenName},
		Campaign:         CampaignTag{ID: b.CampaignID, Name: b.CampaignName},
		Creative:         CreativeTag{ID: b.CreativeID, Name: b.CreativeName},
		AdvertiserID:     b.AdvertiserID,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Price:            b.Price,
		Currency:         b.Currency,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentReference: b.PaymentReference,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	ScreenID   string    `json:"screen_id" binding:"required,uuid"`
	CampaignID string    `json:"campaign_id" binding:"required,uuid"`
	CreativeID string    `json:"creative_id" binding:"required,uuid"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return booking.ErrInvalidTimeRange
	}
	if r.StartTime.Before(time.Now()) {
		return booking.ErrStartTimePast
	}
	return nil
}

// UpdatePaymentRequest records the outcome of an external payment flow.
type UpdatePaymentRequest struct {
	PaymentStatus    string `json:"payment_status" binding:"required,oneof=pending paid refunded"`
	PaymentReference string `json:"payment_reference"`
}
