package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenview/screen-booking-backend/internal/pkg/request"
	"github.com/lumenview/screen-booking-backend/internal/screen"
)

// SearchScreensRequest defines query parameters for searching screens.
type SearchScreensRequest struct {
	request.ListParams
	Keyword  string   `form:"keyword"`
	City     string   `form:"city"`
	State    string   `form:"state"`
	Country  string   `form:"country"`
	Type     string   `form:"type"`
	OwnerID  string   `form:"owner_id" binding:"omitempty,uuid"`
	Lat      *float64 `form:"lat"`
	Lng      *float64 `form:"lng"`
	RadiusKm float64  `form:"radius_km" binding:"omitempty,gt=0"`

	StartTime *time.Time `form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   *time.Time `form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Validate performs custom validation for SearchScreensRequest.
func (r *SearchScreensRequest) Validate() error {
	if (r.Lat == nil) != (r.Lng == nil) {
		return screen.ErrInvalidCoordinate
	}
	if r.StartTime != nil && r.EndTime != nil && !r.EndTime.After(*r.StartTime) {
		return screen.ErrInvalidTimeRange
	}
	return nil
}

type GeoCoordinateDTO struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

type SizeDTO struct {
	Width  float64 `json:"width" binding:"omitempty,gt=0"`
	Height float64 `json:"height" binding:"omitempty,gt=0"`
	Unit   string  `json:"unit"`
}

// WindowRequest is one availability window on the wire. Times are local
// clock times, "HH:MM" or "HH:MM:SS".
type WindowRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (r WindowRequest) toInput() (screen.WindowInput, error) {
	start, err := screen.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return screen.WindowInput{}, err
	}
	end, err := screen.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return screen.WindowInput{}, err
	}
	return screen.WindowInput{
		DayOfWeek:  time.Weekday(r.DayOfWeek),
		StartOfDay: start,
		EndOfDay:   end,
	}, nil
}

type WindowResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func NewWindowResponse(w screen.AvailabilityWindow) WindowResponse {
	return WindowResponse{
		ID:        w.ID,
		DayOfWeek: int(w.DayOfWeek),
		StartTime: screen.FormatTimeOfDay(w.StartOfDay),
		EndTime:   screen.FormatTimeOfDay(w.EndOfDay),
	}
}

type RateCardRequest struct {
	HourlyRate        decimal.Decimal `json:"hourly_rate" binding:"required"`
	DailyRate         decimal.Decimal `json:"daily_rate" binding:"required"`
	WeeklyRate        decimal.Decimal `json:"weekly_rate" binding:"required"`
	MonthlyRate       decimal.Decimal `json:"monthly_rate" binding:"required"`
	Currency          string          `json:"currency" binding:"required,len=3"`
	MinimumBookingFee decimal.Decimal `json:"minimum_booking_fee"`
}

func (r RateCardRequest) toInput() screen.RateCardInput {
	return screen.RateCardInput{
		HourlyRate:        r.HourlyRate,
		DailyRate:         r.DailyRate,
		WeeklyRate:        r.WeeklyRate,
		MonthlyRate:       r.MonthlyRate,
		Currency:          r.Currency,
		MinimumBookingFee: r.MinimumBookingFee,
	}
}

type RateCardResponse struct {
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
	DailyRate         decimal.Decimal `json:"daily_rate"`
	WeeklyRate        decimal.Decimal `json:"weekly_rate"`
	MonthlyRate       decimal.Decimal `json:"monthly_rate"`
	Currency          string          `json:"currency"`
	MinimumBookingFee decimal.Decimal `json:"minimum_booking_fee"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func NewRateCardResponse(rc *screen.RateCard) RateCardResponse {
	return RateCardResponse{
		HourlyRate:        rc.HourlyRate,
		DailyRate:         rc.DailyRate,
		WeeklyRate:        rc.WeeklyRate,
		MonthlyRate:       rc.MonthlyRate,
		Currency:          rc.Currency,
		MinimumBookingFee: rc.MinimumBookingFee,
		UpdatedAt:         rc.UpdatedAt,
	}
}

type CreateScreenRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Type        string           `json:"type" binding:"required"`
	Address     string           `json:"address"`
	City        string           `json:"city"`
	State       string           `json:"state"`
	Country     string           `json:"country"`
	PostalCode  string           `json:"postal_code"`
	Location    GeoCoordinateDTO `json:"location" binding:"required"`
	Size        SizeDTO          `json:"size"`
	ImageURL    string           `json:"image_url"`
	Windows     []WindowRequest  `json:"windows"`
	RateCard    *RateCardRequest `json:"rate_card"`
}

type UpdateScreenRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Type        *string           `json:"type"`
	Address     *string           `json:"address"`
	City        *string           `json:"city"`
	State       *string           `json:"state"`
	Country     *string           `json:"country"`
	PostalCode  *string           `json:"postal_code"`
	Location    *GeoCoordinateDTO `json:"location"`
	Size        *SizeDTO          `json:"size"`
	ImageURL    *string           `json:"image_url"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type SetVerifiedRequest struct {
	IsVerified *bool `json:"is_verified" binding:"required"`
}

// AvailabilityRequest defines the query parameters for availability checks
// and price quotes.
type AvailabilityRequest struct {
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type QuoteResponse struct {
	Available bool             `json:"available"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Currency  string           `json:"currency,omitempty"`
}

func NewQuoteResponse(q *screen.Quote) QuoteResponse {
	resp := QuoteResponse{Available: q.Available}
	if q.Available {
		price := q.Price
		resp.Price = &price
		resp.Currency = q.Currency
	}
	return resp
}

// ScreenTag is a brief representation of a screen.
type ScreenTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ScreenResponse struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Type        string           `json:"type"`
	Address     string           `json:"address,omitempty"`
	City        string           `json:"city,omitempty"`
	State       string           `json:"state,omitempty"`
	Country     string           `json:"country,omitempty"`
	PostalCode  string           `json:"postal_code,omitempty"`
	Location    GeoCoordinateDTO `json:"location"`
	Size        SizeDTO          `json:"size"`
	ImageURL    string           `json:"image_url,omitempty"`
	IsActive    bool             `json:"is_active"`
	IsVerified  bool             `json:"is_verified"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Windows  []WindowResponse  `json:"windows,omitempty"`
	RateCard *RateCardResponse `json:"rate_card,omitempty"`
}

func NewScreenResponse(s *screen.Screen) ScreenResponse {
	resp := ScreenResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		Type:        s.Type,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		Country:     s.Country,
		PostalCode:  s.PostalCode,
		Location:    GeoCoordinateDTO{Latitude: s.Location.Latitude, Longitude: s.Location.Longitude},
		Size:        SizeDTO{Width: s.Size.Width, Height: s.Size.Height, Unit: s.Size.Unit},
		ImageURL:    s.ImageURL,
		IsActive:    s.IsActive,
		IsVerified:  s.IsVerified,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if len(s.Windows) > 0 {
		resp.Windows = make([]WindowResponse, len(s.Windows))
		for i, w := range s.Windows {
			resp.Windows[i] = NewWindowResponse(w)
		}
	}
	if s.RateCard != nil {
		rc := NewRateCardResponse(s.RateCard)
		resp.RateCard = &rc
	}

	return resp
}
