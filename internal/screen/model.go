package screen

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenview/screen-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "screen not found")
	ErrWindowNotFound       = apperror.New(http.StatusNotFound, "availability window not found")
	ErrInvalidTimeRange     = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidWindow        = apperror.New(http.StatusBadRequest, "window start must be before window end")
	ErrInvalidTimeOfDay     = apperror.New(http.StatusBadRequest, "invalid time of day, expected HH:MM or HH:MM:SS")
	ErrInvalidCoordinate    = apperror.New(http.StatusBadRequest, "latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrNameRequired         = apperror.New(http.StatusBadRequest, "screen name is required")
	ErrTypeRequired         = apperror.New(http.StatusBadRequest, "screen type is required")
	ErrNegativeRate         = apperror.New(http.StatusBadRequest, "rates cannot be negative")
	ErrCurrencyRequired     = apperror.New(http.StatusBadRequest, "currency is required")
	ErrPricingNotConfigured = apperror.New(http.StatusUnprocessableEntity, "screen has no rate card configured")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
)

// Screen represents a bookable physical or digital display surface.
// Windows, Bookings and RateCard are populated only when loaded with details.
type Screen struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Type        string // e.g. digital, led, billboard
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Location    GeoCoordinate
	Size        Size
	ImageURL    string
	IsActive    bool
	IsVerified  bool
	Windows     []AvailabilityWindow
	Bookings    []BookedSlot
	RateCard    *RateCard
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GeoCoordinate is a WGS84 latitude/longitude pair.
type GeoCoordinate struct {
	Latitude  float64
	Longitude float64
}

// Validate checks the coordinate is within valid bounds.
func (g GeoCoordinate) Validate() error {
	if g.Latitude < -90 || g.Latitude > 90 || g.Longitude < -180 || g.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance to another coordinate in
// kilometers, using the haversine formula.
func (g GeoCoordinate) DistanceKm(other GeoCoordinate) float64 {
	lat1 := g.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - g.Latitude) * math.Pi / 180
	dLng := (other.Longitude - g.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Size describes the physical dimensions of a screen.
type Size struct {
	Width  float64
	Height float64
	Unit   string // e.g. px, inch, meter
}

// AvailabilityWindow is a recurring weekly permission slot: on every
// occurrence of DayOfWeek the screen may be booked within
// [StartOfDay, EndOfDay). A screen may own any number of windows, and
// windows for the same weekday may overlap; a slot is allowed if ANY
// window covers it.
type AvailabilityWindow struct {
	ID         string
	ScreenID   string
	DayOfWeek  time.Weekday
	StartOfDay time.Duration // offset from midnight
	EndOfDay   time.Duration
}

// Validate enforces StartOfDay < EndOfDay within a single day.
func (w AvailabilityWindow) Validate() error {
	if w.StartOfDay < 0 || w.EndOfDay > 24*time.Hour || w.StartOfDay >= w.EndOfDay {
		return ErrInvalidWindow
	}
	return nil
}

// BookedSlot is the slice of an existing booking the availability engine
// needs: its interval and whether it still blocks the slot.
type BookedSlot struct {
	BookingID string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// slotStatusCancelled mirrors booking.StatusCancelled; cancelled bookings
// free up the slot and are ignored by the overlap gate.
const slotStatusCancelled = "cancelled"

// Blocking reports whether the slot still occupies the screen.
func (s BookedSlot) Blocking() bool {
	return s.Status != slotStatusCancelled
}

// RateCard is the tiered pricing configuration attached to a screen (1:1,
// optional until the owner sets it). All amounts are expressed in Currency.
type RateCard struct {
	ScreenID          string
	HourlyRate        decimal.Decimal
	DailyRate         decimal.Decimal
	WeeklyRate        decimal.Decimal
	MonthlyRate       decimal.Decimal
	Currency          string
	MinimumBookingFee decimal.Decimal
	UpdatedAt         time.Time
}

// Validate checks every amount is non-negative and a currency is set.
func (rc *RateCard) Validate() error {
	for _, amount := range []decimal.Decimal{rc.HourlyRate, rc.DailyRate, rc.WeeklyRate, rc.MonthlyRate, rc.MinimumBookingFee} {
		if amount.IsNegative() {
			return ErrNegativeRate
		}
	}
	if rc.Currency == "" {
		return ErrCurrencyRequired
	}
	return nil
}

// Filter defines parameters for searching screens.
type Filter struct {
	OwnerID  string
	Keyword  string
	City     string
	State    string
	Country  string
	Type     string
	Near     *GeoCoordinate
	RadiusKm float64
	// Optional availability filter: only screens free for [StartTime, EndTime).
	StartTime *time.Time
	EndTime   *time.Time
	Page      int
	PageSize  int
}

// timeOfDayLayouts are the accepted wire formats for availability window bounds.
var timeOfDayLayouts = []string{"15:04:05", "15:04"}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, ErrInvalidTimeOfDay
}

// FormatTimeOfDay renders an offset from midnight as "HH:MM:SS".
func FormatTimeOfDay(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
