package screen

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Billing unit boundaries in calendar days. A month is priced as 30 days.
const (
	daysPerMonth = 30.0
	daysPerWeek  = 7.0
)

// CalculatePrice computes the price of booking [start, end) against a rate
// card. Exactly one tier applies, largest unit first, with unit counts
// rounded up to whole units:
//
//	>= 30 days  monthly rate x ceil(days/30)
//	>=  7 days  weekly rate  x ceil(days/7)
//	>=  1 day   daily rate   x ceil(days)
//	otherwise   hourly rate  x ceil(hours), floored at MinimumBookingFee
//
// Only the hourly tier applies the minimum-fee floor: short bookings carry a
// minimum service charge, long bookings are charged at their natural tier.
// The result is expressed in the rate card's currency.
func CalculatePrice(rc *RateCard, start, end time.Time) (decimal.Decimal, error) {
	if rc == nil {
		return decimal.Zero, ErrPricingNotConfigured
	}
	if !end.After(start) {
		return decimal.Zero, ErrInvalidTimeRange
	}

	duration := end.Sub(start)
	days := duration.Hours() / 24

	switch {
	case days >= daysPerMonth:
		months := int64(math.Ceil(days / daysPerMonth))
		return rc.MonthlyRate.Mul(decimal.NewFromInt(months)), nil

	case days >= daysPerWeek:
		weeks := int64(math.Ceil(days / daysPerWeek))
		return rc.WeeklyRate.Mul(decimal.NewFromInt(weeks)), nil

	case days >= 1:
		return rc.DailyRate.Mul(decimal.NewFromInt(int64(math.Ceil(days)))), nil

	default:
		hours := int64(math.Ceil(duration.Hours()))
		price := rc.HourlyRate.Mul(decimal.NewFromInt(hours))
		if price.LessThan(rc.MinimumBookingFee) {
			return rc.MinimumBookingFee, nil
		}
		return price, nil
	}
}

// Quote is the answer to "what would this interval cost, and is it free?".
type Quote struct {
	Available bool
	Price     decimal.Decimal
	Currency  string
}
