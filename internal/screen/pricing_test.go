package screen

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testRateCard() *RateCard {
	return &RateCard{
		HourlyRate:        decimal.RequireFromString("50"),
		DailyRate:         decimal.RequireFromString("300"),
		WeeklyRate:        decimal.RequireFromString("1500"),
		MonthlyRate:       decimal.RequireFromString("4000"),
		Currency:          "USD",
		MinimumBookingFee: decimal.RequireFromString("80"),
	}
}

func TestCalculatePrice(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		// Hourly tier
		{"two hours", 2 * time.Hour, "100"},
		{"partial hour rounds up", 90 * time.Minute, "100"},
		{"single hour floored by minimum fee", time.Hour, "80"},
		{"23 hours stays hourly", 23 * time.Hour, "1150"},

		// Daily tier
		{"exactly one day", 24 * time.Hour, "300"},
		{"partial day rounds up", 24*time.Hour + 30*time.Minute, "600"},
		{"three days", 3 * 24 * time.Hour, "900"},
		{"just under a week stays daily", 6*24*time.Hour + 23*time.Hour, "2100"},

		// Weekly tier
		{"exactly one week", 7 * 24 * time.Hour, "1500"},
		{"ten days rounds to two weeks", 10 * 24 * time.Hour, "3000"},
		{"just under a month stays weekly", 29 * 24 * time.Hour, "7500"},

		// Monthly tier
		{"exactly thirty days", 30 * 24 * time.Hour, "4000"},
		{"forty-five days rounds to two months", 45 * 24 * time.Hour, "8000"},
		{"ninety days", 90 * 24 * time.Hour, "12000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePrice(testRateCard(), base, base.Add(tt.duration))
			if err != nil {
				t.Fatalf("CalculatePrice() error = %v", err)
			}
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("CalculatePrice() = %s, want %s", got, want)
			}
		})
	}
}

func TestCalculatePriceMinimumFeeOnlyAppliesHourly(t *testing.T) {
	rc := testRateCard()
	// A daily price below the minimum fee must not be floored.
	rc.DailyRate = decimal.RequireFromString("10")

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	got, err := CalculatePrice(rc, base, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("CalculatePrice() error = %v", err)
	}
	if want := decimal.RequireFromString("10"); !got.Equal(want) {
		t.Errorf("CalculatePrice() = %s, want %s", got, want)
	}
}

func TestCalculatePriceDecimalExactness(t *testing.T) {
	rc := testRateCard()
	rc.HourlyRate = decimal.RequireFromString("19.99")
	rc.MinimumBookingFee = decimal.Zero

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	got, err := CalculatePrice(rc, base, base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("CalculatePrice() error = %v", err)
	}
	if want := decimal.RequireFromString("59.97"); !got.Equal(want) {
		t.Errorf("CalculatePrice() = %s, want %s", got, want)
	}
}

func TestCalculatePriceErrors(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	if _, err := CalculatePrice(nil, base, base.Add(time.Hour)); !errors.Is(err, ErrPricingNotConfigured) {
		t.Errorf("nil rate card: got %v, want ErrPricingNotConfigured", err)
	}

	if _, err := CalculatePrice(testRateCard(), base, base); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("zero-length interval: got %v, want ErrInvalidTimeRange", err)
	}

	if _, err := CalculatePrice(testRateCard(), base.Add(time.Hour), base); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("reversed interval: got %v, want ErrInvalidTimeRange", err)
	}
}
