package screen

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "09:00", want: 9 * time.Hour},
		{input: "09:30:15", want: 9*time.Hour + 30*time.Minute + 15*time.Second},
		{input: "00:00", want: 0},
		{input: "23:59", want: 23*time.Hour + 59*time.Minute},
		{input: "24:00", wantErr: true},
		{input: "9am", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeOfDay) {
					t.Fatalf("ParseTimeOfDay(%q) error = %v, want ErrInvalidTimeOfDay", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	if got := FormatTimeOfDay(9*time.Hour + 5*time.Minute); got != "09:05:00" {
		t.Errorf("FormatTimeOfDay() = %q, want %q", got, "09:05:00")
	}
	if got := FormatTimeOfDay(0); got != "00:00:00" {
		t.Errorf("FormatTimeOfDay() = %q, want %q", got, "00:00:00")
	}
}

func TestAvailabilityWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  AvailabilityWindow
		wantErr bool
	}{
		{"normal window", AvailabilityWindow{StartOfDay: 9 * time.Hour, EndOfDay: 18 * time.Hour}, false},
		{"full day", AvailabilityWindow{StartOfDay: 0, EndOfDay: 24 * time.Hour}, false},
		{"reversed", AvailabilityWindow{StartOfDay: 18 * time.Hour, EndOfDay: 9 * time.Hour}, true},
		{"empty", AvailabilityWindow{StartOfDay: 9 * time.Hour, EndOfDay: 9 * time.Hour}, true},
		{"past midnight", AvailabilityWindow{StartOfDay: 9 * time.Hour, EndOfDay: 25 * time.Hour}, true},
		{"negative start", AvailabilityWindow{StartOfDay: -time.Hour, EndOfDay: 9 * time.Hour}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookedSlotBlocking(t *testing.T) {
	for status, want := range map[string]bool{
		"pending":   true,
		"confirmed": true,
		"completed": true,
		"cancelled": false,
	} {
		if got := (BookedSlot{Status: status}).Blocking(); got != want {
			t.Errorf("Blocking() with status %q = %v, want %v", status, got, want)
		}
	}
}

func TestGeoCoordinateValidate(t *testing.T) {
	if err := (GeoCoordinate{Latitude: 51.5, Longitude: -0.12}).Validate(); err != nil {
		t.Errorf("valid coordinate rejected: %v", err)
	}
	for _, g := range []GeoCoordinate{
		{Latitude: 91},
		{Latitude: -91},
		{Longitude: 181},
		{Longitude: -181},
	} {
		if err := g.Validate(); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidCoordinate", g, err)
		}
	}
}

func TestGeoCoordinateDistanceKm(t *testing.T) {
	london := GeoCoordinate{Latitude: 51.5074, Longitude: -0.1278}
	paris := GeoCoordinate{Latitude: 48.8566, Longitude: 2.3522}

	got := london.DistanceKm(paris)
	// Great-circle distance London-Paris is roughly 344 km.
	if math.Abs(got-344) > 5 {
		t.Errorf("DistanceKm() = %.1f, want about 344", got)
	}

	if d := london.DistanceKm(london); d > 0.001 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}
