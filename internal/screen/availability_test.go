package screen

import (
	"errors"
	"testing"
	"time"
)

// 2026-03-02 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func window(day time.Weekday, from, to string) AvailabilityWindow {
	start, err := ParseTimeOfDay(from)
	if err != nil {
		panic(err)
	}
	end, err := ParseTimeOfDay(to)
	if err != nil {
		panic(err)
	}
	return AvailabilityWindow{DayOfWeek: day, StartOfDay: start, EndOfDay: end}
}

func fullDay(day time.Weekday) AvailabilityWindow {
	return AvailabilityWindow{DayOfWeek: day, StartOfDay: 0, EndOfDay: 24 * time.Hour}
}

func bookableScreen(windows []AvailabilityWindow, slots []BookedSlot) *Screen {
	return &Screen{
		IsActive:   true,
		IsVerified: true,
		Windows:    windows,
		Bookings:   slots,
	}
}

func TestIsAvailable(t *testing.T) {
	mondayWindow := []AvailabilityWindow{window(time.Monday, "09:00", "18:00")}

	tests := []struct {
		name   string
		screen *Screen
		start  time.Time
		end    time.Time
		want   bool
	}{
		{
			name:   "inside window, no bookings",
			screen: bookableScreen(mondayWindow, nil),
			start:  monday(10, 0),
			end:    monday(12, 0),
			want:   true,
		},
		{
			name:   "exactly the window bounds",
			screen: bookableScreen(mondayWindow, nil),
			start:  monday(9, 0),
			end:    monday(18, 0),
			want:   true,
		},
		{
			name:   "starts before the window opens",
			screen: bookableScreen(mondayWindow, nil),
			start:  monday(8, 0),
			end:    monday(10, 0),
			want:   false,
		},
		{
			name:   "runs past the window close",
			screen: bookableScreen(mondayWindow, nil),
			start:  monday(17, 0),
			end:    monday(19, 0),
			want:   false,
		},
		{
			name:   "wrong weekday",
			screen: bookableScreen([]AvailabilityWindow{window(time.Tuesday, "09:00", "18:00")}, nil),
			start:  monday(10, 0),
			end:    monday(12, 0),
			want:   false,
		},
		{
			name:   "no windows at all",
			screen: bookableScreen(nil, nil),
			start:  monday(10, 0),
			end:    monday(12, 0),
			want:   false,
		},
		{
			name: "covered by the second of two overlapping windows",
			screen: bookableScreen([]AvailabilityWindow{
				window(time.Monday, "09:00", "12:00"),
				window(time.Monday, "08:00", "20:00"),
			}, nil),
			start: monday(11, 0),
			end:   monday(14, 0),
			want:  true,
		},
		{
			name: "inactive screen is never available",
			screen: &Screen{
				IsActive:   false,
				IsVerified: true,
				Windows:    mondayWindow,
			},
			start: monday(10, 0),
			end:   monday(12, 0),
			want:  false,
		},
		{
			name: "unverified screen is never available",
			screen: &Screen{
				IsActive:   true,
				IsVerified: false,
				Windows:    mondayWindow,
			},
			start: monday(10, 0),
			end:   monday(12, 0),
			want:  false,
		},
		{
			name: "overlapping confirmed booking blocks",
			screen: bookableScreen(mondayWindow, []BookedSlot{
				{StartTime: monday(11, 0), EndTime: monday(13, 0), Status: "confirmed"},
			}),
			start: monday(10, 0),
			end:   monday(12, 0),
			want:  false,
		},
		{
			name: "overlapping pending booking blocks",
			screen: bookableScreen(mondayWindow, []BookedSlot{
				{StartTime: monday(11, 0), EndTime: monday(13, 0), Status: "pending"},
			}),
			start: monday(10, 0),
			end:   monday(12, 0),
			want:  false,
		},
		{
			name: "cancelled booking frees the slot",
			screen: bookableScreen(mondayWindow, []BookedSlot{
				{StartTime: monday(11, 0), EndTime: monday(13, 0), Status: "cancelled"},
			}),
			start: monday(10, 0),
			end:   monday(12, 0),
			want:  true,
		},
		{
			name: "back-to-back bookings do not collide",
			screen: bookableScreen(mondayWindow, []BookedSlot{
				{StartTime: monday(9, 0), EndTime: monday(11, 0), Status: "confirmed"},
			}),
			start: monday(11, 0),
			end:   monday(13, 0),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsAvailable(tt.screen, tt.start, tt.end)
			if err != nil {
				t.Fatalf("IsAvailable() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAvailableRejectsReversedInterval(t *testing.T) {
	s := bookableScreen([]AvailabilityWindow{fullDay(time.Monday)}, nil)

	_, err := IsAvailable(s, monday(12, 0), monday(10, 0))
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}

	_, err = IsAvailable(s, monday(12, 0), monday(12, 0))
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange for zero-length interval, got %v", err)
	}
}

func TestIsAvailableMultiDay(t *testing.T) {
	allWeekAllDay := make([]AvailabilityWindow, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		allWeekAllDay = append(allWeekAllDay, fullDay(d))
	}

	tests := []struct {
		name    string
		windows []AvailabilityWindow
		start   time.Time
		end     time.Time
		want    bool
	}{
		{
			name:    "full-day windows every day",
			windows: allWeekAllDay,
			start:   monday(10, 0),
			end:     monday(10, 0).AddDate(0, 0, 3),
			want:    true,
		},
		{
			// The first day requires a window running until at least 23:59,
			// so a window that closes at 18:00 fails even though the
			// requested start is inside it.
			name: "first-day window closes too early",
			windows: []AvailabilityWindow{
				window(time.Monday, "09:00", "18:00"),
				fullDay(time.Tuesday),
			},
			start: monday(10, 0),
			end:   time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name: "first day open to midnight, last day from midnight",
			windows: []AvailabilityWindow{
				AvailabilityWindow{DayOfWeek: time.Monday, StartOfDay: 9 * time.Hour, EndOfDay: 24 * time.Hour},
				window(time.Tuesday, "00:00", "12:00"),
			},
			start: monday(10, 0),
			end:   time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			// The last day needs a window starting at midnight.
			name: "last-day window opens too late",
			windows: []AvailabilityWindow{
				AvailabilityWindow{DayOfWeek: time.Monday, StartOfDay: 9 * time.Hour, EndOfDay: 24 * time.Hour},
				window(time.Tuesday, "08:00", "12:00"),
			},
			start: monday(10, 0),
			end:   time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			// Middle days only need some window on that weekday, however
			// short.
			name: "middle day admitted by a one-hour window",
			windows: []AvailabilityWindow{
				fullDay(time.Monday),
				window(time.Tuesday, "13:00", "14:00"),
				fullDay(time.Wednesday),
			},
			start: monday(10, 0),
			end:   time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name: "middle day with no window at all",
			windows: []AvailabilityWindow{
				fullDay(time.Monday),
				fullDay(time.Wednesday),
			},
			start: monday(10, 0),
			end:   time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsAvailable(bookableScreen(tt.windows, nil), tt.start, tt.end)
			if err != nil {
				t.Fatalf("IsAvailable() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}
