package screen

import "time"

// endOfDayCutoff is the legacy end-of-day bound used when judging the first
// day of a multi-day interval: a window must run until at least 23:59 to
// accept partial first-day coverage. Kept for behavioral compatibility with
// the historical data set; see windowsCoverSpan.
const endOfDayCutoff = 23*time.Hour + 59*time.Minute

// IsAvailable reports whether the candidate interval [start, end) may be
// booked on the screen. Two independent gates must both pass: the interval
// must be covered by the union of the screen's availability windows, and it
// must not overlap any existing non-cancelled booking. An inactive or
// unverified screen is never available. "Not available" is an ordinary
// false; the only error is a reversed interval.
func IsAvailable(s *Screen, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidTimeRange
	}

	if !s.IsActive || !s.IsVerified {
		return false, nil
	}

	if !windowsCover(s.Windows, start, end) {
		return false, nil
	}

	if hasBlockingOverlap(s.Bookings, start, end) {
		return false, nil
	}

	return true, nil
}

// windowsCover checks the template-coverage gate: every calendar day spanned
// by [start, end) must be admitted by some availability window. With zero
// windows nothing is ever covered.
func windowsCover(windows []AvailabilityWindow, start, end time.Time) bool {
	if len(windows) == 0 {
		return false
	}

	startDay := dateOf(start)
	endDay := dateOf(end)

	if startDay.Equal(endDay) {
		return anyWindowCovers(windows, start.Weekday(), timeOfDay(start), timeOfDay(end))
	}

	return windowsCoverSpan(windows, startDay, endDay, timeOfDay(start), timeOfDay(end))
}

// windowsCoverSpan judges a multi-day interval day by day. The policy is
// inherited and deliberately asymmetric:
//   - first day: a window for that weekday must admit [startTOD, 23:59];
//   - last day: a window for that weekday must start at midnight and admit
//     the time up to endTOD;
//   - middle days: any window for that weekday admits the whole day,
//     regardless of its time bounds.
//
// TODO: product has been asked whether middle days should instead require a
// window covering the full day; until then this is the compatibility policy.
// Call sites depend only on this function, so correcting it is local.
func windowsCoverSpan(windows []AvailabilityWindow, startDay, endDay time.Time, startTOD, endTOD time.Duration) bool {
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		var covered bool
		switch {
		case day.Equal(startDay):
			covered = anyWindowCovers(windows, day.Weekday(), startTOD, endOfDayCutoff)
		case day.Equal(endDay):
			covered = anyWindowCovers(windows, day.Weekday(), 0, endTOD)
		default:
			covered = anyWindowOnDay(windows, day.Weekday())
		}
		if !covered {
			return false
		}
	}
	return true
}

// anyWindowCovers reports whether some window for the given weekday fully
// contains [from, to] as times of day.
func anyWindowCovers(windows []AvailabilityWindow, day time.Weekday, from, to time.Duration) bool {
	for _, w := range windows {
		if w.DayOfWeek == day && from >= w.StartOfDay && to <= w.EndOfDay {
			return true
		}
	}
	return false
}

// anyWindowOnDay reports whether any window exists for the given weekday.
func anyWindowOnDay(windows []AvailabilityWindow, day time.Weekday) bool {
	for _, w := range windows {
		if w.DayOfWeek == day {
			return true
		}
	}
	return false
}

// hasBlockingOverlap checks the overlap gate against existing bookings using
// half-open interval semantics: existing.start < end AND existing.end > start.
func hasBlockingOverlap(slots []BookedSlot, start, end time.Time) bool {
	for _, s := range slots {
		if !s.Blocking() {
			continue
		}
		if s.StartTime.Before(end) && s.EndTime.After(start) {
			return true
		}
	}
	return false
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
