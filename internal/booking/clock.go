package booking

import (
	"time"

	"github.com/courtflow-mx/courtflow/internal/booking/tzresolve"
)

// Clock abstracts "now" so tests can pin time. The zero-dependency system
// clock is the production implementation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// DayBoundary holds the absolute instants of a local calendar day: local
// midnight through local 23:59:59.999, expressed in the club's zone.
type DayBoundary struct {
	Start time.Time
	End   time.Time
}

// ClockService answers time questions for a club timezone. It is stateless
// apart from the injected clock.
type ClockService struct {
	clock Clock
}

func NewClockService(clock Clock) *ClockService {
	if clock == nil {
		clock = SystemClock
	}
	return &ClockService{clock: clock}
}

// location loads tz, degrading to the default zone when the identifier is
// unknown. Detection degrades gracefully rather than raising.
func location(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc, err = time.LoadLocation(tzresolve.DefaultZone)
		if err != nil {
			// The embedded tzdata always carries the default zone.
			return time.UTC
		}
	}
	return loc
}

// NowIn returns the current instant expressed in tz.
func (s *ClockService) NowIn(tz string) time.Time {
	return s.clock.Now().In(location(tz))
}

// TodayIn returns the current local calendar date in tz as "YYYY-MM-DD".
func (s *ClockService) TodayIn(tz string) string {
	return s.NowIn(tz).Format("2006-01-02")
}

// DayBoundaries computes the local midnight-to-midnight span of localDate in
// tz. The date string is split into explicit year/month/day components rather
// than handed to a locale-sensitive parser, so the boundary never drifts a day
// depending on the host timezone.
func (s *ClockService) DayBoundaries(localDate, tz string) (DayBoundary, error) {
	year, month, day, err := parseDate(localDate)
	if err != nil {
		return DayBoundary{}, err
	}
	loc := location(tz)
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), loc)
	return DayBoundary{Start: start, End: end}, nil
}

// IsPast reports whether localDate+timeStr in tz is strictly earlier than
// now+buffer. The buffer is additive to "now": a slot landing exactly on
// now+buffer is not past.
func (s *ClockService) IsPast(timeStr, localDate, tz string, buffer time.Duration) (bool, error) {
	year, month, day, err := parseDate(localDate)
	if err != nil {
		return false, err
	}
	hour, minute, err := parseClockTime(timeStr)
	if err != nil {
		return false, err
	}
	loc := location(tz)
	slot := time.Date(year, month, day, hour, minute, 0, 0, loc)
	cutoff := s.clock.Now().Add(buffer)
	return slot.Before(cutoff), nil
}

// parseDate validates and splits a "YYYY-MM-DD" string. Round-tripping through
// time.Date catches impossible dates like 2025-02-30, which normalize forward.
func parseDate(localDate string) (int, time.Month, int, error) {
	t, err := time.Parse("2006-01-02", localDate)
	if err != nil {
		return 0, 0, 0, &FormatError{Field: "date", Value: localDate}
	}
	year, month, day := t.Date()
	return year, month, day, nil
}

// parseClockTime validates and splits an "HH:MM" string on a 24-hour clock.
func parseClockTime(timeStr string) (int, int, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return 0, 0, &FormatError{Field: "time", Value: timeStr}
	}
	return t.Hour(), t.Minute(), nil
}

// minuteOfDay converts "HH:MM" to minutes since local midnight.
func minuteOfDay(timeStr string) (int, error) {
	hour, minute, err := parseClockTime(timeStr)
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// formatMinute converts minutes since midnight back to "HH:MM".
func formatMinute(m int) string {
	return time.Date(2000, 1, 1, 0, m, 0, 0, time.UTC).Format("15:04")
}
