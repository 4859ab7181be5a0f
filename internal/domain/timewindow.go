package domain

import (
	"fmt"
	"time"
)

const (
	// DefaultDurationMinutes is applied when a request does not specify one.
	DefaultDurationMinutes = 120

	minutesPerDay = 24 * 60
)

// ParseClock converts a 24-hour "HH:MM" wall-clock string to minutes from
// midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrValidationMeta("invalid time", map[string]string{"time": "must be HH:MM 24-hour"})
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as "HH:MM". Values past midnight
// wrap (a 23:00 seating with a 2h duration ends at 01:00).
func FormatClock(min int) string {
	min = ((min % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseDate validates a calendar date and returns its normalized form.
// Dates carry no zone; the restaurant's configured zone is applied by the
// calling layer.
func ParseDate(s string) (string, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", ErrValidationMeta("invalid date", map[string]string{"date": "must be YYYY-MM-DD"})
	}
	return t.Format("2006-01-02"), nil
}

// TimeWindow is a same-day seating window. Start and End are minutes from
// midnight; End may exceed 24*60 when a seating runs past midnight but the
// window still belongs to Date.
type TimeWindow struct {
	Date  string `json:"date"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func NewTimeWindow(date, start string, durationMinutes int) (TimeWindow, error) {
	d, err := ParseDate(date)
	if err != nil {
		return TimeWindow{}, err
	}
	s, err := ParseClock(start)
	if err != nil {
		return TimeWindow{}, err
	}
	if durationMinutes == 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if durationMinutes < 0 {
		return TimeWindow{}, ErrValidation("duration must be positive")
	}
	return TimeWindow{Date: d, Start: s, End: s + durationMinutes}, nil
}

// Overlaps applies the half-open interval test: two windows conflict only if
// they share interior time. Touching endpoints (21:00 end vs 21:00 start) do
// not overlap. Windows on different dates never overlap.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	if w.Date != o.Date {
		return false
	}
	return w.Start < o.End && o.Start < w.End
}

func (w TimeWindow) Duration() int { return w.End - w.Start }

func (w TimeWindow) StartClock() string { return FormatClock(w.Start) }
func (w TimeWindow) EndClock() string   { return FormatClock(w.End) }

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s %s-%s", w.Date, w.StartClock(), w.EndClock())
}
