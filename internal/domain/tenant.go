package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DayWindow is an open/close window for one calendar day
type DayWindow struct {
	Open  string `json:"open"`  // "HH:MM"
	Close string `json:"close"` // "HH:MM"
}

// Validate checks the "open < close" invariant of a window
func (w DayWindow) Validate() error {
	if len(w.Open) != 5 || len(w.Close) != 5 {
		return fmt.Errorf("%w: window %s-%s", ErrInvalidBusinessHours, w.Open, w.Close)
	}
	if w.Open >= w.Close {
		return fmt.Errorf("%w: open %s must be before close %s", ErrInvalidBusinessHours, w.Open, w.Close)
	}
	return nil
}

// BusinessHours maps a weekday index "0" (Sunday) .. "6" (Saturday),
// plus the optional "default" key, to an open/close window
type BusinessHours map[string]DayWindow

// WindowFor returns the window for the weekday, falling back to "default",
// falling back to the hardcoded DefaultDayWindow
func (h BusinessHours) WindowFor(weekday time.Weekday) DayWindow {
	if w, ok := h[strconv.Itoa(int(weekday))]; ok {
		return w
	}
	if w, ok := h[BusinessHoursDefaultKey]; ok {
		return w
	}
	return DefaultDayWindow
}

// Tenant represents one independent salon account
type Tenant struct {
	ID       int64
	Code     string
	Name     string
	IsActive bool

	// MaxConcurrentReservations is the tenant-wide cap for staff-unassigned
	// admission (integer >= 1)
	MaxConcurrentReservations int

	BusinessHours BusinessHours
	// ClosedDays weekly recurring closures, weekday indices 0..6
	ClosedDays []int
	// TemporaryClosedDays one-off closures, "YYYY-MM-DD"
	TemporaryClosedDays []string
	// SpecialBusinessHours per-date window overrides, "YYYY-MM-DD" keyed
	SpecialBusinessHours map[string]DayWindow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClosedWeekday reports whether the weekday is a recurring closure
func (t *Tenant) IsClosedWeekday(weekday time.Weekday) bool {
	for _, d := range t.ClosedDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// IsTemporarilyClosed reports whether the specific date is a one-off closure
func (t *Tenant) IsTemporarilyClosed(date string) bool {
	for _, d := range t.TemporaryClosedDays {
		if d == date {
			return true
		}
	}
	return false
}
