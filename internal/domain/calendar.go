package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ResolvedWindow is the outcome of resolving a tenant's calendar for one date
type ResolvedWindow struct {
	IsOpen bool
	Open   types.TimeString
	Close  types.TimeString
}

// ResolveDayWindow determines whether the tenant is open on the given date
// and what the open/close window is.
//
// Resolution order:
//  1. temporary closure for the exact date -> closed
//  2. recurring weekly closure -> closed
//  3. special business hours for the exact date
//  4. business hours for the weekday, then "default", then DefaultDayWindow
func ResolveDayWindow(tenant *Tenant, date time.Time) ResolvedWindow {
	dateKey := date.Format(DateFormat)

	if tenant.IsTemporarilyClosed(dateKey) {
		return ResolvedWindow{IsOpen: false}
	}

	weekday := date.Weekday()
	if tenant.IsClosedWeekday(weekday) {
		return ResolvedWindow{IsOpen: false}
	}

	window, ok := tenant.SpecialBusinessHours[dateKey]
	if !ok {
		window = tenant.BusinessHours.WindowFor(weekday)
	}

	return ResolvedWindow{
		IsOpen: true,
		Open:   types.TimeString(window.Open),
		Close:  types.TimeString(window.Close),
	}
}

// ClosingTimeError reports a candidate whose computed end runs past the
// resolved close time. Close is carried for the user-facing message.
type ClosingTimeError struct {
	Close types.TimeString
	End   types.TimeString
}

func (e *ClosingTimeError) Error() string {
	return fmt.Sprintf("domain: reservation end %s exceeds closing time %s", e.End, e.Close)
}

// OpeningTimeError reports a candidate starting before the resolved open time
type OpeningTimeError struct {
	Open  types.TimeString
	Start types.TimeString
}

func (e *OpeningTimeError) Error() string {
	return fmt.Sprintf("domain: reservation start %s is before opening time %s", e.Start, e.Open)
}

// ValidateWithinWindow checks that [start, start+duration) fits the resolved
// window. The end boundary is inclusive: ending exactly at close is accepted.
func ValidateWithinWindow(window ResolvedWindow, start types.TimeString, durationMinutes int) error {
	if start.IsBefore(window.Open) {
		return &OpeningTimeError{Open: window.Open, Start: start}
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return &ClosingTimeError{Close: window.Close, End: "24:00"}
	}
	if end.IsAfter(window.Close) {
		return &ClosingTimeError{Close: window.Close, End: end}
	}

	return nil
}
