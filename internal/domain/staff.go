package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Staff is a service provider belonging to one tenant
type Staff struct {
	ID       int64
	TenantID int64
	Name     string
	// WorkingHours optional "HH:MM-HH:MM" window constraining assignments
	WorkingHours *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StaffHoursError reports an assignment outside the staff working hours
type StaffHoursError struct {
	StaffName string
	Start     types.TimeString
	End       types.TimeString
}

func (e *StaffHoursError) Error() string {
	return fmt.Sprintf("domain: staff %q works %s-%s only", e.StaffName, e.Start, e.End)
}

// CanServe checks that [start, start+duration) fits inside the staff
// working-hours window. Staff without a configured window serve any time.
func (s *Staff) CanServe(start types.TimeString, durationMinutes int) error {
	wStart, wEnd, ok, err := s.WorkingWindow()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return &StaffHoursError{StaffName: s.Name, Start: wStart, End: wEnd}
	}
	if start.IsBefore(wStart) || end.IsAfter(wEnd) {
		return &StaffHoursError{StaffName: s.Name, Start: wStart, End: wEnd}
	}

	return nil
}

// WorkingWindow parses the "HH:MM-HH:MM" working-hours string.
// Returns ok=false when no window is configured.
func (s *Staff) WorkingWindow() (start, end types.TimeString, ok bool, err error) {
	if s.WorkingHours == nil || *s.WorkingHours == "" {
		return "", "", false, nil
	}

	parts := strings.SplitN(*s.WorkingHours, "-", 2)
	if len(parts) != 2 {
		return "", "", false, fmt.Errorf("%w: %q", ErrInvalidWorkingHours, *s.WorkingHours)
	}

	start, err = types.NewTimeStringFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", "", false, fmt.Errorf("%w: %q", ErrInvalidWorkingHours, *s.WorkingHours)
	}
	end, err = types.NewTimeStringFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", false, fmt.Errorf("%w: %q", ErrInvalidWorkingHours, *s.WorkingHours)
	}
	if !start.IsBefore(end) {
		return "", "", false, fmt.Errorf("%w: start must be before end in %q", ErrInvalidWorkingHours, *s.WorkingHours)
	}

	return start, end, true, nil
}
