package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func staffReservation(id int64, staffID int64, start string, duration int) *Reservation {
	return &Reservation{
		ID:              id,
		StaffID:         &staffID,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          StatusConfirmed,
	}
}

func unassignedReservation(id int64, start string, duration int) *Reservation {
	return &Reservation{
		ID:              id,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          StatusConfirmed,
	}
}

func TestCheckConflict_StaffMode(t *testing.T) {
	staffID := int64(7)

	t.Run("overlap with same staff is rejected", func(t *testing.T) {
		existing := []*Reservation{
			staffReservation(1, staffID, "10:00", 60),
		}
		candidate := Candidate{Start: "10:30", DurationMinutes: 60, StaffID: &staffID}

		err := CheckConflict(candidate, existing, DefaultMaxConcurrentReservations)
		var conflictErr *SlotConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, int64(1), conflictErr.ConflictingID)
		assert.Equal(t, types.TimeString("10:00"), conflictErr.ConflictStart)
	})

	t.Run("back to back is allowed", func(t *testing.T) {
		existing := []*Reservation{
			staffReservation(1, staffID, "10:00", 60),
		}
		candidate := Candidate{Start: "11:00", DurationMinutes: 60, StaffID: &staffID}

		assert.NoError(t, CheckConflict(candidate, existing, DefaultMaxConcurrentReservations))
	})

	t.Run("different staff does not conflict", func(t *testing.T) {
		other := int64(8)
		existing := []*Reservation{
			staffReservation(1, other, "10:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60, StaffID: &staffID}

		assert.NoError(t, CheckConflict(candidate, existing, DefaultMaxConcurrentReservations))
	})

	t.Run("unassigned rows do not block staff candidate", func(t *testing.T) {
		existing := []*Reservation{
			unassignedReservation(1, "10:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60, StaffID: &staffID}

		assert.NoError(t, CheckConflict(candidate, existing, DefaultMaxConcurrentReservations))
	})

	t.Run("earliest overlapping reservation is reported", func(t *testing.T) {
		// Порядок выборки из БД не должен влиять на сообщение об ошибке
		existing := []*Reservation{
			staffReservation(2, staffID, "11:00", 60),
			staffReservation(1, staffID, "10:30", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 120, StaffID: &staffID}

		err := CheckConflict(candidate, existing, DefaultMaxConcurrentReservations)
		var conflictErr *SlotConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, int64(1), conflictErr.ConflictingID)
		assert.Equal(t, types.TimeString("10:30"), conflictErr.ConflictStart)
	})

	t.Run("cancelled reservation does not block", func(t *testing.T) {
		cancelled := staffReservation(1, staffID, "10:00", 60)
		cancelled.Status = StatusCancelled
		candidate := Candidate{Start: "10:00", DurationMinutes: 60, StaffID: &staffID}

		assert.NoError(t, CheckConflict(candidate, []*Reservation{cancelled}, DefaultMaxConcurrentReservations))
	})

	t.Run("excluded reservation does not block itself", func(t *testing.T) {
		excludeID := int64(1)
		existing := []*Reservation{
			staffReservation(1, staffID, "10:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60, StaffID: &staffID, ExcludeID: &excludeID}

		assert.NoError(t, CheckConflict(candidate, existing, DefaultMaxConcurrentReservations))
	})
}

func TestCheckConflict_CapacityMode(t *testing.T) {
	t.Run("below cap is admitted", func(t *testing.T) {
		existing := []*Reservation{
			unassignedReservation(1, "10:00", 60),
			unassignedReservation(2, "10:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60}

		assert.NoError(t, CheckConflict(candidate, existing, 3))
	})

	t.Run("at cap is rejected", func(t *testing.T) {
		existing := []*Reservation{
			unassignedReservation(1, "10:00", 60),
			unassignedReservation(2, "10:00", 60),
			unassignedReservation(3, "10:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60}

		err := CheckConflict(candidate, existing, 3)
		var capErr *CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, 3, capErr.Limit)
	})

	t.Run("staff-assigned rows count toward the cap", func(t *testing.T) {
		staffID := int64(7)
		existing := []*Reservation{
			staffReservation(1, staffID, "10:00", 60),
			unassignedReservation(2, "10:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60}

		err := CheckConflict(candidate, existing, 2)
		var capErr *CapacityError
		require.ErrorAs(t, err, &capErr)
	})

	t.Run("non-overlapping rows do not count", func(t *testing.T) {
		existing := []*Reservation{
			unassignedReservation(1, "09:00", 60),
			unassignedReservation(2, "11:00", 60),
			unassignedReservation(3, "12:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60}

		assert.NoError(t, CheckConflict(candidate, existing, 1))
	})

	t.Run("back to back does not count as overlap", func(t *testing.T) {
		existing := []*Reservation{
			unassignedReservation(1, "09:00", 60),
			unassignedReservation(2, "11:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60}

		assert.NoError(t, CheckConflict(candidate, existing, 1))
	})

	t.Run("invalid cap falls back to default", func(t *testing.T) {
		existing := []*Reservation{
			unassignedReservation(1, "10:00", 60),
			unassignedReservation(2, "10:00", 60),
		}
		candidate := Candidate{Start: "10:00", DurationMinutes: 60}

		// maxConcurrent=0 трактуется как дефолтный лимит 3
		assert.NoError(t, CheckConflict(candidate, existing, 0))
	})

	t.Run("unknown duration counts as default", func(t *testing.T) {
		existing := []*Reservation{
			unassignedReservation(1, "10:00", 0),
		}
		// Дефолт 60 минут: интервал 10:00-11:00 пересекается с 10:30
		candidate := Candidate{Start: "10:30", DurationMinutes: 30}

		err := CheckConflict(candidate, existing, 1)
		var capErr *CapacityError
		require.ErrorAs(t, err, &capErr)
	})
}
