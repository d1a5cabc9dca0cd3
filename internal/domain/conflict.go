package domain

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Candidate is the time interval being admitted
type Candidate struct {
	Start           types.TimeString
	DurationMinutes int
	// StaffID nil = бронирование без мастера, действует общий лимит арендатора
	StaffID *int64
	// ExcludeID id обновляемого бронирования, исключается из проверки
	ExcludeID *int64
}

// SlotConflictError is returned in staff mode when the candidate overlaps an
// existing reservation of the same staff member. ConflictStart is the start
// time of the earliest overlapping reservation, for user feedback.
type SlotConflictError struct {
	ConflictingID int64
	ConflictStart types.TimeString
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("domain: staff already booked from %s (reservation %d)", e.ConflictStart, e.ConflictingID)
}

// CapacityError is returned in unassigned mode when the count of overlapping
// confirmed reservations has reached the tenant cap
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("domain: concurrent reservation limit of %d reached", e.Limit)
}

// CheckConflict decides whether the candidate may occupy its interval given
// the day's existing reservations. Pure function, no side effects.
//
// Two mutually exclusive modes:
//   - staff mode (StaffID set): exclusivity against reservations of the same
//     staff member; the earliest-starting overlap is reported
//   - unassigned mode: the number of overlapping confirmed reservations of
//     the whole day (staff-assigned included) must stay below maxConcurrent
//
// Callers pass reservations of the same tenant and calendar date; cancelled
// and completed ones are skipped here regardless. Back-to-back intervals do
// not overlap. An existing reservation with unknown duration counts as
// DefaultDurationMinutes.
func CheckConflict(candidate Candidate, existing []*Reservation, maxConcurrent int) error {
	candidateEnd, err := candidate.Start.AddMinutes(candidate.DurationMinutes)
	if err != nil {
		return err
	}

	if candidate.StaffID != nil {
		return checkStaffConflict(candidate, candidateEnd, existing)
	}
	return checkCapacity(candidate, candidateEnd, existing, maxConcurrent)
}

// checkStaffConflict ищет пересечение с бронированиями того же мастера.
// Кандидаты сортируются по времени начала, чтобы ошибка всегда называла
// самое раннее пересекающееся бронирование (детерминированное правило,
// порядок выборки из БД значения не имеет).
func checkStaffConflict(candidate Candidate, candidateEnd types.TimeString, existing []*Reservation) error {
	sameStaff := make([]*Reservation, 0, len(existing))
	for _, r := range existing {
		if skipReservation(r, candidate.ExcludeID) {
			continue
		}
		if r.StaffID == nil || *r.StaffID != *candidate.StaffID {
			continue
		}
		sameStaff = append(sameStaff, r)
	}

	sort.Slice(sameStaff, func(i, j int) bool {
		return sameStaff[i].StartTime.IsBefore(sameStaff[j].StartTime)
	})

	for _, r := range sameStaff {
		end, err := r.StartTime.AddMinutes(r.EffectiveDuration())
		if err != nil {
			continue
		}
		// Строгие неравенства: стык конец-к-началу пересечением не считается
		if r.StartTime.IsBefore(candidateEnd) && end.IsAfter(candidate.Start) {
			return &SlotConflictError{ConflictingID: r.ID, ConflictStart: r.StartTime}
		}
	}

	return nil
}

// checkCapacity считает пересекающиеся подтвержденные бронирования всего дня.
// Бронирования с назначенным мастером тоже входят в счет - поведение
// исходной системы сохранено намеренно.
func checkCapacity(candidate Candidate, candidateEnd types.TimeString, existing []*Reservation, maxConcurrent int) error {
	if maxConcurrent < MinConcurrentReservations {
		maxConcurrent = DefaultMaxConcurrentReservations
	}

	count := 0
	for _, r := range existing {
		if skipReservation(r, candidate.ExcludeID) {
			continue
		}
		end, err := r.StartTime.AddMinutes(r.EffectiveDuration())
		if err != nil {
			continue
		}
		if r.StartTime.IsBefore(candidateEnd) && end.IsAfter(candidate.Start) {
			count++
		}
	}

	if count >= maxConcurrent {
		return &CapacityError{Limit: maxConcurrent}
	}

	return nil
}

func skipReservation(r *Reservation, excludeID *int64) bool {
	if !r.IsActive() {
		return true
	}
	if excludeID != nil && r.ID == *excludeID {
		return true
	}
	return false
}
