package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// generateSlotStarts генерирует времена начала слотов на день.
// Сетка идет от открытия с шагом SlotGridStepMinutes; слот попадает в сетку,
// только если вся выбранная длительность умещается до закрытия (окончание
// ровно во время закрытия допустимо). Для сегодняшней даты прошедшие слоты
// отбрасываются.
func generateSlotStarts(
	window domain.ResolvedWindow,
	durationMinutes int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	starts := make([]types.TimeString, 0)
	current := window.Open

	for current.IsBefore(window.Close) {
		end, err := current.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
		if end.IsAfter(window.Close) {
			break
		}

		starts = append(starts, current)

		current, err = current.AddMinutes(domain.SlotGridStepMinutes)
		if err != nil {
			break
		}
	}

	if !isSameDay(requestDate, now) {
		return starts, nil
	}

	// Сегодня: оставляем только слоты, которые еще не начались
	currentTime := types.NewTimeString(now)
	upcoming := make([]types.TimeString, 0, len(starts))
	for _, s := range starts {
		if !s.IsBefore(currentTime) {
			upcoming = append(upcoming, s)
		}
	}

	return upcoming, nil
}

// buildSlots вычисляет доступность каждого слота теми же правилами, что и
// контроль допуска при создании бронирования.
//
// Для слота без мастера AvailableSpots = лимит минус число пересекающихся
// подтвержденных бронирований. Для слота с мастером место одно: свободно,
// если нет пересечения с его бронированиями и слот в его рабочих часах.
func buildSlots(
	starts []types.TimeString,
	durationMinutes int,
	staffID *int64,
	staffMember *domain.Staff,
	existing []*domain.Reservation,
	maxConcurrent int,
) []Slot {
	if maxConcurrent < domain.MinConcurrentReservations {
		maxConcurrent = domain.DefaultMaxConcurrentReservations
	}

	totalSpots := maxConcurrent
	if staffID != nil {
		totalSpots = 1
	}

	slots := make([]Slot, 0, len(starts))

	for _, start := range starts {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		available := 0

		if staffID != nil {
			candidate := domain.Candidate{
				Start:           start,
				DurationMinutes: durationMinutes,
				StaffID:         staffID,
			}
			if domain.CheckConflict(candidate, existing, maxConcurrent) == nil &&
				staffMember.CanServe(start, durationMinutes) == nil {
				available = 1
			}
		} else {
			overlapping := countOverlapping(start, end, existing)
			available = maxConcurrent - overlapping
			if available < 0 {
				available = 0
			}
		}

		slots = append(slots, Slot{
			StartTime:      start,
			EndTime:        end,
			AvailableSpots: available,
			TotalSpots:     totalSpots,
		})
	}

	return slots
}

// countOverlapping подсчитывает подтвержденные бронирования, пересекающиеся
// со слотом. Строгие неравенства: граничащие интервалы пересечением не
// считаются.
func countOverlapping(slotStart, slotEnd types.TimeString, existing []*domain.Reservation) int {
	count := 0

	for _, r := range existing {
		if !r.IsActive() {
			continue
		}

		end, err := r.StartTime.AddMinutes(r.EffectiveDuration())
		if err != nil {
			continue
		}

		if r.StartTime.IsBefore(slotEnd) && end.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
