package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func calendarTenant() *Tenant {
	return &Tenant{
		ID:                        1,
		IsActive:                  true,
		MaxConcurrentReservations: 3,
		BusinessHours: BusinessHours{
			"1":       {Open: "09:00", Close: "18:00"}, // понедельник
			"default": {Open: "10:00", Close: "20:00"},
		},
		ClosedDays:          []int{3}, // среда
		TemporaryClosedDays: []string{"2026-03-17"},
		SpecialBusinessHours: map[string]DayWindow{
			"2026-03-16": {Open: "12:00", Close: "15:00"},
		},
	}
}

func TestResolveDayWindow(t *testing.T) {
	tenant := calendarTenant()

	t.Run("temporary closure wins over everything", func(t *testing.T) {
		// 2026-03-17 - вторник, но дата в списке временных закрытий
		date := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
		window := ResolveDayWindow(tenant, date)
		assert.False(t, window.IsOpen)
	})

	t.Run("weekly closure", func(t *testing.T) {
		// 2026-03-18 - среда
		date := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
		require.Equal(t, time.Wednesday, date.Weekday())
		window := ResolveDayWindow(tenant, date)
		assert.False(t, window.IsOpen)
	})

	t.Run("special hours override weekday hours", func(t *testing.T) {
		// 2026-03-16 - понедельник с особыми часами
		date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
		require.Equal(t, time.Monday, date.Weekday())
		window := ResolveDayWindow(tenant, date)
		require.True(t, window.IsOpen)
		assert.Equal(t, types.TimeString("12:00"), window.Open)
		assert.Equal(t, types.TimeString("15:00"), window.Close)
	})

	t.Run("weekday hours", func(t *testing.T) {
		// 2026-03-23 - обычный понедельник
		date := time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC)
		window := ResolveDayWindow(tenant, date)
		require.True(t, window.IsOpen)
		assert.Equal(t, types.TimeString("09:00"), window.Open)
		assert.Equal(t, types.TimeString("18:00"), window.Close)
	})

	t.Run("default key fallback", func(t *testing.T) {
		// 2026-03-20 - пятница, записи на "5" нет
		date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
		window := ResolveDayWindow(tenant, date)
		require.True(t, window.IsOpen)
		assert.Equal(t, types.TimeString("10:00"), window.Open)
		assert.Equal(t, types.TimeString("20:00"), window.Close)
	})

	t.Run("hardcoded fallback without any hours", func(t *testing.T) {
		bare := &Tenant{ID: 2, IsActive: true}
		date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
		window := ResolveDayWindow(bare, date)
		require.True(t, window.IsOpen)
		assert.Equal(t, types.TimeString(DefaultDayWindow.Open), window.Open)
		assert.Equal(t, types.TimeString(DefaultDayWindow.Close), window.Close)
	})
}

func TestValidateWithinWindow(t *testing.T) {
	window := ResolvedWindow{IsOpen: true, Open: "10:00", Close: "19:00"}

	t.Run("inside the window", func(t *testing.T) {
		assert.NoError(t, ValidateWithinWindow(window, "10:00", 60))
	})

	t.Run("end exactly at close is accepted", func(t *testing.T) {
		assert.NoError(t, ValidateWithinWindow(window, "18:00", 60))
	})

	t.Run("end past close is rejected", func(t *testing.T) {
		err := ValidateWithinWindow(window, "18:30", 60)
		var closeErr *ClosingTimeError
		require.ErrorAs(t, err, &closeErr)
		assert.Equal(t, types.TimeString("19:30"), closeErr.End)
	})

	t.Run("start before open is rejected", func(t *testing.T) {
		err := ValidateWithinWindow(window, "09:30", 60)
		var openErr *OpeningTimeError
		require.ErrorAs(t, err, &openErr)
		assert.Equal(t, types.TimeString("09:30"), openErr.Start)
	})

	t.Run("midnight overflow is rejected", func(t *testing.T) {
		lateWindow := ResolvedWindow{IsOpen: true, Open: "10:00", Close: "23:00"}
		err := ValidateWithinWindow(lateWindow, "23:30", 60)
		var closeErr *ClosingTimeError
		require.ErrorAs(t, err, &closeErr)
	})
}

func TestDayWindow_Validate(t *testing.T) {
	assert.NoError(t, DayWindow{Open: "10:00", Close: "19:00"}.Validate())
	assert.ErrorIs(t, DayWindow{Open: "19:00", Close: "10:00"}.Validate(), ErrInvalidBusinessHours)
	assert.ErrorIs(t, DayWindow{Open: "10:00", Close: "10:00"}.Validate(), ErrInvalidBusinessHours)
	assert.ErrorIs(t, DayWindow{Open: "9:00", Close: "19:00"}.Validate(), ErrInvalidBusinessHours)
}

func TestReservation_Lifecycle(t *testing.T) {
	confirmed := &Reservation{Status: StatusConfirmed}
	assert.True(t, confirmed.IsActive())
	assert.True(t, confirmed.CanBeCancelled())
	assert.True(t, confirmed.CanBeUpdated())
	assert.False(t, confirmed.IsFinal())

	completed := &Reservation{Status: StatusCompleted}
	assert.False(t, completed.IsActive())
	assert.False(t, completed.CanBeCancelled())
	assert.True(t, completed.IsFinal())

	cancelled := &Reservation{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.False(t, cancelled.CanBeUpdated())
	assert.True(t, cancelled.IsFinal())
}

func TestReservation_EndsAt(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	r := &Reservation{
		Date:            time.Date(2026, 3, 16, 0, 0, 0, 0, loc),
		StartTime:       "18:00",
		DurationMinutes: 90,
	}

	endsAt, err := r.EndsAt(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 19, 30, 0, 0, loc), endsAt)
}

func TestReservation_EffectiveDuration(t *testing.T) {
	assert.Equal(t, 90, (&Reservation{DurationMinutes: 90}).EffectiveDuration())
	assert.Equal(t, DefaultDurationMinutes, (&Reservation{}).EffectiveDuration())
	assert.Equal(t, DefaultDurationMinutes, (&Reservation{DurationMinutes: -5}).EffectiveDuration())
}
