package domain

import "errors"

// Default configuration values
const (
	DefaultMaxConcurrentReservations = 3
	// DefaultDurationMinutes подставляется, когда длительность бронирования неизвестна
	DefaultDurationMinutes = 60
	// CustomerCancelNoticeDays за сколько дней до начала клиент еще может отменить
	CustomerCancelNoticeDays = 1
	// SlotGridStepMinutes шаг сетки при выдаче доступных слотов
	SlotGridStepMinutes = 30
)

// DefaultDayWindow is the hardcoded open/close fallback used when a tenant
// has no business-hours entry at all for a day
var DefaultDayWindow = DayWindow{Open: "10:00", Close: "19:00"}

// BusinessHoursDefaultKey is the catch-all key of the business-hours mapping
const BusinessHoursDefaultKey = "default"

// Business validation constants
const (
	MinConcurrentReservations   = 1
	MaxConcurrentReservationCap = 100
	MinWeekdayIndex             = 0
	MaxWeekdayIndex             = 6
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слот
// Используется при фильтрации для контроля пересечений
var InactiveStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
}

var (
	// ErrInvalidBusinessHours возвращается при нарушении инварианта open < close
	ErrInvalidBusinessHours = errors.New("domain: invalid business hours window")

	// ErrInvalidWorkingHours возвращается при некорректной строке рабочих часов мастера
	ErrInvalidWorkingHours = errors.New("domain: invalid staff working hours")
)
