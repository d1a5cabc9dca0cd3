package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a salon visit booked by a customer.
// Menu price and duration are snapshotted into MenuItems at booking time,
// so later menu edits never change history.
type Reservation struct {
	ID         int64
	TenantID   int64
	CustomerID int64
	StaffID    *int64 // nil = любой свободный мастер
	Date       time.Time
	StartTime  types.TimeString
	// DurationMinutes is the aggregate of the menu line items
	DurationMinutes int
	// TotalPrice is the aggregate of the snapshotted item prices (yen)
	TotalPrice int64
	Status     ReservationStatus

	MenuItems []ReservationMenuItem

	Notes    *string
	IsViewed bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationMenuItem is one menu line of a reservation with values
// captured at booking time
type ReservationMenuItem struct {
	MenuID          int64
	Name            string
	Price           int64
	DurationMinutes int
	Position        int
}

// IsActive returns true while the reservation still occupies its slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// CanBeUpdated returns true if time/staff/menu fields may still be edited
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusConfirmed
}

// IsFinal returns true for terminal states with no outgoing transitions
func (r *Reservation) IsFinal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}

// EffectiveDuration returns the aggregate duration, defaulting to
// DefaultDurationMinutes when unknown
func (r *Reservation) EffectiveDuration() int {
	if r.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return r.DurationMinutes
}

// EndTime returns start + aggregate duration as a time of day
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.EffectiveDuration())
}

// StartsAt anchors the reservation start on its date in the business timezone
func (r *Reservation) StartsAt(loc *time.Location) (time.Time, error) {
	return r.StartTime.At(r.Date, loc)
}

// EndsAt returns the computed end instant in the business timezone
func (r *Reservation) EndsAt(loc *time.Location) (time.Time, error) {
	start, err := r.StartsAt(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(r.EffectiveDuration()) * time.Minute), nil
}

// TenantReservationsFilter фильтр для выборки бронирований арендатора
type TenantReservationsFilter struct {
	TenantID        int64              // Обязательный параметр
	StaffID         *int64             // Фильтр по мастеру (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные/завершенные
	ExcludeID       *int64             // Исключить бронирование (self-exclusion при обновлении)
}
