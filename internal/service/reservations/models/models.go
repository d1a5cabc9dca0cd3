package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования.
// Заполняется либо CustomerID (отмена клиентом, действует срок отмены),
// либо TenantID (отмена салоном, срока нет).
type CancelReservationRequest struct {
	CustomerID         *int64 `json:"customerId,omitempty"`
	TenantID           *int64 `json:"tenantId,omitempty"`
	CancellationReason string `json:"cancellationReason"`
}

// GetCustomerReservationsRequest запрос на получение бронирований клиента
type GetCustomerReservationsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetTenantReservationsRequest запрос на получение бронирований салона
type GetTenantReservationsRequest struct {
	TenantID        int64      `json:"tenantId"`
	StaffID         *int64     `json:"staffId,omitempty"`         // Фильтр по мастеру (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные и завершенные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTenantReservationsRequest) ToDomainFilter() (domain.TenantReservationsFilter, error) {
	filter := domain.TenantReservationsFilter{
		TenantID:        r.TenantID,
		StaffID:         r.StaffID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         int64  `json:"id"`
	TenantID   int64  `json:"tenantId"`
	CustomerID int64  `json:"customerId"`
	StaffID    *int64 `json:"staffId,omitempty"`
	Date       string `json:"date"`      // "2026-01-15"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "11:30"
	Status     string `json:"status"`

	DurationMinutes int   `json:"durationMinutes"`
	TotalPrice      int64 `json:"totalPrice"`

	MenuItems []MenuItemResponse `json:"menuItems"`

	Notes    *string `json:"notes,omitempty"`
	IsViewed bool    `json:"isViewed"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MenuItemResponse позиция меню со снимком цены на момент бронирования
type MenuItemResponse struct {
	MenuID          int64  `json:"menuId"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	endTime := r.StartTime
	if end, err := r.EndTime(); err == nil {
		endTime = end
	}

	items := make([]MenuItemResponse, 0, len(r.MenuItems))
	for _, it := range r.MenuItems {
		items = append(items, MenuItemResponse{
			MenuID:          it.MenuID,
			Name:            it.Name,
			Price:           it.Price,
			DurationMinutes: it.DurationMinutes,
		})
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		TenantID:           r.TenantID,
		CustomerID:         r.CustomerID,
		StaffID:            r.StaffID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            endTime.String(),
		Status:             string(r.Status),
		DurationMinutes:    r.DurationMinutes,
		TotalPrice:         r.TotalPrice,
		MenuItems:          items,
		Notes:              r.Notes,
		IsViewed:           r.IsViewed,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, r := range reservations {
		if dto := FromDomainReservation(r); dto != nil {
			resp.Reservations[i] = *dto
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
