package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	updateReservation "github.com/m04kA/SMC-SalonService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UpdateReservationRequest HTTP request model.
// Отсутствующие поля оставляют прежние значения.
type UpdateReservationRequest struct {
	TenantID   int64   `json:"tenantId"`
	StaffID    *int64  `json:"staffId,omitempty"`
	ClearStaff bool    `json:"clearStaff,omitempty"`
	MenuIDs    []int64 `json:"menuIds,omitempty"`
	Date       *string `json:"date,omitempty"`      // "2026-01-15"
	StartTime  *string `json:"startTime,omitempty"` // "10:00"
	Notes      *string `json:"notes,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64              `json:"id"`
	TenantID        int64              `json:"tenantId"`
	CustomerID      int64              `json:"customerId"`
	StaffID         *int64             `json:"staffId,omitempty"`
	Date            string             `json:"date"`
	StartTime       string             `json:"startTime"`
	EndTime         string             `json:"endTime"`
	Status          string             `json:"status"`
	DurationMinutes int                `json:"durationMinutes"`
	TotalPrice      int64              `json:"totalPrice"`
	MenuItems       []MenuItemResponse `json:"menuItems"`
	Notes           *string            `json:"notes,omitempty"`
	CreatedAt       string             `json:"createdAt"`
	UpdatedAt       string             `json:"updatedAt"`
}

// MenuItemResponse позиция меню в ответе
type MenuItemResponse struct {
	MenuID          int64  `json:"menuId"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ReservationID: reservationID,
		TenantID:      r.TenantID,
		StaffID:       r.StaffID,
		ClearStaff:    r.ClearStaff,
		MenuIDs:       r.MenuIDs,
		Notes:         r.Notes,
		Status:        r.Status,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	items := make([]MenuItemResponse, 0, len(resp.MenuItems))
	for _, it := range resp.MenuItems {
		items = append(items, MenuItemResponse{
			MenuID:          it.MenuID,
			Name:            it.Name,
			Price:           it.Price,
			DurationMinutes: it.DurationMinutes,
		})
	}

	return &ReservationResponse{
		ID:              resp.ID,
		TenantID:        resp.TenantID,
		CustomerID:      resp.CustomerID,
		StaffID:         resp.StaffID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Status:          resp.Status,
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice,
		MenuItems:       items,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
