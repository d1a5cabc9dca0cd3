package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createReservation "github.com/m04kA/SMC-SalonService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	TenantID  int64   `json:"tenantId"`
	StaffID   *int64  `json:"staffId,omitempty"`
	MenuIDs   []int64 `json:"menuIds"`
	Date      string  `json:"date"`      // "2026-01-15"
	StartTime string  `json:"startTime"` // "10:00"
	Notes     *string `json:"notes,omitempty"`
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
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		TenantID:   r.TenantID,
		CustomerID: customerID,
		StaffID:    r.StaffID,
		MenuIDs:    r.MenuIDs,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
