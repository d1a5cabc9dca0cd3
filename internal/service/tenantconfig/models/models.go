package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// DayWindowDTO окно работы на один день
type DayWindowDTO struct {
	Open  string `json:"open"`  // "10:00"
	Close string `json:"close"` // "19:00"
}

// UpdateConfigRequest запрос на обновление настроек салона.
// Все поля опциональны - обновляются только переданные значения.
type UpdateConfigRequest struct {
	MaxConcurrentReservations *int                    `json:"maxConcurrentReservations,omitempty"`
	BusinessHours             map[string]DayWindowDTO `json:"businessHours,omitempty"`        // "0".."6" и "default"
	ClosedDays                *[]int                  `json:"closedDays,omitempty"`           // Дни недели 0..6
	TemporaryClosedDays       *[]string               `json:"temporaryClosedDays,omitempty"`  // "YYYY-MM-DD"
	SpecialBusinessHours      map[string]DayWindowDTO `json:"specialBusinessHours,omitempty"` // "YYYY-MM-DD" -> окно
}

// Response модели

// ConfigResponse ответ с настройками салона
type ConfigResponse struct {
	TenantID                  int64                   `json:"tenantId"`
	Name                      string                  `json:"name"`
	MaxConcurrentReservations int                     `json:"maxConcurrentReservations"`
	BusinessHours             map[string]DayWindowDTO `json:"businessHours"`
	ClosedDays                []int                   `json:"closedDays"`
	TemporaryClosedDays       []string                `json:"temporaryClosedDays"`
	SpecialBusinessHours      map[string]DayWindowDTO `json:"specialBusinessHours"`
	CreatedAt                 time.Time               `json:"createdAt"`
	UpdatedAt                 time.Time               `json:"updatedAt"`
}

// Методы конвертации

// FromDomainTenant конвертирует domain модель в DTO
func FromDomainTenant(t *domain.Tenant) *ConfigResponse {
	if t == nil {
		return nil
	}

	resp := &ConfigResponse{
		TenantID:                  t.ID,
		Name:                      t.Name,
		MaxConcurrentReservations: t.MaxConcurrentReservations,
		BusinessHours:             make(map[string]DayWindowDTO, len(t.BusinessHours)),
		ClosedDays:                t.ClosedDays,
		TemporaryClosedDays:       t.TemporaryClosedDays,
		SpecialBusinessHours:      make(map[string]DayWindowDTO, len(t.SpecialBusinessHours)),
		CreatedAt:                 t.CreatedAt,
		UpdatedAt:                 t.UpdatedAt,
	}

	for k, w := range t.BusinessHours {
		resp.BusinessHours[k] = DayWindowDTO{Open: w.Open, Close: w.Close}
	}
	for k, w := range t.SpecialBusinessHours {
		resp.SpecialBusinessHours[k] = DayWindowDTO{Open: w.Open, Close: w.Close}
	}

	if resp.ClosedDays == nil {
		resp.ClosedDays = []int{}
	}
	if resp.TemporaryClosedDays == nil {
		resp.TemporaryClosedDays = []string{}
	}

	return resp
}

// ApplyToTenant применяет обновления к существующим настройкам.
// Обновляются только непустые (not nil) поля из request.
func (r *UpdateConfigRequest) ApplyToTenant(t *domain.Tenant) {
	if r.MaxConcurrentReservations != nil {
		t.MaxConcurrentReservations = *r.MaxConcurrentReservations
	}
	if r.BusinessHours != nil {
		hours := make(domain.BusinessHours, len(r.BusinessHours))
		for k, w := range r.BusinessHours {
			hours[k] = domain.DayWindow{Open: w.Open, Close: w.Close}
		}
		t.BusinessHours = hours
	}
	if r.ClosedDays != nil {
		t.ClosedDays = *r.ClosedDays
	}
	if r.TemporaryClosedDays != nil {
		t.TemporaryClosedDays = *r.TemporaryClosedDays
	}
	if r.SpecialBusinessHours != nil {
		special := make(map[string]domain.DayWindow, len(r.SpecialBusinessHours))
		for k, w := range r.SpecialBusinessHours {
			special[k] = domain.DayWindow{Open: w.Open, Close: w.Close}
		}
		t.SpecialBusinessHours = special
	}
}
