package update_tenant_config

import (
	"github.com/m04kA/SMC-SalonService/internal/service/tenantconfig/models"
)

// DayWindowRequest окно работы на один день в HTTP запросе
type DayWindowRequest struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// UpdateTenantConfigRequest HTTP request model
type UpdateTenantConfigRequest struct {
	MaxConcurrentReservations *int                        `json:"maxConcurrentReservations,omitempty"`
	BusinessHours             map[string]DayWindowRequest `json:"businessHours,omitempty"`
	ClosedDays                *[]int                      `json:"closedDays,omitempty"`
	TemporaryClosedDays       *[]string                   `json:"temporaryClosedDays,omitempty"`
	SpecialBusinessHours      map[string]DayWindowRequest `json:"specialBusinessHours,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateTenantConfigRequest) ToServiceRequest() *models.UpdateConfigRequest {
	req := &models.UpdateConfigRequest{
		MaxConcurrentReservations: r.MaxConcurrentReservations,
		ClosedDays:                r.ClosedDays,
		TemporaryClosedDays:       r.TemporaryClosedDays,
	}

	if r.BusinessHours != nil {
		req.BusinessHours = make(map[string]models.DayWindowDTO, len(r.BusinessHours))
		for k, w := range r.BusinessHours {
			req.BusinessHours[k] = models.DayWindowDTO{Open: w.Open, Close: w.Close}
		}
	}
	if r.SpecialBusinessHours != nil {
		req.SpecialBusinessHours = make(map[string]models.DayWindowDTO, len(r.SpecialBusinessHours))
		for k, w := range r.SpecialBusinessHours {
			req.SpecialBusinessHours[k] = models.DayWindowDTO{Open: w.Open, Close: w.Close}
		}
	}

	return req
}
