package cancel_tenant_reservation

import (
	"github.com/m04kA/SMC-SalonService/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// CustomerID не передается: отмена салоном не ограничена сроком.
func (r *CancelReservationRequest) ToServiceRequest(tenantID int64) *models.CancelReservationRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelReservationRequest{
		TenantID:           &tenantID,
		CancellationReason: reason,
	}
}
