package get_tenant_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/reservations"
)

const (
	msgInvalidTenantID = "некорректный ID салона"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/reservations
// Query params: staffId, status, date, from, to, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/reservations - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	q := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		tenantID,
		q.Get("staffId"),
		q.Get("status"),
		q.Get("date"),
		q.Get("from"),
		q.Get("to"),
		q.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetTenantReservations(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /tenants/{id}/reservations - Invalid filter: tenant_id=%d: %v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /tenants/{id}/reservations - Failed to get reservations: tenant_id=%d, error=%v",
			tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/reservations - Reservations retrieved successfully: tenant_id=%d, count=%d",
		tenantID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
