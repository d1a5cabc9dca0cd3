package get_tenant_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/tenantconfig"
)

const (
	msgInvalidTenantID = "некорректный ID салона"
	msgTenantNotFound  = "салон не найден"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/config
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tenantId из URL
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/config - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	resp, err := h.service.Get(r.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, tenantconfig.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/config - Tenant %d not found", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)
		default:
			h.logger.Error("GET /tenants/{id}/config - Internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/config - Config returned for tenant %d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
