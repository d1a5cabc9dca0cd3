package update_tenant_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/tenantconfig"
)

const (
	msgInvalidTenantID    = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTenantNotFound     = "салон не найден"
	msgInvalidData        = "некорректные данные конфигурации"
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

// Handle PUT /api/v1/tenants/{tenantId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tenantId из URL
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /tenants/{id}/config - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	// Декодируем body
	var req UpdateTenantConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), tenantID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, tenantconfig.ErrTenantNotFound):
			h.logger.Warn("PUT /tenants/{id}/config - Tenant %d not found", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)
		case errors.Is(err, tenantconfig.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{id}/config - Invalid config data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData+": "+err.Error())
		default:
			h.logger.Error("PUT /tenants/{id}/config - Internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/config - Config updated for tenant %d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
