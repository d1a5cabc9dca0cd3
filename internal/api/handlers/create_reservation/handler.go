package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-SalonService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingCustomerID    = "отсутствует ID клиента"
	msgTenantNotFound       = "салон не найден"
	msgTenantInactive       = "салон временно не принимает бронирования"
	msgCustomerNotFound     = "клиент не найден"
	msgMenuNotFound         = "позиция меню не найдена"
	msgStaffNotFound        = "мастер не найден"
	msgTenantClosed         = "салон закрыт в выбранную дату"
	msgOutsideBusinessHours = "выбранное время выходит за рабочие часы салона"
	msgStaffUnavailable     = "мастер не работает в выбранное время"
	msgSlotConflict         = "у мастера уже есть бронирование на это время"
	msgCapacityReached      = "все места на это время заняты"
	msgInvalidReservDate    = "некорректная дата бронирования"
	msgConcurrentUpdate     = "не удалось завершить бронирование, попробуйте еще раз"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing customer ID")
		handlers.RespondUnauthorized(w, msgMissingCustomerID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: customer_id=%d, tenant_id=%d: %v",
				customerID, req.TenantID, err)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict+": "+err.Error())

		case errors.Is(err, createReservation.ErrCapacityReached):
			h.logger.Warn("POST /reservations - Capacity reached: customer_id=%d, tenant_id=%d: %v",
				customerID, req.TenantID, err)
			handlers.RespondBadRequest(w, msgCapacityReached+": "+err.Error())

		case errors.Is(err, createReservation.ErrConcurrentUpdate):
			h.logger.Warn("POST /reservations - Serialization conflict: customer_id=%d, tenant_id=%d",
				customerID, req.TenantID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		case errors.Is(err, createReservation.ErrTenantNotFound):
			h.logger.Warn("POST /reservations - Tenant not found: tenant_id=%d", req.TenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createReservation.ErrTenantInactive):
			h.logger.Warn("POST /reservations - Tenant inactive: tenant_id=%d", req.TenantID)
			handlers.RespondBadRequest(w, msgTenantInactive)

		case errors.Is(err, createReservation.ErrCustomerNotFound):
			h.logger.Warn("POST /reservations - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createReservation.ErrMenuNotFound):
			h.logger.Warn("POST /reservations - Menu not found: customer_id=%d, tenant_id=%d", customerID, req.TenantID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createReservation.ErrStaffNotFound):
			h.logger.Warn("POST /reservations - Staff not found: customer_id=%d, tenant_id=%d", customerID, req.TenantID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createReservation.ErrTenantClosed):
			h.logger.Warn("POST /reservations - Tenant closed: tenant_id=%d, date=%s", req.TenantID, req.Date)
			handlers.RespondBadRequest(w, msgTenantClosed)

		case errors.Is(err, createReservation.ErrOutsideBusinessHours):
			h.logger.Warn("POST /reservations - Outside business hours: tenant_id=%d: %v", req.TenantID, err)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours+": "+err.Error())

		case errors.Is(err, createReservation.ErrStaffUnavailable):
			h.logger.Warn("POST /reservations - Staff unavailable: tenant_id=%d: %v", req.TenantID, err)
			handlers.RespondBadRequest(w, msgStaffUnavailable+": "+err.Error())

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: customer_id=%d, tenant_id=%d", customerID, req.TenantID)
			handlers.RespondBadRequest(w, msgInvalidReservDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: customer_id=%d, tenant_id=%d: %v",
				customerID, req.TenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, tenant_id=%d, error=%v",
				customerID, req.TenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, customer_id=%d, tenant_id=%d",
		result.ID, customerID, req.TenantID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
