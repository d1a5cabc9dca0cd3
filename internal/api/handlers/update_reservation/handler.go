package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	updateReservation "github.com/m04kA/SMC-SalonService/internal/usecase/update_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidDate          = "некорректный формат даты или времени"
	msgNotFound             = "бронирование не найдено"
	msgTenantMismatch       = "бронирование принадлежит другому салону"
	msgNotEditable          = "бронирование больше нельзя изменить"
	msgMenuNotFound         = "позиция меню не найдена"
	msgStaffNotFound        = "мастер не найден"
	msgTenantClosed         = "салон закрыт в выбранную дату"
	msgOutsideBusinessHours = "выбранное время выходит за рабочие часы салона"
	msgStaffUnavailable     = "мастер не работает в выбранное время"
	msgSlotConflict         = "у мастера уже есть бронирование на это время"
	msgCapacityReached      = "все места на это время заняты"
	msgInvalidReservDate    = "некорректная дата бронирования"
	msgConcurrentUpdate     = "не удалось обновить бронирование, попробуйте еще раз"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrTenantNotFound):
			h.logger.Warn("PUT /reservations/{id} - Tenant not found: tenant_id=%d", req.TenantID)
			handlers.RespondNotFound(w, msgTenantMismatch)

		case errors.Is(err, updateReservation.ErrTenantMismatch):
			h.logger.Warn("PUT /reservations/{id} - Tenant mismatch: reservation_id=%d, tenant_id=%d",
				reservationID, req.TenantID)
			handlers.RespondForbidden(w, msgTenantMismatch)

		case errors.Is(err, updateReservation.ErrNotEditable):
			h.logger.Warn("PUT /reservations/{id} - Not editable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgNotEditable)

		case errors.Is(err, updateReservation.ErrMenuNotFound):
			h.logger.Warn("PUT /reservations/{id} - Menu not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, updateReservation.ErrStaffNotFound):
			h.logger.Warn("PUT /reservations/{id} - Staff not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, updateReservation.ErrTenantClosed):
			h.logger.Warn("PUT /reservations/{id} - Tenant closed: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgTenantClosed)

		case errors.Is(err, updateReservation.ErrOutsideBusinessHours):
			h.logger.Warn("PUT /reservations/{id} - Outside business hours: reservation_id=%d: %v", reservationID, err)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours+": "+err.Error())

		case errors.Is(err, updateReservation.ErrStaffUnavailable):
			h.logger.Warn("PUT /reservations/{id} - Staff unavailable: reservation_id=%d: %v", reservationID, err)
			handlers.RespondBadRequest(w, msgStaffUnavailable+": "+err.Error())

		case errors.Is(err, updateReservation.ErrSlotConflict):
			h.logger.Warn("PUT /reservations/{id} - Slot conflict: reservation_id=%d: %v", reservationID, err)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict+": "+err.Error())

		case errors.Is(err, updateReservation.ErrCapacityReached):
			h.logger.Warn("PUT /reservations/{id} - Capacity reached: reservation_id=%d: %v", reservationID, err)
			handlers.RespondBadRequest(w, msgCapacityReached+": "+err.Error())

		case errors.Is(err, updateReservation.ErrConcurrentUpdate):
			h.logger.Warn("PUT /reservations/{id} - Serialization conflict: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		case errors.Is(err, updateReservation.ErrInvalidDate):
			h.logger.Warn("PUT /reservations/{id} - Invalid date: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidReservDate)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: reservation_id=%d: %v", reservationID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
