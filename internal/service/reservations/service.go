package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SalonService/internal/service/reservations/models"
)

// Service сервис для чтения, отмены и просмотра бронирований
type Service struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент может видеть только собственное бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for customer=%d", id, customerID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if reservation.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to reservation id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetCustomerReservations получает историю бронирований клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetCustomerReservations(ctx context.Context, req *models.GetCustomerReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCustomerReservations: fetching reservations for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerReservations: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerReservations: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerReservations: successfully fetched %d reservations for customer=%d",
		len(reservations), req.CustomerID)
	return models.FromDomainReservationList(reservations), nil
}

// GetTenantReservations получает бронирования салона с гибкой фильтрацией:
// по мастеру, периоду, статусу и включению неактивных бронирований.
func (s *Service) GetTenantReservations(ctx context.Context, req *models.GetTenantReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetTenantReservations: fetching reservations for tenant=%d", req.TenantID)
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantReservations: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantReservations: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantReservations: successfully fetched %d reservations for tenant=%d",
		len(reservations), req.TenantID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование.
// Клиент может отменить только собственное бронирование и не позднее чем за
// CustomerCancelNoticeDays до даты визита. Отмена салоном (через TenantID)
// требует принадлежности бронирования салону, но срока не имеет.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", reservationID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if req.CustomerID != nil {
		if reservation.CustomerID != *req.CustomerID {
			s.logger.Warn("Cancel: access denied for customer=%d to reservation id=%d", *req.CustomerID, reservationID)
			return ErrAccessDenied
		}
		if err := s.checkCancelDeadline(reservation); err != nil {
			s.logger.Warn("Cancel: deadline passed for reservation id=%d, date=%s",
				reservationID, reservation.Date.Format(domain.DateFormat))
			return err
		}
	} else if req.TenantID != nil {
		if reservation.TenantID != *req.TenantID {
			s.logger.Warn("Cancel: reservation id=%d belongs to tenant=%d, not %d",
				reservationID, reservation.TenantID, *req.TenantID)
			return ErrAccessDenied
		}
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		if errors.Is(err, reservationRepo.ErrStatusChanged) {
			s.logger.Warn("Cancel: reservation id=%d changed status concurrently", reservationID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// MarkViewed помечает бронирование просмотренным персоналом салона
func (s *Service) MarkViewed(ctx context.Context, reservationID int64, tenantID int64) error {
	s.logger.Info("MarkViewed: marking reservation id=%d as viewed by tenant=%d", reservationID, tenantID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("MarkViewed: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("MarkViewed: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: MarkViewed - repository error: %v", ErrInternal, err)
	}

	if reservation.TenantID != tenantID {
		s.logger.Warn("MarkViewed: reservation id=%d belongs to tenant=%d, not %d",
			reservationID, reservation.TenantID, tenantID)
		return ErrAccessDenied
	}

	if err := s.reservationRepo.MarkViewed(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("MarkViewed: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: MarkViewed - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkViewed: successfully marked reservation id=%d as viewed", reservationID)
	return nil
}

// checkCancelDeadline проверяет срок клиентской отмены: не позднее чем за
// CustomerCancelNoticeDays до даты визита. Сравниваются только даты в
// таймзоне бизнеса.
func (s *Service) checkCancelDeadline(reservation *domain.Reservation) error {
	now := s.timeProvider.Now().In(s.location)

	deadline := time.Date(
		reservation.Date.Year(), reservation.Date.Month(), reservation.Date.Day(),
		0, 0, 0, 0, s.location,
	).AddDate(0, 0, -domain.CustomerCancelNoticeDays)

	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	if nowDate.After(deadline) {
		return ErrCancelDeadlinePassed
	}
	return nil
}
