package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/reservation"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// UseCase use case для обновления бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	tenantRepo      TenantRepository
	menuRepo        MenuRepository
	staffRepo       StaffRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tenantRepo TenantRepository,
	menuRepo MenuRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tenantRepo:      tenantRepo,
		menuRepo:        menuRepo,
		staffRepo:       staffRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case обновления бронирования.
// Перенесенный интервал проходит ту же проверку конфликтов, что и создание,
// с исключением самого бронирования из выборки (self-exclusion).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%d, tenant=%d", req.ReservationID, req.TenantID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)

	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Загружаем бронирование и проверяем принадлежность салону
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if current.TenantID != req.TenantID {
			uc.logger.Warn("UpdateReservation: reservation id=%d belongs to tenant id=%d, not %d",
				req.ReservationID, current.TenantID, req.TenantID)
			return ErrTenantMismatch
		}

		// 2. Редактировать время, мастера и меню можно только у подтвержденного
		// бронирования. Смена статуса применяется как есть и этим правилом
		// не ограничена.
		if changesSlot(req) && !current.CanBeUpdated() {
			uc.logger.Warn("UpdateReservation: reservation id=%d has status %s, not editable",
				req.ReservationID, current.Status)
			return ErrNotEditable
		}

		// 3. Применяем изменения к копии
		updated := *current
		if req.Date != nil {
			updated.Date = *req.Date
		}
		if req.StartTime != nil {
			updated.StartTime = *req.StartTime
		}
		if req.ClearStaff {
			updated.StaffID = nil
		} else if req.StaffID != nil {
			updated.StaffID = req.StaffID
		}
		if req.Notes != nil {
			updated.Notes = req.Notes
		}
		if req.Status != nil {
			updated.Status = domain.ReservationStatus(*req.Status)
			// Отмена через смену статуса фиксирует момент отмены, как и обычный Cancel
			if updated.Status == domain.StatusCancelled && current.Status != domain.StatusCancelled {
				updated.CancelledAt = &now
			}
		}

		// 4. Новый набор меню фиксируется заново со свежим снимком цен
		replaceItems := len(req.MenuIDs) > 0
		if replaceItems {
			items, totalPrice, totalDuration, err := uc.resolveMenuItems(txCtx, req.TenantID, req.MenuIDs)
			if err != nil {
				return err
			}
			updated.MenuItems = items
			updated.TotalPrice = totalPrice
			updated.DurationMinutes = totalDuration
		}

		// 5. Перепроверяем допустимость интервала, если бронирование остается
		// активным и слот затронут
		if changesSlot(req) && updated.IsActive() {
			if err := uc.admit(txCtx, &updated, now); err != nil {
				return err
			}
		}

		// 6. Сохраняем
		if err := uc.reservationRepo.Update(txCtx, &updated); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}
		if replaceItems {
			if err := uc.reservationRepo.ReplaceMenuItems(txCtx, updated.ID, updated.MenuItems); err != nil {
				uc.logger.Error("UpdateReservation: failed to replace menu items for id=%d: %v", updated.ID, err)
				return fmt.Errorf("%w: failed to replace menu items: %v", ErrInternal, err)
			}
		}

		result = &updated
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("UpdateReservation: serialization failure after retries: %v", err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", result.ID)

	return toResponse(result), nil
}

// admit прогоняет перенесенный интервал через контроль допуска:
// календарь салона, рабочие часы мастера, конфликты с блокировкой дня.
func (uc *UseCase) admit(ctx context.Context, updated *domain.Reservation, now time.Time) error {
	tenant, err := uc.tenantRepo.GetByID(ctx, updated.TenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			return ErrTenantNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get tenant id=%d: %v", updated.TenantID, err)
		return fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	if err := validateDate(updated.Date, now); err != nil {
		uc.logger.Warn("UpdateReservation: date validation failed: %v", err)
		return err
	}

	if updated.StaffID != nil {
		staffMember, err := uc.staffRepo.GetByID(ctx, updated.TenantID, *updated.StaffID)
		if err != nil {
			uc.logger.Warn("UpdateReservation: staff id=%d not found in tenant id=%d: %v",
				*updated.StaffID, updated.TenantID, err)
			return ErrStaffNotFound
		}
		if !staffMember.IsActive {
			return ErrStaffNotFound
		}
		if err := staffMember.CanServe(updated.StartTime, updated.EffectiveDuration()); err != nil {
			uc.logger.Warn("UpdateReservation: staff id=%d unavailable: %v", *updated.StaffID, err)
			return fmt.Errorf("%w: %v", ErrStaffUnavailable, err)
		}
	}

	window := domain.ResolveDayWindow(tenant, updated.Date)
	if !window.IsOpen {
		uc.logger.Warn("UpdateReservation: tenant id=%d is closed on %s",
			updated.TenantID, updated.Date.Format(domain.DateFormat))
		return ErrTenantClosed
	}
	if err := domain.ValidateWithinWindow(window, updated.StartTime, updated.EffectiveDuration()); err != nil {
		uc.logger.Warn("UpdateReservation: outside business hours: %v", err)
		return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
	}

	existing, err := uc.reservationRepo.GetByTenantWithFilter(ctx, domain.TenantReservationsFilter{
		TenantID:  updated.TenantID,
		StartDate: &updated.Date,
		EndDate:   &updated.Date,
		ExcludeID: &updated.ID,
	})
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to get reservations: %v", err)
		return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	candidate := domain.Candidate{
		Start:           updated.StartTime,
		DurationMinutes: updated.EffectiveDuration(),
		StaffID:         updated.StaffID,
		ExcludeID:       &updated.ID,
	}
	if err := domain.CheckConflict(candidate, existing, tenant.MaxConcurrentReservations); err != nil {
		var slotErr *domain.SlotConflictError
		if errors.As(err, &slotErr) {
			uc.logger.Warn("UpdateReservation: staff conflict with reservation id=%d at %s",
				slotErr.ConflictingID, slotErr.ConflictStart)
			return fmt.Errorf("%w: %v", ErrSlotConflict, err)
		}
		var capErr *domain.CapacityError
		if errors.As(err, &capErr) {
			uc.logger.Warn("UpdateReservation: capacity limit %d reached", capErr.Limit)
			return fmt.Errorf("%w: %v", ErrCapacityReached, err)
		}
		uc.logger.Error("UpdateReservation: conflict check failed: %v", err)
		return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}

	return nil
}

// resolveMenuItems загружает активные позиции меню и фиксирует их цену и
// длительность. Если хотя бы один id не разрешился, запрос отклоняется целиком.
func (uc *UseCase) resolveMenuItems(ctx context.Context, tenantID int64, menuIDs []int64) ([]domain.ReservationMenuItem, int64, int, error) {
	menus, err := uc.menuRepo.GetActiveByIDs(ctx, tenantID, menuIDs)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to get menus: %v", err)
		return nil, 0, 0, fmt.Errorf("%w: failed to get menus: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}

	items := make([]domain.ReservationMenuItem, 0, len(menuIDs))
	var totalPrice int64
	totalDuration := 0

	for i, id := range menuIDs {
		m, ok := byID[id]
		if !ok {
			uc.logger.Warn("UpdateReservation: menu id=%d not found in tenant id=%d", id, tenantID)
			return nil, 0, 0, fmt.Errorf("%w: menu id=%d", ErrMenuNotFound, id)
		}
		items = append(items, domain.ReservationMenuItem{
			MenuID:          m.ID,
			Name:            m.Name,
			Price:           m.Price,
			DurationMinutes: m.DurationMinutes,
			Position:        i,
		})
		totalPrice += m.Price
		totalDuration += m.DurationMinutes
	}

	return items, totalPrice, totalDuration, nil
}

// changesSlot сообщает, затрагивает ли запрос занимаемый интервал
func changesSlot(req *Request) bool {
	return req.Date != nil || req.StartTime != nil || req.StaffID != nil || req.ClearStaff || len(req.MenuIDs) > 0
}

func toResponse(res *domain.Reservation) *Response {
	endTime, err := res.EndTime()
	if err != nil {
		endTime = res.StartTime
	}

	items := make([]MenuItemResponse, 0, len(res.MenuItems))
	for _, it := range res.MenuItems {
		items = append(items, MenuItemResponse{
			MenuID:          it.MenuID,
			Name:            it.Name,
			Price:           it.Price,
			DurationMinutes: it.DurationMinutes,
		})
	}

	return &Response{
		ID:              res.ID,
		TenantID:        res.TenantID,
		CustomerID:      res.CustomerID,
		StaffID:         res.StaffID,
		Date:            res.Date,
		StartTime:       res.StartTime,
		EndTime:         endTime,
		Status:          string(res.Status),
		DurationMinutes: res.DurationMinutes,
		TotalPrice:      res.TotalPrice,
		MenuItems:       items,
		Notes:           res.Notes,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
