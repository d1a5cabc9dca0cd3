package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	tenantRepo      TenantRepository
	menuRepo        MenuRepository
	staffRepo       StaffRepository
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
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tenantRepo:      tenantRepo,
		menuRepo:        menuRepo,
		staffRepo:       staffRepo,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Сетка строится от открытия салона с фиксированным шагом, доступность
// каждого слота считается теми же правилами, что и контроль допуска.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%d, date=%s, menus=%v",
		req.TenantID, req.Date.Format(domain.DateFormat), req.MenuIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в таймзоне бизнеса
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Загружаем салон
	tenant, err := uc.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailableSlots: tenant id=%d not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 4. Суммарная длительность выбранных позиций меню
	totalDuration, err := uc.resolveTotalDuration(ctx, req.TenantID, req.MenuIDs)
	if err != nil {
		return nil, err
	}

	// 5. Проверяем мастера, если указан
	var staffMember *domain.Staff
	if req.StaffID != nil {
		staffMember, err = uc.staffRepo.GetByID(ctx, req.TenantID, *req.StaffID)
		if err != nil || !staffMember.IsActive {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found in tenant id=%d", *req.StaffID, req.TenantID)
			return nil, ErrStaffNotFound
		}
	}

	// 6. Разрешаем рабочее окно на дату
	window := domain.ResolveDayWindow(tenant, req.Date)
	if !window.IsOpen {
		uc.logger.Info("GetAvailableSlots: tenant id=%d is closed on %s",
			req.TenantID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			TenantID:        req.TenantID,
			StaffID:         req.StaffID,
			DurationMinutes: totalDuration,
			Slots:           []Slot{},
		}, nil
	}

	// 7. Генерируем сетку слотов
	starts, err := generateSlotStarts(window, totalDuration, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 8. Загружаем подтвержденные бронирования дня
	existing, err := uc.reservationRepo.GetByTenantWithFilter(ctx, domain.TenantReservationsFilter{
		TenantID:  req.TenantID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 9. Считаем доступность каждого слота через контроль допуска
	slots := buildSlots(starts, totalDuration, req.StaffID, staffMember, existing, tenant.MaxConcurrentReservations)

	uc.logger.Info("GetAvailableSlots: generated %d slots for tenant=%d, date=%s",
		len(slots), req.TenantID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		TenantID:        req.TenantID,
		StaffID:         req.StaffID,
		DurationMinutes: totalDuration,
		Slots:           slots,
	}, nil
}

// resolveTotalDuration суммирует длительности выбранных позиций меню.
// Частичное разрешение отклоняется целиком.
func (uc *UseCase) resolveTotalDuration(ctx context.Context, tenantID int64, menuIDs []int64) (int, error) {
	menus, err := uc.menuRepo.GetActiveByIDs(ctx, tenantID, menuIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get menus: %v", err)
		return 0, fmt.Errorf("%w: failed to get menus: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}

	total := 0
	for _, id := range menuIDs {
		m, ok := byID[id]
		if !ok {
			uc.logger.Warn("GetAvailableSlots: menu id=%d not found in tenant id=%d", id, tenantID)
			return 0, fmt.Errorf("%w: menu id=%d", ErrMenuNotFound, id)
		}
		total += m.DurationMinutes
	}

	if total <= 0 {
		total = domain.DefaultDurationMinutes
	}

	return total, nil
}
