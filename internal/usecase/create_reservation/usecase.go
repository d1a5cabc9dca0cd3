package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	customerClient "github.com/m04kA/SMC-SalonService/internal/integrations/customerservice"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	tenantRepo      TenantRepository
	menuRepo        MenuRepository
	staffRepo       StaffRepository
	customerClient  CustomerServiceClient
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
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tenantRepo:      tenantRepo,
		menuRepo:        menuRepo,
		staffRepo:       staffRepo,
		customerClient:  customerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции,
// чтобы исключить гонку между конкурентными бронированиями.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: tenant=%d, customer=%d, date=%s, time=%s, menus=%v",
		req.TenantID, req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime, req.MenuIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в таймзоне бизнеса
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Проверяем клиента в CustomerService.
	// При недоступности сервиса применяется graceful degradation:
	// бронирование создается, клиент будет проверен позже.
	if _, err := uc.customerClient.VerifyCustomer(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateReservation: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		if errors.Is(err, customerClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateReservation: customer service degraded, continuing for customer id=%d", req.CustomerID)
		} else {
			uc.logger.Error("CreateReservation: failed to verify customer id=%d: %v", req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to verify customer: %v", ErrInternal, err)
		}
	}

	var result *domain.Reservation

	// 4. Операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Загружаем салон
		tenant, err := uc.tenantRepo.GetByID(txCtx, req.TenantID)
		if err != nil {
			if errors.Is(err, tenantRepo.ErrTenantNotFound) {
				uc.logger.Warn("CreateReservation: tenant id=%d not found", req.TenantID)
				return ErrTenantNotFound
			}
			uc.logger.Error("CreateReservation: failed to get tenant id=%d: %v", req.TenantID, err)
			return fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
		}
		if !tenant.IsActive {
			uc.logger.Warn("CreateReservation: tenant id=%d is inactive", req.TenantID)
			return ErrTenantInactive
		}

		// 4.2. Валидация даты
		if err := validateDate(req.Date, now); err != nil {
			uc.logger.Warn("CreateReservation: date validation failed: %v", err)
			return err
		}

		// 4.3. Разрешаем позиции меню со снимком цены и длительности.
		// Частичное разрешение отклоняется целиком.
		items, totalPrice, totalDuration, err := uc.resolveMenuItems(txCtx, req.TenantID, req.MenuIDs)
		if err != nil {
			return err
		}

		// 4.4. Проверяем мастера и его рабочие часы
		if req.StaffID != nil {
			staffMember, err := uc.staffRepo.GetByID(txCtx, req.TenantID, *req.StaffID)
			if err != nil {
				uc.logger.Warn("CreateReservation: staff id=%d not found in tenant id=%d: %v",
					*req.StaffID, req.TenantID, err)
				return ErrStaffNotFound
			}
			if !staffMember.IsActive {
				return ErrStaffNotFound
			}
			if err := staffMember.CanServe(req.StartTime, totalDuration); err != nil {
				uc.logger.Warn("CreateReservation: staff id=%d unavailable: %v", *req.StaffID, err)
				return fmt.Errorf("%w: %v", ErrStaffUnavailable, err)
			}
		}

		// 4.5. Разрешаем рабочее окно на дату и проверяем интервал.
		// Окончание ровно во время закрытия допустимо.
		window := domain.ResolveDayWindow(tenant, req.Date)
		if !window.IsOpen {
			uc.logger.Warn("CreateReservation: tenant id=%d is closed on %s",
				req.TenantID, req.Date.Format(domain.DateFormat))
			return ErrTenantClosed
		}
		if err := domain.ValidateWithinWindow(window, req.StartTime, totalDuration); err != nil {
			uc.logger.Warn("CreateReservation: outside business hours: %v", err)
			return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
		}

		// 4.6. Загружаем подтвержденные бронирования дня с блокировкой (FOR UPDATE)
		existing, err := uc.reservationRepo.GetByTenantWithFilter(txCtx, domain.TenantReservationsFilter{
			TenantID:  req.TenantID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 4.7. Проверяем конфликты
		candidate := domain.Candidate{
			Start:           req.StartTime,
			DurationMinutes: totalDuration,
			StaffID:         req.StaffID,
		}
		if err := domain.CheckConflict(candidate, existing, tenant.MaxConcurrentReservations); err != nil {
			var slotErr *domain.SlotConflictError
			if errors.As(err, &slotErr) {
				uc.logger.Warn("CreateReservation: staff conflict with reservation id=%d at %s",
					slotErr.ConflictingID, slotErr.ConflictStart)
				return fmt.Errorf("%w: %v", ErrSlotConflict, err)
			}
			var capErr *domain.CapacityError
			if errors.As(err, &capErr) {
				uc.logger.Warn("CreateReservation: capacity limit %d reached", capErr.Limit)
				return fmt.Errorf("%w: %v", ErrCapacityReached, err)
			}
			uc.logger.Error("CreateReservation: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		// 4.8. Сохраняем бронирование
		reservation := &domain.Reservation{
			TenantID:        req.TenantID,
			CustomerID:      req.CustomerID,
			StaffID:         req.StaffID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: totalDuration,
			TotalPrice:      totalPrice,
			Status:          domain.StatusConfirmed,
			MenuItems:       items,
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateReservation: serialization failure after retries: %v", err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return toResponse(result), nil
}

// resolveMenuItems загружает активные позиции меню и фиксирует их цену и
// длительность. Если хотя бы один id не разрешился, запрос отклоняется целиком.
func (uc *UseCase) resolveMenuItems(ctx context.Context, tenantID int64, menuIDs []int64) ([]domain.ReservationMenuItem, int64, int, error) {
	menus, err := uc.menuRepo.GetActiveByIDs(ctx, tenantID, menuIDs)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get menus: %v", err)
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
			uc.logger.Warn("CreateReservation: menu id=%d not found in tenant id=%d", id, tenantID)
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
