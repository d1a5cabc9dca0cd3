package tenantconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SalonService/internal/service/tenantconfig/models"
)

// Service сервис для работы с настройками салона
type Service struct {
	tenantRepo TenantRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	tenantRepo TenantRepository,
	logger Logger,
) *Service {
	return &Service{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// Get возвращает текущие настройки салона: рабочие часы, выходные,
// временные закрытия, особые часы и лимит одновременных бронирований
func (s *Service) Get(ctx context.Context, tenantID int64) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for tenant=%d", tenantID)

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("Get: tenant id=%d not found", tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("Get: repository error for tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTenant(tenant), nil
}

// Update применяет частичное обновление настроек салона.
// Обновляются только переданные поля, остальные сохраняют прежние значения.
func (s *Service) Update(ctx context.Context, tenantID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for tenant=%d", tenantID)

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for tenant=%d: %v", tenantID, err)
		return nil, err
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("Update: tenant id=%d not found", tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("Update: repository error for tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	req.ApplyToTenant(tenant)

	if err := s.tenantRepo.UpdateConfig(ctx, tenant); err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		s.logger.Error("Update: repository error for tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		s.logger.Error("Update: failed to reload tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for tenant=%d", tenantID)
	return models.FromDomainTenant(updated), nil
}

// validateUpdateRequest проверяет бизнес-инварианты настроек
func validateUpdateRequest(req *models.UpdateConfigRequest) error {
	if req.MaxConcurrentReservations != nil {
		v := *req.MaxConcurrentReservations
		if v < domain.MinConcurrentReservations || v > domain.MaxConcurrentReservationCap {
			return fmt.Errorf("%w: maxConcurrentReservations must be between %d and %d",
				ErrInvalidInput, domain.MinConcurrentReservations, domain.MaxConcurrentReservationCap)
		}
	}

	for key, w := range req.BusinessHours {
		if key != domain.BusinessHoursDefaultKey && !isWeekdayKey(key) {
			return fmt.Errorf("%w: businessHours key %q must be a weekday index or %q",
				ErrInvalidInput, key, domain.BusinessHoursDefaultKey)
		}
		if err := (domain.DayWindow{Open: w.Open, Close: w.Close}).Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.ClosedDays != nil {
		for _, d := range *req.ClosedDays {
			if d < domain.MinWeekdayIndex || d > domain.MaxWeekdayIndex {
				return fmt.Errorf("%w: closedDays entry %d must be between %d and %d",
					ErrInvalidInput, d, domain.MinWeekdayIndex, domain.MaxWeekdayIndex)
			}
		}
	}

	if req.TemporaryClosedDays != nil {
		for _, d := range *req.TemporaryClosedDays {
			if _, err := time.Parse(domain.DateFormat, d); err != nil {
				return fmt.Errorf("%w: temporaryClosedDays entry %q must be YYYY-MM-DD", ErrInvalidInput, d)
			}
		}
	}

	for key, w := range req.SpecialBusinessHours {
		if _, err := time.Parse(domain.DateFormat, key); err != nil {
			return fmt.Errorf("%w: specialBusinessHours key %q must be YYYY-MM-DD", ErrInvalidInput, key)
		}
		if err := (domain.DayWindow{Open: w.Open, Close: w.Close}).Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

func isWeekdayKey(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '6'
}
