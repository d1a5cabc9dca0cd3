package tenant

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с арендаторами и их настройками бронирования.
// Календарные настройки (часы работы, выходные, временные закрытия, особые часы)
// хранятся в JSONB колонках строки арендатора.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория арендаторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var tenantColumns = []string{
	"id",
	"code",
	"name",
	"is_active",
	"max_concurrent_reservations",
	"business_hours",
	"closed_days",
	"temporary_closed_days",
	"special_business_hours",
	"created_at",
	"updated_at",
}

// GetByID получает арендатора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByCode получает арендатора по уникальному коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code}, "GetByCode")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tenantColumns...).
		From("tenants").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var (
		t                    domain.Tenant
		businessHours        []byte
		closedDays           []byte
		temporaryClosedDays  []byte
		specialBusinessHours []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Code,
		&t.Name,
		&t.IsActive,
		&t.MaxConcurrentReservations,
		&businessHours,
		&closedDays,
		&temporaryClosedDays,
		&specialBusinessHours,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan tenant: %v", ErrScanRow, method, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	if err := unmarshalSettings(&t, businessHours, closedDays, temporaryClosedDays, specialBusinessHours); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidJSON, method, err)
	}

	return &t, nil
}

// UpdateConfig обновляет настройки бронирования арендатора
func (r *Repository) UpdateConfig(ctx context.Context, t *domain.Tenant) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	businessHours, err := json.Marshal(t.BusinessHours)
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - marshal business_hours: %v", ErrInvalidJSON, err)
	}
	closedDays, err := json.Marshal(t.ClosedDays)
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - marshal closed_days: %v", ErrInvalidJSON, err)
	}
	temporaryClosedDays, err := json.Marshal(t.TemporaryClosedDays)
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - marshal temporary_closed_days: %v", ErrInvalidJSON, err)
	}
	specialBusinessHours, err := json.Marshal(t.SpecialBusinessHours)
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - marshal special_business_hours: %v", ErrInvalidJSON, err)
	}

	query, args, err := psqlbuilder.Update("tenants").
		Set("max_concurrent_reservations", t.MaxConcurrentReservations).
		Set("business_hours", businessHours).
		Set("closed_days", closedDays).
		Set("temporary_closed_days", temporaryClosedDays).
		Set("special_business_hours", specialBusinessHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": t.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return ErrTenantNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - execute update: %v", ErrExecQuery, err)
	}

	t.UpdatedAt = updatedAt.Time

	return nil
}

// unmarshalSettings разбирает JSONB колонки настроек в доменную модель.
// NULL колонки оставляют нулевые значения (пустые настройки).
func unmarshalSettings(t *domain.Tenant, businessHours, closedDays, temporaryClosedDays, specialBusinessHours []byte) error {
	if len(businessHours) > 0 {
		if err := json.Unmarshal(businessHours, &t.BusinessHours); err != nil {
			return fmt.Errorf("business_hours: %w", err)
		}
	}
	if len(closedDays) > 0 {
		if err := json.Unmarshal(closedDays, &t.ClosedDays); err != nil {
			return fmt.Errorf("closed_days: %w", err)
		}
	}
	if len(temporaryClosedDays) > 0 {
		if err := json.Unmarshal(temporaryClosedDays, &t.TemporaryClosedDays); err != nil {
			return fmt.Errorf("temporary_closed_days: %w", err)
		}
	}
	if len(specialBusinessHours) > 0 {
		if err := json.Unmarshal(specialBusinessHours, &t.SpecialBusinessHours); err != nil {
			return fmt.Errorf("special_business_hours: %w", err)
		}
	}
	return nil
}
