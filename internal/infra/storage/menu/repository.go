package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с меню услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var menuColumns = []string{
	"id",
	"tenant_id",
	"name",
	"price",
	"duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// GetActiveByIDs получает активные меню арендатора по списку id.
// Возвращает ровно найденные строки; сверку полноты списка делает вызывающий -
// частичное разрешение admission controller отклоняет целиком.
func (r *Repository) GetActiveByIDs(ctx context.Context, tenantID int64, ids []int64) ([]*domain.Menu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(menuColumns...).
		From("menus").
		Where(squirrel.Eq{
			"tenant_id": tenantID,
			"id":        ids,
			"is_active": true,
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMenus(rows)
}

// GetByTenantID получает все активные меню арендатора
func (r *Repository) GetByTenantID(ctx context.Context, tenantID int64) ([]*domain.Menu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(menuColumns...).
		From("menus").
		Where(squirrel.Eq{"tenant_id": tenantID, "is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMenus(rows)
}

func (r *Repository) scanMenus(rows *sql.Rows) ([]*domain.Menu, error) {
	menus := make([]*domain.Menu, 0)

	for rows.Next() {
		var m domain.Menu
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Name,
			&m.Price,
			&m.DurationMinutes,
			&m.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanMenus - scan row: %v", ErrScanRow, err)
		}

		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time

		menus = append(menus, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanMenus - rows error: %v", ErrScanRow, err)
	}

	return menus, nil
}
