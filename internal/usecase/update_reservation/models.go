package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на обновление бронирования.
// Nil-поля означают "оставить без изменений".
type Request struct {
	ReservationID int64             // ID обновляемого бронирования
	TenantID      int64             // ID салона (проверка принадлежности)
	StaffID       *int64            // Новый мастер (опционально)
	ClearStaff    bool              // Снять назначение мастера
	MenuIDs       []int64           // Новый набор позиций меню (опционально)
	Date          *time.Time        // Новая дата (опционально)
	StartTime     *types.TimeString // Новое время начала (опционально)
	Notes         *string           // Новые заметки (опционально)
	// Status передается как есть без дополнительных проверок перехода,
	// позволяет вручную выставить completed или cancelled
	Status *string
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID         int64            // ID бронирования
	TenantID   int64            // ID салона
	CustomerID int64            // ID клиента
	StaffID    *int64           // ID мастера
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Расчетное время окончания
	Status     string           // Статус бронирования

	DurationMinutes int   // Суммарная длительность в минутах
	TotalPrice      int64 // Суммарная цена в йенах

	MenuItems []MenuItemResponse // Позиции меню со снимком цен

	Notes *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// MenuItemResponse позиция меню в составе бронирования
type MenuItemResponse struct {
	MenuID          int64  // ID позиции меню
	Name            string // Название на момент бронирования
	Price           int64  // Цена на момент бронирования (йены)
	DurationMinutes int    // Длительность на момент бронирования
}
