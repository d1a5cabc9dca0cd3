package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID   int64            // ID салона
	CustomerID int64            // ID клиента
	StaffID    *int64           // ID мастера (опционально, nil = любой свободный)
	MenuIDs    []int64          // ID выбранных позиций меню
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64            // ID созданного бронирования
	TenantID   int64            // ID салона
	CustomerID int64            // ID клиента
	StaffID    *int64           // ID мастера
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Расчетное время окончания
	Status     string           // Статус бронирования

	// Агрегаты, зафиксированные на момент создания
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
