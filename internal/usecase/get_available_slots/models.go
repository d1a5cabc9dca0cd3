package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID int64     // ID салона
	StaffID  *int64    // ID мастера (опционально, nil = общий лимит салона)
	MenuIDs  []int64   // Выбранные позиции меню (определяют длительность)
	Date     time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	TenantID        int64     // ID салона
	StaffID         *int64    // ID мастера из запроса
	DurationMinutes int       // Суммарная длительность выбранных позиций
	Slots           []Slot    // Список слотов дня
}

// Slot модель временного слота
type Slot struct {
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	EndTime        types.TimeString // Время окончания с учетом длительности
	AvailableSpots int              // Количество свободных мест
	TotalSpots     int              // Общее количество мест
}
