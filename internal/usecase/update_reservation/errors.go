package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrTenantNotFound возвращается, когда салон не найден
	ErrTenantNotFound = errors.New("update_reservation: tenant not found")

	// ErrTenantMismatch возвращается, когда бронирование принадлежит другому салону
	ErrTenantMismatch = errors.New("update_reservation: reservation belongs to another tenant")

	// ErrNotEditable возвращается при попытке изменить завершенное или
	// отмененное бронирование
	ErrNotEditable = errors.New("update_reservation: reservation can no longer be edited")

	// ErrMenuNotFound возвращается, когда хотя бы одна позиция меню не найдена
	ErrMenuNotFound = errors.New("update_reservation: menu item not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в салоне
	ErrStaffNotFound = errors.New("update_reservation: staff member not found")

	// ErrTenantClosed возвращается, когда салон закрыт в указанную дату
	ErrTenantClosed = errors.New("update_reservation: tenant is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("update_reservation: outside business hours")

	// ErrStaffUnavailable возвращается, когда интервал выходит за рабочие часы мастера
	ErrStaffUnavailable = errors.New("update_reservation: staff is not available at this time")

	// ErrSlotConflict возвращается, когда у мастера уже есть пересекающееся бронирование
	ErrSlotConflict = errors.New("update_reservation: staff slot conflict")

	// ErrCapacityReached возвращается, когда достигнут лимит одновременных бронирований
	ErrCapacityReached = errors.New("update_reservation: concurrent reservation limit reached")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("update_reservation: invalid reservation date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrConcurrentUpdate возвращается, когда сериализуемая транзакция не прошла
	// после всех повторов
	ErrConcurrentUpdate = errors.New("update_reservation: concurrent update, please retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
