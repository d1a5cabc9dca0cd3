package create_reservation

import "errors"

var (
	// ErrTenantNotFound возвращается, когда салон не найден
	ErrTenantNotFound = errors.New("create_reservation: tenant not found")

	// ErrTenantInactive возвращается, когда салон деактивирован
	ErrTenantInactive = errors.New("create_reservation: tenant is inactive")

	// ErrCustomerNotFound возвращается, когда клиент не найден в CustomerService
	ErrCustomerNotFound = errors.New("create_reservation: customer not found")

	// ErrMenuNotFound возвращается, когда хотя бы одна позиция меню не найдена
	// или неактивна (частичное разрешение отклоняется целиком)
	ErrMenuNotFound = errors.New("create_reservation: menu item not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в салоне
	ErrStaffNotFound = errors.New("create_reservation: staff member not found")

	// ErrTenantClosed возвращается, когда салон закрыт в указанную дату
	ErrTenantClosed = errors.New("create_reservation: tenant is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("create_reservation: outside business hours")

	// ErrStaffUnavailable возвращается, когда интервал выходит за рабочие часы мастера
	ErrStaffUnavailable = errors.New("create_reservation: staff is not available at this time")

	// ErrSlotConflict возвращается, когда у мастера уже есть пересекающееся бронирование
	ErrSlotConflict = errors.New("create_reservation: staff slot conflict")

	// ErrCapacityReached возвращается, когда достигнут лимит одновременных бронирований
	ErrCapacityReached = errors.New("create_reservation: concurrent reservation limit reached")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrConcurrentUpdate возвращается, когда сериализуемая транзакция не прошла
	// после всех повторов из-за конкурентного бронирования
	ErrConcurrentUpdate = errors.New("create_reservation: concurrent update, please retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
