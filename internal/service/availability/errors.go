package availability

import "errors"

var (
	// ErrUnitHasNoStaff возвращается, когда в центре нет сотрудников
	// и вместимость слотов не определена
	ErrUnitHasNoStaff = errors.New("availability: unit has no staff")

	// ErrUserAlreadyBooked возвращается, когда у пользователя уже есть
	// pending запись на запрошенную локальную дату
	ErrUserAlreadyBooked = errors.New("availability: user already has a pending appointment on this date")

	// ErrSlotFull возвращается, когда слот заполнен до вместимости
	ErrSlotFull = errors.New("availability: slot is full")

	// ErrSlotBlocked возвращается, когда слот попадает в активное окно блокировки
	ErrSlotBlocked = errors.New("availability: slot falls into an active blackout window")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
