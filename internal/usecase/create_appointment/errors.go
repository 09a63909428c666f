package create_appointment

import "errors"

var (
	// ErrInvalidRequest невалидные данные запроса
	ErrInvalidRequest = errors.New("create_appointment: invalid request")
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("create_appointment: user not found")
	// ErrOutsideCreationWindow создание записей в этот час недоступно
	ErrOutsideCreationWindow = errors.New("create_appointment: outside creation window")
	// ErrOutsideOperatingHours запрошенное время вне рабочих часов подразделения
	ErrOutsideOperatingHours = errors.New("create_appointment: outside operating hours")
	// ErrPastDate запрошенная дата уже прошла
	ErrPastDate = errors.New("create_appointment: requested date is in the past")
	// ErrWeekdayExcluded запись на этот день недели не ведется
	ErrWeekdayExcluded = errors.New("create_appointment: weekday excluded")
	// ErrBeyondHorizon дата за пределами горизонта бронирования
	ErrBeyondHorizon = errors.New("create_appointment: beyond booking horizon")
	// ErrUnitHasNoStaff в подразделении нет активных сотрудников
	ErrUnitHasNoStaff = errors.New("create_appointment: unit has no active staff")
	// ErrUserAlreadyBooked у пользователя уже есть активная запись на этот день
	ErrUserAlreadyBooked = errors.New("create_appointment: user already booked on this day")
	// ErrSlotFull слот заполнен
	ErrSlotFull = errors.New("create_appointment: slot is full")
	// ErrSlotBlocked слот перекрыт блокировкой
	ErrSlotBlocked = errors.New("create_appointment: slot is blocked")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_appointment: internal error")
)
