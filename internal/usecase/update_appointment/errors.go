package update_appointment

import "errors"

var (
	// ErrInvalidRequest невалидные данные запроса
	ErrInvalidRequest = errors.New("update_appointment: invalid request")
	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("update_appointment: user not found")
	// ErrPermissionDenied пользователь может менять только свои записи
	ErrPermissionDenied = errors.New("update_appointment: permission denied")
	// ErrTerminalState завершенные записи неизменяемы
	ErrTerminalState = errors.New("update_appointment: appointment is in terminal state")
	// ErrOutsideOperatingHours новое время вне рабочих часов подразделения
	ErrOutsideOperatingHours = errors.New("update_appointment: outside operating hours")
	// ErrPastDate новая дата уже прошла
	ErrPastDate = errors.New("update_appointment: requested date is in the past")
	// ErrWeekdayExcluded запись на этот день недели не ведется
	ErrWeekdayExcluded = errors.New("update_appointment: weekday excluded")
	// ErrBeyondHorizon дата за пределами горизонта бронирования
	ErrBeyondHorizon = errors.New("update_appointment: beyond booking horizon")
	// ErrUnitHasNoStaff в подразделении нет активных сотрудников
	ErrUnitHasNoStaff = errors.New("update_appointment: unit has no active staff")
	// ErrUserAlreadyBooked у пользователя уже есть активная запись на этот день
	ErrUserAlreadyBooked = errors.New("update_appointment: user already booked on this day")
	// ErrSlotFull слот заполнен
	ErrSlotFull = errors.New("update_appointment: slot is full")
	// ErrSlotBlocked слот перекрыт блокировкой
	ErrSlotBlocked = errors.New("update_appointment: slot is blocked")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("update_appointment: internal error")
)
