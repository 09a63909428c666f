package timeslot

import "errors"

var (
	// ErrInvalidTimezone возвращается, когда часовой пояс из конфигурации не существует
	ErrInvalidTimezone = errors.New("timeslot: invalid timezone")

	// ErrInvalidTemporalValue возвращается при некорректной дате/времени
	ErrInvalidTemporalValue = errors.New("timeslot: invalid temporal value")

	// ErrOutsideCreationWindow возвращается, когда текущее серверное время
	// вне окна, в которое разрешено создавать записи
	ErrOutsideCreationWindow = errors.New("timeslot: outside creation window")

	// ErrOutsideOperatingHours возвращается, когда запрошенное время
	// вне рабочих часов центров
	ErrOutsideOperatingHours = errors.New("timeslot: outside operating hours")

	// ErrPastDate возвращается при попытке записи на прошедшую дату
	ErrPastDate = errors.New("timeslot: date is in the past")

	// ErrWeekdayExcluded возвращается, когда день недели закрыт для записи
	ErrWeekdayExcluded = errors.New("timeslot: weekday is excluded from booking")

	// ErrBeyondHorizon возвращается, когда дата дальше пятницы следующей недели
	ErrBeyondHorizon = errors.New("timeslot: date is beyond the booking horizon")
)
