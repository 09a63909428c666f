package timeslot

import (
	"fmt"
	"time"
)

// WindowConfig настройки временных ворот бронирования
type WindowConfig struct {
	// CreationStartHour/CreationEndHour окно серверного локального времени,
	// в которое разрешено создавать записи, [start, end)
	CreationStartHour int
	CreationEndHour   int

	// OperatingStartHour/OperatingEndHour рабочие часы центров, [start, end)
	// для запрошенного локального времени записи
	OperatingStartHour int
	OperatingEndHour   int

	// ExcludedWeekdays дни недели, закрытые для записи обычных пользователей
	ExcludedWeekdays []time.Weekday
}

// WindowValidator проверяет временные ворота бронирования:
// окно создания, рабочие часы и горизонт записи
// Все проверки работают с локальными полями через Normalizer
type WindowValidator struct {
	norm *Normalizer
	cfg  WindowConfig
}

// NewWindowValidator создает валидатор временных ворот
func NewWindowValidator(norm *Normalizer, cfg WindowConfig) *WindowValidator {
	return &WindowValidator{norm: norm, cfg: cfg}
}

// ValidateCreationClock проверяет, что ТЕКУЩЕЕ серверное локальное время
// попадает в окно, разрешенное для создания записей
func (v *WindowValidator) ValidateCreationClock(now time.Time) error {
	hour := v.norm.ToLocal(now).Hour
	if hour < v.cfg.CreationStartHour || hour >= v.cfg.CreationEndHour {
		return fmt.Errorf("%w: appointments can only be created between %02d:00 and %02d:00 local time",
			ErrOutsideCreationWindow, v.cfg.CreationStartHour, v.cfg.CreationEndHour)
	}
	return nil
}

// ValidateOperatingHours проверяет, что ЗАПРОШЕННОЕ локальное время записи
// попадает в рабочие часы центров
func (v *WindowValidator) ValidateOperatingHours(requested time.Time) error {
	hour := v.norm.ToLocal(requested).Hour
	if hour < v.cfg.OperatingStartHour || hour >= v.cfg.OperatingEndHour {
		return fmt.Errorf("%w: appointments only between %02d:00 and %02d:00 local time",
			ErrOutsideOperatingHours, v.cfg.OperatingStartHour, v.cfg.OperatingEndHour)
	}
	return nil
}

// ValidateHorizon проверяет горизонт записи для обычных пользователей:
// не в прошлом, не в исключенный день недели и не дальше пятницы следующей недели
// Сотрудники и администраторы эту проверку не проходят вовсе
func (v *WindowValidator) ValidateHorizon(requested, now time.Time) error {
	requestedDate := v.norm.LocalDate(requested)
	today := v.norm.LocalDate(now)

	if requestedDate.Before(today) {
		return ErrPastDate
	}

	weekday := requestedDate.Weekday()
	for _, excluded := range v.cfg.ExcludedWeekdays {
		if weekday == excluded {
			return fmt.Errorf("%w: %s", ErrWeekdayExcluded, weekday)
		}
	}

	if requestedDate.After(v.norm.HorizonEnd(now)) {
		return ErrBeyondHorizon
	}

	return nil
}
