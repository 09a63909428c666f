package domain

import (
	"time"

	"github.com/google/uuid"
)

// Daypart represents a named sub-range of a day covered by a blackout window
type Daypart string

const (
	DaypartMorning   Daypart = "morning"
	DaypartAfternoon Daypart = "afternoon"
	DaypartFullDay   Daypart = "full_day"
)

// HourRange возвращает локальный диапазон часов [start, end] для части дня
func (d Daypart) HourRange() (start, end int, ok bool) {
	switch d {
	case DaypartMorning:
		return 8, 12, true
	case DaypartAfternoon:
		return 13, 17, true
	case DaypartFullDay:
		return 8, 17, true
	default:
		return 0, 0, false
	}
}

// ValidDaypart проверяет, что часть дня является одной из допустимых
func ValidDaypart(d Daypart) bool {
	_, _, ok := d.HourRange()
	return ok
}

// BlackoutWindow represents an administrator-declared window during which a unit
// does not take appointments; registering one cancels conflicting pending bookings
type BlackoutWindow struct {
	ID        int64
	CreatorID uuid.UUID // создатель обязан быть super_admin
	UnitID    int64

	// Date календарная дата блокировки, сравнивается в локальном поясе сервиса
	Date    time.Time
	Daypart Daypart
	Active  bool
	Reason  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blocks проверяет, пересекает ли прием с локальным часом начала startHour
// и длительностью durationMinutes окно блокировки
// Конец приема считается как start + ceil(duration/60), пересечение инклюзивное:
// покрывает частичное наложение с обеих сторон и полное поглощение
func (w *BlackoutWindow) Blocks(startHour, durationMinutes int) bool {
	blockStart, blockEnd, ok := w.Daypart.HourRange()
	if !ok {
		return false
	}

	endHour := startHour + (durationMinutes+59)/60

	return (startHour >= blockStart && startHour < blockEnd) ||
		(endHour > blockStart && endHour <= blockEnd) ||
		(startHour <= blockStart && endHour >= blockEnd)
}

// SameWindow возвращает true, если дата и часть дня совпадают с other
// Используется при обновлении: пересогласование запускается только при изменении
func (w *BlackoutWindow) SameWindow(date time.Time, daypart Daypart) bool {
	return w.Date.Equal(date) && w.Daypart == daypart
}
