package timeslot

import (
	"fmt"
	"time"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// Normalizer переводит моменты времени в фиксированный гражданский часовой пояс
// сервиса и обратно. Все бизнес-правила работают с локальными полями
// (час, день недели, дата), а не с сырыми UTC-моментами
//
// Пояс один на весь сервис: у жителей нет персональных часовых поясов
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer создает нормализатор для указанного часового пояса (IANA имя)
func NewNormalizer(timezone string) (*Normalizer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, timezone, err)
	}
	return &Normalizer{loc: loc}, nil
}

// Location возвращает часовой пояс сервиса
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// LocalTime локальные календарные поля момента времени
type LocalTime struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Weekday time.Weekday
}

// ToLocal раскладывает момент на локальные календарные поля
func (n *Normalizer) ToLocal(t time.Time) LocalTime {
	local := t.In(n.loc)
	return LocalTime{
		Year:    local.Year(),
		Month:   local.Month(),
		Day:     local.Day(),
		Hour:    local.Hour(),
		Minute:  local.Minute(),
		Weekday: local.Weekday(),
	}
}

// ToInstant собирает локальные календарные поля обратно в UTC-момент
func (n *Normalizer) ToInstant(lt LocalTime) time.Time {
	return time.Date(lt.Year, lt.Month, lt.Day, lt.Hour, lt.Minute, 0, 0, n.loc).UTC()
}

// LocalDate возвращает локальную календарную дату момента (полночь в поясе сервиса)
func (n *Normalizer) LocalDate(t time.Time) time.Time {
	local := t.In(n.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, n.loc)
}

// LocalDateString возвращает локальную дату момента в формате YYYY-MM-DD
// Используется репозиториями для сравнения с датами, спроецированными в SQL
func (n *Normalizer) LocalDateString(t time.Time) string {
	return t.In(n.loc).Format(domain.DateFormat)
}

// SameLocalDay проверяет, что два момента приходятся на один локальный день
func (n *Normalizer) SameLocalDay(a, b time.Time) bool {
	la, lb := a.In(n.loc), b.In(n.loc)
	y1, m1, d1 := la.Date()
	y2, m2, d2 := lb.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Snap прижимает произвольный запрошенный момент к одному из двух канонических
// локальных времен: до 12:00 локального времени — 08:00, иначе — 13:00,
// та же локальная дата. Возвращает UTC-момент для хранения
//
// Два дискретных ключа на день позволяют считать вместимость точным равенством
// вместо пересечения интервалов. Идемпотентно
func (n *Normalizer) Snap(t time.Time) time.Time {
	local := t.In(n.loc)

	slotHour := domain.MorningSlotHour
	if local.Hour() >= domain.NoonHour {
		slotHour = domain.AfternoonSlotHour
	}

	return time.Date(local.Year(), local.Month(), local.Day(), slotHour, 0, 0, 0, n.loc).UTC()
}

// SlotHour возвращает локальный час канонического слота момента
func (n *Normalizer) SlotHour(t time.Time) int {
	return t.In(n.loc).Hour()
}

// HorizonEnd возвращает последнюю дату, доступную обычному пользователю:
// пятницу следующей недели относительно "сегодня"
// offset = 12 - weekday(сегодня); для выходных offset уходит в минус и
// корректируется на +7
func (n *Normalizer) HorizonEnd(now time.Time) time.Time {
	today := n.LocalDate(now)

	offset := 12 - int(today.Weekday())
	if offset < 0 {
		offset += 7
	}

	return today.AddDate(0, 0, offset)
}
