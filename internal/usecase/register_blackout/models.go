package register_blackout

import (
	"github.com/google/uuid"
)

// WindowRequest одна блокировка в пакетном запросе
type WindowRequest struct {
	UnitID  int64   `json:"unit_id"`
	Date    string  `json:"date"`
	Daypart string  `json:"daypart"`
	Reason  *string `json:"reason,omitempty"`
}

// Request пакетная регистрация блокировок
type Request struct {
	CreatorID uuid.UUID       `json:"-"`
	Windows   []WindowRequest `json:"windows"`
}

// Result итог обработки одной блокировки
type Result struct {
	UnitID            int64  `json:"unit_id"`
	Date              string `json:"date"`
	Daypart           string `json:"daypart"`
	BlackoutID        *int64 `json:"blackout_id,omitempty"`
	AlreadyRegistered bool   `json:"already_registered"`
	CancelledBookings int64  `json:"cancelled_bookings"`
	Message           string `json:"message"`
}

// Response итоги по каждому окну, в порядке запроса
type Response struct {
	Results []Result `json:"results"`
}
