package update_blackout

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// Request запрос на изменение блокировки. Поля-указатели опциональны:
// nil означает "оставить как есть"
type Request struct {
	BlackoutID int64     `json:"-"`
	ActorID    uuid.UUID `json:"-"`
	Date       *string   `json:"date,omitempty"`
	Daypart    *string   `json:"daypart,omitempty"`
	Active     *bool     `json:"active,omitempty"`
	Reason     *string   `json:"reason,omitempty"`
}

// Response измененная блокировка
type Response struct {
	ID                int64     `json:"id"`
	CreatorID         uuid.UUID `json:"creator_id"`
	UnitID            int64     `json:"unit_id"`
	Date              string    `json:"date"`
	Daypart           string    `json:"daypart"`
	Active            bool      `json:"active"`
	Reason            *string   `json:"reason,omitempty"`
	CancelledBookings int64     `json:"cancelled_bookings"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toResponse(window *domain.BlackoutWindow, cancelled int64) *Response {
	return &Response{
		ID:                window.ID,
		CreatorID:         window.CreatorID,
		UnitID:            window.UnitID,
		Date:              window.Date.Format(domain.DateFormat),
		Daypart:           string(window.Daypart),
		Active:            window.Active,
		Reason:            window.Reason,
		CancelledBookings: cancelled,
		CreatedAt:         window.CreatedAt,
		UpdatedAt:         window.UpdatedAt,
	}
}
