package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// Request запрос на изменение записи. Все поля кроме идентификаторов
// опциональны: nil означает "оставить как есть"
type Request struct {
	AppointmentID   int64      `json:"-"`
	ActorID         uuid.UUID  `json:"-"`
	UnitID          *int64     `json:"unit_id,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	TaxID           *string    `json:"tax_id,omitempty"`
}

// Response измененная запись
type Response struct {
	ID              int64      `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	CreatorID       *uuid.UUID `json:"creator_id,omitempty"`
	UnitID          int64      `json:"unit_id"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
	Description     *string    `json:"description,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	TaxID           *string    `json:"tax_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		UserID:          appt.UserID,
		CreatorID:       appt.CreatorID,
		UnitID:          appt.UnitID,
		ScheduledAt:     appt.ScheduledAt,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		Description:     appt.Description,
		Phone:           appt.Phone,
		TaxID:           appt.TaxID,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
