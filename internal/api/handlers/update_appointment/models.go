package update_appointment

import (
	"time"

	"github.com/google/uuid"

	updateAppointment "github.com/m04kA/SSC-SchedulingService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model, все поля опциональны
type UpdateAppointmentRequest struct {
	UnitID          *int64     `json:"unitId,omitempty"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	TaxID           *string    `json:"taxId,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	UserID          string  `json:"userId"`
	CreatorID       *string `json:"creatorId,omitempty"`
	UnitID          int64   `json:"unitId"`
	ScheduledAt     string  `json:"scheduledAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Description     *string `json:"description,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	TaxID           *string `json:"taxId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64, actorID uuid.UUID) *updateAppointment.Request {
	return &updateAppointment.Request{
		AppointmentID:   appointmentID,
		ActorID:         actorID,
		UnitID:          r.UnitID,
		ScheduledAt:     r.ScheduledAt,
		DurationMinutes: r.DurationMinutes,
		Status:          r.Status,
		Description:     r.Description,
		Phone:           r.Phone,
		TaxID:           r.TaxID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	out := &AppointmentResponse{
		ID:              resp.ID,
		UserID:          resp.UserID.String(),
		UnitID:          resp.UnitID,
		ScheduledAt:     resp.ScheduledAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Description:     resp.Description,
		Phone:           resp.Phone,
		TaxID:           resp.TaxID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.CreatorID != nil {
		creator := resp.CreatorID.String()
		out.CreatorID = &creator
	}
	return out
}
