package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// AppointmentResponse представление записи наружу
type AppointmentResponse struct {
	ID                 int64      `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	CreatorID          *uuid.UUID `json:"creator_id,omitempty"`
	UnitID             int64      `json:"unit_id"`
	ScheduledAt        time.Time  `json:"scheduled_at"`
	DurationMinutes    int        `json:"duration_minutes"`
	Status             string     `json:"status"`
	Description        *string    `json:"description,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	TaxID              *string    `json:"tax_id,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в ответ сервиса
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 appt.ID,
		UserID:             appt.UserID,
		CreatorID:          appt.CreatorID,
		UnitID:             appt.UnitID,
		ScheduledAt:        appt.ScheduledAt,
		DurationMinutes:    appt.DurationMinutes,
		Status:             string(appt.Status),
		Description:        appt.Description,
		Phone:              appt.Phone,
		TaxID:              appt.TaxID,
		CancellationReason: appt.CancellationReason,
		CancelledAt:        appt.CancelledAt,
		CreatedAt:          appt.CreatedAt,
		UpdatedAt:          appt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных записей
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		out = append(out, FromDomainAppointment(appt))
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}

// ToDomainStatus конвертирует строковый статус в доменный
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.ValidStatus(s) {
		return "", fmt.Errorf("unknown appointment status: %s", status)
	}
	return s, nil
}
