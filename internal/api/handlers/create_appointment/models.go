package create_appointment

import (
	"time"

	"github.com/google/uuid"

	createAppointment "github.com/m04kA/SSC-SchedulingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	UserID          string    `json:"userId"`
	UnitID          int64     `json:"unitId"`
	ScheduledAt     time.Time `json:"scheduledAt"` // RFC3339, любой часовой пояс
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	TaxID           *string   `json:"taxId,omitempty"`
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
// creatorID берется из контекста авторизации; userId в теле опционален,
// без него запись оформляется на самого создателя
func (r *CreateAppointmentRequest) ToUseCaseRequest(creatorID uuid.UUID) (*createAppointment.Request, error) {
	userID := creatorID
	if r.UserID != "" {
		parsed, err := uuid.Parse(r.UserID)
		if err != nil {
			return nil, err
		}
		userID = parsed
	}

	return &createAppointment.Request{
		UserID:          userID,
		CreatorID:       creatorID,
		UnitID:          r.UnitID,
		ScheduledAt:     r.ScheduledAt,
		DurationMinutes: r.DurationMinutes,
		Description:     r.Description,
		Phone:           r.Phone,
		TaxID:           r.TaxID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
