package update_blackout

import (
	"time"

	"github.com/google/uuid"

	updateBlackout "github.com/m04kA/SSC-SchedulingService/internal/usecase/update_blackout"
)

// UpdateBlackoutRequest HTTP request model, все поля опциональны
type UpdateBlackoutRequest struct {
	Date    *string `json:"date,omitempty"` // "2025-10-20"
	Daypart *string `json:"daypart,omitempty"`
	Active  *bool   `json:"active,omitempty"`
	Reason  *string `json:"reason,omitempty"`
}

// BlackoutResponse HTTP response model
type BlackoutResponse struct {
	ID                int64   `json:"id"`
	CreatorID         string  `json:"creatorId"`
	UnitID            int64   `json:"unitId"`
	Date              string  `json:"date"`
	Daypart           string  `json:"daypart"`
	Active            bool    `json:"active"`
	Reason            *string `json:"reason,omitempty"`
	CancelledBookings int64   `json:"cancelledBookings"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBlackoutRequest) ToUseCaseRequest(blackoutID int64, actorID uuid.UUID) *updateBlackout.Request {
	return &updateBlackout.Request{
		BlackoutID: blackoutID,
		ActorID:    actorID,
		Date:       r.Date,
		Daypart:    r.Daypart,
		Active:     r.Active,
		Reason:     r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateBlackout.Response) *BlackoutResponse {
	return &BlackoutResponse{
		ID:                resp.ID,
		CreatorID:         resp.CreatorID.String(),
		UnitID:            resp.UnitID,
		Date:              resp.Date,
		Daypart:           resp.Daypart,
		Active:            resp.Active,
		Reason:            resp.Reason,
		CancelledBookings: resp.CancelledBookings,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
