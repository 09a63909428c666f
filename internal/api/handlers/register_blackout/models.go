package register_blackout

import (
	"github.com/google/uuid"

	registerBlackout "github.com/m04kA/SSC-SchedulingService/internal/usecase/register_blackout"
)

// BlackoutWindowRequest одна блокировка в пакетном HTTP запросе
type BlackoutWindowRequest struct {
	UnitID  int64   `json:"unitId"`
	Date    string  `json:"date"` // "2025-10-20"
	Daypart string  `json:"daypart"`
	Reason  *string `json:"reason,omitempty"`
}

// RegisterBlackoutRequest HTTP request model
type RegisterBlackoutRequest struct {
	Windows []BlackoutWindowRequest `json:"windows"`
}

// BlackoutResultResponse итог обработки одной блокировки
type BlackoutResultResponse struct {
	UnitID            int64  `json:"unitId"`
	Date              string `json:"date"`
	Daypart           string `json:"daypart"`
	BlackoutID        *int64 `json:"blackoutId,omitempty"`
	AlreadyRegistered bool   `json:"alreadyRegistered"`
	CancelledBookings int64  `json:"cancelledBookings"`
	Message           string `json:"message"`
}

// RegisterBlackoutResponse HTTP response model
type RegisterBlackoutResponse struct {
	Results []BlackoutResultResponse `json:"results"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RegisterBlackoutRequest) ToUseCaseRequest(creatorID uuid.UUID) *registerBlackout.Request {
	windows := make([]registerBlackout.WindowRequest, 0, len(r.Windows))
	for _, w := range r.Windows {
		windows = append(windows, registerBlackout.WindowRequest{
			UnitID:  w.UnitID,
			Date:    w.Date,
			Daypart: w.Daypart,
			Reason:  w.Reason,
		})
	}
	return &registerBlackout.Request{
		CreatorID: creatorID,
		Windows:   windows,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *registerBlackout.Response) *RegisterBlackoutResponse {
	results := make([]BlackoutResultResponse, 0, len(resp.Results))
	for _, res := range resp.Results {
		results = append(results, BlackoutResultResponse{
			UnitID:            res.UnitID,
			Date:              res.Date,
			Daypart:           res.Daypart,
			BlackoutID:        res.BlackoutID,
			AlreadyRegistered: res.AlreadyRegistered,
			CancelledBookings: res.CancelledBookings,
			Message:           res.Message,
		})
	}
	return &RegisterBlackoutResponse{Results: results}
}
