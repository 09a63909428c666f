package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// BlackoutResponse представление блокировки наружу
type BlackoutResponse struct {
	ID        int64     `json:"id"`
	CreatorID uuid.UUID `json:"creator_id"`
	UnitID    int64     `json:"unit_id"`
	Date      string    `json:"date"`
	Daypart   string    `json:"daypart"`
	Active    bool      `json:"active"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlackoutListResponse список блокировок
type BlackoutListResponse struct {
	Blackouts []*BlackoutResponse `json:"blackouts"`
	Total     int                 `json:"total"`
}

// FromDomainBlackout конвертирует доменную блокировку в ответ сервиса
func FromDomainBlackout(window *domain.BlackoutWindow) *BlackoutResponse {
	return &BlackoutResponse{
		ID:        window.ID,
		CreatorID: window.CreatorID,
		UnitID:    window.UnitID,
		Date:      window.Date.Format(domain.DateFormat),
		Daypart:   string(window.Daypart),
		Active:    window.Active,
		Reason:    window.Reason,
		CreatedAt: window.CreatedAt,
		UpdatedAt: window.UpdatedAt,
	}
}

// FromDomainBlackoutList конвертирует список доменных блокировок
func FromDomainBlackoutList(windows []*domain.BlackoutWindow) *BlackoutListResponse {
	out := make([]*BlackoutResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, FromDomainBlackout(w))
	}
	return &BlackoutListResponse{Blackouts: out, Total: len(out)}
}
