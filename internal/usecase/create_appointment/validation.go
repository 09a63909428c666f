package create_appointment

import (
	"fmt"

	"github.com/google/uuid"
)

const maxDurationMinutes = 480

// validateRequest проверяет структурную корректность запроса
func validateRequest(req *Request) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrInvalidRequest)
	}

	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unit_id must be positive", ErrInvalidRequest)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduled_at is required", ErrInvalidRequest)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return fmt.Errorf("%w: duration_minutes must be positive", ErrInvalidRequest)
		}
		if *req.DurationMinutes > maxDurationMinutes {
			return fmt.Errorf("%w: duration_minutes must not exceed %d", ErrInvalidRequest, maxDurationMinutes)
		}
	}

	if req.Description != nil && len(*req.Description) > 1000 {
		return fmt.Errorf("%w: description is too long", ErrInvalidRequest)
	}

	return nil
}
