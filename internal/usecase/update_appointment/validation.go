package update_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

const maxDurationMinutes = 480

// validateRequest проверяет структурную корректность запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", ErrInvalidRequest)
	}

	if req.ActorID == uuid.Nil {
		return fmt.Errorf("%w: actor id is required", ErrInvalidRequest)
	}

	if req.UnitID != nil && *req.UnitID <= 0 {
		return fmt.Errorf("%w: unit_id must be positive", ErrInvalidRequest)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return fmt.Errorf("%w: duration_minutes must be positive", ErrInvalidRequest)
		}
		if *req.DurationMinutes > maxDurationMinutes {
			return fmt.Errorf("%w: duration_minutes must not exceed %d", ErrInvalidRequest, maxDurationMinutes)
		}
	}

	if req.Status != nil && !domain.ValidStatus(domain.AppointmentStatus(*req.Status)) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, *req.Status)
	}

	if req.Description != nil && len(*req.Description) > 1000 {
		return fmt.Errorf("%w: description is too long", ErrInvalidRequest)
	}

	if req.UnitID == nil && req.ScheduledAt == nil && req.DurationMinutes == nil &&
		req.Status == nil && req.Description == nil && req.Phone == nil && req.TaxID == nil {
		return fmt.Errorf("%w: no fields to update", ErrInvalidRequest)
	}

	return nil
}
