package update_blackout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// validateRequest проверяет структурную корректность запроса
func validateRequest(req *Request) error {
	if req.BlackoutID <= 0 {
		return fmt.Errorf("%w: blackout id must be positive", ErrInvalidRequest)
	}

	if req.ActorID == uuid.Nil {
		return fmt.Errorf("%w: actor id is required", ErrInvalidRequest)
	}

	if req.Date != nil {
		if _, err := time.Parse(domain.DateFormat, *req.Date); err != nil {
			return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidRequest)
		}
	}

	if req.Daypart != nil && !domain.ValidDaypart(domain.Daypart(*req.Daypart)) {
		return fmt.Errorf("%w: unknown daypart %q", ErrInvalidRequest, *req.Daypart)
	}

	if req.Date == nil && req.Daypart == nil && req.Active == nil && req.Reason == nil {
		return fmt.Errorf("%w: no fields to update", ErrInvalidRequest)
	}

	return nil
}
