package register_blackout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

const maxWindowsPerRequest = 100

// validateRequest проверяет структурную корректность пакетного запроса
func validateRequest(req *Request) error {
	if req.CreatorID == uuid.Nil {
		return fmt.Errorf("%w: creator id is required", ErrInvalidRequest)
	}

	if len(req.Windows) == 0 {
		return fmt.Errorf("%w: at least one window is required", ErrInvalidRequest)
	}
	if len(req.Windows) > maxWindowsPerRequest {
		return fmt.Errorf("%w: at most %d windows per request", ErrInvalidRequest, maxWindowsPerRequest)
	}

	for i, w := range req.Windows {
		if w.UnitID <= 0 {
			return fmt.Errorf("%w: window %d: unit_id must be positive", ErrInvalidRequest, i)
		}
		if _, err := time.Parse(domain.DateFormat, w.Date); err != nil {
			return fmt.Errorf("%w: window %d: date must be in YYYY-MM-DD format", ErrInvalidRequest, i)
		}
		if !domain.ValidDaypart(domain.Daypart(w.Daypart)) {
			return fmt.Errorf("%w: window %d: unknown daypart %q", ErrInvalidRequest, i, w.Daypart)
		}
	}

	return nil
}
