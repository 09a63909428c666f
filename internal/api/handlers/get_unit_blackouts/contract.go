package get_unit_blackouts

import (
	"context"

	"github.com/m04kA/SSC-SchedulingService/internal/service/blackouts/models"
)

type BlackoutService interface {
	GetByUnit(ctx context.Context, unitID int64, localDate *string) (*models.BlackoutListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
