package get_blackout

import (
	"context"

	"github.com/m04kA/SSC-SchedulingService/internal/service/blackouts/models"
)

type BlackoutService interface {
	GetByID(ctx context.Context, id int64) (*models.BlackoutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
