package list_blackouts

import (
	"context"

	"github.com/m04kA/SSC-SchedulingService/internal/service/blackouts/models"
)

type BlackoutService interface {
	List(ctx context.Context) (*models.BlackoutListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
