package update_blackout

import (
	"context"

	updateBlackout "github.com/m04kA/SSC-SchedulingService/internal/usecase/update_blackout"
)

type UpdateBlackoutUseCase interface {
	Execute(ctx context.Context, req *updateBlackout.Request) (*updateBlackout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
