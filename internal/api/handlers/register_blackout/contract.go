package register_blackout

import (
	"context"

	registerBlackout "github.com/m04kA/SSC-SchedulingService/internal/usecase/register_blackout"
)

type RegisterBlackoutUseCase interface {
	Execute(ctx context.Context, req *registerBlackout.Request) (*registerBlackout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
