package delete_appointment

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentService interface {
	Delete(ctx context.Context, id int64, actorID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
