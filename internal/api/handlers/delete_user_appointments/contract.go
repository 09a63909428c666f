package delete_user_appointments

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentService interface {
	DeleteAllForUser(ctx context.Context, userID, actorID uuid.UUID) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
