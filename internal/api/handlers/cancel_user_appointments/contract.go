package cancel_user_appointments

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentService interface {
	CancelAllForUser(ctx context.Context, userID, actorID uuid.UUID, reason *string) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
