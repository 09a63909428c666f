package list_appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, actorID uuid.UUID) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
