package get_unit_appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetUnitAppointments(ctx context.Context, unitID int64, actorID uuid.UUID, status *string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
