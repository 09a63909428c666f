package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByUnit(ctx context.Context, unitID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason string) error
	CancelAllPendingForUser(ctx context.Context, userID uuid.UUID, reason string) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
