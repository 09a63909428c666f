package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetStaffByUnit(ctx context.Context, unitID int64) ([]*domain.User, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	HasPendingOnLocalDate(ctx context.Context, userID uuid.UUID, localDate string, excludeID *int64) (bool, error)
	CountPendingBySlot(ctx context.Context, unitID int64, slot time.Time) (int, error)
}

// BlackoutRepository интерфейс репозитория окон блокировки
type BlackoutRepository interface {
	GetActiveByUnitAndDate(ctx context.Context, unitID int64, localDate string) ([]*domain.BlackoutWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
