package update_blackout

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// BlackoutRepository интерфейс репозитория блокировок
type BlackoutRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BlackoutWindow, error)
	Update(ctx context.Context, window *domain.BlackoutWindow) error
}

// AppointmentRepository отмена ожидающих записей, попавших под блокировку
type AppointmentRepository interface {
	CancelPendingInWindow(ctx context.Context, unitID int64, localDate string, startHour, endHour int, reason string) (int64, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
