package update_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// AvailabilityService детектор конфликтов при переносе записи
type AvailabilityService interface {
	CheckUserDay(ctx context.Context, userID uuid.UUID, slot time.Time, excludeID *int64) error
	CheckSlotCapacity(ctx context.Context, unitID int64, slot time.Time) error
	CheckBlackout(ctx context.Context, unitID int64, slot time.Time, durationMinutes int) error
}

// WindowValidator временные ворота бронирования
type WindowValidator interface {
	ValidateOperatingHours(requested time.Time) error
	ValidateHorizon(requested, now time.Time) error
}

// SlotSnapper прижимает запрошенный момент к каноническому слоту
type SlotSnapper interface {
	Snap(t time.Time) time.Time
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
