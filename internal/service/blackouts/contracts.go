package blackouts

import (
	"context"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// BlackoutRepository интерфейс репозитория блокировок
type BlackoutRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BlackoutWindow, error)
	List(ctx context.Context) ([]*domain.BlackoutWindow, error)
	GetByUnit(ctx context.Context, unitID int64) ([]*domain.BlackoutWindow, error)
	GetActiveByUnitAndDate(ctx context.Context, unitID int64, localDate string) ([]*domain.BlackoutWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
