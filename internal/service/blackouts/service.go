package blackouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	blackoutRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/blackout"
	"github.com/m04kA/SSC-SchedulingService/internal/service/blackouts/models"
)

// Service сервис чтения блокировок
type Service struct {
	blackouts BlackoutRepository
	logger    Logger
}

// NewService создает новый сервис блокировок
func NewService(blackouts BlackoutRepository, logger Logger) *Service {
	return &Service{
		blackouts: blackouts,
		logger:    logger,
	}
}

// GetByID получает блокировку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BlackoutResponse, error) {
	s.logger.Info("GetByID: fetching blackout id=%d", id)

	window, err := s.blackouts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Warn("GetByID: blackout id=%d not found", id)
			return nil, ErrBlackoutNotFound
		}
		s.logger.Error("GetByID: repository error for blackout id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlackout(window), nil
}

// List получает все блокировки
func (s *Service) List(ctx context.Context) (*models.BlackoutListResponse, error) {
	s.logger.Info("List: fetching all blackouts")

	windows, err := s.blackouts.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blackouts", len(windows))
	return models.FromDomainBlackoutList(windows), nil
}

// GetByUnit получает блокировки подразделения
// Опционально фильтрует по локальной дате (YYYY-MM-DD), оставляя только активные
func (s *Service) GetByUnit(ctx context.Context, unitID int64, localDate *string) (*models.BlackoutListResponse, error) {
	s.logger.Info("GetByUnit: fetching blackouts for unit=%d", unitID)

	if unitID <= 0 {
		return nil, fmt.Errorf("%w: unit id must be positive", ErrInvalidInput)
	}

	var (
		windows []*domain.BlackoutWindow
		err     error
	)
	if localDate != nil {
		if _, parseErr := time.Parse(domain.DateFormat, *localDate); parseErr != nil {
			return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		windows, err = s.blackouts.GetActiveByUnitAndDate(ctx, unitID, *localDate)
	} else {
		windows, err = s.blackouts.GetByUnit(ctx, unitID)
	}
	if err != nil {
		s.logger.Error("GetByUnit: repository error for unit=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: GetByUnit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByUnit: successfully fetched %d blackouts for unit=%d", len(windows), unitID)
	return models.FromDomainBlackoutList(windows), nil
}
