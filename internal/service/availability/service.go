package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	"github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SSC-SchedulingService/internal/timeslot"
)

// CapacityOverride точечное переопределение множителя вместимости центра
// в диапазоне локальных часов [StartHour, EndHour)
type CapacityOverride struct {
	UnitID     int64
	StartHour  int
	EndHour    int
	Multiplier int
}

// Config правила расчета вместимости слотов
type Config struct {
	MorningMultiplier   int
	AfternoonMultiplier int

	// Overrides таблица исключений: правило вместо зашитого в код условия,
	// чтобы операторы управляли исключениями конфигурацией
	Overrides []CapacityOverride
}

// Service расчет вместимости слотов и детектор конфликтов бронирования
//
// Обе проверки конфликтов обязаны выполняться в той же транзакции, что и
// последующая вставка/обновление: вызывающий usecase оборачивает всё в
// DoSerializable, а репозитории берут транзакцию из контекста
type Service struct {
	userRepo     UserRepository
	apptRepo     AppointmentRepository
	blackoutRepo BlackoutRepository
	norm         *timeslot.Normalizer
	cfg          Config
	logger       Logger
}

// NewService создает новый сервис доступности слотов
func NewService(
	userRepo UserRepository,
	apptRepo AppointmentRepository,
	blackoutRepo BlackoutRepository,
	norm *timeslot.Normalizer,
	cfg Config,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		apptRepo:     apptRepo,
		blackoutRepo: blackoutRepo,
		norm:         norm,
		cfg:          cfg,
		logger:       logger,
	}
}

// SlotCapacity вычисляет вместимость канонического слота центра:
// множитель (утренний или дневной) * число активных сотрудников центра
// Переопределения из таблицы Overrides имеют приоритет над множителями по умолчанию
func (s *Service) SlotCapacity(ctx context.Context, unitID int64, slot time.Time) (int, error) {
	staff, err := s.userRepo.GetStaffByUnit(ctx, unitID)
	if err != nil {
		if errors.Is(err, user.ErrNoStaffInUnit) {
			return 0, ErrUnitHasNoStaff
		}
		return 0, fmt.Errorf("%w: SlotCapacity - get staff: %v", ErrInternal, err)
	}

	hour := s.norm.ToLocal(slot).Hour

	multiplier := s.cfg.MorningMultiplier
	if hour >= domain.NoonHour {
		multiplier = s.cfg.AfternoonMultiplier
	}

	for _, o := range s.cfg.Overrides {
		if o.UnitID == unitID && hour >= o.StartHour && hour < o.EndHour {
			multiplier = o.Multiplier
			break
		}
	}

	return multiplier * len(staff), nil
}

// CheckUserDay проверяет правило "одна pending запись на локальный день"
// excludeID исключает саму перемещаемую запись при обновлении
func (s *Service) CheckUserDay(ctx context.Context, userID uuid.UUID, slot time.Time, excludeID *int64) error {
	localDate := s.norm.LocalDateString(slot)

	booked, err := s.apptRepo.HasPendingOnLocalDate(ctx, userID, localDate, excludeID)
	if err != nil {
		return fmt.Errorf("%w: CheckUserDay - query pending: %v", ErrInternal, err)
	}
	if booked {
		return ErrUserAlreadyBooked
	}

	return nil
}

// CheckSlotCapacity проверяет, что слот еще не заполнен до вместимости
// Слот уже должен быть прижат к каноническому времени
func (s *Service) CheckSlotCapacity(ctx context.Context, unitID int64, slot time.Time) error {
	capacity, err := s.SlotCapacity(ctx, unitID, slot)
	if err != nil {
		return err
	}

	count, err := s.apptRepo.CountPendingBySlot(ctx, unitID, slot)
	if err != nil {
		return fmt.Errorf("%w: CheckSlotCapacity - count pending: %v", ErrInternal, err)
	}

	if count >= capacity {
		s.logger.Warn("CheckSlotCapacity: slot full, unit=%d slot=%s taken=%d/%d",
			unitID, slot.Format(time.RFC3339), count, capacity)
		return ErrSlotFull
	}

	s.logger.Info("CheckSlotCapacity: slot available, unit=%d slot=%s taken=%d/%d",
		unitID, slot.Format(time.RFC3339), count, capacity)
	return nil
}

// CheckBlackout проверяет, что слот не попадает в активное окно блокировки центра
func (s *Service) CheckBlackout(ctx context.Context, unitID int64, slot time.Time, durationMinutes int) error {
	localDate := s.norm.LocalDateString(slot)

	windows, err := s.blackoutRepo.GetActiveByUnitAndDate(ctx, unitID, localDate)
	if err != nil {
		return fmt.Errorf("%w: CheckBlackout - query windows: %v", ErrInternal, err)
	}

	startHour := s.norm.ToLocal(slot).Hour
	for _, w := range windows {
		if w.Blocks(startHour, durationMinutes) {
			return ErrSlotBlocked
		}
	}

	return nil
}
