package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	storageUser "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SSC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SSC-SchedulingService/internal/timeslot"
)

// UseCase бизнес-логика создания записи на прием
type UseCase struct {
	apptRepo     AppointmentRepository
	userRepo     UserRepository
	availability AvailabilityService
	windows      WindowValidator
	snapper      SlotSnapper
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func New(
	apptRepo AppointmentRepository,
	userRepo UserRepository,
	availabilitySvc AvailabilityService,
	windows WindowValidator,
	snapper SlotSnapper,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		userRepo:     userRepo,
		availability: availabilitySvc,
		windows:      windows,
		snapper:      snapper,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создает запись на прием.
//
// Все проверки конфликтов и вставка выполняются в одной SERIALIZABLE
// транзакции: конкурентные запросы на последнее место в слоте не могут
// одновременно пройти проверку вместимости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Окно создания проверяется по текущему часу, вне транзакции
	if err := uc.windows.ValidateCreationClock(now); err != nil {
		return nil, uc.mapTimeslotError(err)
	}

	var created *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Получаем пользователя, на которого оформляется запись
		user, err := uc.userRepo.GetByID(txCtx, req.UserID)
		if err != nil {
			if errors.Is(err, storageUser.ErrUserNotFound) {
				return fmt.Errorf("%w: user %s", ErrUserNotFound, req.UserID)
			}
			uc.logger.Error("CreateAppointment: failed to get user %s: %v", req.UserID, err)
			return fmt.Errorf("%w: Execute - get user: %v", ErrInternal, err)
		}

		// 4. Рабочие часы проверяем по запрошенному времени, до прижатия к слоту
		if err := uc.windows.ValidateOperatingHours(req.ScheduledAt); err != nil {
			return uc.mapTimeslotError(err)
		}

		// 5. Прижимаем момент к каноническому слоту (08:00 или 13:00)
		slot := uc.snapper.Snap(req.ScheduledAt)

		durationMinutes := domain.DefaultDurationMinutes
		if req.DurationMinutes != nil {
			durationMinutes = *req.DurationMinutes
		}

		// 6. Для обычных пользователей действуют горизонт и лимиты
		if !user.BypassesBookingLimits() {
			if err := uc.windows.ValidateHorizon(slot, now); err != nil {
				return uc.mapTimeslotError(err)
			}

			if err := uc.availability.CheckUserDay(txCtx, req.UserID, slot, nil); err != nil {
				return uc.mapAvailabilityError(err)
			}

			if err := uc.availability.CheckSlotCapacity(txCtx, req.UnitID, slot); err != nil {
				return uc.mapAvailabilityError(err)
			}
		}

		// 7. Блокировки действуют на всех, включая сотрудников
		if err := uc.availability.CheckBlackout(txCtx, req.UnitID, slot, durationMinutes); err != nil {
			return uc.mapAvailabilityError(err)
		}

		appt := &domain.Appointment{
			UserID:          req.UserID,
			UnitID:          req.UnitID,
			ScheduledAt:     slot,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusPending,
			Description:     req.Description,
			Phone:           req.Phone,
			TaxID:           req.TaxID,
		}
		if req.CreatorID != req.UserID {
			creatorID := req.CreatorID
			appt.CreatorID = &creatorID
		}

		// 8. Вставка внутри той же транзакции
		created, err = uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment for user %s: %v", req.UserID, err)
			return fmt.Errorf("%w: Execute - create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment %d for user %s at %s (unit %d)",
		created.ID, created.UserID, created.ScheduledAt.Format("2006-01-02 15:04"), created.UnitID)

	return toResponse(created), nil
}

func (uc *UseCase) mapTimeslotError(err error) error {
	switch {
	case errors.Is(err, timeslot.ErrOutsideCreationWindow):
		return fmt.Errorf("%w: %v", ErrOutsideCreationWindow, err)
	case errors.Is(err, timeslot.ErrOutsideOperatingHours):
		return fmt.Errorf("%w: %v", ErrOutsideOperatingHours, err)
	case errors.Is(err, timeslot.ErrPastDate):
		return fmt.Errorf("%w: %v", ErrPastDate, err)
	case errors.Is(err, timeslot.ErrWeekdayExcluded):
		return fmt.Errorf("%w: %v", ErrWeekdayExcluded, err)
	case errors.Is(err, timeslot.ErrBeyondHorizon):
		return fmt.Errorf("%w: %v", ErrBeyondHorizon, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrUnitHasNoStaff):
		return fmt.Errorf("%w: %v", ErrUnitHasNoStaff, err)
	case errors.Is(err, availability.ErrUserAlreadyBooked):
		return fmt.Errorf("%w: %v", ErrUserAlreadyBooked, err)
	case errors.Is(err, availability.ErrSlotFull):
		return fmt.Errorf("%w: %v", ErrSlotFull, err)
	case errors.Is(err, availability.ErrSlotBlocked):
		return fmt.Errorf("%w: %v", ErrSlotBlocked, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
