package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	storageAppt "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/appointment"
	storageUser "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SSC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SSC-SchedulingService/internal/timeslot"
)

// UseCase бизнес-логика изменения записи на прием
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

// Execute изменяет запись на прием.
//
// При переносе на другое время или в другое подразделение действуют те же
// ворота и проверки конфликтов, что и при создании. Собственная запись
// исключается из проверки "одна активная запись в день", иначе перенос
// внутри того же дня был бы невозможен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	var updated *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Загружаем запись внутри транзакции
		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, storageAppt.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: appointment %d", ErrAppointmentNotFound, req.AppointmentID)
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment %d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: Execute - get appointment: %v", ErrInternal, err)
		}

		// 3. Завершенные записи (done/absent) неизменяемы
		if appt.IsConcluded() {
			return fmt.Errorf("%w: appointment %d is %s", ErrTerminalState, appt.ID, appt.Status)
		}

		// 4. Обычный пользователь меняет только собственные записи
		actor, err := uc.userRepo.GetByID(txCtx, req.ActorID)
		if err != nil {
			if errors.Is(err, storageUser.ErrUserNotFound) {
				return fmt.Errorf("%w: actor %s", ErrUserNotFound, req.ActorID)
			}
			uc.logger.Error("UpdateAppointment: failed to get actor %s: %v", req.ActorID, err)
			return fmt.Errorf("%w: Execute - get actor: %v", ErrInternal, err)
		}
		if actor.IsRegular() && appt.UserID != actor.ID {
			return fmt.Errorf("%w: user %s cannot modify appointment %d", ErrPermissionDenied, actor.ID, appt.ID)
		}

		targetUnit := appt.UnitID
		if req.UnitID != nil {
			targetUnit = *req.UnitID
		}
		targetDuration := appt.DurationMinutes
		if req.DurationMinutes != nil {
			targetDuration = *req.DurationMinutes
		}

		// 5. Перенос: новое время проходит через прижатие и все проверки
		targetSlot := appt.ScheduledAt
		if req.ScheduledAt != nil {
			if err := uc.windows.ValidateOperatingHours(*req.ScheduledAt); err != nil {
				return uc.mapTimeslotError(err)
			}
			targetSlot = uc.snapper.Snap(*req.ScheduledAt)
		}

		rescheduled := !targetSlot.Equal(appt.ScheduledAt) || targetUnit != appt.UnitID

		if rescheduled {
			// Ограничения бронирования действуют по роли СУБЪЕКТА записи:
			// сотрудник, переносящий запись обычного пользователя, не снимает
			// с неё горизонт, лимит "одна запись в день" и вместимость
			subject := actor
			if appt.UserID != actor.ID {
				subject, err = uc.userRepo.GetByID(txCtx, appt.UserID)
				if err != nil {
					if errors.Is(err, storageUser.ErrUserNotFound) {
						return fmt.Errorf("%w: subject %s", ErrUserNotFound, appt.UserID)
					}
					uc.logger.Error("UpdateAppointment: failed to get subject %s: %v", appt.UserID, err)
					return fmt.Errorf("%w: Execute - get subject: %v", ErrInternal, err)
				}
			}

			if !subject.BypassesBookingLimits() {
				if err := uc.windows.ValidateHorizon(targetSlot, now); err != nil {
					return uc.mapTimeslotError(err)
				}

				excludeID := appt.ID
				if err := uc.availability.CheckUserDay(txCtx, appt.UserID, targetSlot, &excludeID); err != nil {
					return uc.mapAvailabilityError(err)
				}

				if err := uc.availability.CheckSlotCapacity(txCtx, targetUnit, targetSlot); err != nil {
					return uc.mapAvailabilityError(err)
				}
			}

			if err := uc.availability.CheckBlackout(txCtx, targetUnit, targetSlot, targetDuration); err != nil {
				return uc.mapAvailabilityError(err)
			}
		}

		// 6. Применяем изменения
		appt.UnitID = targetUnit
		appt.ScheduledAt = targetSlot
		appt.DurationMinutes = targetDuration
		if req.Status != nil {
			appt.Status = domain.AppointmentStatus(*req.Status)
		}
		if req.Description != nil {
			appt.Description = req.Description
		}
		if req.Phone != nil {
			appt.Phone = req.Phone
		}
		if req.TaxID != nil {
			appt.TaxID = req.TaxID
		}

		if err := uc.apptRepo.Update(txCtx, appt); err != nil {
			uc.logger.Error("UpdateAppointment: failed to update appointment %d: %v", appt.ID, err)
			return fmt.Errorf("%w: Execute - update appointment: %v", ErrInternal, err)
		}

		// Перечитываем запись, чтобы вернуть актуальный updated_at
		updated, err = uc.apptRepo.GetByID(txCtx, appt.ID)
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to reload appointment %d: %v", appt.ID, err)
			return fmt.Errorf("%w: Execute - reload appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: updated appointment %d (unit %d, %s)",
		updated.ID, updated.UnitID, updated.ScheduledAt.Format("2006-01-02 15:04"))

	return toResponse(updated), nil
}

func (uc *UseCase) mapTimeslotError(err error) error {
	switch {
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
