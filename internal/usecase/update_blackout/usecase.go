package update_blackout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	storageBlackout "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/blackout"
	storageUser "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
)

// UseCase бизнес-логика изменения блокировки
type UseCase struct {
	blackoutRepo BlackoutRepository
	apptRepo     AppointmentRepository
	userRepo     UserRepository
	txManager    TransactionManager
	logger       Logger
}

func New(
	blackoutRepo BlackoutRepository,
	apptRepo AppointmentRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		blackoutRepo: blackoutRepo,
		apptRepo:     apptRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute изменяет блокировку.
//
// Перенос активной блокировки на другую дату или часть дня отменяет
// ожидающие записи в новом окне, как при регистрации. Снятая блокировка
// (active=false) дальше не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Блокировки меняет только супер-администратор
	actor, err := uc.userRepo.GetByID(ctx, req.ActorID)
	if err != nil {
		if errors.Is(err, storageUser.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: actor %s", ErrUserNotFound, req.ActorID)
		}
		uc.logger.Error("UpdateBlackout: failed to get actor %s: %v", req.ActorID, err)
		return nil, fmt.Errorf("%w: Execute - get actor: %v", ErrInternal, err)
	}
	if !actor.IsSuperAdmin() {
		return nil, fmt.Errorf("%w: user %s is not a super admin", ErrPermissionDenied, actor.ID)
	}

	var (
		updated   *domain.BlackoutWindow
		cancelled int64
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Загружаем блокировку внутри транзакции
		window, err := uc.blackoutRepo.GetByID(txCtx, req.BlackoutID)
		if err != nil {
			if errors.Is(err, storageBlackout.ErrBlackoutNotFound) {
				return fmt.Errorf("%w: blackout %d", ErrBlackoutNotFound, req.BlackoutID)
			}
			uc.logger.Error("UpdateBlackout: failed to get blackout %d: %v", req.BlackoutID, err)
			return fmt.Errorf("%w: Execute - get blackout: %v", ErrInternal, err)
		}

		// 4. Снятая блокировка неизменяема
		if !window.Active {
			return fmt.Errorf("%w: blackout %d", ErrBlackoutCancelled, window.ID)
		}

		targetDate := window.Date
		if req.Date != nil {
			targetDate, err = time.Parse(domain.DateFormat, *req.Date)
			if err != nil {
				return fmt.Errorf("%w: Execute - parse date: %v", ErrInternal, err)
			}
		}
		targetDaypart := window.Daypart
		if req.Daypart != nil {
			targetDaypart = domain.Daypart(*req.Daypart)
		}

		stillActive := window.Active
		if req.Active != nil {
			stillActive = *req.Active
		}

		// 5. Перенос активного окна накрывает новые записи
		moved := !window.SameWindow(targetDate, targetDaypart)
		if moved && stillActive {
			startHour, endHour, _ := targetDaypart.HourRange()
			localDate := targetDate.Format(domain.DateFormat)
			cancelled, err = uc.apptRepo.CancelPendingInWindow(txCtx, window.UnitID, localDate, startHour, endHour, domain.BlackoutCancelReason)
			if err != nil {
				uc.logger.Error("UpdateBlackout: failed to cancel pending bookings for unit %d on %s: %v", window.UnitID, localDate, err)
				return fmt.Errorf("%w: Execute - cancel pending: %v", ErrInternal, err)
			}
		}

		// 6. Применяем изменения
		window.Date = targetDate
		window.Daypart = targetDaypart
		window.Active = stillActive
		if req.Reason != nil {
			window.Reason = req.Reason
		}

		if err := uc.blackoutRepo.Update(txCtx, window); err != nil {
			uc.logger.Error("UpdateBlackout: failed to update blackout %d: %v", window.ID, err)
			return fmt.Errorf("%w: Execute - update blackout: %v", ErrInternal, err)
		}

		// Перечитываем окно, чтобы вернуть актуальный updated_at
		updated, err = uc.blackoutRepo.GetByID(txCtx, window.ID)
		if err != nil {
			uc.logger.Error("UpdateBlackout: failed to reload blackout %d: %v", window.ID, err)
			return fmt.Errorf("%w: Execute - reload blackout: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBlackout: updated blackout %d (unit %d, %s, %s, active=%t), cancelled %d pending bookings",
		updated.ID, updated.UnitID, updated.Date.Format(domain.DateFormat), updated.Daypart, updated.Active, cancelled)

	return toResponse(updated, cancelled), nil
}
