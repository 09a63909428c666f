package register_blackout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	storageUser "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
)

// UseCase бизнес-логика пакетной регистрации блокировок
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

// Execute регистрирует пакет блокировок.
//
// Для каждого окна ожидающие записи, попавшие под блокировку, отменяются
// с фиксированной причиной в той же транзакции, что и вставка блокировки.
// Повторная регистрация уже активного окна не создает дубликат и не
// трогает записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Блокировки регистрирует только супер-администратор
	creator, err := uc.userRepo.GetByID(ctx, req.CreatorID)
	if err != nil {
		if errors.Is(err, storageUser.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: creator %s", ErrUserNotFound, req.CreatorID)
		}
		uc.logger.Error("RegisterBlackout: failed to get creator %s: %v", req.CreatorID, err)
		return nil, fmt.Errorf("%w: Execute - get creator: %v", ErrInternal, err)
	}
	if !creator.IsSuperAdmin() {
		return nil, fmt.Errorf("%w: user %s is not a super admin", ErrPermissionDenied, creator.ID)
	}

	resp := &Response{Results: make([]Result, 0, len(req.Windows))}

	// 3. Весь пакет обрабатывается атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, w := range req.Windows {
			result, err := uc.registerOne(txCtx, creator, w)
			if err != nil {
				return err
			}
			resp.Results = append(resp.Results, *result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (uc *UseCase) registerOne(ctx context.Context, creator *domain.User, w WindowRequest) (*Result, error) {
	date, err := time.Parse(domain.DateFormat, w.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: registerOne - parse date: %v", ErrInternal, err)
	}
	daypart := domain.Daypart(w.Daypart)

	// Повторная регистрация того же окна идемпотентна
	existing, err := uc.blackoutRepo.GetActiveByUnitAndDate(ctx, w.UnitID, w.Date)
	if err != nil {
		uc.logger.Error("RegisterBlackout: failed to list blackouts for unit %d on %s: %v", w.UnitID, w.Date, err)
		return nil, fmt.Errorf("%w: registerOne - get blackouts: %v", ErrInternal, err)
	}
	for _, bw := range existing {
		if bw.SameWindow(date, daypart) {
			return &Result{
				UnitID:            w.UnitID,
				Date:              w.Date,
				Daypart:           w.Daypart,
				BlackoutID:        &bw.ID,
				AlreadyRegistered: true,
				Message:           fmt.Sprintf("Блокировка на %s (%s) уже зарегистрирована", w.Date, w.Daypart),
			}, nil
		}
	}

	// Записи, попавшие под блокировку, отменяются до вставки окна
	startHour, endHour, _ := daypart.HourRange()
	cancelled, err := uc.apptRepo.CancelPendingInWindow(ctx, w.UnitID, w.Date, startHour, endHour, domain.BlackoutCancelReason)
	if err != nil {
		uc.logger.Error("RegisterBlackout: failed to cancel pending bookings for unit %d on %s: %v", w.UnitID, w.Date, err)
		return nil, fmt.Errorf("%w: registerOne - cancel pending: %v", ErrInternal, err)
	}

	created, err := uc.blackoutRepo.Create(ctx, &domain.BlackoutWindow{
		CreatorID: creator.ID,
		UnitID:    w.UnitID,
		Date:      date,
		Daypart:   daypart,
		Active:    true,
		Reason:    w.Reason,
	})
	if err != nil {
		uc.logger.Error("RegisterBlackout: failed to create blackout for unit %d on %s: %v", w.UnitID, w.Date, err)
		return nil, fmt.Errorf("%w: registerOne - create blackout: %v", ErrInternal, err)
	}

	uc.logger.Info("RegisterBlackout: registered blackout %d (unit %d, %s, %s), cancelled %d pending bookings",
		created.ID, w.UnitID, w.Date, w.Daypart, cancelled)

	return &Result{
		UnitID:            w.UnitID,
		Date:              w.Date,
		Daypart:           w.Daypart,
		BlackoutID:        &created.ID,
		CancelledBookings: cancelled,
		Message:           fmt.Sprintf("Блокировка на %s (%s) зарегистрирована, отменено записей: %d", w.Date, w.Daypart, cancelled),
	}, nil
}
