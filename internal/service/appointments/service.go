package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/appointment"
	userRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SSC-SchedulingService/internal/service/appointments/models"
)

// UserCancelReason причина отмены, проставляемая при отмене по запросу
const UserCancelReason = "Запись отменена по запросу пользователя."

// Service сервис чтения, отмены и удаления записей на прием
//
// Права доступа: обычный пользователь видит и отменяет только свои записи,
// сотрудники и администраторы работают с любыми. Жесткое удаление доступно
// только супер-администратору
type Service struct {
	appointments AppointmentRepository
	users        UserRepository
	logger       Logger
}

// NewService создает новый сервис записей
func NewService(appointments AppointmentRepository, users UserRepository, logger Logger) *Service {
	return &Service{
		appointments: appointments,
		users:        users,
		logger:       logger,
	}
}

// GetByID получает запись по ID
// Обычный пользователь может видеть только собственную запись
func (s *Service) GetByID(ctx context.Context, id int64, actorID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for actor=%s", id, actorID)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsRegular() && appt.UserID != actor.ID {
		s.logger.Warn("GetByID: access denied for actor=%s to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает все записи сервиса
// Доступно только супер-администратору
func (s *Service) List(ctx context.Context, actorID uuid.UUID) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching all appointments for actor=%s", actorID)

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperAdmin() {
		s.logger.Warn("List: access denied for actor=%s", actorID)
		return nil, ErrAccessDenied
	}

	appts, err := s.appointments.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appts))
	return models.FromDomainAppointmentList(appts), nil
}

// GetUserAppointments получает историю записей пользователя
// Опционально фильтрует по статусу. Обычный пользователь видит только свою историю
func (s *Service) GetUserAppointments(ctx context.Context, userID, actorID uuid.UUID, status *string) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%s, actor=%s", userID, actorID)

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsRegular() && userID != actor.ID {
		s.logger.Warn("GetUserAppointments: access denied for actor=%s to user=%s history", actorID, userID)
		return nil, ErrAccessDenied
	}

	domainStatus, err := toDomainStatus(status)
	if err != nil {
		return nil, err
	}

	appts, err := s.appointments.GetByUserID(ctx, userID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%s", len(appts), userID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetUnitAppointments получает записи подразделения
// Доступно сотрудникам и администраторам
func (s *Service) GetUnitAppointments(ctx context.Context, unitID int64, actorID uuid.UUID, status *string) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUnitAppointments: fetching appointments for unit=%d, actor=%s", unitID, actorID)

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsRegular() {
		s.logger.Warn("GetUnitAppointments: access denied for actor=%s to unit=%d", actorID, unitID)
		return nil, ErrAccessDenied
	}

	domainStatus, err := toDomainStatus(status)
	if err != nil {
		return nil, err
	}

	appts, err := s.appointments.GetByUnit(ctx, unitID, domainStatus)
	if err != nil {
		s.logger.Error("GetUnitAppointments: repository error for unit=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: GetUnitAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUnitAppointments: successfully fetched %d appointments for unit=%d", len(appts), unitID)
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет ожидающую запись
// Отменить можно только pending запись; обычный пользователь только свою
func (s *Service) Cancel(ctx context.Context, id int64, actorID uuid.UUID, reason *string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by actor=%s", id, actorID)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsRegular() && appt.UserID != actor.ID {
		s.logger.Warn("Cancel: access denied for actor=%s to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d in status %s cannot be cancelled", id, appt.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, appt.Status)
	}

	cancelReason := UserCancelReason
	if reason != nil && *reason != "" {
		cancelReason = *reason
	}

	if err := s.appointments.Cancel(ctx, id, cancelReason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return models.FromDomainAppointment(cancelled), nil
}

// CancelAllForUser отменяет все ожидающие записи пользователя
// Доступно самому пользователю и супер-администратору
func (s *Service) CancelAllForUser(ctx context.Context, userID, actorID uuid.UUID, reason *string) (int64, error) {
	s.logger.Info("CancelAllForUser: cancelling pending appointments for user=%s by actor=%s", userID, actorID)

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return 0, err
	}
	if userID != actor.ID && !actor.IsSuperAdmin() {
		s.logger.Warn("CancelAllForUser: access denied for actor=%s to user=%s", actorID, userID)
		return 0, ErrAccessDenied
	}

	cancelReason := UserCancelReason
	if reason != nil && *reason != "" {
		cancelReason = *reason
	}

	cancelled, err := s.appointments.CancelAllPendingForUser(ctx, userID, cancelReason)
	if err != nil {
		s.logger.Error("CancelAllForUser: repository error for user=%s: %v", userID, err)
		return 0, fmt.Errorf("%w: CancelAllForUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelAllForUser: cancelled %d appointments for user=%s", cancelled, userID)
	return cancelled, nil
}

// Delete безвозвратно удаляет запись
// Доступно только супер-администратору
func (s *Service) Delete(ctx context.Context, id int64, actorID uuid.UUID) error {
	s.logger.Info("Delete: deleting appointment id=%d by actor=%s", id, actorID)

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsSuperAdmin() {
		s.logger.Warn("Delete: access denied for actor=%s", actorID)
		return ErrAccessDenied
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

// DeleteAllForUser безвозвратно удаляет все записи пользователя
// Доступно только супер-администратору
func (s *Service) DeleteAllForUser(ctx context.Context, userID, actorID uuid.UUID) (int64, error) {
	s.logger.Info("DeleteAllForUser: deleting appointments for user=%s by actor=%s", userID, actorID)

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return 0, err
	}
	if !actor.IsSuperAdmin() {
		s.logger.Warn("DeleteAllForUser: access denied for actor=%s", actorID)
		return 0, ErrAccessDenied
	}

	deleted, err := s.appointments.DeleteAllForUser(ctx, userID)
	if err != nil {
		s.logger.Error("DeleteAllForUser: repository error for user=%s: %v", userID, err)
		return 0, fmt.Errorf("%w: DeleteAllForUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAllForUser: deleted %d appointments for user=%s", deleted, userID)
	return deleted, nil
}

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getAppointment - repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) getActor(ctx context.Context, actorID uuid.UUID) (*domain.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("getActor: user %s not found", actorID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("getActor: repository error for user %s: %v", actorID, err)
		return nil, fmt.Errorf("%w: getActor - repository error: %v", ErrInternal, err)
	}
	return actor, nil
}

func toDomainStatus(status *string) (*domain.AppointmentStatus, error) {
	if status == nil {
		return nil, nil
	}
	s, err := models.ToDomainStatus(*status)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &s, nil
}
