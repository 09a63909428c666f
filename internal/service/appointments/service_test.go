package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/appointment"
	userRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
)

type fakeApptRepo struct {
	appts map[int64]*domain.Appointment
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeApptRepo) List(_ context.Context) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range f.appts {
		out = append(out, appt)
	}
	return out, nil
}

func (f *fakeApptRepo) GetByUserID(_ context.Context, userID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range f.appts {
		if appt.UserID != userID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (f *fakeApptRepo) GetByUnit(_ context.Context, unitID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range f.appts {
		if appt.UnitID != unitID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (f *fakeApptRepo) Cancel(_ context.Context, id int64, reason string) error {
	appt, ok := f.appts[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	now := time.Now().UTC()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &reason
	appt.CancelledAt = &now
	return nil
}

func (f *fakeApptRepo) CancelAllPendingForUser(_ context.Context, userID uuid.UUID, reason string) (int64, error) {
	var n int64
	now := time.Now().UTC()
	for _, appt := range f.appts {
		if appt.UserID == userID && appt.Status == domain.StatusPending {
			appt.Status = domain.StatusCancelled
			appt.CancellationReason = &reason
			appt.CancelledAt = &now
			n++
		}
	}
	return n, nil
}

func (f *fakeApptRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.appts[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	delete(f.appts, id)
	return nil
}

func (f *fakeApptRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for id, appt := range f.appts {
		if appt.UserID == userID {
			delete(f.appts, id)
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc   *Service
	appts *fakeApptRepo

	userID  uuid.UUID
	otherID uuid.UUID
	staffID uuid.UUID
	adminID uuid.UUID
}

func newFixture() *fixture {
	userID := uuid.New()
	otherID := uuid.New()
	staffID := uuid.New()
	adminID := uuid.New()

	users := &fakeUserRepo{users: map[uuid.UUID]*domain.User{
		userID:  {ID: userID, Role: domain.RoleRegular, UnitID: 1, Active: true},
		otherID: {ID: otherID, Role: domain.RoleRegular, UnitID: 1, Active: true},
		staffID: {ID: staffID, Role: domain.RoleStaff, UnitID: 1, Active: true},
		adminID: {ID: adminID, Role: domain.RoleSuperAdmin, UnitID: 1, Active: true},
	}}

	slot := time.Date(2025, 10, 17, 11, 0, 0, 0, time.UTC)
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{
		1: {ID: 1, UserID: userID, UnitID: 1, ScheduledAt: slot, DurationMinutes: 60, Status: domain.StatusPending},
		2: {ID: 2, UserID: userID, UnitID: 1, ScheduledAt: slot, DurationMinutes: 60, Status: domain.StatusDone},
		3: {ID: 3, UserID: otherID, UnitID: 2, ScheduledAt: slot, DurationMinutes: 60, Status: domain.StatusPending},
	}}

	svc := NewService(appts, users, nopLogger{})
	return &fixture{svc: svc, appts: appts, userID: userID, otherID: otherID, staffID: staffID, adminID: adminID}
}

func TestGetByID_OwnerAndStaffAllowed(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetByID(context.Background(), 1, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = f.svc.GetByID(context.Background(), 1, f.staffID)
	assert.NoError(t, err)
}

func TestGetByID_ForeignAppointmentDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 3, f.userID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 99, f.userID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_SuperAdminOnly(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.List(context.Background(), f.adminID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)

	_, err = f.svc.List(context.Background(), f.staffID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserAppointments_StatusFilter(t *testing.T) {
	f := newFixture()

	pending := string(domain.StatusPending)
	resp, err := f.svc.GetUserAppointments(context.Background(), f.userID, f.userID, &pending)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	resp, err = f.svc.GetUserAppointments(context.Background(), f.userID, f.userID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestGetUserAppointments_ForeignHistoryDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetUserAppointments(context.Background(), f.otherID, f.userID, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// сотрудник видит чужую историю
	_, err = f.svc.GetUserAppointments(context.Background(), f.otherID, f.staffID, nil)
	assert.NoError(t, err)
}

func TestGetUserAppointments_InvalidStatus(t *testing.T) {
	f := newFixture()

	bad := "unknown"
	_, err := f.svc.GetUserAppointments(context.Background(), f.userID, f.userID, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUnitAppointments_RegularDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetUnitAppointments(context.Background(), 1, f.userID, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.GetUnitAppointments(context.Background(), 1, f.staffID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestCancel_PendingOnly(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Cancel(context.Background(), 1, f.userID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, UserCancelReason, *resp.CancellationReason)

	// done запись отменить нельзя
	_, err = f.svc.Cancel(context.Background(), 2, f.userID, nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_CustomReason(t *testing.T) {
	f := newFixture()

	reason := "не смогу прийти"
	resp, err := f.svc.Cancel(context.Background(), 1, f.userID, &reason)
	require.NoError(t, err)
	assert.Equal(t, &reason, resp.CancellationReason)
}

func TestCancel_ForeignDeniedForRegular(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Cancel(context.Background(), 3, f.userID, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// сотрудник может отменить чужую запись
	_, err = f.svc.Cancel(context.Background(), 3, f.staffID, nil)
	assert.NoError(t, err)
}

func TestCancelAllForUser_SelfAndAdmin(t *testing.T) {
	f := newFixture()

	n, err := f.svc.CancelAllForUser(context.Background(), f.userID, f.userID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// сотруднику чужой пакет недоступен, администратору доступен
	_, err = f.svc.CancelAllForUser(context.Background(), f.otherID, f.staffID, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	n, err = f.svc.CancelAllForUser(context.Background(), f.otherID, f.adminID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDelete_SuperAdminOnly(t *testing.T) {
	f := newFixture()

	err := f.svc.Delete(context.Background(), 1, f.staffID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = f.svc.Delete(context.Background(), 1, f.adminID)
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), 1, f.adminID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDeleteAllForUser_SuperAdminOnly(t *testing.T) {
	f := newFixture()

	_, err := f.svc.DeleteAllForUser(context.Background(), f.userID, f.userID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	n, err := f.svc.DeleteAllForUser(context.Background(), f.userID, f.adminID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
