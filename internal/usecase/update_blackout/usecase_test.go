package update_blackout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	storageBlackout "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/blackout"
	storageUser "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
)

type fakeBlackoutRepo struct {
	windows map[int64]*domain.BlackoutWindow
	updated *domain.BlackoutWindow
}

func (f *fakeBlackoutRepo) GetByID(_ context.Context, id int64) (*domain.BlackoutWindow, error) {
	w, ok := f.windows[id]
	if !ok {
		return nil, storageBlackout.ErrBlackoutNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeBlackoutRepo) Update(_ context.Context, window *domain.BlackoutWindow) error {
	cp := *window
	cp.UpdatedAt = time.Now().UTC()
	f.updated = &cp
	f.windows[window.ID] = &cp
	return nil
}

type cancelCall struct {
	unitID             int64
	localDate          string
	startHour, endHour int
}

type fakeApptRepo struct {
	cancelled int64
	calls     []cancelCall
}

func (f *fakeApptRepo) CancelPendingInWindow(_ context.Context, unitID int64, localDate string, startHour, endHour int, _ string) (int64, error) {
	f.calls = append(f.calls, cancelCall{unitID, localDate, startHour, endHour})
	return f.cancelled, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storageUser.ErrUserNotFound
	}
	return u, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	blackouts *fakeBlackoutRepo
	appts     *fakeApptRepo

	adminID uuid.UUID
	userID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	adminID := uuid.New()
	userID := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*domain.User{
		adminID: {ID: adminID, Role: domain.RoleSuperAdmin, UnitID: 1, Active: true},
		userID:  {ID: userID, Role: domain.RoleRegular, UnitID: 1, Active: true},
	}}

	blackouts := &fakeBlackoutRepo{windows: map[int64]*domain.BlackoutWindow{
		1: {
			ID:        1,
			CreatorID: adminID,
			UnitID:    3,
			Date:      time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
			Daypart:   domain.DaypartMorning,
			Active:    true,
		},
		2: {
			ID:        2,
			CreatorID: adminID,
			UnitID:    3,
			Date:      time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
			Daypart:   domain.DaypartFullDay,
			Active:    false,
		},
	}}
	appts := &fakeApptRepo{cancelled: 2}

	uc := New(blackouts, appts, users, &fakeTxManager{}, nopLogger{})
	return &fixture{uc: uc, blackouts: blackouts, appts: appts, adminID: adminID, userID: userID}
}

func TestExecute_MoveToNewDateCancelsPendingInNewWindow(t *testing.T) {
	f := newFixture(t)

	newDate := "2025-10-24"
	resp, err := f.uc.Execute(context.Background(), &Request{
		BlackoutID: 1,
		ActorID:    f.adminID,
		Date:       &newDate,
	})
	require.NoError(t, err)

	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, int64(2), resp.CancelledBookings)

	require.Len(t, f.appts.calls, 1)
	call := f.appts.calls[0]
	assert.Equal(t, int64(3), call.unitID)
	assert.Equal(t, newDate, call.localDate)
	assert.Equal(t, 8, call.startHour)
	assert.Equal(t, 12, call.endHour)
}

func TestExecute_ChangeDaypartCancelsPendingInNewWindow(t *testing.T) {
	f := newFixture(t)

	newDaypart := string(domain.DaypartAfternoon)
	resp, err := f.uc.Execute(context.Background(), &Request{
		BlackoutID: 1,
		ActorID:    f.adminID,
		Daypart:    &newDaypart,
	})
	require.NoError(t, err)

	assert.Equal(t, newDaypart, resp.Daypart)
	require.Len(t, f.appts.calls, 1)
	assert.Equal(t, 13, f.appts.calls[0].startHour)
	assert.Equal(t, 17, f.appts.calls[0].endHour)
}

func TestExecute_ReasonOnlyUpdateDoesNotTouchBookings(t *testing.T) {
	f := newFixture(t)

	reason := "ремонт здания"
	resp, err := f.uc.Execute(context.Background(), &Request{
		BlackoutID: 1,
		ActorID:    f.adminID,
		Reason:     &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, &reason, resp.Reason)
	assert.Empty(t, f.appts.calls)
}

func TestExecute_DeactivationLiftsWindowWithoutCancelling(t *testing.T) {
	f := newFixture(t)

	inactive := false
	resp, err := f.uc.Execute(context.Background(), &Request{
		BlackoutID: 1,
		ActorID:    f.adminID,
		Active:     &inactive,
	})
	require.NoError(t, err)

	assert.False(t, resp.Active)
	assert.Empty(t, f.appts.calls)
}

func TestExecute_CancelledBlackoutIsImmutable(t *testing.T) {
	f := newFixture(t)

	reason := "x"
	_, err := f.uc.Execute(context.Background(), &Request{
		BlackoutID: 2,
		ActorID:    f.adminID,
		Reason:     &reason,
	})
	assert.ErrorIs(t, err, ErrBlackoutCancelled)
	assert.Nil(t, f.blackouts.updated)
}

func TestExecute_RegularUserForbidden(t *testing.T) {
	f := newFixture(t)

	reason := "x"
	_, err := f.uc.Execute(context.Background(), &Request{
		BlackoutID: 1,
		ActorID:    f.userID,
		Reason:     &reason,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_BlackoutNotFound(t *testing.T) {
	f := newFixture(t)

	reason := "x"
	_, err := f.uc.Execute(context.Background(), &Request{
		BlackoutID: 99,
		ActorID:    f.adminID,
		Reason:     &reason,
	})
	assert.ErrorIs(t, err, ErrBlackoutNotFound)
}

func TestExecute_EmptyRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		BlackoutID: 1,
		ActorID:    f.adminID,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
