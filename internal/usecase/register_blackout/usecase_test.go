package register_blackout

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	storageUser "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SSC-SchedulingService/pkg/ptr"
)

type fakeBlackoutRepo struct {
	windows []*domain.BlackoutWindow
	nextID  int64
}

func (f *fakeBlackoutRepo) Create(_ context.Context, window *domain.BlackoutWindow) (*domain.BlackoutWindow, error) {
	f.nextID++
	cp := *window
	cp.ID = f.nextID
	f.windows = append(f.windows, &cp)
	return &cp, nil
}

func (f *fakeBlackoutRepo) GetActiveByUnitAndDate(_ context.Context, unitID int64, localDate string) ([]*domain.BlackoutWindow, error) {
	var out []*domain.BlackoutWindow
	for _, w := range f.windows {
		if w.UnitID == unitID && w.Active && w.Date.Format(domain.DateFormat) == localDate {
			out = append(out, w)
		}
	}
	return out, nil
}

type cancelCall struct {
	unitID             int64
	localDate          string
	startHour, endHour int
	reason             string
}

type fakeApptRepo struct {
	cancelled int64
	calls     []cancelCall
}

func (f *fakeApptRepo) CancelPendingInWindow(_ context.Context, unitID int64, localDate string, startHour, endHour int, reason string) (int64, error) {
	f.calls = append(f.calls, cancelCall{unitID, localDate, startHour, endHour, reason})
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

func newTestUseCase(adminID uuid.UUID) (*UseCase, *fakeBlackoutRepo, *fakeApptRepo) {
	users := &fakeUserRepo{users: map[uuid.UUID]*domain.User{
		adminID: {ID: adminID, Role: domain.RoleSuperAdmin, UnitID: 1, Active: true},
	}}
	blackouts := &fakeBlackoutRepo{}
	appts := &fakeApptRepo{cancelled: 3}
	uc := New(blackouts, appts, users, &fakeTxManager{}, nopLogger{})
	return uc, blackouts, appts
}

func TestExecute_RegistersWindowAndCancelsPending(t *testing.T) {
	adminID := uuid.New()
	uc, blackouts, appts := newTestUseCase(adminID)

	resp, err := uc.Execute(context.Background(), &Request{
		CreatorID: adminID,
		Windows: []WindowRequest{
			{UnitID: 1, Date: "2025-10-20", Daypart: string(domain.DaypartMorning)},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	res := resp.Results[0]
	assert.False(t, res.AlreadyRegistered)
	assert.Equal(t, int64(3), res.CancelledBookings)
	require.NotNil(t, res.BlackoutID)

	require.Len(t, appts.calls, 1)
	call := appts.calls[0]
	assert.Equal(t, int64(1), call.unitID)
	assert.Equal(t, "2025-10-20", call.localDate)
	assert.Equal(t, 8, call.startHour)
	assert.Equal(t, 12, call.endHour)
	assert.Equal(t, domain.BlackoutCancelReason, call.reason)

	require.Len(t, blackouts.windows, 1)
	assert.True(t, blackouts.windows[0].Active)
	assert.Equal(t, adminID, blackouts.windows[0].CreatorID)
}

func TestExecute_FullDayWindowCoversOperatingHours(t *testing.T) {
	adminID := uuid.New()
	uc, _, appts := newTestUseCase(adminID)

	_, err := uc.Execute(context.Background(), &Request{
		CreatorID: adminID,
		Windows: []WindowRequest{
			{UnitID: 2, Date: "2025-10-21", Daypart: string(domain.DaypartFullDay)},
		},
	})
	require.NoError(t, err)

	require.Len(t, appts.calls, 1)
	assert.Equal(t, 8, appts.calls[0].startHour)
	assert.Equal(t, 17, appts.calls[0].endHour)
}

func TestExecute_RepeatedRegistrationIsIdempotent(t *testing.T) {
	adminID := uuid.New()
	uc, blackouts, appts := newTestUseCase(adminID)

	req := &Request{
		CreatorID: adminID,
		Windows: []WindowRequest{
			{UnitID: 1, Date: "2025-10-20", Daypart: string(domain.DaypartAfternoon)},
		},
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Results[0].AlreadyRegistered)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Results[0].AlreadyRegistered)
	assert.Equal(t, *first.Results[0].BlackoutID, *second.Results[0].BlackoutID)

	// повторная регистрация не трогает записи и не плодит окна
	assert.Len(t, appts.calls, 1)
	assert.Len(t, blackouts.windows, 1)
}

func TestExecute_DifferentDaypartSameDayIsNewWindow(t *testing.T) {
	adminID := uuid.New()
	uc, blackouts, _ := newTestUseCase(adminID)

	_, err := uc.Execute(context.Background(), &Request{
		CreatorID: adminID,
		Windows: []WindowRequest{
			{UnitID: 1, Date: "2025-10-20", Daypart: string(domain.DaypartMorning)},
			{UnitID: 1, Date: "2025-10-20", Daypart: string(domain.DaypartAfternoon)},
		},
	})
	require.NoError(t, err)
	assert.Len(t, blackouts.windows, 2)
}

func TestExecute_RegularUserForbidden(t *testing.T) {
	adminID := uuid.New()
	uc, _, _ := newTestUseCase(adminID)

	userID := uuid.New()
	ucUsers := uc.userRepo.(*fakeUserRepo)
	ucUsers.users[userID] = &domain.User{ID: userID, Role: domain.RoleRegular, UnitID: 1, Active: true}

	_, err := uc.Execute(context.Background(), &Request{
		CreatorID: userID,
		Windows: []WindowRequest{
			{UnitID: 1, Date: "2025-10-20", Daypart: string(domain.DaypartMorning)},
		},
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_CreatorNotFound(t *testing.T) {
	adminID := uuid.New()
	uc, _, _ := newTestUseCase(adminID)

	_, err := uc.Execute(context.Background(), &Request{
		CreatorID: uuid.New(),
		Windows: []WindowRequest{
			{UnitID: 1, Date: "2025-10-20", Daypart: string(domain.DaypartMorning)},
		},
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_InvalidWindows(t *testing.T) {
	adminID := uuid.New()
	uc, _, _ := newTestUseCase(adminID)

	tests := []struct {
		name    string
		windows []WindowRequest
	}{
		{"empty batch", nil},
		{"bad unit", []WindowRequest{{UnitID: 0, Date: "2025-10-20", Daypart: "morning"}}},
		{"bad date", []WindowRequest{{UnitID: 1, Date: "20/10/2025", Daypart: "morning"}}},
		{"bad daypart", []WindowRequest{{UnitID: 1, Date: "2025-10-20", Daypart: "evening"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{CreatorID: adminID, Windows: tt.windows})
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestExecute_BatchOfManyUnits(t *testing.T) {
	adminID := uuid.New()
	uc, blackouts, appts := newTestUseCase(adminID)

	var windows []WindowRequest
	for unit := int64(1); unit <= 5; unit++ {
		windows = append(windows, WindowRequest{
			UnitID:  unit,
			Date:    "2025-10-22",
			Daypart: string(domain.DaypartFullDay),
			Reason:  ptr.Ptr(fmt.Sprintf("unit %d maintenance", unit)),
		})
	}

	resp, err := uc.Execute(context.Background(), &Request{CreatorID: adminID, Windows: windows})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 5)
	assert.Len(t, blackouts.windows, 5)
	assert.Len(t, appts.calls, 5)
}
