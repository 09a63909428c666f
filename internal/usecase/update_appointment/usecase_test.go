package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	storageAppt "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/appointment"
	storageUser "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SSC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SSC-SchedulingService/internal/timeslot"
)

type fakeApptRepo struct {
	appts   map[int64]*domain.Appointment
	updated *domain.Appointment
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, storageAppt.ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeApptRepo) Update(_ context.Context, appt *domain.Appointment) error {
	cp := *appt
	cp.UpdatedAt = time.Now().UTC()
	f.updated = &cp
	f.appts[appt.ID] = &cp
	return nil
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

type fakeAvailability struct {
	userDayErr  error
	capacityErr error
	blackoutErr error

	userDayExcludeID *int64
	userDayCalled    bool
	capacityCalled   bool
	blackoutCalled   bool
}

func (f *fakeAvailability) CheckUserDay(_ context.Context, _ uuid.UUID, _ time.Time, excludeID *int64) error {
	f.userDayCalled = true
	f.userDayExcludeID = excludeID
	return f.userDayErr
}

func (f *fakeAvailability) CheckSlotCapacity(_ context.Context, _ int64, _ time.Time) error {
	f.capacityCalled = true
	return f.capacityErr
}

func (f *fakeAvailability) CheckBlackout(_ context.Context, _ int64, _ time.Time, _ int) error {
	f.blackoutCalled = true
	return f.blackoutErr
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

type fixture struct {
	uc    *UseCase
	repo  *fakeApptRepo
	avail *fakeAvailability

	userID  uuid.UUID
	staffID uuid.UUID
	otherID uuid.UUID
	loc     *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc := mustLoc(t)

	userID := uuid.New()
	staffID := uuid.New()
	otherID := uuid.New()

	users := &fakeUserRepo{users: map[uuid.UUID]*domain.User{
		userID:  {ID: userID, Role: domain.RoleRegular, UnitID: 1, Active: true},
		staffID: {ID: staffID, Role: domain.RoleStaff, UnitID: 1, Active: true},
		otherID: {ID: otherID, Role: domain.RoleRegular, UnitID: 1, Active: true},
	}}

	// пятница 2025-10-17, 08:00 местного
	slot := time.Date(2025, 10, 17, 8, 0, 0, 0, loc).UTC()
	repo := &fakeApptRepo{appts: map[int64]*domain.Appointment{
		10: {
			ID:              10,
			UserID:          userID,
			UnitID:          1,
			ScheduledAt:     slot,
			DurationMinutes: 60,
			Status:          domain.StatusPending,
		},
		11: {
			ID:              11,
			UserID:          userID,
			UnitID:          1,
			ScheduledAt:     slot,
			DurationMinutes: 60,
			Status:          domain.StatusDone,
		},
		12: {
			ID:              12,
			UserID:          staffID,
			UnitID:          1,
			ScheduledAt:     slot,
			DurationMinutes: 60,
			Status:          domain.StatusPending,
		},
	}}

	norm, err := timeslot.NewNormalizer("America/Sao_Paulo")
	require.NoError(t, err)
	validator := timeslot.NewWindowValidator(norm, timeslot.WindowConfig{
		CreationStartHour:  domain.DefaultCreationWindowStartHour,
		CreationEndHour:    domain.DefaultCreationWindowEndHour,
		OperatingStartHour: domain.DefaultOperatingStartHour,
		OperatingEndHour:   domain.DefaultOperatingEndHour,
		ExcludedWeekdays:   []time.Weekday{time.Sunday, time.Wednesday, time.Saturday},
	})

	avail := &fakeAvailability{}
	now := time.Date(2025, 10, 16, 10, 0, 0, 0, loc)
	uc := New(repo, users, avail, validator, norm, &fakeTxManager{}, &fakeTimeProvider{now: now}, nopLogger{})

	return &fixture{uc: uc, repo: repo, avail: avail, userID: userID, staffID: staffID, otherID: otherID, loc: loc}
}

func TestExecute_RescheduleSameDay_ExcludesOwnAppointment(t *testing.T) {
	f := newFixture(t)

	// перенос с утра на день той же даты
	newTime := time.Date(2025, 10, 17, 14, 0, 0, 0, f.loc)
	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.userID,
		ScheduledAt:   &newTime,
	})
	require.NoError(t, err)

	wantSlot := time.Date(2025, 10, 17, 13, 0, 0, 0, f.loc).UTC()
	assert.Equal(t, wantSlot, resp.ScheduledAt)

	require.NotNil(t, f.avail.userDayExcludeID)
	assert.Equal(t, int64(10), *f.avail.userDayExcludeID)
	assert.True(t, f.avail.capacityCalled)
	assert.True(t, f.avail.blackoutCalled)
}

func TestExecute_NoRescheduleSkipsConflictChecks(t *testing.T) {
	f := newFixture(t)

	desc := "обновленное описание"
	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.userID,
		Description:   &desc,
	})
	require.NoError(t, err)

	assert.Equal(t, &desc, resp.Description)
	assert.False(t, f.avail.userDayCalled)
	assert.False(t, f.avail.capacityCalled)
	assert.False(t, f.avail.blackoutCalled)
}

func TestExecute_TerminalStateImmutable(t *testing.T) {
	f := newFixture(t)

	desc := "x"
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 11,
		ActorID:       f.staffID,
		Description:   &desc,
	})
	assert.ErrorIs(t, err, ErrTerminalState)
	assert.Nil(t, f.repo.updated)
}

func TestExecute_RegularActorCannotTouchForeignAppointment(t *testing.T) {
	f := newFixture(t)

	desc := "x"
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.otherID,
		Description:   &desc,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_StaffCanTouchForeignAppointment(t *testing.T) {
	f := newFixture(t)

	status := string(domain.StatusDone)
	resp, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.staffID,
		Status:        &status,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDone), resp.Status)
}

func TestExecute_StaffSubjectBypassesLimitsButNotBlackouts(t *testing.T) {
	f := newFixture(t)
	f.avail.capacityErr = availability.ErrSlotFull
	f.avail.blackoutErr = availability.ErrSlotBlocked

	// запись 12 принадлежит сотруднику: субъект сам обходит лимиты
	newTime := time.Date(2025, 10, 20, 14, 0, 0, 0, f.loc)
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 12,
		ActorID:       f.staffID,
		ScheduledAt:   &newTime,
	})
	assert.ErrorIs(t, err, ErrSlotBlocked)
	assert.False(t, f.avail.capacityCalled)
	assert.True(t, f.avail.blackoutCalled)
}

func TestExecute_StaffRescheduleOfRegularSubjectKeepsLimits(t *testing.T) {
	f := newFixture(t)
	f.avail.capacityErr = availability.ErrSlotFull

	// сотрудник переносит запись обычного пользователя: лимиты действуют
	// по роли субъекта, переполнить слот от имени сотрудника нельзя
	newTime := time.Date(2025, 10, 20, 14, 0, 0, 0, f.loc)
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.staffID,
		ScheduledAt:   &newTime,
	})
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.True(t, f.avail.userDayCalled)
	assert.True(t, f.avail.capacityCalled)
	require.NotNil(t, f.avail.userDayExcludeID)
	assert.Equal(t, int64(10), *f.avail.userDayExcludeID)
}

func TestExecute_RescheduleBeyondHorizon(t *testing.T) {
	f := newFixture(t)

	newTime := time.Date(2025, 10, 27, 10, 0, 0, 0, f.loc)
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.userID,
		ScheduledAt:   &newTime,
	})
	assert.ErrorIs(t, err, ErrBeyondHorizon)
}

func TestExecute_RescheduleOutsideOperatingHours(t *testing.T) {
	f := newFixture(t)

	newTime := time.Date(2025, 10, 17, 19, 0, 0, 0, f.loc)
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.userID,
		ScheduledAt:   &newTime,
	})
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestExecute_UnitChangeTriggersCapacityCheck(t *testing.T) {
	f := newFixture(t)

	newUnit := int64(2)
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.userID,
		UnitID:        &newUnit,
	})
	require.NoError(t, err)
	assert.True(t, f.avail.capacityCalled)
	assert.Equal(t, int64(2), f.repo.updated.UnitID)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	f := newFixture(t)

	desc := "x"
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 999,
		ActorID:       f.userID,
		Description:   &desc,
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_EmptyRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.userID,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestExecute_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	bad := "rescheduled"
	_, err := f.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		ActorID:       f.userID,
		Status:        &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
