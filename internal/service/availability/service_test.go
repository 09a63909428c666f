package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	"github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SSC-SchedulingService/internal/timeslot"
)

type fakeUserRepo struct {
	staffByUnit map[int64]int
}

func (f *fakeUserRepo) GetStaffByUnit(_ context.Context, unitID int64) ([]*domain.User, error) {
	n := f.staffByUnit[unitID]
	if n == 0 {
		return nil, user.ErrNoStaffInUnit
	}
	staff := make([]*domain.User, n)
	for i := range staff {
		staff[i] = &domain.User{ID: uuid.New(), Role: domain.RoleStaff, UnitID: unitID, Active: true}
	}
	return staff, nil
}

type fakeApptRepo struct {
	pendingDates map[uuid.UUID]map[string]int64 // userID -> localDate -> appointment id
	slotCounts   map[string]int                 // "unit|RFC3339" -> count
}

func (f *fakeApptRepo) HasPendingOnLocalDate(_ context.Context, userID uuid.UUID, localDate string, excludeID *int64) (bool, error) {
	id, ok := f.pendingDates[userID][localDate]
	if !ok {
		return false, nil
	}
	if excludeID != nil && *excludeID == id {
		return false, nil
	}
	return true, nil
}

func (f *fakeApptRepo) CountPendingBySlot(_ context.Context, unitID int64, slot time.Time) (int, error) {
	return f.slotCounts[slotKey(unitID, slot)], nil
}

func slotKey(unitID int64, slot time.Time) string {
	return fmt.Sprintf("%d|%s", unitID, slot.UTC().Format(time.RFC3339))
}

type fakeBlackoutRepo struct {
	windows []*domain.BlackoutWindow
}

func (f *fakeBlackoutRepo) GetActiveByUnitAndDate(_ context.Context, unitID int64, localDate string) ([]*domain.BlackoutWindow, error) {
	out := make([]*domain.BlackoutWindow, 0)
	for _, w := range f.windows {
		if w.UnitID == unitID && w.Active && w.Date.Format(domain.DateFormat) == localDate {
			out = append(out, w)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T, users *fakeUserRepo, appts *fakeApptRepo, blackouts *fakeBlackoutRepo) (*Service, *time.Location) {
	t.Helper()

	norm, err := timeslot.NewNormalizer("America/Sao_Paulo")
	require.NoError(t, err)

	cfg := Config{
		MorningMultiplier:   8,
		AfternoonMultiplier: 4,
		Overrides: []CapacityOverride{
			{UnitID: 5, StartHour: 13, EndHour: 17, Multiplier: 2},
		},
	}

	if users == nil {
		users = &fakeUserRepo{staffByUnit: map[int64]int{}}
	}
	if appts == nil {
		appts = &fakeApptRepo{pendingDates: map[uuid.UUID]map[string]int64{}, slotCounts: map[string]int{}}
	}
	if blackouts == nil {
		blackouts = &fakeBlackoutRepo{}
	}

	return NewService(users, appts, blackouts, norm, cfg, nopLogger{}), norm.Location()
}

func TestSlotCapacity(t *testing.T) {
	users := &fakeUserRepo{staffByUnit: map[int64]int{1: 3, 5: 3}}
	svc, loc := newTestService(t, users, nil, nil)

	morning := time.Date(2025, 10, 16, 8, 0, 0, 0, loc)
	afternoon := time.Date(2025, 10, 16, 13, 0, 0, 0, loc)

	tests := []struct {
		name   string
		unitID int64
		slot   time.Time
		want   int
	}{
		{name: "morning default multiplier", unitID: 1, slot: morning, want: 24},
		{name: "afternoon default multiplier", unitID: 1, slot: afternoon, want: 12},
		{name: "morning not affected by override", unitID: 5, slot: morning, want: 24},
		{name: "afternoon override applies", unitID: 5, slot: afternoon, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.SlotCapacity(context.Background(), tt.unitID, tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotCapacity_NoStaff(t *testing.T) {
	svc, loc := newTestService(t, &fakeUserRepo{staffByUnit: map[int64]int{}}, nil, nil)

	_, err := svc.SlotCapacity(context.Background(), 9, time.Date(2025, 10, 16, 8, 0, 0, 0, loc))
	assert.ErrorIs(t, err, ErrUnitHasNoStaff)
}

func TestCheckSlotCapacity(t *testing.T) {
	// 2 сотрудника, дневной множитель 4 => вместимость дневного слота 8
	users := &fakeUserRepo{staffByUnit: map[int64]int{1: 2}}
	appts := &fakeApptRepo{pendingDates: map[uuid.UUID]map[string]int64{}, slotCounts: map[string]int{}}
	svc, loc := newTestService(t, users, appts, nil)

	afternoon := time.Date(2025, 10, 16, 13, 0, 0, 0, loc)
	morning := time.Date(2025, 10, 16, 8, 0, 0, 0, loc)

	// 7 из 8 занято - еще можно
	appts.slotCounts[slotKey(1, afternoon)] = 7
	assert.NoError(t, svc.CheckSlotCapacity(context.Background(), 1, afternoon))

	// 8 из 8 занято - слот заполнен
	appts.slotCounts[slotKey(1, afternoon)] = 8
	assert.ErrorIs(t, svc.CheckSlotCapacity(context.Background(), 1, afternoon), ErrSlotFull)

	// Утренний слот того же центра - отдельная корзина
	assert.NoError(t, svc.CheckSlotCapacity(context.Background(), 1, morning))
}

func TestCheckUserDay(t *testing.T) {
	userID := uuid.New()
	appts := &fakeApptRepo{
		pendingDates: map[uuid.UUID]map[string]int64{
			userID: {"2025-10-16": 42},
		},
		slotCounts: map[string]int{},
	}
	svc, loc := newTestService(t, &fakeUserRepo{staffByUnit: map[int64]int{1: 1}}, appts, nil)

	sameDay := time.Date(2025, 10, 16, 13, 0, 0, 0, loc)
	otherDay := time.Date(2025, 10, 17, 8, 0, 0, 0, loc)

	assert.ErrorIs(t, svc.CheckUserDay(context.Background(), userID, sameDay, nil), ErrUserAlreadyBooked)
	assert.NoError(t, svc.CheckUserDay(context.Background(), userID, otherDay, nil))

	// Перемещаемая запись не конфликтует сама с собой
	ownID := int64(42)
	assert.NoError(t, svc.CheckUserDay(context.Background(), userID, sameDay, &ownID))

	// Чужая запись на тот же день конфликтует даже при excludeID
	otherID := int64(99)
	assert.ErrorIs(t, svc.CheckUserDay(context.Background(), userID, sameDay, &otherID), ErrUserAlreadyBooked)
}

func TestCheckBlackout(t *testing.T) {
	date := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	blackouts := &fakeBlackoutRepo{
		windows: []*domain.BlackoutWindow{
			{ID: 1, UnitID: 1, Date: date, Daypart: domain.DaypartMorning, Active: true},
		},
	}
	svc, loc := newTestService(t, &fakeUserRepo{staffByUnit: map[int64]int{1: 1}}, nil, blackouts)

	morning := time.Date(2025, 10, 16, 8, 0, 0, 0, loc)
	afternoon := time.Date(2025, 10, 16, 13, 0, 0, 0, loc)

	assert.ErrorIs(t, svc.CheckBlackout(context.Background(), 1, morning, 60), ErrSlotBlocked)
	assert.NoError(t, svc.CheckBlackout(context.Background(), 1, afternoon, 60))

	// Другой центр не затронут
	assert.NoError(t, svc.CheckBlackout(context.Background(), 2, morning, 60))
}
