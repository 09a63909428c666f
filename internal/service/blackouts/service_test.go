package blackouts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
	blackoutRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/blackout"
)

type fakeBlackoutRepo struct {
	windows map[int64]*domain.BlackoutWindow
}

func (f *fakeBlackoutRepo) GetByID(_ context.Context, id int64) (*domain.BlackoutWindow, error) {
	w, ok := f.windows[id]
	if !ok {
		return nil, blackoutRepo.ErrBlackoutNotFound
	}
	return w, nil
}

func (f *fakeBlackoutRepo) List(_ context.Context) ([]*domain.BlackoutWindow, error) {
	var out []*domain.BlackoutWindow
	for _, w := range f.windows {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeBlackoutRepo) GetByUnit(_ context.Context, unitID int64) ([]*domain.BlackoutWindow, error) {
	var out []*domain.BlackoutWindow
	for _, w := range f.windows {
		if w.UnitID == unitID {
			out = append(out, w)
		}
	}
	return out, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() *Service {
	adminID := uuid.New()
	repo := &fakeBlackoutRepo{windows: map[int64]*domain.BlackoutWindow{
		1: {ID: 1, CreatorID: adminID, UnitID: 1, Date: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), Daypart: domain.DaypartMorning, Active: true},
		2: {ID: 2, CreatorID: adminID, UnitID: 1, Date: time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC), Daypart: domain.DaypartFullDay, Active: false},
		3: {ID: 3, CreatorID: adminID, UnitID: 2, Date: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), Daypart: domain.DaypartAfternoon, Active: true},
	}}
	return NewService(repo, nopLogger{})
}

func TestGetByID(t *testing.T) {
	svc := newService()

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-20", resp.Date)
	assert.Equal(t, string(domain.DaypartMorning), resp.Daypart)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBlackoutNotFound)
}

func TestList(t *testing.T) {
	svc := newService()

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
}

func TestGetByUnit(t *testing.T) {
	svc := newService()

	resp, err := svc.GetByUnit(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestGetByUnit_DateFilterReturnsOnlyActive(t *testing.T) {
	svc := newService()

	date := "2025-10-21"
	resp, err := svc.GetByUnit(context.Background(), 1, &date)
	require.NoError(t, err)
	// окно на эту дату снято, активных нет
	assert.Equal(t, 0, resp.Total)

	date = "2025-10-20"
	resp, err = svc.GetByUnit(context.Background(), 1, &date)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestGetByUnit_InvalidInput(t *testing.T) {
	svc := newService()

	_, err := svc.GetByUnit(context.Background(), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := "20-10-2025"
	_, err = svc.GetByUnit(context.Background(), 1, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
