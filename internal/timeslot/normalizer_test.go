package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimezone = "America/Sao_Paulo"

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	norm, err := NewNormalizer(testTimezone)
	require.NoError(t, err)
	return norm
}

func TestNewNormalizer_InvalidTimezone(t *testing.T) {
	_, err := NewNormalizer("Mars/Olympus_Mons")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestToLocal_ConvertsInstantToLocalFields(t *testing.T) {
	norm := newTestNormalizer(t)

	// 13:30 UTC = 10:30 в Сан-Паулу (UTC-3)
	instant := time.Date(2025, 10, 16, 13, 30, 0, 0, time.UTC)

	lt := norm.ToLocal(instant)

	assert.Equal(t, 2025, lt.Year)
	assert.Equal(t, time.October, lt.Month)
	assert.Equal(t, 16, lt.Day)
	assert.Equal(t, 10, lt.Hour)
	assert.Equal(t, 30, lt.Minute)
	assert.Equal(t, time.Thursday, lt.Weekday)
}

func TestToLocal_CrossesDateBoundary(t *testing.T) {
	norm := newTestNormalizer(t)

	// 01:00 UTC 17-го = 22:00 локального 16-го
	instant := time.Date(2025, 10, 17, 1, 0, 0, 0, time.UTC)

	lt := norm.ToLocal(instant)

	assert.Equal(t, 16, lt.Day)
	assert.Equal(t, 22, lt.Hour)
}

func TestToInstant_RoundTrip(t *testing.T) {
	norm := newTestNormalizer(t)

	instant := time.Date(2025, 10, 16, 13, 0, 0, 0, time.UTC)
	lt := norm.ToLocal(instant)

	assert.True(t, instant.Equal(norm.ToInstant(lt)))
}

func TestSnap_MorningRequestsSnapTo8(t *testing.T) {
	norm := newTestNormalizer(t)

	tests := []struct {
		name      string
		localHour int
		localMin  int
		wantHour  int
	}{
		{name: "early morning", localHour: 0, localMin: 1, wantHour: 8},
		{name: "exactly 08:00", localHour: 8, localMin: 0, wantHour: 8},
		{name: "just before noon", localHour: 11, localMin: 59, wantHour: 8},
		{name: "exactly noon", localHour: 12, localMin: 0, wantHour: 13},
		{name: "mid afternoon", localHour: 15, localMin: 45, wantHour: 13},
		{name: "late evening", localHour: 23, localMin: 59, wantHour: 13},
	}

	loc, err := time.LoadLocation(testTimezone)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requested := time.Date(2025, 10, 16, tt.localHour, tt.localMin, 17, 0, loc)

			snapped := norm.Snap(requested)
			local := snapped.In(loc)

			assert.Equal(t, tt.wantHour, local.Hour())
			assert.Equal(t, 0, local.Minute())
			assert.Equal(t, 0, local.Second())
			// Локальная дата не меняется
			assert.Equal(t, 16, local.Day())
			// Хранится в UTC
			assert.Equal(t, time.UTC, snapped.Location())
		})
	}
}

func TestSnap_Idempotent(t *testing.T) {
	norm := newTestNormalizer(t)

	loc, err := time.LoadLocation(testTimezone)
	require.NoError(t, err)

	for hour := 0; hour < 24; hour++ {
		requested := time.Date(2025, 10, 16, hour, 33, 0, 0, loc)
		once := norm.Snap(requested)
		twice := norm.Snap(once)
		assert.True(t, once.Equal(twice), "hour %d: snap must be idempotent", hour)
	}
}

func TestHorizonEnd_AlwaysNextWeeksFriday(t *testing.T) {
	norm := newTestNormalizer(t)
	loc := norm.Location()

	tests := []struct {
		name     string
		today    time.Time
		wantDate time.Time
	}{
		{
			// Понедельник 2025-10-13 => offset 12-1=11 => пятница 2025-10-24
			name:     "monday",
			today:    time.Date(2025, 10, 13, 10, 0, 0, 0, loc),
			wantDate: time.Date(2025, 10, 24, 0, 0, 0, 0, loc),
		},
		{
			// Четверг 2025-10-16 => offset 12-4=8 => пятница 2025-10-24
			name:     "thursday",
			today:    time.Date(2025, 10, 16, 10, 0, 0, 0, loc),
			wantDate: time.Date(2025, 10, 24, 0, 0, 0, 0, loc),
		},
		{
			// Пятница 2025-10-17 => offset 12-5=7 => пятница 2025-10-24
			name:     "friday",
			today:    time.Date(2025, 10, 17, 10, 0, 0, 0, loc),
			wantDate: time.Date(2025, 10, 24, 0, 0, 0, 0, loc),
		},
		{
			// Суббота 2025-10-18 => offset 12-6=6 => пятница 2025-10-24
			name:     "saturday",
			today:    time.Date(2025, 10, 18, 10, 0, 0, 0, loc),
			wantDate: time.Date(2025, 10, 24, 0, 0, 0, 0, loc),
		},
		{
			// Воскресенье 2025-10-19 => offset 12-0=12 => пятница 2025-10-31
			name:     "sunday",
			today:    time.Date(2025, 10, 19, 10, 0, 0, 0, loc),
			wantDate: time.Date(2025, 10, 31, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := norm.HorizonEnd(tt.today)
			assert.True(t, tt.wantDate.Equal(got), "want %s, got %s", tt.wantDate, got)
			assert.Equal(t, time.Friday, got.Weekday())
		})
	}
}

func TestSameLocalDay(t *testing.T) {
	norm := newTestNormalizer(t)

	// 02:00 UTC и 23:00 UTC того же UTC-дня — разные локальные дни в UTC-3
	a := time.Date(2025, 10, 16, 2, 0, 0, 0, time.UTC)  // локально 15-е, 23:00
	b := time.Date(2025, 10, 16, 23, 0, 0, 0, time.UTC) // локально 16-е, 20:00

	assert.False(t, norm.SameLocalDay(a, b))
	assert.True(t, norm.SameLocalDay(b, b.Add(2*time.Hour)))
}
