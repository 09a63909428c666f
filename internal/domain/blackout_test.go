package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaypartHourRange(t *testing.T) {
	tests := []struct {
		daypart   Daypart
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{DaypartMorning, 8, 12, true},
		{DaypartAfternoon, 13, 17, true},
		{DaypartFullDay, 8, 17, true},
		{Daypart("lunch"), 0, 0, false},
	}

	for _, tt := range tests {
		start, end, ok := tt.daypart.HourRange()
		assert.Equal(t, tt.wantOK, ok, "daypart %s", tt.daypart)
		assert.Equal(t, tt.wantStart, start)
		assert.Equal(t, tt.wantEnd, end)
	}
}

func TestBlackoutWindow_Blocks(t *testing.T) {
	morning := &BlackoutWindow{Daypart: DaypartMorning}     // [8, 12]
	afternoon := &BlackoutWindow{Daypart: DaypartAfternoon} // [13, 17]
	fullDay := &BlackoutWindow{Daypart: DaypartFullDay}     // [8, 17]

	tests := []struct {
		name     string
		window   *BlackoutWindow
		start    int
		duration int
		want     bool
	}{
		{name: "morning slot inside morning window", window: morning, start: 8, duration: 60, want: true},
		{name: "late morning inside morning window", window: morning, start: 11, duration: 60, want: true},
		{name: "afternoon slot outside morning window", window: morning, start: 13, duration: 60, want: false},
		{name: "afternoon slot inside afternoon window", window: afternoon, start: 13, duration: 60, want: true},
		{name: "morning slot outside afternoon window", window: afternoon, start: 8, duration: 60, want: false},
		{name: "full day blocks morning", window: fullDay, start: 8, duration: 60, want: true},
		{name: "full day blocks afternoon", window: fullDay, start: 13, duration: 60, want: true},
		// Конец считается как start + ceil(duration/60): 90 минут => 2 часа
		{name: "90 minutes rounds up", window: afternoon, start: 12, duration: 90, want: true},
		// Длинный прием полностью поглощает утреннее окно
		{name: "long appointment swallows window", window: morning, start: 7, duration: 600, want: true},
		{name: "early slot before window", window: morning, start: 6, duration: 60, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Blocks(tt.start, tt.duration))
		})
	}
}
