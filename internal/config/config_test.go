package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
[server]
http_port = 8083

[database]
host = "localhost"
port = 5432
user = "u"
password = "p"
dbname = "d"
sslmode = "disable"

[logs]
file = "logs/app.log"
level = "info"
`

func TestLoad_AppliesBusinessDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "America/Sao_Paulo", cfg.Service.Timezone)
	assert.Equal(t, 9, cfg.Service.CreationStartHour)
	assert.Equal(t, 24, cfg.Service.CreationEndHour)
	assert.Equal(t, 8, cfg.Service.OperatingStartHour)
	assert.Equal(t, 17, cfg.Service.OperatingEndHour)
	assert.Equal(t, []int{0, 3, 6}, cfg.Service.ExcludedWeekdays)

	// Действующие множители вместимости: 8 утро, 4 день
	assert.Equal(t, 8, cfg.Service.MorningMultiplier)
	assert.Equal(t, 4, cfg.Service.AfternoonMultiplier)
}

func TestLoad_ParsesCapacityOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[service]
morning_multiplier = 8
afternoon_multiplier = 4

[[service.capacity_override]]
unit_id = 5
start_hour = 13
end_hour = 17
multiplier = 2
`))
	require.NoError(t, err)

	require.Len(t, cfg.Service.CapacityOverrides, 1)
	o := cfg.Service.CapacityOverrides[0]
	assert.Equal(t, int64(5), o.UnitID)
	assert.Equal(t, 13, o.StartHour)
	assert.Equal(t, 17, o.EndHour)
	assert.Equal(t, 2, o.Multiplier)
}

func TestLoad_RejectsInvalidOverride(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[[service.capacity_override]]
unit_id = 5
start_hour = 17
end_hour = 13
multiplier = 2
`))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidWeekday(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[service]
excluded_weekdays = [7]
`))
	assert.Error(t, err)
}
