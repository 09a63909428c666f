package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SSC-SchedulingService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Migrations MigrationsConfig `toml:"migrations"`
	Service    ServiceConfig    `toml:"service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к базе данных
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// MigrationsConfig настройки миграций схемы БД
type MigrationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// ServiceConfig бизнес-правила бронирования
type ServiceConfig struct {
	// Timezone фиксированный гражданский часовой пояс сервиса (IANA имя)
	Timezone string `toml:"timezone"`

	// Окно серверного времени, в которое разрешено создавать записи, [start, end)
	CreationStartHour int `toml:"creation_start_hour"`
	CreationEndHour   int `toml:"creation_end_hour"`

	// Рабочие часы центров для запрошенного времени записи, [start, end)
	OperatingStartHour int `toml:"operating_start_hour"`
	OperatingEndHour   int `toml:"operating_end_hour"`

	// ExcludedWeekdays дни недели, закрытые для записи (0=воскресенье ... 6=суббота)
	ExcludedWeekdays []int `toml:"excluded_weekdays"`

	// Множители вместимости: мест в слоте = множитель * число сотрудников центра
	MorningMultiplier   int `toml:"morning_multiplier"`
	AfternoonMultiplier int `toml:"afternoon_multiplier"`

	// CapacityOverrides точечные переопределения вместимости по центрам
	// Таблица правил вместо зашитых в код условий: операторы добавляют и убирают
	// исключения без изменения кода
	CapacityOverrides []CapacityOverride `toml:"capacity_override"`
}

// CapacityOverride переопределение множителя вместимости для одного центра
// в диапазоне локальных часов [start_hour, end_hour)
type CapacityOverride struct {
	UnitID     int64 `toml:"unit_id"`
	StartHour  int   `toml:"start_hour"`
	EndHour    int   `toml:"end_hour"`
	Multiplier int   `toml:"multiplier"`
}

// Weekdays возвращает исключенные дни недели как time.Weekday
func (c *ServiceConfig) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(c.ExcludedWeekdays))
	for _, d := range c.ExcludedWeekdays {
		days = append(days, time.Weekday(d))
	}
	return days
}

// Load загружает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.Timezone == "" {
		c.Service.Timezone = "America/Sao_Paulo"
	}
	if c.Service.CreationStartHour == 0 && c.Service.CreationEndHour == 0 {
		c.Service.CreationStartHour = domain.DefaultCreationWindowStartHour
		c.Service.CreationEndHour = domain.DefaultCreationWindowEndHour
	}
	if c.Service.OperatingStartHour == 0 && c.Service.OperatingEndHour == 0 {
		c.Service.OperatingStartHour = domain.DefaultOperatingStartHour
		c.Service.OperatingEndHour = domain.DefaultOperatingEndHour
	}
	if c.Service.ExcludedWeekdays == nil {
		c.Service.ExcludedWeekdays = []int{int(time.Sunday), int(time.Wednesday), int(time.Saturday)}
	}
	if c.Service.MorningMultiplier == 0 {
		c.Service.MorningMultiplier = domain.DefaultMorningMultiplier
	}
	if c.Service.AfternoonMultiplier == 0 {
		c.Service.AfternoonMultiplier = domain.DefaultAfternoonMultiplier
	}
}

func (c *Config) validate() error {
	if c.Service.CreationStartHour < 0 || c.Service.CreationEndHour > 24 ||
		c.Service.CreationStartHour >= c.Service.CreationEndHour {
		return fmt.Errorf("config: invalid creation window [%d, %d)",
			c.Service.CreationStartHour, c.Service.CreationEndHour)
	}
	if c.Service.OperatingStartHour < 0 || c.Service.OperatingEndHour > 24 ||
		c.Service.OperatingStartHour >= c.Service.OperatingEndHour {
		return fmt.Errorf("config: invalid operating hours [%d, %d)",
			c.Service.OperatingStartHour, c.Service.OperatingEndHour)
	}
	for _, d := range c.Service.ExcludedWeekdays {
		if d < 0 || d > 6 {
			return fmt.Errorf("config: invalid excluded weekday %d", d)
		}
	}
	for _, o := range c.Service.CapacityOverrides {
		if o.UnitID <= 0 || o.Multiplier <= 0 || o.StartHour >= o.EndHour {
			return fmt.Errorf("config: invalid capacity override for unit %d", o.UnitID)
		}
	}
	return nil
}
