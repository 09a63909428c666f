package domain

// Default values
const (
	// DefaultDurationMinutes длительность приема по умолчанию
	DefaultDurationMinutes = 60
)

// Canonical slot hours
// Каждый день имеет ровно два бронируемых локальных времени: утро и день
const (
	MorningSlotHour   = 8
	AfternoonSlotHour = 13

	// NoonHour граница выбора слота: запросы до 12:00 локального времени
	// прижимаются к утреннему слоту, остальные к дневному
	NoonHour = 12
)

// Business rule defaults (переопределяются в config.toml)
const (
	DefaultCreationWindowStartHour = 9
	DefaultCreationWindowEndHour   = 24

	DefaultOperatingStartHour = 8
	DefaultOperatingEndHour   = 17

	DefaultMorningMultiplier   = 8
	DefaultAfternoonMultiplier = 4
)

// BlackoutCancelReason системная причина отмены, проставляемая записям,
// попавшим под блокировку администрации
const BlackoutCancelReason = "Запись отменена из-за блокировки, объявленной администрацией центра."

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)
