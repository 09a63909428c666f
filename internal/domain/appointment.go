package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusDone      AppointmentStatus = "done"
	StatusAbsent    AppointmentStatus = "absent"
)

// Appointment represents a resident appointment at a service center
type Appointment struct {
	ID     int64
	UserID uuid.UUID // субъект записи
	// CreatorID пользователь, создавший запись (сотрудник может записывать других)
	CreatorID *uuid.UUID
	UnitID    int64

	// ScheduledAt хранится в UTC, все бизнес-правила сравнивают его
	// в локальном часовом поясе сервиса
	ScheduledAt     time.Time
	DurationMinutes int
	Status          AppointmentStatus

	Description *string
	Phone       *string
	TaxID       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the appointment is still waiting to happen
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

// IsConcluded returns true if the appointment reached a final outcome (done or absent)
// Concluded appointments are immutable to date/slot edits
func (a *Appointment) IsConcluded() bool {
	return a.Status == StatusDone || a.Status == StatusAbsent
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending
}

// Duration возвращает длительность приема, подставляя дефолт при нуле
func (a *Appointment) Duration() int {
	if a.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return a.DurationMinutes
}

// ValidStatus проверяет, что статус является одним из допустимых
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusCancelled, StatusDone, StatusAbsent:
		return true
	default:
		return false
	}
}
