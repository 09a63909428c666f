package domain

import "github.com/google/uuid"

// UserRole represents the role of a user in the system
type UserRole string

const (
	// RoleRegular обычный житель, на него действуют все ограничения бронирования
	RoleRegular UserRole = "regular"
	// RoleStaff сотрудник центра, учитывается при расчете вместимости слотов
	RoleStaff UserRole = "staff"
	// RoleSuperAdmin администратор, управляет блокировками и физическим удалением
	RoleSuperAdmin UserRole = "super_admin"
)

// User represents a system user
// Пользователи читаются этим сервисом только на чтение, их CRUD вне нашей зоны
type User struct {
	ID     uuid.UUID
	Name   string
	Role   UserRole
	UnitID int64
	Active bool
}

// IsRegular returns true for regular residents
func (u *User) IsRegular() bool {
	return u.Role == RoleRegular
}

// IsStaff returns true for unit staff members
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

// IsSuperAdmin returns true for super administrators
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// BypassesBookingLimits сотрудники и администраторы не ограничены горизонтом,
// вместимостью и правилом "одна запись в день", но слот им всё равно нормализуется
func (u *User) BypassesBookingLimits() bool {
	return u.Role == RoleStaff || u.Role == RoleSuperAdmin
}
