package register_blackout

import "errors"

var (
	// ErrInvalidRequest невалидные данные запроса
	ErrInvalidRequest = errors.New("register_blackout: invalid request")
	// ErrUserNotFound создатель блокировки не найден
	ErrUserNotFound = errors.New("register_blackout: user not found")
	// ErrPermissionDenied блокировки регистрирует только супер-администратор
	ErrPermissionDenied = errors.New("register_blackout: permission denied")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("register_blackout: internal error")
)
