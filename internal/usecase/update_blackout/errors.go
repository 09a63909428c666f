package update_blackout

import "errors"

var (
	// ErrInvalidRequest невалидные данные запроса
	ErrInvalidRequest = errors.New("update_blackout: invalid request")
	// ErrBlackoutNotFound блокировка не найдена
	ErrBlackoutNotFound = errors.New("update_blackout: blackout not found")
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("update_blackout: user not found")
	// ErrPermissionDenied блокировки меняет только супер-администратор
	ErrPermissionDenied = errors.New("update_blackout: permission denied")
	// ErrBlackoutCancelled снятая блокировка неизменяема
	ErrBlackoutCancelled = errors.New("update_blackout: blackout already cancelled")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("update_blackout: internal error")
)
