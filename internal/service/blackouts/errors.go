package blackouts

import "errors"

var (
	// ErrBlackoutNotFound возвращается, когда блокировка не найдена
	ErrBlackoutNotFound = errors.New("blackout window not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
