package services

import "errors"

// Ошибки уровня сервисов; контроллеры переводят их в HTTP статусы.
var (
	ErrNotFound          = errors.New("record not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
)
