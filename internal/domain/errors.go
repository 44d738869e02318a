package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("ya existe una sesión de escaneo activa")
	ErrSessionAccess    = errors.New("sesión no encontrada o acceso denegado")
	ErrSessionNotActive = errors.New("la sesión no está activa")
)
