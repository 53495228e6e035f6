package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrInvalidRequestNumber = errors.New("número de solicitud con formato inválido")
	ErrAuditorRequired      = errors.New("el usuario asignado debe tener rol QA_AUDITOR")
	ErrUsernameTaken        = errors.New("el username ya está registrado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
)
