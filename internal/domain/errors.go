package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrDeliveryLocked: la entrega está en estado delivered (terminal) y el
	// actor no tiene rol de override. Se mapea a 403 con código DELIVERY_LOCKED,
	// distinguible del forbidden genérico.
	ErrDeliveryLocked = errors.New("la entrega está bloqueada")

	// ErrInvalidTransition: transición de estado de entrega no permitida.
	// Se mapea a 400 con código INVALID_STATUS_TRANSITION.
	ErrInvalidTransition = errors.New("transición de estado inválida")

	// ErrPlanLimit: el plan de la empresa no permite más usuarios o proyectos.
	ErrPlanLimit = errors.New("límite del plan alcanzado")
)
