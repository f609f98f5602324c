// Package delivery implementa la máquina de estados del ciclo de vida de una
// entrega (servicio de dominio puro, sin I/O).
//
// Estados: pending (inicial) -> partial -> delivered (terminal).
//
// Transiciones permitidas:
//   - pending  -> partial
//   - pending  -> delivered
//   - partial  -> delivered
//
// delivered es terminal: ningún estado sale de él y el registro queda
// bloqueado salvo para roles con override.
package delivery

import "github.com/siteproc/siteproc-api/internal/domain/entity"

// Status estado de una entrega.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPartial   Status = "partial"
	StatusDelivered Status = "delivered"
)

// IsValid indica si el valor pertenece a la enumeración.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusPartial || s == StatusDelivered
}

// IsValidTransition es el predicado puro de transiciones. Devuelve true solo
// para pending->partial, pending->delivered y partial->delivered; false para
// todo lo demás, incluidos los pares reflexivos (el caller debe cortar antes
// cuando current == requested: eso es "sin cambio de estado", no una
// transición) y cualquier retroceso. Nunca lanza panic.
func IsValidTransition(from, to Status) bool {
	if from == StatusDelivered {
		return false // estado final
	}
	if from == StatusPending {
		return to == StatusPartial || to == StatusDelivered
	}
	if from == StatusPartial {
		return to == StatusDelivered
	}
	return false
}

// IsLocked indica si el registro está en estado terminal y por tanto bloqueado
// para mutaciones de campos o de estado.
func IsLocked(current Status) bool {
	return current == StatusDelivered
}

// CanOverrideLock indica si el rol puede mutar un registro bloqueado.
// El chequeo del candado precede siempre a la validación de transición.
func CanOverrideLock(role string) bool {
	return role == entity.RoleOwner || role == entity.RoleAdmin
}
