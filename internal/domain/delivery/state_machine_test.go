package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siteproc/siteproc-api/internal/domain/delivery"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
)

// TestIsValidTransition_MatrizCompleta recorre las 9 parejas (from, to) del
// producto {pending, partial, delivered}²: solo 3 son válidas, las otras 6
// (incluidas las reflexivas y todo retroceso) deben rechazarse.
func TestIsValidTransition_MatrizCompleta(t *testing.T) {
	all := []delivery.Status{delivery.StatusPending, delivery.StatusPartial, delivery.StatusDelivered}
	allowed := map[[2]delivery.Status]bool{
		{delivery.StatusPending, delivery.StatusPartial}:   true,
		{delivery.StatusPending, delivery.StatusDelivered}: true,
		{delivery.StatusPartial, delivery.StatusDelivered}: true,
	}

	for _, from := range all {
		for _, to := range all {
			got := delivery.IsValidTransition(from, to)
			want := allowed[[2]delivery.Status{from, to}]
			assert.Equalf(t, want, got, "transición %s -> %s", from, to)
		}
	}
}

func TestIsValidTransition_EstadoDesconocido(t *testing.T) {
	assert.False(t, delivery.IsValidTransition("shipped", delivery.StatusDelivered))
	assert.False(t, delivery.IsValidTransition(delivery.StatusPending, "shipped"))
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, delivery.StatusPending.IsValid())
	assert.True(t, delivery.StatusPartial.IsValid())
	assert.True(t, delivery.StatusDelivered.IsValid())
	assert.False(t, delivery.Status("archived").IsValid())
	assert.False(t, delivery.Status("").IsValid())
}

// Solo delivered bloquea el registro.
func TestIsLocked(t *testing.T) {
	assert.False(t, delivery.IsLocked(delivery.StatusPending))
	assert.False(t, delivery.IsLocked(delivery.StatusPartial))
	assert.True(t, delivery.IsLocked(delivery.StatusDelivered))
}

// Override del candado: solo owner y admin.
func TestCanOverrideLock(t *testing.T) {
	assert.True(t, delivery.CanOverrideLock(entity.RoleOwner))
	assert.True(t, delivery.CanOverrideLock(entity.RoleAdmin))

	for _, role := range []string{
		entity.RoleManager, entity.RoleAccountant, entity.RoleEditor,
		entity.RoleMember, entity.RoleSupplier, entity.RoleViewer, "",
	} {
		assert.Falsef(t, delivery.CanOverrideLock(role), "rol %q no debe tener override", role)
	}
}
