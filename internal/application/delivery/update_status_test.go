package delivery_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

type updateFixture struct {
	*rollupFixture
	uc *appdelivery.UpdateStatusUseCase
}

func newUpdateFixture() *updateFixture {
	rf := newRollupFixture()
	uc := appdelivery.NewUpdateStatusUseCase(
		&fakeTxRunner{repo: rf.deliveryRepo},
		rf.deliveryRepo,
		rf.uc,
		rf.auditor,
		rf.broadcaster,
		logger.Nop(),
	)
	return &updateFixture{rollupFixture: rf, uc: uc}
}

func (f *updateFixture) input(deliveryID, role string) appdelivery.UpdateInput {
	return appdelivery.UpdateInput{
		DeliveryID: deliveryID,
		CompanyID:  tstCompany,
		ActorID:    tstActor,
		ActorRole:  role,
	}
}

func TestUpdateValidTransitionRunsRollup(t *testing.T) {
	f := newUpdateFixture()
	f.addOrder("ord-1", 10)
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "pending", strPtr("ord-1"), nil, 10, 100))

	in := f.input("d1", entity.RoleMember)
	in.Status = strPtr("delivered")

	updated, err := f.uc.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "delivered", updated.Status)
	require.NotNil(t, updated.DeliveredAt)

	order := f.orderRepo.orders["ord-1"]
	assert.True(t, order.DeliveredQty.Equal(qty(10)), "el rollup corre tras el commit")
	assert.Equal(t, entity.ProgressCompleted, order.DeliveryProgress)
}

func TestUpdateInvalidTransitionRejected(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "partial", nil, nil, 5, 50))

	in := f.input("d1", entity.RoleMember)
	in.Status = strPtr("pending")

	_, err := f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// El registro queda intacto.
	d, _ := f.deliveryRepo.GetByIDAndCompany("d1", tstCompany)
	assert.Equal(t, "partial", d.Status)
}

func TestUpdateDeliveredIsLockedForMembers(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", nil, nil, 5, 50))

	// Hasta una edición de campo sin tocar status choca con el candado.
	in := f.input("d1", entity.RoleMember)
	in.Notes = strPtr("ajuste tardío")

	_, err := f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDeliveryLocked)
}

func TestUpdateLockedCheckedBeforeTransition(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", nil, nil, 5, 50))

	// delivered -> pending es a la vez candado y transición inválida:
	// el candado gana para un rol sin override.
	in := f.input("d1", entity.RoleEditor)
	in.Status = strPtr("pending")

	_, err := f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDeliveryLocked)
}

func TestUpdateAdminOverridesLockForFields(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", nil, nil, 5, 50))

	in := f.input("d1", entity.RoleAdmin)
	in.DriverName = strPtr("M. Herrera")

	updated, err := f.uc.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "M. Herrera", updated.DriverName)
	assert.Equal(t, "delivered", updated.Status)
}

func TestUpdateOverrideStillValidatesTransitions(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", nil, nil, 5, 50))

	// El override salta el candado pero no habilita transiciones salientes
	// de delivered.
	in := f.input("d1", entity.RoleOwner)
	in.Status = strPtr("pending")

	_, err := f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateReflexiveStatusSkipsRollup(t *testing.T) {
	f := newUpdateFixture()
	f.addOrder("ord-1", 10)
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "partial", strPtr("ord-1"), nil, 5, 50))

	in := f.input("d1", entity.RoleMember)
	in.Status = strPtr("partial") // mismo status: no hay cambio de estado
	in.Notes = strPtr("sin novedad")

	updated, err := f.uc.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "sin novedad", updated.Notes)
	// Sin cambio de estado no se dispara el rollup.
	assert.True(t, f.orderRepo.orders["ord-1"].DeliveredQty.Equal(qty(0)))
}

func TestUpdateEmptyPayloadRejected(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "pending", nil, nil, 5, 50))

	_, err := f.uc.Update(context.Background(), f.input("d1", entity.RoleMember))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateUnknownStatusRejected(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "pending", nil, nil, 5, 50))

	in := f.input("d1", entity.RoleMember)
	in.Status = strPtr("shipped")

	_, err := f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCrossTenantIsNotFound(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "pending", nil, nil, 5, 50))

	in := f.input("d1", entity.RoleAdmin)
	in.CompanyID = tstOtherCompany
	in.Status = strPtr("partial")

	_, err := f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateArchivedIsNotFound(t *testing.T) {
	f := newUpdateFixture()
	d := deliveryWithItem("d1", "pending", nil, nil, 5, 50)
	now := time.Now()
	d.IsArchived = true
	d.ArchivedAt = &now
	_ = f.deliveryRepo.Create(d)

	in := f.input("d1", entity.RoleAdmin)
	in.Status = strPtr("partial")

	_, err := f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDeliveredAtSetOnce(t *testing.T) {
	f := newUpdateFixture()
	d := deliveryWithItem("d1", "partial", nil, nil, 5, 50)
	stamped := time.Now().Add(-time.Hour)
	d.DeliveredAt = &stamped
	_ = f.deliveryRepo.Create(d)

	in := f.input("d1", entity.RoleMember)
	in.Status = strPtr("delivered")

	updated, err := f.uc.Update(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, updated.DeliveredAt.Equal(stamped), "delivered_at previo se conserva")
}

func TestUpdateRecordsAuditTrail(t *testing.T) {
	f := newUpdateFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "pending", nil, nil, 5, 50))

	in := f.input("d1", entity.RoleMember)
	in.Status = strPtr("partial")

	_, err := f.uc.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, f.auditor.actions, "delivery:updated")
	assert.Contains(t, f.broadcaster.channels, "delivery:d1:updated")
	assert.Contains(t, f.broadcaster.channels, "dashboard:"+tstCompany)
}
