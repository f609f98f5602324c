package delivery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

func newArchiveFixture() (*rollupFixture, *appdelivery.ArchiveUseCase) {
	rf := newRollupFixture()
	uc := appdelivery.NewArchiveUseCase(
		rf.deliveryRepo, rf.uc, rf.auditor, rf.broadcaster, logger.Nop(),
	)
	return rf, uc
}

func TestArchiveExcludesDeliveryFromActuals(t *testing.T) {
	f, uc := newArchiveFixture()
	f.addOrder("ord-1", 20)
	orderID := strPtr("ord-1")
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", orderID, nil, 10, 100))
	_ = f.deliveryRepo.Create(deliveryWithItem("d2", "delivered", orderID, nil, 7, 70))

	// Sembrar los agregados con ambas entregas.
	require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))
	require.True(t, f.orderRepo.orders["ord-1"].DeliveredQty.Equal(qty(17)))

	require.NoError(t, uc.Archive(context.Background(), "d2", tstCompany, tstActor))

	d, _ := f.deliveryRepo.GetByIDAndCompany("d2", tstCompany)
	assert.True(t, d.IsArchived)
	assert.NotNil(t, d.ArchivedAt)
	// El archivado dispara la recomputación y la entrega deja de contar.
	assert.True(t, f.orderRepo.orders["ord-1"].DeliveredQty.Equal(qty(10)),
		"delivered_qty = %s", f.orderRepo.orders["ord-1"].DeliveredQty)
}

func TestArchiveTwiceIsNotFound(t *testing.T) {
	f, uc := newArchiveFixture()
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "pending", nil, nil, 5, 50))

	require.NoError(t, uc.Archive(context.Background(), "d1", tstCompany, tstActor))
	err := uc.Archive(context.Background(), "d1", tstCompany, tstActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveCrossTenantIsNotFound(t *testing.T) {
	_, uc := newArchiveFixture()
	err := uc.Archive(context.Background(), "ghost", tstOtherCompany, tstActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
