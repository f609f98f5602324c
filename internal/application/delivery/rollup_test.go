package delivery_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

type rollupFixture struct {
	deliveryRepo *fakeDeliveryRepo
	orderRepo    *fakeOrderRepo
	projectRepo  *fakeProjectRepo
	expenseRepo  *fakeExpenseRepo
	auditor      *recordingAuditor
	broadcaster  *recordingBroadcaster
	uc           *appdelivery.RollupUseCase
}

func newRollupFixture() *rollupFixture {
	f := &rollupFixture{
		deliveryRepo: newFakeDeliveryRepo(),
		orderRepo:    newFakeOrderRepo(),
		projectRepo:  newFakeProjectRepo(),
		expenseRepo:  &fakeExpenseRepo{},
		auditor:      &recordingAuditor{},
		broadcaster:  &recordingBroadcaster{},
	}
	f.uc = appdelivery.NewRollupUseCase(
		f.deliveryRepo, f.orderRepo, f.projectRepo, f.expenseRepo,
		f.auditor, f.broadcaster, appdelivery.NopCounter{}, logger.Nop(),
	)
	return f
}

func (f *rollupFixture) addOrder(id string, ordered int64) {
	f.orderRepo.orders[id] = &entity.Order{
		ID:               id,
		CompanyID:        tstCompany,
		OrderedQty:       qty(ordered),
		DeliveredQty:     decimal.Zero,
		RemainingQty:     qty(ordered),
		DeliveredValue:   decimal.Zero,
		DeliveryProgress: entity.ProgressPending,
	}
}

func (f *rollupFixture) addProject(id string, budget int64) {
	f.projectRepo.projects[id] = &entity.Project{
		ID:          id,
		CompanyID:   tstCompany,
		Budget:      qty(budget),
		ActualSpent: decimal.Zero,
		Variance:    qty(budget),
	}
}

func TestRollupSyncOrderSumsPartialAndDelivered(t *testing.T) {
	f := newRollupFixture()
	f.addOrder("ord-1", 20)
	orderID := strPtr("ord-1")

	// 10 delivered + 5 partial + 8 pending: las pending no cuentan.
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", orderID, nil, 10, 100))
	_ = f.deliveryRepo.Create(deliveryWithItem("d2", "partial", orderID, nil, 5, 50))
	_ = f.deliveryRepo.Create(deliveryWithItem("d3", "pending", orderID, nil, 8, 80))

	require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))

	order := f.orderRepo.orders["ord-1"]
	assert.True(t, order.DeliveredQty.Equal(qty(15)), "delivered_qty = %s", order.DeliveredQty)
	assert.True(t, order.RemainingQty.Equal(qty(5)), "remaining_qty = %s", order.RemainingQty)
	assert.True(t, order.DeliveredValue.Equal(qty(150)), "delivered_value = %s", order.DeliveredValue)
	assert.Equal(t, entity.ProgressPartial, order.DeliveryProgress)
}

func TestRollupSyncOrderProgressCompleted(t *testing.T) {
	f := newRollupFixture()
	f.addOrder("ord-1", 15)
	orderID := strPtr("ord-1")

	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", orderID, nil, 10, 100))
	_ = f.deliveryRepo.Create(deliveryWithItem("d2", "partial", orderID, nil, 5, 50))

	require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))

	order := f.orderRepo.orders["ord-1"]
	assert.Equal(t, entity.ProgressCompleted, order.DeliveryProgress)
	// La sobre-entrega nunca deja remaining negativo.
	assert.True(t, order.RemainingQty.Equal(decimal.Zero))
}

func TestRollupSyncOrderOnlyPendingIsPending(t *testing.T) {
	f := newRollupFixture()
	f.addOrder("ord-1", 20)
	orderID := strPtr("ord-1")

	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "pending", orderID, nil, 8, 80))

	require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))

	order := f.orderRepo.orders["ord-1"]
	assert.True(t, order.DeliveredQty.Equal(decimal.Zero))
	assert.Equal(t, entity.ProgressPending, order.DeliveryProgress)
}

func TestRollupExcludesArchivedDeliveries(t *testing.T) {
	f := newRollupFixture()
	f.addOrder("ord-1", 20)
	orderID := strPtr("ord-1")

	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", orderID, nil, 10, 100))
	archived := deliveryWithItem("d2", "delivered", orderID, nil, 7, 70)
	now := time.Now()
	archived.IsArchived = true
	archived.ArchivedAt = &now
	_ = f.deliveryRepo.Create(archived)

	require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))

	order := f.orderRepo.orders["ord-1"]
	assert.True(t, order.DeliveredQty.Equal(qty(10)), "delivered_qty = %s", order.DeliveredQty)
	assert.True(t, order.DeliveredValue.Equal(qty(100)))
}

func TestRollupIsIdempotent(t *testing.T) {
	f := newRollupFixture()
	f.addOrder("ord-1", 20)
	f.addProject("prj-1", 1000)
	orderID, projectID := strPtr("ord-1"), strPtr("prj-1")

	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", orderID, projectID, 10, 100))
	_ = f.expenseRepo.Create(&entity.Expense{
		ID: "e1", CompanyID: tstCompany, ProjectID: "prj-1", Amount: qty(200),
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))
	}

	order := f.orderRepo.orders["ord-1"]
	assert.True(t, order.DeliveredQty.Equal(qty(10)), "tres syncs seguidos no acumulan")
	project := f.projectRepo.projects["prj-1"]
	assert.True(t, project.ActualSpent.Equal(qty(300)), "actual_spent = %s", project.ActualSpent)
	assert.True(t, project.Variance.Equal(qty(700)))
}

func TestRollupProjectVarianceCanBeNegative(t *testing.T) {
	f := newRollupFixture()
	f.addProject("prj-1", 100)
	projectID := strPtr("prj-1")

	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", nil, projectID, 10, 150))

	require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))

	project := f.projectRepo.projects["prj-1"]
	assert.True(t, project.ActualSpent.Equal(qty(150)))
	assert.True(t, project.Variance.Equal(qty(-50)), "variance = %s", project.Variance)
}

func TestRollupSkipsMissingReferences(t *testing.T) {
	f := newRollupFixture()
	// La entrega referencia una orden que no existe: se omite sin error.
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "delivered", strPtr("ghost"), nil, 10, 100))

	require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))
	assert.Empty(t, f.auditor.actions)
}

func TestRollupUnknownDeliveryIsNoop(t *testing.T) {
	f := newRollupFixture()
	require.NoError(t, f.uc.Sync(context.Background(), "missing", tstCompany, tstActor))
	assert.Empty(t, f.broadcaster.channels)
}

func TestRollupProjectSkipUnchanged(t *testing.T) {
	f := newRollupFixture()
	f.addProject("prj-1", 1000)
	projectID := strPtr("prj-1")
	_ = f.deliveryRepo.Create(deliveryWithItem("d1", "pending", nil, projectID, 10, 100))

	// actual_spent sigue en cero: no debe registrar auditoría ni publicar.
	require.NoError(t, f.uc.Sync(context.Background(), "d1", tstCompany, tstActor))
	assert.Empty(t, f.auditor.actions)
	assert.Empty(t, f.broadcaster.channels)
}
