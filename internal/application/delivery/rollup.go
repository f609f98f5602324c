package delivery

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	deliverydom "github.com/siteproc/siteproc-api/internal/domain/delivery"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

// RollupUseCase mantiene los agregados derivados (delivered_qty de la orden,
// actual_spent del proyecto) consistentes con el conjunto vigente de entregas
// no archivadas. Siempre recomputa COMPLETO desde los hijos actuales, nunca
// aplica deltas incrementales: bajo ediciones concurrentes y soft-deletes un
// delta pierde updates; la recomputación es idempotente y autolimpiante.
type RollupUseCase struct {
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	projectRepo  repository.ProjectRepository
	expenseRepo  repository.ExpenseRepository
	auditor      Auditor
	broadcaster  Broadcaster
	failures     Counter
	log          *logger.Logger
}

// NewRollupUseCase construye el caso de uso. failures cuenta fallos de
// persistencia del rollup (pasar NopCounter{} si no hay métricas).
func NewRollupUseCase(
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	projectRepo repository.ProjectRepository,
	expenseRepo repository.ExpenseRepository,
	auditor Auditor,
	broadcaster Broadcaster,
	failures Counter,
	log *logger.Logger,
) *RollupUseCase {
	return &RollupUseCase{
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		projectRepo:  projectRepo,
		expenseRepo:  expenseRepo,
		auditor:      auditor,
		broadcaster:  broadcaster,
		failures:     failures,
		log:          log,
	}
}

// Sync propaga el efecto del cambio de una entrega a su orden y su proyecto.
// Si la entrega no referencia orden o proyecto, esa parte se omite sin fallar
// (una entrega puede tener orden sin proyecto y viceversa). Un fallo en una
// parte no impide intentar la otra; se retorna el primer error para que el
// caller decida loggearlo (la operación primaria nunca depende de esto).
func (uc *RollupUseCase) Sync(ctx context.Context, deliveryID, companyID, actorID string) error {
	d, err := uc.deliveryRepo.GetByIDAndCompany(deliveryID, companyID)
	if err != nil {
		uc.failures.Inc()
		return fmt.Errorf("rollup: buscar entrega: %w", err)
	}
	if d == nil {
		return nil
	}

	var firstErr error
	if d.OrderID != nil {
		if err := uc.syncOrder(ctx, *d.OrderID, companyID, actorID); err != nil {
			uc.failures.Inc()
			uc.log.Error().Err(err).Str("order_id", *d.OrderID).Msg("rollup de orden falló")
			firstErr = err
		}
	}
	if d.ProjectID != nil {
		if err := uc.SyncProject(ctx, *d.ProjectID, companyID, actorID); err != nil {
			uc.failures.Inc()
			uc.log.Error().Err(err).Str("project_id", *d.ProjectID).Msg("rollup de proyecto falló")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// syncOrder recomputa delivered_qty, remaining_qty, delivered_value y
// delivery_progress de la orden sumando los items de TODAS sus entregas no
// archivadas en estado partial o delivered.
func (uc *RollupUseCase) syncOrder(ctx context.Context, orderID, companyID, actorID string) error {
	order, err := uc.orderRepo.GetByIDAndCompany(orderID, companyID)
	if err != nil {
		return fmt.Errorf("buscar orden: %w", err)
	}
	if order == nil {
		return nil // referencia ausente: se omite
	}

	deliveries, err := uc.deliveryRepo.ListActiveByOrder(orderID, companyID)
	if err != nil {
		return fmt.Errorf("listar entregas de la orden: %w", err)
	}

	totalQty, totalValue := sumDelivered(deliveries)
	progress := classifyProgress(totalQty, order.OrderedQty)

	remaining := order.OrderedQty.Sub(totalQty)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	if err := uc.orderRepo.UpdateActuals(orderID, companyID, totalQty, remaining, totalValue, progress); err != nil {
		return fmt.Errorf("actualizar actuals de la orden: %w", err)
	}

	uc.auditor.Record(companyID, actorID, "order", orderID, "delivery_progress_updated", map[string]any{
		"previous_progress": order.DeliveryProgress,
		"new_progress":      progress,
		"delivered_qty":     totalQty.String(),
		"remaining_qty":     remaining.String(),
		"delivered_value":   totalValue.String(),
		"reason":            "delivery_status_changed",
	})
	uc.broadcaster.Broadcast(ctx, "order:"+orderID, "updated", map[string]any{
		"delivery_progress": progress,
		"delivered_qty":     totalQty,
		"remaining_qty":     remaining,
		"delivered_value":   totalValue,
	})
	uc.broadcaster.DashboardUpdated(ctx, companyID)
	return nil
}

// SyncProject recomputa actual_spent y variance del proyecto: suma completa de
// gastos más valor entregado (entregas partial/delivered no archivadas).
// Exportado: lo reutilizan el alta de gastos y el recompute bajo demanda.
func (uc *RollupUseCase) SyncProject(ctx context.Context, projectID, companyID, actorID string) error {
	project, err := uc.projectRepo.GetByIDAndCompany(projectID, companyID)
	if err != nil {
		return fmt.Errorf("buscar proyecto: %w", err)
	}
	if project == nil {
		return nil // referencia ausente: se omite
	}

	deliveries, err := uc.deliveryRepo.ListActiveByProject(projectID, companyID)
	if err != nil {
		return fmt.Errorf("listar entregas del proyecto: %w", err)
	}
	_, deliveredAmount := sumDelivered(deliveries)

	expenses, err := uc.expenseRepo.ListByProject(projectID, companyID)
	if err != nil {
		return fmt.Errorf("listar gastos del proyecto: %w", err)
	}
	expenseAmount := decimal.Zero
	for _, e := range expenses {
		expenseAmount = expenseAmount.Add(e.Amount)
	}

	actual := deliveredAmount.Add(expenseAmount)
	// Variance puede ser negativa (sobre presupuesto): se persiste tal cual.
	variance := project.Budget.Sub(actual)

	if actual.Equal(project.ActualSpent) && variance.Equal(project.Variance) {
		return nil // sin cambios
	}

	if err := uc.projectRepo.UpdateActuals(projectID, companyID, actual, variance); err != nil {
		return fmt.Errorf("actualizar actuals del proyecto: %w", err)
	}

	uc.auditor.Record(companyID, actorID, "project", projectID, "actuals_auto_updated", map[string]any{
		"old_actual_spent": project.ActualSpent.String(),
		"new_actual_spent": actual.String(),
		"old_variance":     project.Variance.String(),
		"new_variance":     variance.String(),
		"delivered_amount": deliveredAmount.String(),
		"expense_amount":   expenseAmount.String(),
		"reason":           "delivery_status_changed",
	})
	uc.broadcaster.Broadcast(ctx, "project:"+projectID, "updated", map[string]any{
		"actual_spent": actual,
		"variance":     variance,
	})
	uc.broadcaster.DashboardUpdated(ctx, companyID)
	return nil
}

// sumDelivered suma cantidad y valor de las entregas que cuentan como
// entregado hasta ahora: estados partial y delivered. Las pending aportan 0 y
// las archivadas ya vienen excluidas por el repositorio.
func sumDelivered(deliveries []*entity.Delivery) (qty, value decimal.Decimal) {
	qty, value = decimal.Zero, decimal.Zero
	for _, d := range deliveries {
		st := deliverydom.Status(d.Status)
		if st != deliverydom.StatusPartial && st != deliverydom.StatusDelivered {
			continue
		}
		qty = qty.Add(d.TotalQuantity())
		value = value.Add(d.TotalValue())
	}
	return qty, value
}

// classifyProgress deriva la clasificación de avance del ratio
// entregado/ordenado: 0 -> pending, (0,100)% -> partial, >=100% -> completed.
func classifyProgress(deliveredQty, orderedQty decimal.Decimal) string {
	if deliveredQty.LessThanOrEqual(decimal.Zero) {
		return entity.ProgressPending
	}
	if orderedQty.GreaterThan(decimal.Zero) && deliveredQty.LessThan(orderedQty) {
		return entity.ProgressPartial
	}
	return entity.ProgressCompleted
}
