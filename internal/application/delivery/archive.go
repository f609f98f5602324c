package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

// ArchiveUseCase archiva una entrega (soft-delete: is_archived + archived_at,
// nunca borrado físico) y re-sincroniza los agregados afectados: al salir la
// entrega del conjunto vigente, la recomputación completa del rollup la
// descuenta sola.
type ArchiveUseCase struct {
	deliveryRepo repository.DeliveryRepository
	rollup       *RollupUseCase
	auditor      Auditor
	broadcaster  Broadcaster
	log          *logger.Logger
}

// NewArchiveUseCase construye el caso de uso.
func NewArchiveUseCase(
	deliveryRepo repository.DeliveryRepository,
	rollup *RollupUseCase,
	auditor Auditor,
	broadcaster Broadcaster,
	log *logger.Logger,
) *ArchiveUseCase {
	return &ArchiveUseCase{
		deliveryRepo: deliveryRepo,
		rollup:       rollup,
		auditor:      auditor,
		broadcaster:  broadcaster,
		log:          log,
	}
}

// Archive marca la entrega como archivada y propaga el efecto. El resync es
// best-effort igual que en el update de estado.
func (uc *ArchiveUseCase) Archive(ctx context.Context, deliveryID, companyID, actorID string) error {
	d, err := uc.deliveryRepo.GetByIDAndCompany(deliveryID, companyID)
	if err != nil {
		return fmt.Errorf("buscar entrega: %w", err)
	}
	if d == nil || d.IsArchived {
		return domain.ErrNotFound
	}

	if err := uc.deliveryRepo.Archive(deliveryID, companyID, time.Now()); err != nil {
		return fmt.Errorf("archivar entrega: %w", err)
	}

	if d.OrderID != nil || d.ProjectID != nil {
		if err := uc.rollup.Sync(ctx, deliveryID, companyID, actorID); err != nil {
			uc.log.Error().Err(err).
				Str("delivery_id", deliveryID).
				Msg("resync tras archivado falló; agregados de orden/proyecto quedan desactualizados")
		}
	}

	uc.auditor.Record(companyID, actorID, "delivery", deliveryID, "archived", map[string]any{
		"previous_status": d.Status,
	})
	uc.broadcaster.Broadcast(ctx, "delivery:"+deliveryID, "archived", nil)
	uc.broadcaster.DashboardUpdated(ctx, companyID)
	return nil
}
