package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/siteproc/siteproc-api/internal/domain"
	deliverydom "github.com/siteproc/siteproc-api/internal/domain/delivery"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

// UpdateStatusUseCase aplica una mutación parcial sobre una entrega:
// candado de registros delivered -> validación de transición -> update
// transaccional -> rollup de actuals y notificaciones post-commit.
type UpdateStatusUseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	rollup       *RollupUseCase
	auditor      Auditor
	broadcaster  Broadcaster
	log          *logger.Logger
}

// NewUpdateStatusUseCase construye el caso de uso.
func NewUpdateStatusUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	rollup *RollupUseCase,
	auditor Auditor,
	broadcaster Broadcaster,
	log *logger.Logger,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		rollup:       rollup,
		auditor:      auditor,
		broadcaster:  broadcaster,
		log:          log,
	}
}

// UpdateInput mutación solicitada. Tenant y rol llegan explícitos (vienen del
// token, no de estado ambiente). Punteros nil = campo no enviado.
type UpdateInput struct {
	DeliveryID string
	CompanyID  string
	ActorID    string
	ActorRole  string

	Status        *string
	DriverName    *string
	VehicleNumber *string
	SignerName    *string
	Notes         *string
}

// Update ejecuta la mutación. Orden de chequeos:
//  1. Lookup por id+company: ausencia y cross-tenant devuelven ErrNotFound
//     por igual (no se filtra existencia en otro tenant).
//  2. Candado: si la entrega está delivered y el actor no tiene override,
//     ErrDeliveryLocked. Precede a la validación de transición.
//  3. Transición: solo si el status solicitado difiere del actual; un status
//     igual al actual es "sin cambio de estado" (no valida ni dispara rollup).
//
// El rollup corre estrictamente después del commit del update y es
// best-effort: su fallo se loggea pero nunca revierte la operación primaria.
func (uc *UpdateStatusUseCase) Update(ctx context.Context, in UpdateInput) (*entity.Delivery, error) {
	current, err := uc.deliveryRepo.GetByIDAndCompany(in.DeliveryID, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("buscar entrega: %w", err)
	}
	if current == nil || current.IsArchived {
		return nil, domain.ErrNotFound
	}

	var requested *deliverydom.Status
	if in.Status != nil {
		s := deliverydom.Status(*in.Status)
		if !s.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		requested = &s
	}

	curStatus := deliverydom.Status(current.Status)
	statusChanging := requested != nil && *requested != curStatus
	fieldChanging := in.DriverName != nil || in.VehicleNumber != nil ||
		in.SignerName != nil || in.Notes != nil

	if !statusChanging && !fieldChanging {
		return nil, domain.ErrInvalidInput // nada que actualizar
	}

	if deliverydom.IsLocked(curStatus) && !deliverydom.CanOverrideLock(in.ActorRole) {
		return nil, domain.ErrDeliveryLocked
	}

	if statusChanging && !deliverydom.IsValidTransition(curStatus, *requested) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	updated := *current
	changes := map[string]any{}

	if statusChanging {
		changes["status_changed"] = map[string]any{
			"from": current.Status,
			"to":   string(*requested),
		}
		updated.Status = string(*requested)
		// delivered_at se fija exactamente una vez, al entrar a delivered.
		if *requested == deliverydom.StatusDelivered && updated.DeliveredAt == nil {
			updated.DeliveredAt = &now
		}
	}
	if in.DriverName != nil {
		updated.DriverName = *in.DriverName
		changes["driver_name"] = *in.DriverName
	}
	if in.VehicleNumber != nil {
		updated.VehicleNumber = *in.VehicleNumber
		changes["vehicle_number"] = *in.VehicleNumber
	}
	if in.SignerName != nil {
		updated.SignerName = *in.SignerName
		changes["signer_name"] = *in.SignerName
	}
	if in.Notes != nil {
		updated.Notes = *in.Notes
		changes["notes"] = *in.Notes
	}
	updated.UpdatedAt = now

	if err := uc.txRunner.Run(ctx, func(repo repository.DeliveryRepository) error {
		return repo.Update(&updated)
	}); err != nil {
		return nil, fmt.Errorf("actualizar entrega: %w", err)
	}

	// Post-commit. El éxito de la operación ya está decidido: todo lo que
	// sigue degrada frescura de datos, no consistencia del update primario.
	if statusChanging {
		if err := uc.rollup.Sync(ctx, in.DeliveryID, in.CompanyID, in.ActorID); err != nil {
			uc.log.Error().Err(err).
				Str("delivery_id", in.DeliveryID).
				Str("company_id", in.CompanyID).
				Msg("rollup de actuals falló; los agregados de orden/proyecto quedan desactualizados")
		}
	}

	uc.auditor.Record(in.CompanyID, in.ActorID, "delivery", in.DeliveryID, "updated", changes)
	uc.broadcaster.Broadcast(ctx, "delivery:"+in.DeliveryID, "updated", map[string]any{
		"id":     updated.ID,
		"status": updated.Status,
	})
	uc.broadcaster.DashboardUpdated(ctx, in.CompanyID)

	return &updated, nil
}
