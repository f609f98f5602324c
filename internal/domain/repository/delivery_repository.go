package repository

import (
	"time"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
)

// DeliveryRepository define el puerto de persistencia para Delivery (DIP).
// Los lookups van siempre por id+company: la ausencia y el cross-tenant son
// indistinguibles para el caller (ambos devuelven nil).
type DeliveryRepository interface {
	Create(d *entity.Delivery) error
	// GetByIDAndCompany devuelve la entrega con sus items, incluidas las
	// archivadas (el rollup las necesita para resolver order/project tras un
	// archivado). nil si no existe en ese tenant.
	GetByIDAndCompany(id, companyID string) (*entity.Delivery, error)
	Update(d *entity.Delivery) error
	// Archive marca soft-delete (is_archived + archived_at), nunca borra.
	Archive(id, companyID string, at time.Time) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Delivery, error)
	// ListActiveByOrder devuelve las entregas NO archivadas de una orden, con
	// items, para la recomputación completa del rollup.
	ListActiveByOrder(orderID, companyID string) ([]*entity.Delivery, error)
	// ListActiveByProject ídem, por proyecto.
	ListActiveByProject(projectID, companyID string) ([]*entity.Delivery, error)
}
