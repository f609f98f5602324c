package repository

import (
	"github.com/shopspring/decimal"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(o *entity.Order) error
	GetByIDAndCompany(id, companyID string) (*entity.Order, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error)
	// UpdateActuals persiste los agregados derivados del rollup. Es el único
	// camino de escritura de delivered_qty/delivered_value/delivery_progress.
	UpdateActuals(orderID, companyID string, deliveredQty, remainingQty, deliveredValue decimal.Decimal, progress string) error
}
