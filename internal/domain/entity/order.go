package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Progreso de entrega de una orden de compra, derivado del ratio
// entregado/ordenado por el rollup: 0% -> pending, (0,100)% -> partial,
// >=100% -> completed.
const (
	ProgressPending   = "pending"
	ProgressPartial   = "partial"
	ProgressCompleted = "completed"
)

// Order representa una orden de compra de materiales.
// DeliveredQty, RemainingQty, DeliveredValue y DeliveryProgress son derivados:
// los recomputa el rollup sobre el conjunto vigente de entregas hijas y nunca
// los muta directamente una acción de usuario.
type Order struct {
	ID               string
	CompanyID        string
	ProjectID        *string
	OrderNumber      string
	SupplierName     string
	Status           string // draft | approved | cancelled
	OrderedQty       decimal.Decimal
	DeliveredQty     decimal.Decimal
	RemainingQty     decimal.Decimal
	DeliveredValue   decimal.Decimal
	TotalAmount      decimal.Decimal
	DeliveryProgress string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
