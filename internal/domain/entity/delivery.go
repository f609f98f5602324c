package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery representa una entrega de materiales en obra.
// OrderID y ProjectID son opcionales: una entrega puede pertenecer a una orden
// sin proyecto, o a un proyecto sin orden. DeliveredAt se fija exactamente una
// vez, al entrar al estado delivered. El borrado es soft (IsArchived +
// ArchivedAt), nunca físico.
type Delivery struct {
	ID            string
	CompanyID     string
	OrderID       *string
	ProjectID     *string
	Status        string // pending | partial | delivered (ver domain/delivery)
	DriverName    string
	VehicleNumber string
	SignerName    string
	Notes         string
	DeliveredAt   *time.Time
	IsArchived    bool
	ArchivedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []DeliveryItem
}

// DeliveryItem línea de una entrega (material, cantidad y valor).
type DeliveryItem struct {
	ID          string
	CompanyID   string
	DeliveryID  string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}

// TotalQuantity suma las cantidades de las líneas.
func (d *Delivery) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Quantity)
	}
	return total
}

// TotalValue suma el valor monetario de las líneas.
func (d *Delivery) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
