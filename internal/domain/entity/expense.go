package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto atribuido a un proyecto. Suma al actual_spent
// del proyecto junto con el valor entregado de las órdenes.
type Expense struct {
	ID          string
	CompanyID   string
	ProjectID   string
	Category    string
	Description string
	Amount      decimal.Decimal
	SpentAt     time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
