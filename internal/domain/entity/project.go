package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project representa un proyecto de obra. Budget es entrada de negocio inmutable;
// ActualSpent y Variance son derivados y se recomputan con cada cambio relevante
// (entregas, gastos). Variance puede ser negativa (sobre presupuesto) y se
// expone tal cual, nunca recortada a cero.
type Project struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Status      string // active | on_hold | closed
	Budget      decimal.Decimal
	ActualSpent decimal.Decimal
	Variance    decimal.Decimal // Budget - ActualSpent
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
