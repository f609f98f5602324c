package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription registra el estado de facturación de la empresa: plan vigente,
// asientos reportados al gateway de pagos y último total mensual calculado.
// Cada empresa tiene exactamente una suscripción activa.
type Subscription struct {
	ID           string
	CompanyID    string
	Plan         string
	Seats        int
	MonthlyTotal decimal.Decimal
	Status       string // active | past_due | cancelled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
