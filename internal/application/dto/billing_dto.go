package dto

import "github.com/shopspring/decimal"

// BillingPreviewResponse asientos y cargo mensual calculado para la empresa.
type BillingPreviewResponse struct {
	Plan          string          `json:"plan"`
	BillableSeats int             `json:"billable_seats"`
	PricePerSeat  decimal.Decimal `json:"price_per_seat"`
	MonthlyTotal  decimal.Decimal `json:"monthly_total"`
}

// BillingSyncResponse resultado de reconciliar la cantidad de asientos con el
// gateway externo de suscripciones.
type BillingSyncResponse struct {
	Synced       bool            `json:"synced"`
	Seats        int             `json:"seats"`
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	Message      string          `json:"message,omitempty"`
}

// UserBreakdownResponse conteo de perfiles por rol y clasificación
// facturable/gratuito.
type UserBreakdownResponse struct {
	Billable int            `json:"billable"`
	Free     int            `json:"free"`
	Total    int            `json:"total"`
	ByRole   map[string]int `json:"by_role"`
}
