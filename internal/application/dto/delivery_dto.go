package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeliveryRequest alta de una entrega (estado inicial: pending).
type CreateDeliveryRequest struct {
	OrderID       *string                     `json:"order_id"`
	ProjectID     *string                     `json:"project_id"`
	DriverName    string                      `json:"driver_name"`
	VehicleNumber string                      `json:"vehicle_number"`
	Notes         string                      `json:"notes"`
	Items         []CreateDeliveryItemRequest `json:"items"`
}

// CreateDeliveryItemRequest línea de la entrega.
type CreateDeliveryItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateDeliveryRequest mutación parcial de una entrega. Punteros: nil = campo
// no enviado. Status igual al actual se trata como "sin cambio de estado"
// (no valida transición ni dispara rollup).
type UpdateDeliveryRequest struct {
	Status        *string `json:"status"`
	DriverName    *string `json:"driver_name"`
	VehicleNumber *string `json:"vehicle_number"`
	SignerName    *string `json:"signer_name"`
	Notes         *string `json:"notes"`
}

// HasFields indica si el request trae al menos un campo a mutar.
func (r UpdateDeliveryRequest) HasFields() bool {
	return r.Status != nil || r.DriverName != nil || r.VehicleNumber != nil ||
		r.SignerName != nil || r.Notes != nil
}

// DeliveryItemResponse línea en respuestas.
type DeliveryItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// DeliveryResponse representación HTTP de una entrega.
type DeliveryResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	OrderID       *string                `json:"order_id,omitempty"`
	ProjectID     *string                `json:"project_id,omitempty"`
	Status        string                 `json:"status"`
	DriverName    string                 `json:"driver_name,omitempty"`
	VehicleNumber string                 `json:"vehicle_number,omitempty"`
	SignerName    string                 `json:"signer_name,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	DeliveredAt   *time.Time             `json:"delivered_at,omitempty"`
	IsArchived    bool                   `json:"is_archived"`
	Items         []DeliveryItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// DeliveryListResponse listado paginado.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
