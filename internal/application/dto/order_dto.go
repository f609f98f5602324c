package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest alta de una orden de compra.
type CreateOrderRequest struct {
	ProjectID    *string         `json:"project_id"`
	OrderNumber  string          `json:"order_number"`
	SupplierName string          `json:"supplier_name"`
	OrderedQty   decimal.Decimal `json:"ordered_qty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// OrderResponse representación HTTP de una orden.
type OrderResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	ProjectID        *string         `json:"project_id,omitempty"`
	OrderNumber      string          `json:"order_number"`
	SupplierName     string          `json:"supplier_name,omitempty"`
	Status           string          `json:"status"`
	OrderedQty       decimal.Decimal `json:"ordered_qty"`
	DeliveredQty     decimal.Decimal `json:"delivered_qty"`
	RemainingQty     decimal.Decimal `json:"remaining_qty"`
	DeliveredValue   decimal.Decimal `json:"delivered_value"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	DeliveryProgress string          `json:"delivery_progress"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OrderListResponse listado paginado.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
