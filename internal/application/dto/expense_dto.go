package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest alta de un gasto contra un proyecto.
type CreateExpenseRequest struct {
	ProjectID   string          `json:"project_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     *time.Time      `json:"spent_at"`
}

// ExpenseResponse representación HTTP de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	ProjectID   string          `json:"project_id"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     time.Time       `json:"spent_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseListResponse listado paginado.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
