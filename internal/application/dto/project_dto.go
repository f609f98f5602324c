package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest alta de un proyecto.
type CreateProjectRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
}

// ProjectResponse representación HTTP de un proyecto. Variance = budget −
// actual_spent, puede ser negativa (sobre presupuesto) y se expone tal cual.
type ProjectResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	Budget      decimal.Decimal `json:"budget"`
	ActualSpent decimal.Decimal `json:"actual_spent"`
	Variance    decimal.Decimal `json:"variance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProjectListResponse listado paginado.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
