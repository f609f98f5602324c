package repository

import "github.com/siteproc/siteproc-api/internal/domain/entity"

// ExpenseRepository define el puerto de persistencia para Expense (DIP).
type ExpenseRepository interface {
	Create(e *entity.Expense) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Expense, error)
	// ListByProject devuelve todos los gastos del proyecto (sin paginar):
	// el rollup los suma completos.
	ListByProject(projectID, companyID string) ([]*entity.Expense, error)
}
