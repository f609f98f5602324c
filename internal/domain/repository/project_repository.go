package repository

import (
	"github.com/shopspring/decimal"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project (DIP).
type ProjectRepository interface {
	Create(p *entity.Project) error
	GetByIDAndCompany(id, companyID string) (*entity.Project, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Project, error)
	CountByCompany(companyID string) (int, error)
	// UpdateActuals persiste actual_spent y variance derivados del rollup.
	UpdateActuals(projectID, companyID string, actualSpent, variance decimal.Decimal) error
}
