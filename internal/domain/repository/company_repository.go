package repository

import "github.com/siteproc/siteproc-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(c *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	UpdatePlan(companyID, plan string) error
}
