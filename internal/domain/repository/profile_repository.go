package repository

import "github.com/siteproc/siteproc-api/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para Profile (DIP).
type ProfileRepository interface {
	Create(p *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	GetByIDAndCompany(id, companyID string) (*entity.Profile, error)
	FindByEmail(email string) (*entity.Profile, error)
	GetByEmailAndCompany(email, companyID string) (*entity.Profile, error)
	// ListByCompany devuelve todos los perfiles del tenant (sin paginar): el
	// conteo de asientos facturables clasifica el conjunto completo.
	ListByCompany(companyID string) ([]*entity.Profile, error)
	UpdateRole(id, companyID, role string) error
}
