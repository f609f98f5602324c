package repository

import "github.com/siteproc/siteproc-api/internal/domain/entity"

// SubscriptionRepository define el puerto de persistencia para Subscription (DIP).
type SubscriptionRepository interface {
	GetByCompany(companyID string) (*entity.Subscription, error)
	// Upsert crea o reemplaza la suscripción de la empresa (una por tenant).
	Upsert(s *entity.Subscription) error
}
