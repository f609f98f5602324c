package repository

import "github.com/siteproc/siteproc-api/internal/domain/entity"

// ActivityLogRepository define el puerto de persistencia para ActivityLog (DIP).
type ActivityLogRepository interface {
	Append(a *entity.ActivityLog) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.ActivityLog, error)
}
