package postgres

import (
	"context"
	"fmt"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación del puerto ActivityLogRepository sobre PostgreSQL.
// El log es append-only: nunca hay updates ni deletes.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append persiste una entrada de auditoría.
func (r *ActivityLogRepo) Append(a *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, company_id, actor_id, entity_type, entity_id,
			action, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CompanyID, a.ActorID, a.EntityType, a.EntityID, a.Action, a.Payload, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// ListByCompany lista las entradas del tenant, recientes primero.
func (r *ActivityLogRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, company_id, actor_id, entity_type, entity_id, action, payload, created_at
		FROM activity_logs
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.ActivityLog
	for rows.Next() {
		var a entity.ActivityLog
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.ActorID, &a.EntityType, &a.EntityID,
			&a.Action, &a.Payload, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
