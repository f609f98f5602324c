package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// GetByCompany obtiene la suscripción del tenant o nil, nil.
func (r *SubscriptionRepo) GetByCompany(companyID string) (*entity.Subscription, error) {
	query := `
		SELECT id, company_id, plan, seats, monthly_total, status, created_at, updated_at
		FROM subscriptions WHERE company_id = $1`
	var s entity.Subscription
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Plan, &s.Seats, &s.MonthlyTotal, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza la suscripción de la empresa (una por tenant).
func (r *SubscriptionRepo) Upsert(s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, company_id, plan, seats, monthly_total, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id) DO UPDATE
		SET plan = EXCLUDED.plan, seats = EXCLUDED.seats,
			monthly_total = EXCLUDED.monthly_total, status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyID, s.Plan, s.Seats, s.MonthlyTotal, s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}
