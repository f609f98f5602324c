package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `
	id, company_id, name, description, status, budget, actual_spent, variance,
	created_at, updated_at`

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(p *entity.Project) error {
	query := `
		INSERT INTO projects (id, company_id, name, description, status, budget,
			actual_spent, variance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.Name, p.Description, p.Status, p.Budget,
		p.ActualSpent, p.Variance, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByIDAndCompany obtiene el proyecto del tenant o nil, nil.
func (r *ProjectRepo) GetByIDAndCompany(id, companyID string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND company_id = $2`
	p, err := scanProject(r.q.QueryRow(context.Background(), query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListByCompany lista los proyectos del tenant, recientes primero.
func (r *ProjectRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountByCompany cuenta los proyectos del tenant (cupo del plan).
func (r *ProjectRepo) CountByCompany(companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM projects WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// UpdateActuals persiste actual_spent y variance derivados del rollup.
func (r *ProjectRepo) UpdateActuals(projectID, companyID string, actualSpent, variance decimal.Decimal) error {
	query := `
		UPDATE projects
		SET actual_spent = $3, variance = $4, updated_at = NOW()
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query, projectID, companyID, actualSpent, variance)
	if err != nil {
		return fmt.Errorf("update project actuals: %w", err)
	}
	return nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.Status, &p.Budget,
		&p.ActualSpent, &p.Variance, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
