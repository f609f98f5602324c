package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `
	id, company_id, email, password_hash, name, role, status, created_at, updated_at`

// Create persiste un nuevo perfil.
func (r *ProfileRepo) Create(p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, company_id, email, password_hash, name, role, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.Email, p.PasswordHash, p.Name, p.Role, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID (cualquier tenant) o nil, nil.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDAndCompany obtiene el perfil del tenant o nil, nil.
func (r *ProfileRepo) GetByIDAndCompany(id, companyID string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 AND company_id = $2`
	return r.getOne(query, id, companyID)
}

// FindByEmail obtiene un perfil por email (cualquier tenant) o nil, nil.
func (r *ProfileRepo) FindByEmail(email string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.getOne(query, email)
}

// GetByEmailAndCompany obtiene un perfil por email dentro del tenant o nil, nil.
func (r *ProfileRepo) GetByEmailAndCompany(email, companyID string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1 AND company_id = $2`
	return r.getOne(query, email, companyID)
}

// ListByCompany devuelve todos los perfiles del tenant (el conteo de asientos
// clasifica el conjunto completo).
func (r *ProfileRepo) ListByCompany(companyID string) ([]*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE company_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateRole cambia el rol del perfil dentro del tenant.
func (r *ProfileRepo) UpdateRole(id, companyID, role string) error {
	query := `UPDATE profiles SET role = $3, updated_at = NOW() WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, companyID, role)
	if err != nil {
		return fmt.Errorf("update profile role: %w", err)
	}
	return nil
}

func (r *ProfileRepo) getOne(query string, args ...any) (*entity.Profile, error) {
	p, err := scanProfile(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Email, &p.PasswordHash, &p.Name, &p.Role, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
