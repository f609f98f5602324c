package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
// Acepta pool o tx (Querier).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `
	id, company_id, order_id, project_id, status, driver_name, vehicle_number,
	signer_name, notes, delivered_at, is_archived, archived_at, created_at, updated_at`

// Create persiste la entrega con sus líneas.
func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	ctx := context.Background()
	query := `
		INSERT INTO deliveries (id, company_id, order_id, project_id, status, driver_name,
			vehicle_number, signer_name, notes, delivered_at, is_archived, archived_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CompanyID, d.OrderID, d.ProjectID, d.Status, d.DriverName,
		d.VehicleNumber, d.SignerName, d.Notes, d.DeliveredAt, d.IsArchived, d.ArchivedAt,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	for _, it := range d.Items {
		itemQuery := `
			INSERT INTO delivery_items (id, company_id, delivery_id, description, quantity,
				unit_price, total_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.CompanyID, it.DeliveryID, it.Description, it.Quantity,
			it.UnitPrice, it.TotalPrice, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert delivery item: %w", err)
		}
	}
	return nil
}

// GetByIDAndCompany obtiene la entrega del tenant (incluye archivadas: el
// caller decide si las filtra). Devuelve nil, nil si no existe o es de otra
// empresa.
func (r *DeliveryRepo) GetByIDAndCompany(id, companyID string) (*entity.Delivery, error) {
	ctx := context.Background()
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1 AND company_id = $2`
	d, err := scanDelivery(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if err := r.loadItems(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update persiste los campos mutables de la entrega (las líneas no cambian
// por esta vía).
func (r *DeliveryRepo) Update(d *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET status = $3, driver_name = $4, vehicle_number = $5, signer_name = $6,
			notes = $7, delivered_at = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.CompanyID, d.Status, d.DriverName, d.VehicleNumber, d.SignerName,
		d.Notes, d.DeliveredAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	return nil
}

// Archive marca la entrega como archivada (soft-delete).
func (r *DeliveryRepo) Archive(id, companyID string, at time.Time) error {
	query := `
		UPDATE deliveries
		SET is_archived = TRUE, archived_at = $3, updated_at = $3
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, companyID, at)
	if err != nil {
		return fmt.Errorf("archive delivery: %w", err)
	}
	return nil
}

// ListByCompany lista las entregas no archivadas del tenant, recientes primero.
func (r *DeliveryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE company_id = $1 AND is_archived = FALSE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListActiveByOrder lista las entregas no archivadas de una orden. Es la
// entrada del rollup de la orden: el conjunto completo, sin paginar.
func (r *DeliveryRepo) ListActiveByOrder(orderID, companyID string) ([]*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE order_id = $1 AND company_id = $2 AND is_archived = FALSE
		ORDER BY created_at`
	return r.list(query, orderID, companyID)
}

// ListActiveByProject lista las entregas no archivadas de un proyecto (entrada
// del rollup de actuals).
func (r *DeliveryRepo) ListActiveByProject(projectID, companyID string) ([]*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE project_id = $1 AND company_id = $2 AND is_archived = FALSE
		ORDER BY created_at`
	return r.list(query, projectID, companyID)
}

func (r *DeliveryRepo) list(query string, args ...any) ([]*entity.Delivery, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	for _, d := range out {
		if err := r.loadItems(ctx, d); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *DeliveryRepo) loadItems(ctx context.Context, d *entity.Delivery) error {
	query := `
		SELECT id, company_id, delivery_id, description, quantity, unit_price, total_price, created_at
		FROM delivery_items
		WHERE delivery_id = $1 AND company_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, d.ID, d.CompanyID)
	if err != nil {
		return fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()

	d.Items = d.Items[:0]
	for rows.Next() {
		var it entity.DeliveryItem
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.DeliveryID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.CreatedAt); err != nil {
			return fmt.Errorf("scan delivery item: %w", err)
		}
		d.Items = append(d.Items, it)
	}
	return rows.Err()
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.OrderID, &d.ProjectID, &d.Status, &d.DriverName,
		&d.VehicleNumber, &d.SignerName, &d.Notes, &d.DeliveredAt, &d.IsArchived,
		&d.ArchivedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
