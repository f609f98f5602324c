package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `
	id, company_id, project_id, order_number, supplier_name, status, ordered_qty,
	delivered_qty, remaining_qty, delivered_value, total_amount, delivery_progress,
	created_at, updated_at`

// Create persiste una nueva orden.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, company_id, project_id, order_number, supplier_name, status,
			ordered_qty, delivered_qty, remaining_qty, delivered_value, total_amount,
			delivery_progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.CompanyID, o.ProjectID, o.OrderNumber, o.SupplierName, o.Status,
		o.OrderedQty, o.DeliveredQty, o.RemainingQty, o.DeliveredValue, o.TotalAmount,
		o.DeliveryProgress, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByIDAndCompany obtiene la orden del tenant o nil, nil.
func (r *OrderRepo) GetByIDAndCompany(id, companyID string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND company_id = $2`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByCompany lista las órdenes del tenant, recientes primero.
func (r *OrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateActuals persiste los agregados derivados del rollup.
func (r *OrderRepo) UpdateActuals(orderID, companyID string, deliveredQty, remainingQty, deliveredValue decimal.Decimal, progress string) error {
	query := `
		UPDATE orders
		SET delivered_qty = $3, remaining_qty = $4, delivered_value = $5,
			delivery_progress = $6, updated_at = NOW()
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		orderID, companyID, deliveredQty, remainingQty, deliveredValue, progress,
	)
	if err != nil {
		return fmt.Errorf("update order actuals: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.ProjectID, &o.OrderNumber, &o.SupplierName, &o.Status,
		&o.OrderedQty, &o.DeliveredQty, &o.RemainingQty, &o.DeliveredValue, &o.TotalAmount,
		&o.DeliveryProgress, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
