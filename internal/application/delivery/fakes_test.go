package delivery_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia y notificación.
// ──────────────────────────────────────────────────────────────────────────────

type fakeDeliveryRepo struct {
	deliveries map[string]*entity.Delivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{deliveries: map[string]*entity.Delivery{}}
}

func (r *fakeDeliveryRepo) Create(d *entity.Delivery) error {
	cp := *d
	r.deliveries[d.ID] = &cp
	return nil
}

func (r *fakeDeliveryRepo) GetByIDAndCompany(id, companyID string) (*entity.Delivery, error) {
	d, ok := r.deliveries[id]
	if !ok || d.CompanyID != companyID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDeliveryRepo) Update(d *entity.Delivery) error {
	cp := *d
	r.deliveries[d.ID] = &cp
	return nil
}

func (r *fakeDeliveryRepo) Archive(id, companyID string, at time.Time) error {
	d, ok := r.deliveries[id]
	if !ok || d.CompanyID != companyID {
		return nil
	}
	d.IsArchived = true
	d.ArchivedAt = &at
	d.UpdatedAt = at
	return nil
}

func (r *fakeDeliveryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.deliveries {
		if d.CompanyID == companyID && !d.IsArchived {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) ListActiveByOrder(orderID, companyID string) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.deliveries {
		if d.CompanyID == companyID && !d.IsArchived && d.OrderID != nil && *d.OrderID == orderID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) ListActiveByProject(projectID, companyID string) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.deliveries {
		if d.CompanyID == companyID && !d.IsArchived && d.ProjectID != nil && *d.ProjectID == projectID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo { return &fakeOrderRepo{orders: map[string]*entity.Order{}} }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByIDAndCompany(id, companyID string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) UpdateActuals(orderID, companyID string, deliveredQty, remainingQty, deliveredValue decimal.Decimal, progress string) error {
	o := r.orders[orderID]
	o.DeliveredQty = deliveredQty
	o.RemainingQty = remainingQty
	o.DeliveredValue = deliveredValue
	o.DeliveryProgress = progress
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*entity.Project{}}
}

func (r *fakeProjectRepo) Create(p *entity.Project) error {
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByIDAndCompany(id, companyID string) (*entity.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Project, error) {
	return nil, nil
}

func (r *fakeProjectRepo) CountByCompany(companyID string) (int, error) {
	n := 0
	for _, p := range r.projects {
		if p.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProjectRepo) UpdateActuals(projectID, companyID string, actualSpent, variance decimal.Decimal) error {
	p := r.projects[projectID]
	p.ActualSpent = actualSpent
	p.Variance = variance
	return nil
}

type fakeExpenseRepo struct {
	expenses []*entity.Expense
}

func (r *fakeExpenseRepo) Create(e *entity.Expense) error {
	cp := *e
	r.expenses = append(r.expenses, &cp)
	return nil
}

func (r *fakeExpenseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Expense, error) {
	return nil, nil
}

func (r *fakeExpenseRepo) ListByProject(projectID, companyID string) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.CompanyID == companyID && e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directo contra el repo en memoria.
type fakeTxRunner struct {
	repo repository.DeliveryRepository
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(repository.DeliveryRepository) error) error {
	return fn(t.repo)
}

// recordingAuditor acumula las acciones registradas.
type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Record(companyID, actorID, entityType, entityID, action string, changes map[string]any) {
	a.actions = append(a.actions, entityType+":"+action)
}

// recordingBroadcaster acumula los canales publicados.
type recordingBroadcaster struct {
	channels []string
}

func (b *recordingBroadcaster) Broadcast(ctx context.Context, channel, event string, payload any) {
	b.channels = append(b.channels, channel+":"+event)
}

func (b *recordingBroadcaster) DashboardUpdated(ctx context.Context, companyID string) {
	b.channels = append(b.channels, "dashboard:"+companyID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de datos de prueba
// ──────────────────────────────────────────────────────────────────────────────

const (
	tstCompany      = "company-1"
	tstOtherCompany = "company-2"
	tstActor        = "user-1"
)

func strPtr(s string) *string { return &s }

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// deliveryWithItem crea una entrega con una sola línea de cantidad q y valor v.
func deliveryWithItem(id, status string, orderID, projectID *string, q, v int64) *entity.Delivery {
	now := time.Now()
	return &entity.Delivery{
		ID:        id,
		CompanyID: tstCompany,
		OrderID:   orderID,
		ProjectID: projectID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
		Items: []entity.DeliveryItem{{
			ID:         id + "-item",
			CompanyID:  tstCompany,
			DeliveryID: id,
			Quantity:   qty(q),
			UnitPrice:  decimal.NewFromInt(1),
			TotalPrice: qty(v),
			CreatedAt:  now,
		}},
	}
}
