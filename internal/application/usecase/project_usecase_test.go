package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/application/usecase"
	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

type memCompanyRepo struct{ companies map[string]*entity.Company }

func (r *memCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *memCompanyRepo) UpdatePlan(companyID, plan string) error {
	r.companies[companyID].Plan = plan
	return nil
}

type memProjectRepo struct{ projects map[string]*entity.Project }

func (r *memProjectRepo) Create(p *entity.Project) error { r.projects[p.ID] = p; return nil }
func (r *memProjectRepo) GetByIDAndCompany(id, companyID string) (*entity.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}
func (r *memProjectRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range r.projects {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProjectRepo) CountByCompany(companyID string) (int, error) {
	n := 0
	for _, p := range r.projects {
		if p.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}
func (r *memProjectRepo) UpdateActuals(projectID, companyID string, actualSpent, variance decimal.Decimal) error {
	p := r.projects[projectID]
	p.ActualSpent = actualSpent
	p.Variance = variance
	return nil
}

type memDeliveryRepo struct{}

func (memDeliveryRepo) Create(*entity.Delivery) error { return nil }
func (memDeliveryRepo) GetByIDAndCompany(string, string) (*entity.Delivery, error) {
	return nil, nil
}
func (memDeliveryRepo) Update(*entity.Delivery) error              { return nil }
func (memDeliveryRepo) Archive(string, string, time.Time) error    { return nil }
func (memDeliveryRepo) ListByCompany(string, int, int) ([]*entity.Delivery, error) {
	return nil, nil
}
func (memDeliveryRepo) ListActiveByOrder(string, string) ([]*entity.Delivery, error) {
	return nil, nil
}
func (memDeliveryRepo) ListActiveByProject(string, string) ([]*entity.Delivery, error) {
	return nil, nil
}

type memOrderRepo struct{}

func (memOrderRepo) Create(*entity.Order) error { return nil }
func (memOrderRepo) GetByIDAndCompany(string, string) (*entity.Order, error) {
	return nil, nil
}
func (memOrderRepo) ListByCompany(string, int, int) ([]*entity.Order, error) { return nil, nil }
func (memOrderRepo) UpdateActuals(string, string, decimal.Decimal, decimal.Decimal, decimal.Decimal, string) error {
	return nil
}

type memExpenseRepo struct{ expenses []*entity.Expense }

func (r *memExpenseRepo) Create(e *entity.Expense) error {
	r.expenses = append(r.expenses, e)
	return nil
}
func (r *memExpenseRepo) ListByCompany(string, int, int) ([]*entity.Expense, error) {
	return nil, nil
}
func (r *memExpenseRepo) ListByProject(projectID, companyID string) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.ProjectID == projectID && e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

type nopAuditor struct{}

func (nopAuditor) Record(string, string, string, string, string, map[string]any) {}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(context.Context, string, string, any) {}
func (nopBroadcaster) DashboardUpdated(context.Context, string)       {}

type projectFixture struct {
	companies *memCompanyRepo
	projects  *memProjectRepo
	expenses  *memExpenseRepo
	uc        *usecase.ProjectUseCase
	expenseUC *usecase.ExpenseUseCase
}

func newProjectFixture(plan string) *projectFixture {
	f := &projectFixture{
		companies: &memCompanyRepo{companies: map[string]*entity.Company{}},
		projects:  &memProjectRepo{projects: map[string]*entity.Project{}},
		expenses:  &memExpenseRepo{},
	}
	f.companies.companies["c1"] = &entity.Company{ID: "c1", Plan: plan, Status: "active"}
	rollup := appdelivery.NewRollupUseCase(
		memDeliveryRepo{}, memOrderRepo{}, f.projects, f.expenses,
		nopAuditor{}, nopBroadcaster{}, appdelivery.NopCounter{}, logger.Nop(),
	)
	f.uc = usecase.NewProjectUseCase(f.projects, f.companies, rollup, nopAuditor{})
	f.expenseUC = usecase.NewExpenseUseCase(f.expenses, f.projects, rollup, nopAuditor{}, logger.Nop())
	return f
}

func TestProjectCreateInitializesVariance(t *testing.T) {
	f := newProjectFixture("pro")

	out, err := f.uc.Create(context.Background(), "c1", "u1", dto.CreateProjectRequest{
		Name:   "Torre Norte",
		Budget: decimal.NewFromInt(500000),
	})
	require.NoError(t, err)
	assert.True(t, out.ActualSpent.IsZero())
	assert.Equal(t, "500000", out.Variance.String())
	assert.Equal(t, "active", out.Status)
}

func TestProjectCreateEnforcesPlanLimit(t *testing.T) {
	f := newProjectFixture("free")

	for i := 0; i < 3; i++ {
		_, err := f.uc.Create(context.Background(), "c1", "u1", dto.CreateProjectRequest{
			Name: "Obra", Budget: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	}
	_, err := f.uc.Create(context.Background(), "c1", "u1", dto.CreateProjectRequest{
		Name: "Una más", Budget: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrPlanLimit, "el plan free admite 3 proyectos")
}

func TestProjectCreateRejectsNegativeBudget(t *testing.T) {
	f := newProjectFixture("pro")
	_, err := f.uc.Create(context.Background(), "c1", "u1", dto.CreateProjectRequest{
		Name: "Obra", Budget: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpenseCreateSyncsProjectActuals(t *testing.T) {
	f := newProjectFixture("pro")
	out, err := f.uc.Create(context.Background(), "c1", "u1", dto.CreateProjectRequest{
		Name: "Torre Norte", Budget: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	_, err = f.expenseUC.Create(context.Background(), "c1", "u1", dto.CreateExpenseRequest{
		ProjectID: out.ID,
		Category:  "materiales",
		Amount:    decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	project := f.projects.projects[out.ID]
	assert.Equal(t, "300", project.ActualSpent.String())
	assert.Equal(t, "700", project.Variance.String())
}

func TestExpenseCreateUnknownProject(t *testing.T) {
	f := newProjectFixture("pro")
	_, err := f.expenseUC.Create(context.Background(), "c1", "u1", dto.CreateExpenseRequest{
		ProjectID: "ghost",
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
