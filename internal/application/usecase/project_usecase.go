package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
	billingdom "github.com/siteproc/siteproc-api/internal/domain/billing"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
)

// ProjectUseCase gestiona proyectos de obra. El alta respeta el cupo de
// proyectos del plan de la empresa.
type ProjectUseCase struct {
	projectRepo repository.ProjectRepository
	companyRepo repository.CompanyRepository
	rollup      *appdelivery.RollupUseCase
	auditor     appdelivery.Auditor
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(
	projectRepo repository.ProjectRepository,
	companyRepo repository.CompanyRepository,
	rollup *appdelivery.RollupUseCase,
	auditor appdelivery.Auditor,
) *ProjectUseCase {
	return &ProjectUseCase{
		projectRepo: projectRepo,
		companyRepo: companyRepo,
		rollup:      rollup,
		auditor:     auditor,
	}
}

// Create da de alta un proyecto. El presupuesto inicial fija variance = budget
// (nada gastado todavía).
func (uc *ProjectUseCase) Create(ctx context.Context, companyID, actorID string, req dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.Budget.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	count, err := uc.projectRepo.CountByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("contar proyectos: %w", err)
	}
	if !billingdom.CanAddProject(billingdom.PlanID(company.Plan), count) {
		return nil, domain.ErrPlanLimit
	}

	now := time.Now()
	project := &entity.Project{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Name:        name,
		Description: req.Description,
		Status:      "active",
		Budget:      req.Budget,
		ActualSpent: decimal.Zero,
		Variance:    req.Budget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("crear proyecto: %w", err)
	}

	uc.auditor.Record(companyID, actorID, "project", project.ID, "created", map[string]any{
		"name":   project.Name,
		"budget": project.Budget.String(),
	})

	resp := ToProjectResponse(project)
	return &resp, nil
}

// GetByID devuelve el proyecto del tenant o ErrNotFound.
func (uc *ProjectUseCase) GetByID(ctx context.Context, projectID, companyID string) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByIDAndCompany(projectID, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar proyecto: %w", err)
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToProjectResponse(project)
	return &resp, nil
}

// List devuelve los proyectos del tenant paginados.
func (uc *ProjectUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProjectListResponse, error) {
	page.DefaultPage()
	projects, err := uc.projectRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar proyectos: %w", err)
	}

	items := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, ToProjectResponse(p))
	}
	return &dto.ProjectListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Recompute fuerza la recomputación de actual_spent y variance del proyecto.
// Existe como válvula operativa: si un rollup best-effort falló, este endpoint
// reconstruye los agregados desde los hijos vigentes.
func (uc *ProjectUseCase) Recompute(ctx context.Context, projectID, companyID, actorID string) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByIDAndCompany(projectID, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar proyecto: %w", err)
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	if err := uc.rollup.SyncProject(ctx, projectID, companyID, actorID); err != nil {
		return nil, fmt.Errorf("recomputar actuals: %w", err)
	}

	refreshed, err := uc.projectRepo.GetByIDAndCompany(projectID, companyID)
	if err != nil {
		return nil, fmt.Errorf("releer proyecto: %w", err)
	}
	resp := ToProjectResponse(refreshed)
	return &resp, nil
}

// ToProjectResponse mapea la entidad al DTO HTTP.
func ToProjectResponse(p *entity.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Budget:      p.Budget,
		ActualSpent: p.ActualSpent,
		Variance:    p.Variance,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
