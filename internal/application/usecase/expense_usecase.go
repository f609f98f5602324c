package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/pkg/logger"
)

// ExpenseUseCase gestiona gastos de proyecto. Cada alta dispara el rollup de
// actuals del proyecto (best-effort, post-commit).
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
	projectRepo repository.ProjectRepository
	rollup      *appdelivery.RollupUseCase
	auditor     appdelivery.Auditor
	log         *logger.Logger
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(
	expenseRepo repository.ExpenseRepository,
	projectRepo repository.ProjectRepository,
	rollup *appdelivery.RollupUseCase,
	auditor appdelivery.Auditor,
	log *logger.Logger,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
		rollup:      rollup,
		auditor:     auditor,
		log:         log,
	}
}

// Create registra un gasto contra un proyecto del tenant y re-sincroniza sus
// actuals. El fallo del rollup no revierte el alta: queda loggeado y el
// recompute bajo demanda lo corrige.
func (uc *ExpenseUseCase) Create(ctx context.Context, companyID, actorID string, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if req.ProjectID == "" || req.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	project, err := uc.projectRepo.GetByIDAndCompany(req.ProjectID, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar proyecto: %w", err)
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	spentAt := now
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense := &entity.Expense{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		ProjectID:   req.ProjectID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		SpentAt:     spentAt,
		CreatedBy:   actorID,
		CreatedAt:   now,
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("crear gasto: %w", err)
	}

	if err := uc.rollup.SyncProject(ctx, req.ProjectID, companyID, actorID); err != nil {
		uc.log.Error().Err(err).
			Str("project_id", req.ProjectID).
			Str("company_id", companyID).
			Msg("rollup de actuals tras gasto falló")
	}

	uc.auditor.Record(companyID, actorID, "expense", expense.ID, "created", map[string]any{
		"project_id": expense.ProjectID,
		"amount":     expense.Amount.String(),
		"category":   expense.Category,
	})

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// ListByProject devuelve los gastos de un proyecto del tenant.
func (uc *ExpenseUseCase) ListByProject(ctx context.Context, projectID, companyID string) (*dto.ExpenseListResponse, error) {
	project, err := uc.projectRepo.GetByIDAndCompany(projectID, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar proyecto: %w", err)
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	expenses, err := uc.expenseRepo.ListByProject(projectID, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar gastos: %w", err)
	}

	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, ToExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: len(items), Total: len(items)},
	}, nil
}

// List devuelve los gastos del tenant paginados.
func (uc *ExpenseUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ExpenseListResponse, error) {
	page.DefaultPage()
	expenses, err := uc.expenseRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar gastos: %w", err)
	}

	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, ToExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ToExpenseResponse mapea la entidad al DTO HTTP.
func ToExpenseResponse(e *entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		ProjectID:   e.ProjectID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
	}
}
