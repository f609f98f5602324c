package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/application/usecase"
	"github.com/siteproc/siteproc-api/internal/domain"
)

// ProjectHandler maneja proyectos y sus gastos.
type ProjectHandler struct {
	projectUC *usecase.ProjectUseCase
	expenseUC *usecase.ExpenseUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(projectUC *usecase.ProjectUseCase, expenseUC *usecase.ExpenseUseCase) *ProjectHandler {
	return &ProjectHandler{projectUC: projectUC, expenseUC: expenseUC}
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "proyecto"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_body", Message: "cuerpo inválido"})
	}
	out, err := h.projectUC.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return mapProjectError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Produce      json
// @Success      200  {object}  dto.ProjectListResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_query", Message: "paginación inválida"})
	}
	out, err := h.projectUC.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return mapProjectError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proyecto
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "project id"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.projectUC.GetByID(c.UserContext(), c.Params("id"), GetCompanyID(c))
	if err != nil {
		return mapProjectError(c, err)
	}
	return c.JSON(out)
}

// Recompute godoc
// @Summary      Recomputar actuals del proyecto (solo owner/admin)
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "project id"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/recompute [post]
func (h *ProjectHandler) Recompute(c *fiber.Ctx) error {
	out, err := h.projectUC.Recompute(c.UserContext(), c.Params("id"), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return mapProjectError(c, err)
	}
	return c.JSON(out)
}

// ListExpenses godoc
// @Summary      Gastos de un proyecto
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "project id"
// @Success      200  {object}  dto.ExpenseListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/expenses [get]
func (h *ProjectHandler) ListExpenses(c *fiber.Ctx) error {
	out, err := h.expenseUC.ListByProject(c.UserContext(), c.Params("id"), GetCompanyID(c))
	if err != nil {
		return mapProjectError(c, err)
	}
	return c.JSON(out)
}

func mapProjectError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "not_found", Message: "proyecto no encontrado"})
	case errors.Is(err, domain.ErrPlanLimit):
		return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: "plan_limit", Message: "el plan actual no admite más proyectos"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_input", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error interno"})
	}
}
