package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/application/usecase"
	"github.com/siteproc/siteproc-api/internal/domain"
)

// CompanyHandler maneja los usuarios de la empresa.
type CompanyHandler struct {
	profileUC *usecase.ProfileUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(profileUC *usecase.ProfileUseCase) *CompanyHandler {
	return &CompanyHandler{profileUC: profileUC}
}

// ListUsers godoc
// @Summary      Listar usuarios de la empresa
// @Tags         company
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/company/users [get]
func (h *CompanyHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.profileUC.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return mapCompanyError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Invitar usuario a la empresa (solo owner/admin)
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/company/users [post]
func (h *CompanyHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_body", Message: "cuerpo inválido"})
	}
	out, err := h.profileUC.CreateUser(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return mapCompanyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUserRole godoc
// @Summary      Cambiar rol de un usuario (solo owner/admin)
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "profile id"
// @Param        body  body  dto.UpdateRoleRequest  true  "rol nuevo"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/company/users/{id}/role [patch]
func (h *CompanyHandler) UpdateUserRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_body", Message: "cuerpo inválido"})
	}
	out, err := h.profileUC.UpdateRole(c.UserContext(), c.Params("id"), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return mapCompanyError(c, err)
	}
	return c.JSON(out)
}

func mapCompanyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "not_found", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "email_exists", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrPlanLimit):
		return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: "plan_limit", Message: "el plan actual no admite más usuarios internos"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "forbidden", Message: "operación no permitida"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_input", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error interno"})
	}
}
