package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/application/usecase"
)

// ActivityHandler expone la bitácora de auditoría de la empresa.
type ActivityHandler struct {
	activityUC *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(activityUC *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{activityUC: activityUC}
}

// List godoc
// @Summary      Listar actividad reciente de la empresa
// @Tags         activity
// @Produce      json
// @Param        limit   query  int  false  "máximo de registros"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_query", Message: "parámetros inválidos"})
	}
	out, err := h.activityUC.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error interno"})
	}
	return c.JSON(out)
}
