package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appbilling "github.com/siteproc/siteproc-api/internal/application/billing"
	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
)

// BillingHandler expone el cálculo de asientos y la reconciliación con el
// gateway de suscripciones.
type BillingHandler struct {
	uc *appbilling.BillingUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *appbilling.BillingUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Preview godoc
// @Summary      Previsualizar cargo mensual por asientos
// @Tags         billing
// @Produce      json
// @Success      200  {object}  dto.BillingPreviewResponse
// @Router       /api/billing/preview [get]
func (h *BillingHandler) Preview(c *fiber.Ctx) error {
	out, err := h.uc.Preview(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(out)
}

// Sync godoc
// @Summary      Reconciliar asientos con el gateway (solo owner/admin)
// @Tags         billing
// @Produce      json
// @Success      200  {object}  dto.BillingSyncResponse
// @Router       /api/billing/sync [post]
func (h *BillingHandler) Sync(c *fiber.Ctx) error {
	out, err := h.uc.SyncSeats(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(out)
}

// Breakdown godoc
// @Summary      Desglose de usuarios por rol (facturables vs gratuitos)
// @Tags         billing
// @Produce      json
// @Success      200  {object}  dto.UserBreakdownResponse
// @Router       /api/billing/users [get]
func (h *BillingHandler) Breakdown(c *fiber.Ctx) error {
	out, err := h.uc.Breakdown(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(out)
}

func mapBillingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "not_found", Message: "empresa no encontrada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error interno"})
	}
}
