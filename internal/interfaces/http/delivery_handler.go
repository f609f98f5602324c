package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/internal/infrastructure/pdf"
)

// DeliveryHandler maneja el ciclo de vida de entregas: alta, consulta,
// mutación parcial (PATCH), archivado y nota de entrega en PDF.
type DeliveryHandler struct {
	deliveryUC *appdelivery.DeliveryUseCase
	updateUC   *appdelivery.UpdateStatusUseCase
	archiveUC  *appdelivery.ArchiveUseCase

	deliveryRepo repository.DeliveryRepository
	companyRepo  repository.CompanyRepository
	orderRepo    repository.OrderRepository
	projectRepo  repository.ProjectRepository
	noteGen      *pdf.DeliveryNoteGenerator

	metrics *Metrics
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(
	deliveryUC *appdelivery.DeliveryUseCase,
	updateUC *appdelivery.UpdateStatusUseCase,
	archiveUC *appdelivery.ArchiveUseCase,
	deliveryRepo repository.DeliveryRepository,
	companyRepo repository.CompanyRepository,
	orderRepo repository.OrderRepository,
	projectRepo repository.ProjectRepository,
	noteGen *pdf.DeliveryNoteGenerator,
	metrics *Metrics,
) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryUC:   deliveryUC,
		updateUC:     updateUC,
		archiveUC:    archiveUC,
		deliveryRepo: deliveryRepo,
		companyRepo:  companyRepo,
		orderRepo:    orderRepo,
		projectRepo:  projectRepo,
		noteGen:      noteGen,
		metrics:      metrics,
	}
}

// Create godoc
// @Summary      Crear entrega
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "entrega"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_body", Message: "cuerpo inválido"})
	}
	out, err := h.deliveryUC.Create(GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return h.mapError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Produce      json
// @Success      200  {object}  dto.DeliveryListResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_query", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.deliveryUC.List(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrega
// @Tags         deliveries
// @Produce      json
// @Param        id  path  string  true  "delivery id"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.deliveryUC.GetByID(c.Params("id"), GetCompanyID(c))
	if err != nil {
		return h.mapError(c, err, "")
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Mutación parcial de una entrega (estado y/o campos)
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "delivery id"
// @Param        body  body  dto.UpdateDeliveryRequest  true  "campos a mutar"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [patch]
func (h *DeliveryHandler) Patch(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_body", Message: "cuerpo inválido"})
	}
	if !in.HasFields() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_input", Message: "no hay campos para actualizar"})
	}

	deliveryID := c.Params("id")

	// Estado previo, solo para métricas: un status igual al actual es
	// "sin cambio de estado" y no cuenta como transición.
	prevStatus := ""
	if in.Status != nil {
		prevStatus = h.currentStatus(c)
	}

	updated, err := h.updateUC.Update(c.UserContext(), appdelivery.UpdateInput{
		DeliveryID:    deliveryID,
		CompanyID:     GetCompanyID(c),
		ActorID:       GetUserID(c),
		ActorRole:     GetRole(c),
		Status:        in.Status,
		DriverName:    in.DriverName,
		VehicleNumber: in.VehicleNumber,
		SignerName:    in.SignerName,
		Notes:         in.Notes,
	})
	if err != nil {
		requested := ""
		if in.Status != nil {
			requested = *in.Status
		}
		return h.mapError(c, err, requested)
	}

	if in.Status != nil && updated.Status == *in.Status && updated.Status != prevStatus {
		h.metrics.TransitionsTotal.WithLabelValues(updated.Status).Inc()
	}
	return c.JSON(appdelivery.ToDeliveryResponse(updated))
}

// Archive godoc
// @Summary      Archivar entrega (soft-delete)
// @Tags         deliveries
// @Param        id  path  string  true  "delivery id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Archive(c *fiber.Ctx) error {
	err := h.archiveUC.Archive(c.UserContext(), c.Params("id"), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return h.mapError(c, err, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// NotePDF godoc
// @Summary      Nota de entrega en PDF
// @Tags         deliveries
// @Produce      application/pdf
// @Param        id  path  string  true  "delivery id"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/note.pdf [get]
func (h *DeliveryHandler) NotePDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	delivery, err := h.deliveryRepo.GetByIDAndCompany(c.Params("id"), companyID)
	if err != nil {
		return h.mapError(c, err, "")
	}
	if delivery == nil || delivery.IsArchived {
		return h.mapError(c, domain.ErrNotFound, "")
	}

	company, err := h.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return h.mapError(c, domain.ErrNotFound, "")
	}

	var order *entity.Order
	if delivery.OrderID != nil {
		order, _ = h.orderRepo.GetByIDAndCompany(*delivery.OrderID, companyID)
	}
	var project *entity.Project
	if delivery.ProjectID != nil {
		project, _ = h.projectRepo.GetByIDAndCompany(*delivery.ProjectID, companyID)
	}

	raw, err := h.noteGen.Generate(c.UserContext(), delivery, company, order, project)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "no se pudo generar el PDF"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="delivery-note.pdf"`)
	return c.Send(raw)
}

// mapError traduce errores de dominio al contrato HTTP. Los códigos del
// candado y la transición son parte del contrato consumido por el frontend y
// no deben cambiar.
func (h *DeliveryHandler) mapError(c *fiber.Ctx, err error, requestedStatus string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "not_found", Message: "entrega no encontrada"})
	case errors.Is(err, domain.ErrDeliveryLocked):
		h.metrics.TransitionsRejected.WithLabelValues("locked").Inc()
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "DELIVERY_LOCKED",
			Message: "la entrega está en estado delivered y no admite cambios",
		})
	case errors.Is(err, domain.ErrInvalidTransition):
		h.metrics.TransitionsRejected.WithLabelValues("invalid").Inc()
		current := h.currentStatus(c)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:            "INVALID_STATUS_TRANSITION",
			Message:         "transición de estado no permitida",
			CurrentStatus:   current,
			RequestedStatus: requestedStatus,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_input", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error interno"})
	}
}

// currentStatus relee el estado vigente para enriquecer el error de
// transición (best-effort: vacío si la lectura falla).
func (h *DeliveryHandler) currentStatus(c *fiber.Ctx) string {
	d, err := h.deliveryRepo.GetByIDAndCompany(c.Params("id"), GetCompanyID(c))
	if err != nil || d == nil {
		return ""
	}
	return d.Status
}
