package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siteproc/siteproc-api/internal/application/dto"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/internal/infrastructure/accounting"
)

// límite de filas por sección en el export contable.
const ledgerExportLimit = 1000

// ReportHandler genera exportes contables de la empresa.
type ReportHandler struct {
	exporter    *accounting.LedgerExporter
	companyRepo repository.CompanyRepository
	projectRepo repository.ProjectRepository
	orderRepo   repository.OrderRepository
	expenseRepo repository.ExpenseRepository
}

// NewReportHandler construye el handler.
func NewReportHandler(
	exporter *accounting.LedgerExporter,
	companyRepo repository.CompanyRepository,
	projectRepo repository.ProjectRepository,
	orderRepo repository.OrderRepository,
	expenseRepo repository.ExpenseRepository,
) *ReportHandler {
	return &ReportHandler{
		exporter:    exporter,
		companyRepo: companyRepo,
		projectRepo: projectRepo,
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
	}
}

// LedgerXML godoc
// @Summary      Exportar libro contable en XML
// @Description  Proyectos, órdenes y gastos de la empresa. Con ?encoding=iso-8859-1 se emite en Latin-1 para sistemas contables legados.
// @Tags         reports
// @Produce      xml
// @Param        charset  query  string  false  "utf8 (default) o latin1"
// @Success      200  {string}  string  "XML"
// @Router       /api/reports/ledger.xml [get]
func (h *ReportHandler) LedgerXML(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)

	company, err := h.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "not_found", Message: "empresa no encontrada"})
	}

	projects, err := h.projectRepo.ListByCompany(companyID, ledgerExportLimit, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error interno"})
	}
	orders, err := h.orderRepo.ListByCompany(companyID, ledgerExportLimit, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error interno"})
	}
	expenses, err := h.expenseRepo.ListByCompany(companyID, ledgerExportLimit, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error interno"})
	}

	enc := accounting.EncodingUTF8
	switch c.Query("charset", c.Query("encoding")) {
	case "latin1", string(accounting.EncodingLatin1):
		enc = accounting.EncodingLatin1
	}

	out, err := h.exporter.Export(accounting.LedgerInput{
		Company:  company,
		Projects: projects,
		Orders:   orders,
		Expenses: expenses,
	}, enc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: "error generando el export"})
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset="+string(enc))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ledger.xml"`)
	return c.Send(out)
}
