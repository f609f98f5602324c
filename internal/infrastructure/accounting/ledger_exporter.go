package accounting

import (
	"bytes"
	"fmt"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
)

// Encoding codificación de salida del XML contable.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	// EncodingLatin1 para sistemas contables legados que no aceptan UTF-8.
	EncodingLatin1 Encoding = "iso-8859-1"
)

// LedgerExporter genera el libro XML de movimientos de la empresa: gastos y
// valor entregado por proyecto, apto para importar en el sistema contable.
type LedgerExporter struct{}

// NewLedgerExporter construye el exportador.
func NewLedgerExporter() *LedgerExporter {
	return &LedgerExporter{}
}

// LedgerInput datos de entrada del export: la empresa con sus proyectos,
// gastos y entregas ya cargados por el caller.
type LedgerInput struct {
	Company  *entity.Company
	Projects []*entity.Project
	Expenses []*entity.Expense
	Orders   []*entity.Order
}

// Export serializa el libro a XML en la codificación pedida.
func (e *LedgerExporter) Export(in LedgerInput, enc Encoding) ([]byte, error) {
	if in.Company == nil {
		return nil, fmt.Errorf("ledger: empresa requerida")
	}

	doc := etree.NewDocument()
	switch enc {
	case EncodingLatin1:
		doc.CreateProcInst("xml", `version="1.0" encoding="ISO-8859-1"`)
	default:
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	}

	root := doc.CreateElement("Ledger")
	root.CreateAttr("company", in.Company.Name)
	root.CreateAttr("companyId", in.Company.ID)
	root.CreateAttr("plan", in.Company.Plan)

	projects := root.CreateElement("Projects")
	for _, p := range in.Projects {
		pe := projects.CreateElement("Project")
		pe.CreateAttr("id", p.ID)
		pe.CreateAttr("status", p.Status)
		pe.CreateElement("Name").SetText(p.Name)
		pe.CreateElement("Budget").SetText(p.Budget.String())
		pe.CreateElement("ActualSpent").SetText(p.ActualSpent.String())
		pe.CreateElement("Variance").SetText(p.Variance.String())
	}

	orders := root.CreateElement("Orders")
	for _, o := range in.Orders {
		oe := orders.CreateElement("Order")
		oe.CreateAttr("id", o.ID)
		oe.CreateAttr("number", o.OrderNumber)
		if o.ProjectID != nil {
			oe.CreateAttr("projectId", *o.ProjectID)
		}
		oe.CreateElement("Supplier").SetText(o.SupplierName)
		oe.CreateElement("OrderedQty").SetText(o.OrderedQty.String())
		oe.CreateElement("DeliveredQty").SetText(o.DeliveredQty.String())
		oe.CreateElement("DeliveredValue").SetText(o.DeliveredValue.String())
		oe.CreateElement("Progress").SetText(o.DeliveryProgress)
	}

	expenses := root.CreateElement("Expenses")
	for _, x := range in.Expenses {
		xe := expenses.CreateElement("Expense")
		xe.CreateAttr("id", x.ID)
		xe.CreateAttr("projectId", x.ProjectID)
		xe.CreateElement("Category").SetText(x.Category)
		xe.CreateElement("Description").SetText(x.Description)
		xe.CreateElement("Amount").SetText(x.Amount.String())
		xe.CreateElement("SpentAt").SetText(x.SpentAt.Format("2006-01-02"))
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serializar ledger: %w", err)
	}

	if enc == EncodingLatin1 {
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewEncoder(), buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("codificar a ISO-8859-1: %w", err)
		}
		return out, nil
	}
	return buf.Bytes(), nil
}
