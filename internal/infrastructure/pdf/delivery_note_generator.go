// Package pdf implementa la generación de la nota de entrega imprimible que
// acompaña al material en obra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  N° Entrega + Fecha + Estado            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REFERENCIAS: Orden de compra / Proyecto                    │
//	│  TRANSPORTE: Conductor / Vehículo                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Cantidad total / Valor total                      │
//	│  FOOTER: QR de verificación + firma del receptor            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 31, Green: 78, Blue: 47}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// DeliveryNoteGenerator genera la nota de entrega en PDF usando Maroto v2.
type DeliveryNoteGenerator struct{}

// NewDeliveryNoteGenerator construye el generador.
func NewDeliveryNoteGenerator() *DeliveryNoteGenerator { return &DeliveryNoteGenerator{} }

// Generate genera el PDF de la nota y devuelve sus bytes. order y project son
// opcionales (la entrega puede no referenciar uno u otro).
func (g *DeliveryNoteGenerator) Generate(
	_ context.Context,
	delivery *entity.Delivery,
	company *entity.Company,
	order *entity.Order,
	project *entity.Project,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Entrega", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(delivery, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(referencesRow(order, project))
	m.AddRows(transportRow(delivery))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(delivery.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(delivery))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(delivery)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq), número de entrega + fecha + estado (der).
func headerRow(delivery *entity.Delivery, company *entity.Company) core.Row {
	fecha := delivery.CreatedAt.Format("02/01/2006")
	estado := map[string]string{
		"pending":   "PENDIENTE",
		"partial":   "PARCIAL",
		"delivered": "ENTREGADA",
	}[delivery.Status]

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NOTA DE ENTREGA DE MATERIALES", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ENTREGA N° "+shortID(delivery.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(estado, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 13,
				Color: colorPrimary,
			}),
		),
	)
}

// referencesRow: orden de compra y proyecto asociados (si existen).
func referencesRow(order *entity.Order, project *entity.Project) core.Row {
	orderLabel := "—"
	if order != nil {
		orderLabel = order.OrderNumber + "  (" + order.SupplierName + ")"
	}
	projectLabel := "—"
	if project != nil {
		projectLabel = project.Name
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("REFERENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Orden de compra: %s   |   Proyecto: %s",
				orderLabel, projectLabel,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// transportRow: datos del transporte y el receptor.
func transportRow(delivery *entity.Delivery) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("TRANSPORTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Conductor: %s   |   Vehículo: %s   |   Recibe: %s",
				nonEmpty(delivery.DriverName, "—"),
				nonEmpty(delivery.VehicleNumber, "—"),
				nonEmpty(delivery.SignerName, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción del material", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de la entrega.
func tableItemRows(items []entity.DeliveryItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.TotalPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: cantidad y valor total de la entrega.
func totalsRow(delivery *entity.Delivery) core.Row {
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Cantidad total:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("Valor total:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(delivery.TotalQuantity().String(), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New("$"+delivery.TotalValue().StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// footerRows: QR de verificación (apunta al id de la entrega) + firma.
func footerRows(delivery *entity.Delivery) []core.Row {
	return []core.Row{
		row.New(24).Add(
			col.New(4).Add(
				code.NewQr(delivery.ID, props.Rect{Percent: 90, Center: false}),
			),
			col.New(8).Add(
				text.New("Firma del receptor:", props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 10,
				}),
				text.New("_________________________________", props.Text{
					Size: 9, Top: 18, Color: colorGray,
				}),
			),
		),
		row.New(6).Add(col.New(12).Add(
			text.New("Documento generado automáticamente. Verifique el QR contra el sistema.", props.Text{
				Size: 6.5, Color: colorGray, Top: 1,
			}),
		)),
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// shortID primeros 8 caracteres del UUID, suficiente para referencia humana.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
