// Package pdf implementa la generación del bon de fabrication en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° de orden  │  Fecha + Estado                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FÓRMULA: Código + Nombre + Coeficiente + Masa a producir   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Matière première | kg/100 | kg à peser     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: operador + línea de firma                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/aromalab/aromalab-api/internal/application/production"
	"github.com/aromalab/aromalab-api/internal/domain/codes"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas de estado tal como se muestran en la interfaz.
var statusLabels = map[string]string{
	entity.OrderStatusPending:    "En attente",
	entity.OrderStatusInProgress: "En cours",
	entity.OrderStatusCompleted:  "Terminé",
	entity.OrderStatusCancelled:  "Annulé",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ production.OrderSheetGenerator = (*MarotoSheetGenerator)(nil)

// MarotoSheetGenerator implementa production.OrderSheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// Generate genera el PDF del bon de fabrication y devuelve sus bytes.
func (g *MarotoSheetGenerator) Generate(
	_ context.Context,
	order *entity.ManufacturingOrder,
	formula *entity.Formula,
	lines []production.SheetLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Bon de fabrication "+order.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(formulaRow(order, formula))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: número de orden (izq) y fecha + estado (der).
func headerRow(order *entity.ManufacturingOrder) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006")
	estado := statusLabels[order.Status]
	if estado == "" {
		estado = order.Status
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("BON DE FABRICATION", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 7,
			}),
		),
		col.New(5).Add(
			text.New("Date : "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Statut : "+estado, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

// formulaRow: fórmula a producir con coeficiente y masa total.
func formulaRow(order *entity.ManufacturingOrder, formula *entity.Formula) core.Row {
	name := "Inconnue"
	code := "—"
	if formula != nil {
		name = formula.Name
		code = codes.FormatFormulaCode(formula.Code)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("FORMULE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s — %s", code, name), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Coefficient : %s   |   Masse à produire : %s kg",
				order.Coefficient.String(),
				order.ProducedMass().StringFixed(2),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de pesadas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Code", 2, align.Left),
		h("Matière première", 5, align.Left),
		h("kg / 100 kg", 2, align.Right),
		h("kg à peser", 3, align.Right),
	)
}

// tableLineRows: una fila por ingrediente.
func tableLineRows(lines []production.SheetLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				nonEmpty(l.MaterialCode, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				l.MaterialDesignation,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.UnitQuantity,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				l.ScaledQuantity,
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: masa total alineada a la derecha.
func totalRow(order *entity.ManufacturingOrder) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL :", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(order.ProducedMass().StringFixed(2)+" kg", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// footerRow: operador y línea de firma.
func footerRow(order *entity.ManufacturingOrder) core.Row {
	return row.New(22).Add(
		col.New(6).Add(
			text.New("Créé par : "+nonEmpty(order.CreatedBy, "—"), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Signature de l'opérateur :", props.Text{
				Size: 8, Top: 2, Color: colorGray, Align: align.Right,
			}),
			text.New("_________________________", props.Text{
				Size: 9, Top: 14, Align: align.Right,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
