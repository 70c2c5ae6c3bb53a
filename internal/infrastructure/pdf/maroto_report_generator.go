// Package pdf implementa la generación del reporte de discrepancias de
// reconciliación en PDF, pensado para el conteo físico en bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de corte  │  # discrepancias        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR CADA (producto, ubicación):                            │
//	│    Producto + SKU + ubicación                               │
//	│    Registrado | Esperado | Diferencia                       │
//	│    TABLA: Fecha | Tipo | Estado | Contraparte | Efecto      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda operativa                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/dvintimilla/andina-api/internal/application/reconcile"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reconcile.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct{}

var _ reconcile.ReportRenderer = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// RenderDiscrepancies genera el PDF del lote de reportes y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderDiscrepancies(
	_ context.Context,
	reports []*entity.DiscrepancyReport,
	asOf time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Discrepancias de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(reports, asOf))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(reports) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Sin discrepancias: todos los saldos coinciden con el historial de movimientos.", props.Text{
				Size: 10, Align: align.Center, Top: 4, Color: colorGray,
			}),
		)))
	}

	for _, r := range reports {
		m.AddRows(reportTitleRow(r))
		m.AddRows(balancesRow(r))
		m.AddRows(contributionHeaderRow())
		for _, cr := range contributionRows(r.Movements) {
			m.AddRows(cr)
		}
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(
			"Las diferencias se reportan, nunca se autocorrigen. "+
				"Verifique el conteo físico antes de aplicar un ajuste manual.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + fecha de corte (izq) y conteo de discrepancias (der).
func headerRow(reports []*entity.DiscrepancyReport, asOf time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE DISCREPANCIAS DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+asOf.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d discrepancia(s)", len(reports)), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorAlert, Top: 4,
			}),
		),
	)
}

// reportTitleRow: producto + SKU + ubicación.
func reportTitleRow(r *entity.DiscrepancyReport) core.Row {
	name := r.ProductName
	if name == "" {
		name = r.ProductID
	}
	return row.New(10).Add(
		col.New(8).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
			text.New("SKU: "+nonEmpty(r.ProductSKU, "—"), props.Text{
				Size: 7.5, Top: 7, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Ubicación: "+r.Location, props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorPrimary,
			}),
		),
	)
}

// balancesRow: registrado | esperado | diferencia (en rojo si ≠ 0).
func balancesRow(r *entity.DiscrepancyReport) core.Row {
	diffColor := colorGray
	if r.HasDiscrepancy() {
		diffColor = colorAlert
	}
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7.5, Align: align.Center, Top: 1, Color: colorGray}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 5, Color: c,
			}),
		)
	}
	return row.New(12).Add(
		cell("Registrado", r.Recorded.StringFixed(0), colorPrimary),
		cell("Esperado (replay)", r.Expected.StringFixed(0), colorPrimary),
		cell("Diferencia", r.Difference.StringFixed(0), diffColor),
	)
}

// contributionHeaderRow: cabecera de la tabla de movimientos.
func contributionHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 3, align.Left),
		h("Estado", 2, align.Left),
		h("Contraparte", 3, align.Left),
		h("Efecto", 2, align.Right),
	)
}

// contributionRows: una fila por movimiento que contribuyó al saldo esperado.
func contributionRows(contribs []entity.MovementContribution) []core.Row {
	result := make([]core.Row, 0, len(contribs))
	for _, c := range contribs {
		result = append(result, row.New(5).Add(
			col.New(2).Add(text.New(
				c.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 7, Align: align.Left, Top: 0.5, Left: 1},
			)),
			col.New(3).Add(text.New(
				c.Kind,
				props.Text{Size: 7, Align: align.Left, Top: 0.5, Left: 1},
			)),
			col.New(2).Add(text.New(
				c.Status,
				props.Text{Size: 7, Align: align.Left, Top: 0.5, Left: 1, Color: colorGray},
			)),
			col.New(3).Add(text.New(
				nonEmpty(c.Counterparty, "—"),
				props.Text{Size: 7, Align: align.Left, Top: 0.5, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				signedQuantity(c.Effect.StringFixed(0)),
				props.Text{Size: 7, Align: align.Right, Top: 0.5, Right: 1},
			)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// signedQuantity antepone "+" a los efectos positivos para que la columna se
// lea como un mayor contable.
func signedQuantity(s string) string {
	if len(s) > 0 && s[0] != '-' {
		return "+" + s
	}
	return s
}
