// Package pdf implementa la generación de la hoja de revisión física del
// inventario perecedero (checklist de auditoría).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha base de la revisión                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Lote | Vence | Cant | Motivos | ☐     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Firma del responsable + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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

	"github.com/jhoicas/Perecederos-api/internal/application/dto"
	appinventory "github.com/jhoicas/Perecederos-api/internal/application/inventory"
)

var _ appinventory.ChecklistPDFGenerator = (*MarotoChecklistGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoChecklistGenerator implementa inventory.ChecklistPDFGenerator usando
// Maroto v2.
type MarotoChecklistGenerator struct{}

// NewMarotoChecklistGenerator construye el generador.
func NewMarotoChecklistGenerator() *MarotoChecklistGenerator { return &MarotoChecklistGenerator{} }

// GenerateChecklist genera el PDF de la hoja de revisión y devuelve sus bytes.
// Los lotes llegan ya ordenados por prioridad descendente.
func (g *MarotoChecklistGenerator) GenerateChecklist(
	_ context.Context,
	baseDate time.Time,
	recs []dto.AuditRecommendationResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de revisión de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(baseDate, len(recs)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for i, rec := range recs {
		m.AddRows(recommendationRow(i+1, rec, baseDate))
	}
	if len(recs) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin lotes pendientes de revisión.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows() {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha base + total de lotes (der).
func headerRow(baseDate time.Time, total int) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("HOJA DE REVISIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lotes priorizados por riesgo de vencimiento y revisión pendiente", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha base: "+baseDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("Lotes a revisar: %d", total), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de lotes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 3, align.Left),
		h("Lote", 2, align.Left),
		h("Vence", 2, align.Center),
		h("Cant.", 1, align.Right),
		h("Motivos", 2, align.Left),
		h("Revisado", 1, align.Center),
	)
}

// recommendationRow: una fila por lote recomendado, con casilla para marcar.
func recommendationRow(position int, rec dto.AuditRecommendationResponse, baseDate time.Time) core.Row {
	expiryColor := colorGray
	if !rec.ExpiryDate.After(baseDate) {
		expiryColor = colorAlert
	}
	return row.New(8).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", position),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			rec.ProductName,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			shortID(rec.BatchID),
			props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
		)),
		col.New(2).Add(text.New(
			rec.ExpiryDate.Format("02/01/2006"),
			props.Text{Size: 8, Align: align.Center, Top: 1, Color: expiryColor},
		)),
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", rec.Quantity),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			reasonLabels(rec.Reasons),
			props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(1).Add(text.New(
			"[   ]",
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
	)
}

// footerRows: firma del responsable y leyenda de uso.
func footerRows() []core.Row {
	return []core.Row{
		row.New(16).Add(
			col.New(5).Add(
				text.New("_______________________________", props.Text{
					Size: 9, Top: 8, Color: colorGray,
				}),
				text.New("Firma del responsable", props.Text{
					Size: 7, Top: 14, Color: colorGray,
				}),
			),
			col.New(7),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Marque cada lote una vez verificado físicamente y registre la revisión "+
					"en el sistema para actualizar su fecha de última revisión.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

var reasonText = map[string]string{
	dto.AuditReasonExpired:      "Vencido",
	dto.AuditReasonExpiringSoon: "Por vencer",
	dto.AuditReasonNeverChecked: "Nunca revisado",
	dto.AuditReasonStaleCheck:   "Revisión vencida",
}

func reasonLabels(reasons []string) string {
	labels := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if label, ok := reasonText[r]; ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, r)
		}
	}
	return strings.Join(labels, ", ")
}

// shortID acorta un UUID para que quepa en la columna del lote.
func shortID(id string) string {
	if len(id) <= 13 {
		return id
	}
	return id[:13] + "…"
}
