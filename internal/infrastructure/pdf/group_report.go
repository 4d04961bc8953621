// Package pdf implementa el informe PDF de consolidación del grupo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Painel Financeiro + período │ fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: entradas / salidas / saldo / margen                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Empresa | CNPJ | Entradas | Saídas | Saldo | Margem  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: empresas ignoradas + conteo Lucro/Prejuízo          │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/ports"
	"github.com/jhoicas/painel-financeiro/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorProfit  = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.GroupReportRenderer = (*GroupReportGenerator)(nil)

// GroupReportGenerator implementa ports.GroupReportRenderer usando Maroto v2.
type GroupReportGenerator struct{}

// NewGroupReportGenerator construye el generador.
func NewGroupReportGenerator() *GroupReportGenerator { return &GroupReportGenerator{} }

func (g *GroupReportGenerator) ContentType() string { return "application/pdf" }
func (g *GroupReportGenerator) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *GroupReportGenerator) Render(_ context.Context, s *dto.GroupSummaryDTO) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Consolidação "+s.Period, true).
		WithAuthor("Painel Financeiro", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(s.Companies) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(s) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(s *dto.GroupSummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("PAINEL FINANCEIRO CONSOLIDADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Período: %s   |   Empresas: %d", s.Period, s.TotalCompanies), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+s.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func totalsRow(s *dto.GroupSummaryDTO) core.Row {
	box := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 6}),
		)
	}
	return row.New(14).Add(
		box("Total de entradas", "R$ "+money.FormatBRL(s.TotalInflows), colorPrimary),
		box("Total de saídas", "R$ "+money.FormatBRL(s.TotalOutflows), colorPrimary),
		box("Saldo", "R$ "+money.FormatBRL(s.NetBalance), resultColor(s.NetBalance)),
		box("Margem geral", money.FormatPercent(s.MarginPercent), resultColor(s.NetBalance)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Empresa", 3, align.Left),
		h("CNPJ", 2, align.Left),
		h("Entradas", 2, align.Right),
		h("Saídas", 2, align.Right),
		h("Saldo", 2, align.Right),
		h("Margem", 1, align.Right),
	)
}

// tableDetailRows: una fila por empresa consolidada.
func tableDetailRows(companies []dto.ConsolidatedSummaryDTO) []core.Row {
	result := make([]core.Row, 0, len(companies))
	for _, c := range companies {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(c.CompanyName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(c.CNPJ, "—"), props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New(money.FormatBRL(c.TotalInflows), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatBRL(c.TotalOutflows), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatBRL(c.NetBalance), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: resultColor(c.NetBalance),
			})),
			col.New(1).Add(text.New(money.FormatPercent(c.MarginPercent), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func footerRows(s *dto.GroupSummaryDTO) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Com lucro: %d   |   Com prejuízo: %d   |   Em equilíbrio: %d",
				s.ProfitCount, s.LossCount, s.BreakEvenCount), props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
	}
	if len(s.Skipped) > 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Empresas não consolidadas:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorLoss}),
		)))
		for _, sk := range s.Skipped {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(fmt.Sprintf("#%d: %s", sk.CompanyID, sk.Reason), props.Text{Size: 7, Left: 2, Color: colorGray}),
			)))
		}
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func resultColor(d decimal.Decimal) *props.Color {
	if d.IsNegative() {
		return colorLoss
	}
	return colorProfit
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
