// Package xlsx exporta el resumen consolidado del grupo a una planilla Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/ports"
)

const (
	sheetCompanies = "Empresas"
	sheetSkipped   = "Ignoradas"
)

var companyHeadings = []string{
	"Empresa ID", "Empresa", "CNPJ",
	"Contas a Receber", "Recebidas", "Fluxo Entradas", "Faturamento Bruto", "Total Entradas",
	"Contas a Pagar", "Pagas", "Fluxo Saídas", "Custos Fixos", "Custos Variáveis", "Impostos", "Funcionários", "Total Saídas",
	"Saldo Líquido", "Margem %", "Status",
}

var _ ports.GroupReportRenderer = (*GroupReportExporter)(nil)

// GroupReportExporter implementa ports.GroupReportRenderer con excelize.
type GroupReportExporter struct{}

func NewGroupReportExporter() *GroupReportExporter { return &GroupReportExporter{} }

func (e *GroupReportExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *GroupReportExporter) Extension() string { return "xlsx" }

// Render arma el libro: una fila por empresa, fila de totales y hoja con las empresas ignoradas.
func (e *GroupReportExporter) Render(_ context.Context, s *dto.GroupSummaryDTO) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("xlsx: resumen vacío")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetCompanies); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := writeRow(f, sheetCompanies, 1, headingValues(companyHeadings)); err != nil {
		return nil, err
	}
	rowNo := 2
	for _, c := range s.Companies {
		values := []any{
			c.CompanyID, c.CompanyName, c.CNPJ,
			c.Receivables.InexactFloat64(), c.ReceivablesReceived.InexactFloat64(), c.CashInflows.InexactFloat64(),
			c.GrossRevenue.InexactFloat64(), c.TotalInflows.InexactFloat64(),
			c.Payables.InexactFloat64(), c.PayablesPaid.InexactFloat64(), c.CashOutflows.InexactFloat64(),
			c.FixedCosts.InexactFloat64(), c.VariableCosts.InexactFloat64(), c.Taxes.InexactFloat64(),
			c.Payroll.InexactFloat64(), c.TotalOutflows.InexactFloat64(),
			c.NetBalance.InexactFloat64(), c.MarginPercent.Round(2).InexactFloat64(), c.Status,
		}
		if err := writeRow(f, sheetCompanies, rowNo, values); err != nil {
			return nil, err
		}
		rowNo++
	}

	totals := make([]any, len(companyHeadings))
	totals[1] = "TOTAL " + s.Period
	totals[7] = s.TotalInflows.InexactFloat64()
	totals[15] = s.TotalOutflows.InexactFloat64()
	totals[16] = s.NetBalance.InexactFloat64()
	totals[17] = s.MarginPercent.Round(2).InexactFloat64()
	if err := writeRow(f, sheetCompanies, rowNo, totals); err != nil {
		return nil, err
	}

	last, _ := excelize.CoordinatesToCellName(len(companyHeadings), 1)
	_ = f.SetCellStyle(sheetCompanies, "A1", last, bold)
	first, _ := excelize.CoordinatesToCellName(1, rowNo)
	lastTotal, _ := excelize.CoordinatesToCellName(len(companyHeadings), rowNo)
	_ = f.SetCellStyle(sheetCompanies, first, lastTotal, bold)
	_ = f.SetColWidth(sheetCompanies, "B", "B", 32)
	_ = f.SetColWidth(sheetCompanies, "C", "C", 20)

	if len(s.Skipped) > 0 {
		if _, err := f.NewSheet(sheetSkipped); err != nil {
			return nil, fmt.Errorf("xlsx: nueva hoja: %w", err)
		}
		if err := writeRow(f, sheetSkipped, 1, []any{"Empresa ID", "Motivo"}); err != nil {
			return nil, err
		}
		for i, sk := range s.Skipped {
			if err := writeRow(f, sheetSkipped, i+2, []any{sk.CompanyID, sk.Reason}); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func headingValues(h []string) []any {
	out := make([]any, len(h))
	for i, v := range h {
		out[i] = v
	}
	return out
}

func writeRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", rowNo, err)
	}
	return nil
}
