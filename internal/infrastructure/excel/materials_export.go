// Package excel genera el export XLSX del inventario de materias primas.
package excel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/aromalab/aromalab-api/internal/domain/codes"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
)

var materialExportHeaders = []string{
	"Code", "Désignation", "N° CAS", "Fournisseur", "Stock (kg)", "Prix (€/kg)", "Valeur (€)",
}

// MaterialsExporter produce el libro XLSX del inventario.
type MaterialsExporter struct{}

// NewMaterialsExporter construye el exportador.
func NewMaterialsExporter() *MaterialsExporter { return &MaterialsExporter{} }

// Export genera el libro con una fila por materia prima y una fila resumen,
// y devuelve los bytes del archivo junto con el nombre sugerido.
func (e *MaterialsExporter) Export(materials []*entity.RawMaterial) ([]byte, string, error) {
	f := excelize.NewFile()
	sheet := "Inventaire"
	f.SetSheetName("Sheet1", sheet)

	// Cabecera en negrita con fondo
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range materialExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	totalValue := decimal.Zero
	for rowIdx, m := range materials {
		row := rowIdx + 2
		value := m.Stock.Mul(m.Price)
		totalValue = totalValue.Add(value)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), codes.FormatMaterialCode(m.Code))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Designation)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.CAS)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.Supplier)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), m.Stock.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), m.Price.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), value.InexactFloat64())
	}

	// Fila resumen
	summaryRow := len(materials) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%d matières premières", len(materials)))
	f.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), totalValue.InexactFloat64())
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	colWidths := []float64{10, 32, 14, 22, 12, 12, 12}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("excel: escribir libro: %w", err)
	}
	filename := fmt.Sprintf("inventaire_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
