package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
)

const sheetName = "Provisions"

// ExcelExporter exporta a XLSX usando excelize.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (e *ExcelExporter) Extension() string { return "xlsx" }

// Export genera el libro con una hoja: encabezado en negrita + una fila por
// aprovisionamiento.
func (e *ExcelExporter) Export(provisions []*entity.Provision) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("export: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	// La hoja por defecto "Sheet1" sobra.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export: eliminar hoja por defecto: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("export: crear estilo: %w", err)
	}

	for i, h := range headers() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export: celda de encabezado: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("export: escribir encabezado: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("export: estilo de encabezado: %w", err)
		}
	}

	for r, p := range provisions {
		for c, v := range rowValues(p) {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("export: celda de datos: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("export: escribir celda: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
