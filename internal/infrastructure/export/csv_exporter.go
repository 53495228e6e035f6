package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
)

// CSVExporter exporta a CSV (RFC 4180, UTF-8).
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (e *CSVExporter) ContentType() string { return "text/csv" }
func (e *CSVExporter) Extension() string   { return "csv" }

// Export escribe encabezado + una fila por aprovisionamiento.
func (e *CSVExporter) Export(provisions []*entity.Provision) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers()); err != nil {
		return nil, fmt.Errorf("export: escribir encabezado csv: %w", err)
	}
	for _, p := range provisions {
		if err := w.Write(rowValues(p)); err != nil {
			return nil, fmt.Errorf("export: escribir fila csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: volcar csv: %w", err)
	}
	return buf.Bytes(), nil
}
