package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/provision-audit-api/internal/domain"
	"github.com/jhoicas/provision-audit-api/internal/domain/repository"
)

// ExportUseCase produce descargas del listado completo de aprovisionamientos.
type ExportUseCase struct {
	repo      repository.ProvisionRepository
	exporters map[string]ProvisionExporter
	now       func() time.Time
}

// NewExportUseCase registra los exportadores por formato (csv, xlsx, xml).
func NewExportUseCase(repo repository.ProvisionRepository, exporters ...ProvisionExporter) *ExportUseCase {
	byFormat := make(map[string]ProvisionExporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Extension()] = e
	}
	return &ExportUseCase{repo: repo, exporters: byFormat, now: time.Now}
}

// Export serializa todos los aprovisionamientos en el formato pedido.
//
// Retorna:
//   - (bytes, filename, contentType, nil)  si todo sale bien.
//   - domain.ErrInvalidInput               si el formato no está registrado.
func (uc *ExportUseCase) Export(format string) ([]byte, string, string, error) {
	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, "", "", domain.ErrInvalidInput
	}

	provisions, err := uc.repo.ListAll()
	if err != nil {
		return nil, "", "", fmt.Errorf("export: listar aprovisionamientos: %w", err)
	}

	out, err := exporter.Export(provisions)
	if err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("provisions-export-%s.%s",
		uc.now().Format("20060102-150405"), exporter.Extension())
	return out, filename, exporter.ContentType(), nil
}
