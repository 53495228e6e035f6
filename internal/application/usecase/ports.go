package usecase

import (
	"context"

	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
	"github.com/jhoicas/provision-audit-api/internal/domain/repository"
)

// ProvisionTxRunner ejecuta fn con un repositorio atado a una transacción:
// si fn retorna error se hace rollback, si no commit. Lo usan las operaciones
// masivas para que el lote sea todo-o-nada.
type ProvisionTxRunner interface {
	Run(fn func(repo repository.ProvisionRepository) error) error
}

// ProvisionExporter serializa un conjunto de aprovisionamientos a un formato
// descargable (csv, xlsx, xml). Cada implementación vive en infrastructure/export.
type ProvisionExporter interface {
	// Export devuelve el documento completo en bytes.
	Export(provisions []*entity.Provision) ([]byte, error)
	// ContentType devuelve el MIME type para la respuesta HTTP.
	ContentType() string
	// Extension devuelve la extensión de archivo sin punto (ej: "csv").
	Extension() string
}

// AuditReportGenerator genera el reporte de auditoría en PDF de un aprovisionamiento.
type AuditReportGenerator interface {
	GenerateAuditReport(ctx context.Context, provision *entity.Provision) ([]byte, error)
}
