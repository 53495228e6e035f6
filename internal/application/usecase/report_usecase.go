package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/provision-audit-api/internal/domain"
	"github.com/jhoicas/provision-audit-api/internal/domain/repository"
)

// ReportUseCase genera el reporte de auditoría (PDF) de un aprovisionamiento.
type ReportUseCase struct {
	repo      repository.ProvisionRepository
	generator AuditReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ProvisionRepository, generator AuditReportGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, generator: generator}
}

// DownloadAuditReport carga el aprovisionamiento con sus relaciones y genera
// el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el aprovisionamiento no existe.
func (uc *ReportUseCase) DownloadAuditReport(ctx context.Context, id string) ([]byte, string, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener aprovisionamiento: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err := uc.generator.GenerateAuditReport(ctx, p)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}

	filename := fmt.Sprintf("audit-report-%s.pdf", p.RequestNumber)
	return pdfBytes, filename, nil
}
