package usecase

import (
	"github.com/jhoicas/provision-audit-api/internal/application/dto"
	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
)

// Statistics instantánea de conteos: total, por estado y agrupado por
// segmento de mercado y tipo de actividad. Sin caché: siempre se recalcula
// contra el Store. Los registros sin clasificar caen en el bucket "Unknown".
func (uc *ProvisionUseCase) Statistics() (*dto.StatisticsResponse, error) {
	total, err := uc.repo.CountAll()
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int)
	for _, status := range []string{
		entity.StatusPendingAssignment,
		entity.StatusAuditAssigned,
		entity.StatusAuditInProgress,
		entity.StatusPassed,
		entity.StatusFailed,
		entity.StatusBackjob,
		entity.StatusCompleted,
	} {
		n, err := uc.repo.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		byStatus[status] = n
	}

	bySegment, err := uc.repo.CountGroupedBy("market_segment")
	if err != nil {
		return nil, err
	}
	byActivity, err := uc.repo.CountGroupedBy("activity_type")
	if err != nil {
		return nil, err
	}

	return &dto.StatisticsResponse{
		Total:             total,
		PendingAssignment: byStatus[entity.StatusPendingAssignment],
		AuditAssigned:     byStatus[entity.StatusAuditAssigned],
		AuditInProgress:   byStatus[entity.StatusAuditInProgress],
		Passed:            byStatus[entity.StatusPassed],
		Failed:            byStatus[entity.StatusFailed],
		Backjobs:          byStatus[entity.StatusBackjob],
		Completed:         byStatus[entity.StatusCompleted],
		ByMarketSegment:   bySegment,
		ByActivityType:    byActivity,
	}, nil
}
