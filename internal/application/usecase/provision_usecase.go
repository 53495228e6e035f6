package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/provision-audit-api/internal/application/dto"
	"github.com/jhoicas/provision-audit-api/internal/domain"
	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
	"github.com/jhoicas/provision-audit-api/internal/domain/reqnum"
	"github.com/jhoicas/provision-audit-api/internal/domain/repository"
)

// ProvisionUseCase casos de uso del ciclo de vida de una Provision: creación,
// actualización parcial, asignación de auditor, borrado e importación por
// lotes. Es el único escritor del campo Status.
type ProvisionUseCase struct {
	repo      repository.ProvisionRepository
	userRepo  repository.UserRepository
	tx        ProvisionTxRunner
	generator *reqnum.Generator
}

// NewProvisionUseCase construye el caso de uso; el generador de números usa
// el propio repositorio como fuente de secuencias.
func NewProvisionUseCase(repo repository.ProvisionRepository, userRepo repository.UserRepository, tx ProvisionTxRunner) *ProvisionUseCase {
	return &ProvisionUseCase{
		repo:      repo,
		userRepo:  userRepo,
		tx:        tx,
		generator: reqnum.NewGenerator(repo),
	}
}

// Create resuelve el request number (manual o generado), valida los campos
// requeridos y persiste. Una colisión de request number (manual o por carrera
// del generador) llega como domain.ErrDuplicate desde el Store; el caller
// decide si reintenta.
func (uc *ProvisionUseCase) Create(in dto.CreateProvisionRequest, creatorID string) (*dto.ProvisionResponse, error) {
	if err := validateRequiredFields(in); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	requestNumber := strings.TrimSpace(in.RequestNumber)
	manual := requestNumber != ""
	if manual {
		if err := reqnum.ValidateManual(requestNumber); err != nil {
			return nil, err
		}
		existing, err := uc.repo.GetByRequestNumber(requestNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	} else {
		requestNumber, err = uc.generator.Generate()
		if err != nil {
			return nil, err
		}
	}

	// Estado inicial: PENDING_ASSIGNMENT salvo override del caller. El
	// override se acepta pero debe ser un estado conocido.
	status := entity.StatusPendingAssignment
	if in.Status != nil && *in.Status != "" {
		if !entity.IsValidStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		status = *in.Status
	}

	now := time.Now()
	dateCreated := in.DateCreated
	if dateCreated == nil {
		dc := now
		dateCreated = &dc
	}

	p := &entity.Provision{
		ID:                    uuid.New().String(),
		RequestNumber:         requestNumber,
		IsManualRequestNumber: manual,

		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		AddressLine1:  strings.TrimSpace(in.AddressLine1),
		Province:      strings.TrimSpace(in.Province),
		City:          strings.TrimSpace(in.City),
		Barangay:      strings.TrimSpace(in.Barangay),
		Landmark:      in.Landmark,
		ContactPhone:  in.ContactPhone,
		AccountNumber: in.AccountNumber,

		Resource:               strings.TrimSpace(in.Resource),
		Date:                   date,
		PRDispatch:             in.PRDispatch,
		Status:                 status,
		ActivityType:           in.ActivityType,
		VerificationType:       in.VerificationType,
		ActivityLane:           in.ActivityLane,
		ActivityGrouping:       in.ActivityGrouping,
		ActivityClassification: in.ActivityClassification,
		ActivityStatus:         in.ActivityStatus,
		PositionInRoute:        in.PositionInRoute,

		MarketSegment:     in.MarketSegment,
		Zone:              in.Zone,
		Exchange:          in.Exchange,
		NodeLocation:      in.NodeLocation,
		CabinetLocation:   in.CabinetLocation,
		ModemOwnership:    in.ModemOwnership,
		Priority:          in.Priority,
		HomeServiceDevice: in.HomeServiceDevice,
		PackageType:       in.PackageType,
		NEType:            in.NEType,
		ComplaintType:     in.ComplaintType,

		DateCreated:         dateCreated,
		DateExtracted:       in.DateExtracted,
		StartedDateTime:     in.StartedDateTime,
		CompletionDateTime:  in.CompletionDateTime,
		Start:               in.Start,
		End:                 in.End,
		Sawa:                in.Sawa,
		TandemOutsideStatus: in.TandemOutsideStatus,

		Latitude:  in.Latitude,
		Longitude: in.Longitude,

		AssignedAuditorID: in.AssignedAuditorID,
		UploadedByID:      creatorID,
		AuditNotes:        in.AuditNotes,
		AuditPhotos:       in.AuditPhotos,
		QualityScore:      in.QualityScore,

		Remarks:      in.Remarks,
		ManagerNotes: in.ManagerNotes,
		ExtendedData: in.ExtendedData,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProvisionResponse(p), nil
}

// GetByID carga una Provision con sus relaciones.
func (uc *ProvisionUseCase) GetByID(id string) (*dto.ProvisionResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProvisionResponse(p), nil
}

// Update aplica una actualización parcial: solo los campos presentes en el
// DTO sobreescriben el registro; el resto queda intacto.
//
// Si se asigna auditor, el usuario debe existir (ErrUserNotFound) y tener rol
// QA_AUDITOR (ErrAuditorRequired); en ese caso Status se fuerza a
// AUDIT_ASSIGNED aunque la misma llamada traiga otro status explícito.
func (uc *ProvisionUseCase) Update(id string, in dto.UpdateProvisionRequest) (*dto.ProvisionResponse, error) {
	return uc.updateIn(uc.repo, id, in)
}

// updateIn es Update contra un repositorio arbitrario (el normal o uno atado
// a una transacción de lote).
func (uc *ProvisionUseCase) updateIn(repo repository.ProvisionRepository, id string, in dto.UpdateProvisionRequest) (*dto.ProvisionResponse, error) {
	p, err := repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	// Cambio de request number: revalidar formato y unicidad contra los demás.
	if in.RequestNumber != nil {
		rn := strings.TrimSpace(*in.RequestNumber)
		if rn == "" {
			return nil, domain.ErrInvalidInput
		}
		if rn != p.RequestNumber {
			if err := reqnum.ValidateManual(rn); err != nil {
				return nil, err
			}
			other, err := repo.GetByRequestNumber(rn)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != p.ID {
				return nil, domain.ErrDuplicate
			}
			p.RequestNumber = rn
			p.IsManualRequestNumber = true
		}
	}

	if err := mergeUpdate(p, in); err != nil {
		return nil, err
	}

	// La asignación de auditor gana el campo Status: se resuelve al final,
	// después del merge, para que pise cualquier status explícito.
	if in.AssignedAuditorID != nil {
		auditorID := strings.TrimSpace(*in.AssignedAuditorID)
		if auditorID == "" {
			p.AssignedAuditorID = nil
			p.AssignedAuditor = nil
		} else {
			auditor, err := uc.userRepo.GetByID(auditorID)
			if err != nil {
				return nil, err
			}
			if auditor == nil {
				return nil, domain.ErrUserNotFound
			}
			if !auditor.IsAuditor() {
				return nil, domain.ErrAuditorRequired
			}
			p.AssignedAuditorID = &auditorID
			p.AssignedAuditor = auditor
			p.Status = entity.StatusAuditAssigned
		}
	}

	p.UpdatedAt = time.Now()
	if err := repo.Update(p); err != nil {
		return nil, err
	}
	// Recargar para devolver relaciones consistentes con el Store.
	updated, err := repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return toProvisionResponse(updated), nil
}

// Remove borra definitivamente (sin soft-delete).
func (uc *ProvisionUseCase) Remove(id string) error {
	return uc.removeIn(uc.repo, id)
}

func (uc *ProvisionUseCase) removeIn(repo repository.ProvisionRepository, id string) error {
	p, err := repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return repo.Delete(id)
}

// BulkImport procesa filas de forma secuencial e independiente: el fallo de
// una fila se registra como "Row {n}: {mensaje}" y no aborta el lote. No hay
// atomicidad entre filas; el éxito parcial se reporta, no se revierte.
func (uc *ProvisionUseCase) BulkImport(rows []dto.CreateProvisionRequest, creatorID string) *dto.BulkImportResult {
	result := &dto.BulkImportResult{Errors: []string{}}
	for i, row := range rows {
		if _, err := uc.Create(row, creatorID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+1, err.Error()))
			continue
		}
		result.Successful++
	}
	return result
}

// BulkUpdate aplica la misma actualización parcial a varios ids dentro de una
// transacción: a diferencia del import, el lote es todo-o-nada y el primer
// error revierte lo ya actualizado.
func (uc *ProvisionUseCase) BulkUpdate(in dto.BulkUpdateRequest) ([]ProvisionResult, error) {
	out := make([]ProvisionResult, 0, len(in.IDs))
	err := uc.tx.Run(func(repo repository.ProvisionRepository) error {
		for _, id := range in.IDs {
			updated, err := uc.updateIn(repo, id, in.Updates)
			if err != nil {
				return fmt.Errorf("actualizar %s: %w", id, err)
			}
			out = append(out, ProvisionResult{ID: id, Provision: updated})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BulkDelete elimina varios ids dentro de una transacción y devuelve cuántos
// se borraron. Un id inexistente revierte el lote completo.
func (uc *ProvisionUseCase) BulkDelete(in dto.BulkDeleteRequest) (int, error) {
	deleted := 0
	err := uc.tx.Run(func(repo repository.ProvisionRepository) error {
		for _, id := range in.IDs {
			if err := uc.removeIn(repo, id); err != nil {
				return fmt.Errorf("eliminar %s: %w", id, err)
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ProvisionResult par id/provisión para respuestas de operaciones masivas.
type ProvisionResult struct {
	ID        string                 `json:"id"`
	Provision *dto.ProvisionResponse `json:"provision"`
}

// validateRequiredFields exige los campos mínimos de creación no vacíos.
func validateRequiredFields(in dto.CreateProvisionRequest) error {
	required := []string{
		in.FirstName, in.LastName, in.AddressLine1,
		in.Province, in.City, in.Barangay,
		in.Resource, in.Date,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// parseDate acepta YYYY-MM-DD o RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// mergeUpdate copia campo a campo los valores presentes del DTO al registro.
// Nil significa "no tocar". Status y fecha se validan al aplicarse.
func mergeUpdate(p *entity.Provision, in dto.UpdateProvisionRequest) error {
	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.AddressLine1 != nil {
		p.AddressLine1 = *in.AddressLine1
	}
	if in.Province != nil {
		p.Province = *in.Province
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Barangay != nil {
		p.Barangay = *in.Barangay
	}
	if in.Landmark != nil {
		p.Landmark = in.Landmark
	}
	if in.ContactPhone != nil {
		p.ContactPhone = in.ContactPhone
	}
	if in.AccountNumber != nil {
		p.AccountNumber = in.AccountNumber
	}
	if in.Resource != nil {
		p.Resource = *in.Resource
	}
	if in.Date != nil {
		date, err := parseDate(*in.Date)
		if err != nil {
			return domain.ErrInvalidInput
		}
		p.Date = date
	}
	if in.PRDispatch != nil {
		p.PRDispatch = in.PRDispatch
	}
	if in.Status != nil {
		if !entity.IsValidStatus(*in.Status) {
			return domain.ErrInvalidInput
		}
		p.Status = *in.Status
	}
	if in.ActivityType != nil {
		p.ActivityType = in.ActivityType
	}
	if in.VerificationType != nil {
		p.VerificationType = in.VerificationType
	}
	if in.ActivityLane != nil {
		p.ActivityLane = in.ActivityLane
	}
	if in.ActivityGrouping != nil {
		p.ActivityGrouping = in.ActivityGrouping
	}
	if in.ActivityClassification != nil {
		p.ActivityClassification = in.ActivityClassification
	}
	if in.ActivityStatus != nil {
		p.ActivityStatus = in.ActivityStatus
	}
	if in.PositionInRoute != nil {
		p.PositionInRoute = in.PositionInRoute
	}
	if in.MarketSegment != nil {
		p.MarketSegment = in.MarketSegment
	}
	if in.Zone != nil {
		p.Zone = in.Zone
	}
	if in.Exchange != nil {
		p.Exchange = in.Exchange
	}
	if in.NodeLocation != nil {
		p.NodeLocation = in.NodeLocation
	}
	if in.CabinetLocation != nil {
		p.CabinetLocation = in.CabinetLocation
	}
	if in.ModemOwnership != nil {
		p.ModemOwnership = in.ModemOwnership
	}
	if in.Priority != nil {
		p.Priority = in.Priority
	}
	if in.HomeServiceDevice != nil {
		p.HomeServiceDevice = in.HomeServiceDevice
	}
	if in.PackageType != nil {
		p.PackageType = in.PackageType
	}
	if in.NEType != nil {
		p.NEType = in.NEType
	}
	if in.ComplaintType != nil {
		p.ComplaintType = in.ComplaintType
	}
	if in.DateCreated != nil {
		p.DateCreated = in.DateCreated
	}
	if in.DateExtracted != nil {
		p.DateExtracted = in.DateExtracted
	}
	if in.StartedDateTime != nil {
		p.StartedDateTime = in.StartedDateTime
	}
	if in.CompletionDateTime != nil {
		p.CompletionDateTime = in.CompletionDateTime
	}
	if in.Start != nil {
		p.Start = in.Start
	}
	if in.End != nil {
		p.End = in.End
	}
	if in.Sawa != nil {
		p.Sawa = in.Sawa
	}
	if in.TandemOutsideStatus != nil {
		p.TandemOutsideStatus = in.TandemOutsideStatus
	}
	if in.Latitude != nil {
		p.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		p.Longitude = in.Longitude
	}
	if in.AuditNotes != nil {
		p.AuditNotes = in.AuditNotes
	}
	if in.AuditPhotos != nil {
		p.AuditPhotos = in.AuditPhotos
	}
	if in.QualityScore != nil {
		p.QualityScore = in.QualityScore
	}
	if in.Remarks != nil {
		p.Remarks = in.Remarks
	}
	if in.ManagerNotes != nil {
		p.ManagerNotes = in.ManagerNotes
	}
	if in.ExtendedData != nil {
		p.ExtendedData = in.ExtendedData
	}
	return nil
}
