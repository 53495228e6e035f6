package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una Provision.
// PENDING_ASSIGNMENT → AUDIT_ASSIGNED → AUDIT_IN_PROGRESS → AUDIT_COMPLETED
// → PASSED | FAILED → BACKJOB | COMPLETED. CANCELLED y SUSPENDED son
// alcanzables desde casi cualquier estado.
const (
	StatusPendingAssignment = "PENDING_ASSIGNMENT"
	StatusAuditAssigned     = "AUDIT_ASSIGNED"
	StatusAuditInProgress   = "AUDIT_IN_PROGRESS"
	StatusAuditCompleted    = "AUDIT_COMPLETED"
	StatusPassed            = "PASSED"
	StatusFailed            = "FAILED"
	StatusBackjob           = "BACKJOB"
	StatusCompleted         = "COMPLETED"
	StatusCancelled         = "CANCELLED"
	StatusSuspended         = "SUSPENDED"
)

// AllStatuses lista los estados válidos (orden de reporte en estadísticas).
var AllStatuses = []string{
	StatusPendingAssignment,
	StatusAuditAssigned,
	StatusAuditInProgress,
	StatusAuditCompleted,
	StatusPassed,
	StatusFailed,
	StatusBackjob,
	StatusCompleted,
	StatusCancelled,
	StatusSuspended,
}

// IsValidStatus indica si s es un estado conocido.
func IsValidStatus(s string) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Segmentos de mercado.
const (
	SegmentRBG        = "RBG"
	SegmentCBG        = "CBG"
	SegmentSME        = "SME"
	SegmentEnterprise = "ENTERPRISE"
)

// Tipos de elemento de red (NE).
const (
	NETypeFTTX   = "FTTX"
	NETypeCopper = "COPPER"
	NETypeFiber  = "FIBER"
)

// Provision representa una solicitud de aprovisionamiento de servicio en
// proceso de auditoría de calidad. RequestNumber es la clave visible para el
// usuario (generada o manual); ID es el identificador interno.
//
// Los campos opcionales son punteros: nil significa NULL en la columna y
// "no enviado" en los DTOs de actualización parcial.
type Provision struct {
	ID                    string
	RequestNumber         string
	IsManualRequestNumber bool

	// Información del cliente
	FirstName     string
	LastName      string
	AddressLine1  string
	Province      string
	City          string
	Barangay      string
	Landmark      *string
	ContactPhone  *string
	AccountNumber *int64

	// Despacho y actividad
	Resource               string
	Date                   time.Time
	PRDispatch             *string
	Status                 string
	ActivityType           *string
	VerificationType       *string
	ActivityLane           *string
	ActivityGrouping       *string
	ActivityClassification *string
	ActivityStatus         *string
	PositionInRoute        *int

	// Información del servicio
	MarketSegment     *string
	Zone              *string
	Exchange          *string
	NodeLocation      *string
	CabinetLocation   *string
	ModemOwnership    *string
	Priority          *string
	HomeServiceDevice *string
	PackageType       *string
	NEType            *string
	ComplaintType     *string

	// Tiempos (informativos; no se valida orden entre ellos)
	DateCreated         *time.Time
	DateExtracted       *time.Time
	StartedDateTime     *time.Time
	CompletionDateTime  *time.Time
	Start               *string
	End                 *string
	Sawa                *string
	TandemOutsideStatus *string

	// Geolocalización
	Latitude  *decimal.Decimal
	Longitude *decimal.Decimal

	// Gestión de calidad
	AssignedAuditorID *string
	AssignedAuditor   *User
	UploadedByID      string
	UploadedBy        *User
	AuditNotes        *string
	AuditPhotos       *string
	QualityScore      *int

	// Observaciones
	Remarks      *string
	ManagerNotes *string

	// Campos no modelados explícitamente (jsonb)
	ExtendedData map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre completo del cliente.
func (p *Provision) FullName() string {
	return p.FirstName + " " + p.LastName
}

// FullAddress dirección completa en una línea.
func (p *Provision) FullAddress() string {
	return p.AddressLine1 + ", " + p.Barangay + ", " + p.City + ", " + p.Province
}
