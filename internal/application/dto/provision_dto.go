package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProvisionRequest entrada para crear una Provision.
// RequestNumber vacío = el sistema genera uno; no vacío = número manual
// (se valida formato y unicidad). Date en formato YYYY-MM-DD.
type CreateProvisionRequest struct {
	RequestNumber string `json:"requestNumber" validate:"omitempty,max=25"`

	FirstName     string  `json:"firstName" validate:"required"`
	LastName      string  `json:"lastName" validate:"required"`
	AddressLine1  string  `json:"addressLine1" validate:"required"`
	Province      string  `json:"province" validate:"required"`
	City          string  `json:"city" validate:"required"`
	Barangay      string  `json:"barangay" validate:"required"`
	Landmark      *string `json:"landmark"`
	ContactPhone  *string `json:"contactPhone"`
	AccountNumber *int64  `json:"accountNumber"`

	Resource               string  `json:"resource" validate:"required"`
	Date                   string  `json:"date" validate:"required"`
	PRDispatch             *string `json:"prDispatch"`
	Status                 *string `json:"status"`
	ActivityType           *string `json:"activityType"`
	VerificationType       *string `json:"verificationType"`
	ActivityLane           *string `json:"activityLane"`
	ActivityGrouping       *string `json:"activityGrouping"`
	ActivityClassification *string `json:"activityClassification"`
	ActivityStatus         *string `json:"activityStatus"`
	PositionInRoute        *int    `json:"positionInRoute" validate:"omitempty,min=0,max=999"`

	MarketSegment     *string `json:"marketSegment"`
	Zone              *string `json:"zone"`
	Exchange          *string `json:"exchange"`
	NodeLocation      *string `json:"nodeLocation"`
	CabinetLocation   *string `json:"cabinetLocation"`
	ModemOwnership    *string `json:"modemOwnership"`
	Priority          *string `json:"priority"`
	HomeServiceDevice *string `json:"homeServiceDevice"`
	PackageType       *string `json:"packageType"`
	NEType            *string `json:"neType"`
	ComplaintType     *string `json:"complaintType"`

	DateCreated         *time.Time `json:"dateCreated"`
	DateExtracted       *time.Time `json:"dateExtracted"`
	StartedDateTime     *time.Time `json:"startedDateTime"`
	CompletionDateTime  *time.Time `json:"completionDateTime"`
	Start               *string    `json:"start"`
	End                 *string    `json:"end"`
	Sawa                *string    `json:"sawa"`
	TandemOutsideStatus *string    `json:"tandemOutsideStatus"`

	Latitude  *decimal.Decimal `json:"latitude"`
	Longitude *decimal.Decimal `json:"longitude"`

	AssignedAuditorID *string `json:"assignedAuditorId"`
	AuditNotes        *string `json:"auditNotes"`
	AuditPhotos       *string `json:"auditPhotos"`
	QualityScore      *int    `json:"qualityScore" validate:"omitempty,min=1,max=10"`

	Remarks      *string        `json:"remarks"`
	ManagerNotes *string        `json:"managerNotes"`
	ExtendedData map[string]any `json:"extendedData"`
}

// UpdateProvisionRequest entrada de actualización parcial: todo puntero,
// nil significa "no tocar el campo" (semántica merge, no replace).
type UpdateProvisionRequest struct {
	RequestNumber *string `json:"requestNumber"`

	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	AddressLine1  *string `json:"addressLine1"`
	Province      *string `json:"province"`
	City          *string `json:"city"`
	Barangay      *string `json:"barangay"`
	Landmark      *string `json:"landmark"`
	ContactPhone  *string `json:"contactPhone"`
	AccountNumber *int64  `json:"accountNumber"`

	Resource               *string `json:"resource"`
	Date                   *string `json:"date"`
	PRDispatch             *string `json:"prDispatch"`
	Status                 *string `json:"status"`
	ActivityType           *string `json:"activityType"`
	VerificationType       *string `json:"verificationType"`
	ActivityLane           *string `json:"activityLane"`
	ActivityGrouping       *string `json:"activityGrouping"`
	ActivityClassification *string `json:"activityClassification"`
	ActivityStatus         *string `json:"activityStatus"`
	PositionInRoute        *int    `json:"positionInRoute"`

	MarketSegment     *string `json:"marketSegment"`
	Zone              *string `json:"zone"`
	Exchange          *string `json:"exchange"`
	NodeLocation      *string `json:"nodeLocation"`
	CabinetLocation   *string `json:"cabinetLocation"`
	ModemOwnership    *string `json:"modemOwnership"`
	Priority          *string `json:"priority"`
	HomeServiceDevice *string `json:"homeServiceDevice"`
	PackageType       *string `json:"packageType"`
	NEType            *string `json:"neType"`
	ComplaintType     *string `json:"complaintType"`

	DateCreated         *time.Time `json:"dateCreated"`
	DateExtracted       *time.Time `json:"dateExtracted"`
	StartedDateTime     *time.Time `json:"startedDateTime"`
	CompletionDateTime  *time.Time `json:"completionDateTime"`
	Start               *string    `json:"start"`
	End                 *string    `json:"end"`
	Sawa                *string    `json:"sawa"`
	TandemOutsideStatus *string    `json:"tandemOutsideStatus"`

	Latitude  *decimal.Decimal `json:"latitude"`
	Longitude *decimal.Decimal `json:"longitude"`

	AssignedAuditorID *string `json:"assignedAuditorId"`
	AuditNotes        *string `json:"auditNotes"`
	AuditPhotos       *string `json:"auditPhotos"`
	QualityScore      *int    `json:"qualityScore" validate:"omitempty,min=1,max=10"`

	Remarks      *string        `json:"remarks"`
	ManagerNotes *string        `json:"managerNotes"`
	ExtendedData map[string]any `json:"extendedData"`
}

// UserSummary datos mínimos de un usuario relacionado en respuestas.
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// ProvisionResponse salida de una Provision con relaciones cargadas.
type ProvisionResponse struct {
	ID                    string `json:"id"`
	RequestNumber         string `json:"requestNumber"`
	IsManualRequestNumber bool   `json:"isManualRequestNumber"`

	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	AddressLine1  string  `json:"addressLine1"`
	Province      string  `json:"province"`
	City          string  `json:"city"`
	Barangay      string  `json:"barangay"`
	Landmark      *string `json:"landmark,omitempty"`
	ContactPhone  *string `json:"contactPhone,omitempty"`
	AccountNumber *int64  `json:"accountNumber,omitempty"`

	Resource               string  `json:"resource"`
	Date                   string  `json:"date"`
	PRDispatch             *string `json:"prDispatch,omitempty"`
	Status                 string  `json:"status"`
	ActivityType           *string `json:"activityType,omitempty"`
	VerificationType       *string `json:"verificationType,omitempty"`
	ActivityLane           *string `json:"activityLane,omitempty"`
	ActivityGrouping       *string `json:"activityGrouping,omitempty"`
	ActivityClassification *string `json:"activityClassification,omitempty"`
	ActivityStatus         *string `json:"activityStatus,omitempty"`
	PositionInRoute        *int    `json:"positionInRoute,omitempty"`

	MarketSegment     *string `json:"marketSegment,omitempty"`
	Zone              *string `json:"zone,omitempty"`
	Exchange          *string `json:"exchange,omitempty"`
	NodeLocation      *string `json:"nodeLocation,omitempty"`
	CabinetLocation   *string `json:"cabinetLocation,omitempty"`
	ModemOwnership    *string `json:"modemOwnership,omitempty"`
	Priority          *string `json:"priority,omitempty"`
	HomeServiceDevice *string `json:"homeServiceDevice,omitempty"`
	PackageType       *string `json:"packageType,omitempty"`
	NEType            *string `json:"neType,omitempty"`
	ComplaintType     *string `json:"complaintType,omitempty"`

	DateCreated         *time.Time `json:"dateCreated,omitempty"`
	DateExtracted       *time.Time `json:"dateExtracted,omitempty"`
	StartedDateTime     *time.Time `json:"startedDateTime,omitempty"`
	CompletionDateTime  *time.Time `json:"completionDateTime,omitempty"`
	Start               *string    `json:"start,omitempty"`
	End                 *string    `json:"end,omitempty"`
	Sawa                *string    `json:"sawa,omitempty"`
	TandemOutsideStatus *string    `json:"tandemOutsideStatus,omitempty"`

	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`

	AssignedAuditorID *string      `json:"assignedAuditorId,omitempty"`
	AssignedAuditor   *UserSummary `json:"assignedAuditor,omitempty"`
	UploadedByID      string       `json:"uploadedById"`
	UploadedBy        *UserSummary `json:"uploadedBy,omitempty"`
	AuditNotes        *string      `json:"auditNotes,omitempty"`
	AuditPhotos       *string      `json:"auditPhotos,omitempty"`
	QualityScore      *int         `json:"qualityScore,omitempty"`

	Remarks      *string        `json:"remarks,omitempty"`
	ManagerNotes *string        `json:"managerNotes,omitempty"`
	ExtendedData map[string]any `json:"extendedData,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProvisionListResponse página de provisiones con metadatos.
type ProvisionListResponse struct {
	Provisions []ProvisionResponse `json:"provisions"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"totalPages"`
}

// StatisticsResponse conteos por estado y agrupaciones.
type StatisticsResponse struct {
	Total             int            `json:"total"`
	PendingAssignment int            `json:"pendingAssignment"`
	AuditAssigned     int            `json:"auditAssigned"`
	AuditInProgress   int            `json:"auditInProgress"`
	Passed            int            `json:"passed"`
	Failed            int            `json:"failed"`
	Backjobs          int            `json:"backjobs"`
	Completed         int            `json:"completed"`
	ByMarketSegment   map[string]int `json:"byMarketSegment"`
	ByActivityType    map[string]int `json:"byActivityType"`
}

// BulkImportResult resumen de una importación por lotes.
type BulkImportResult struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// BulkUpdateRequest aplica la misma actualización parcial a varios ids.
type BulkUpdateRequest struct {
	IDs     []string               `json:"ids" validate:"required,min=1"`
	Updates UpdateProvisionRequest `json:"updates"`
}

// BulkDeleteRequest elimina varios ids.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}
