// Package export serializa listados de aprovisionamientos a formatos
// descargables (CSV, XLSX, XML). Las tres implementaciones comparten la misma
// tabla de columnas para que los formatos sean intercambiables columna a
// columna.
package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
)

// column define una celda exportable: encabezado + extractor de valor.
type column struct {
	header string
	value  func(p *entity.Provision) string
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func int64OrEmpty(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateTimeLayout)
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func userName(u *entity.User) string {
	if u == nil {
		return ""
	}
	return u.FirstName + " " + u.LastName
}

// columns es la tabla canónica de exportación. El orden define el orden de
// columnas en CSV/XLSX y de elementos hijos en XML.
var columns = []column{
	{"Request Number", func(p *entity.Provision) string { return p.RequestNumber }},
	{"Status", func(p *entity.Provision) string { return p.Status }},
	{"First Name", func(p *entity.Provision) string { return p.FirstName }},
	{"Last Name", func(p *entity.Provision) string { return p.LastName }},
	{"Address", func(p *entity.Provision) string { return p.AddressLine1 }},
	{"Province", func(p *entity.Provision) string { return p.Province }},
	{"City", func(p *entity.Provision) string { return p.City }},
	{"Barangay", func(p *entity.Provision) string { return p.Barangay }},
	{"Landmark", func(p *entity.Provision) string { return strOrEmpty(p.Landmark) }},
	{"Contact Phone", func(p *entity.Provision) string { return strOrEmpty(p.ContactPhone) }},
	{"Account Number", func(p *entity.Provision) string { return int64OrEmpty(p.AccountNumber) }},
	{"Resource", func(p *entity.Provision) string { return p.Resource }},
	{"Date", func(p *entity.Provision) string { return p.Date.Format(dateLayout) }},
	{"PR Dispatch", func(p *entity.Provision) string { return strOrEmpty(p.PRDispatch) }},
	{"Activity Type", func(p *entity.Provision) string { return strOrEmpty(p.ActivityType) }},
	{"Verification Type", func(p *entity.Provision) string { return strOrEmpty(p.VerificationType) }},
	{"Activity Lane", func(p *entity.Provision) string { return strOrEmpty(p.ActivityLane) }},
	{"Activity Grouping", func(p *entity.Provision) string { return strOrEmpty(p.ActivityGrouping) }},
	{"Activity Classification", func(p *entity.Provision) string { return strOrEmpty(p.ActivityClassification) }},
	{"Activity Status", func(p *entity.Provision) string { return strOrEmpty(p.ActivityStatus) }},
	{"Position In Route", func(p *entity.Provision) string { return intOrEmpty(p.PositionInRoute) }},
	{"Market Segment", func(p *entity.Provision) string { return strOrEmpty(p.MarketSegment) }},
	{"Zone", func(p *entity.Provision) string { return strOrEmpty(p.Zone) }},
	{"Exchange", func(p *entity.Provision) string { return strOrEmpty(p.Exchange) }},
	{"Node Location", func(p *entity.Provision) string { return strOrEmpty(p.NodeLocation) }},
	{"Cabinet Location", func(p *entity.Provision) string { return strOrEmpty(p.CabinetLocation) }},
	{"Modem Ownership", func(p *entity.Provision) string { return strOrEmpty(p.ModemOwnership) }},
	{"Priority", func(p *entity.Provision) string { return strOrEmpty(p.Priority) }},
	{"Home Service Device", func(p *entity.Provision) string { return strOrEmpty(p.HomeServiceDevice) }},
	{"Package Type", func(p *entity.Provision) string { return strOrEmpty(p.PackageType) }},
	{"NE Type", func(p *entity.Provision) string { return strOrEmpty(p.NEType) }},
	{"Complaint Type", func(p *entity.Provision) string { return strOrEmpty(p.ComplaintType) }},
	{"Date Created", func(p *entity.Provision) string { return timeOrEmpty(p.DateCreated) }},
	{"Date Extracted", func(p *entity.Provision) string { return timeOrEmpty(p.DateExtracted) }},
	{"Started", func(p *entity.Provision) string { return timeOrEmpty(p.StartedDateTime) }},
	{"Completed", func(p *entity.Provision) string { return timeOrEmpty(p.CompletionDateTime) }},
	{"Start", func(p *entity.Provision) string { return strOrEmpty(p.Start) }},
	{"End", func(p *entity.Provision) string { return strOrEmpty(p.End) }},
	{"SAWA", func(p *entity.Provision) string { return strOrEmpty(p.Sawa) }},
	{"Tandem Outside Status", func(p *entity.Provision) string { return strOrEmpty(p.TandemOutsideStatus) }},
	{"Latitude", func(p *entity.Provision) string { return decimalOrEmpty(p.Latitude) }},
	{"Longitude", func(p *entity.Provision) string { return decimalOrEmpty(p.Longitude) }},
	{"Assigned Auditor", func(p *entity.Provision) string { return userName(p.AssignedAuditor) }},
	{"Uploaded By", func(p *entity.Provision) string { return userName(p.UploadedBy) }},
	{"Audit Notes", func(p *entity.Provision) string { return strOrEmpty(p.AuditNotes) }},
	{"Quality Score", func(p *entity.Provision) string { return intOrEmpty(p.QualityScore) }},
	{"Remarks", func(p *entity.Provision) string { return strOrEmpty(p.Remarks) }},
	{"Manager Notes", func(p *entity.Provision) string { return strOrEmpty(p.ManagerNotes) }},
	{"Created At", func(p *entity.Provision) string { return p.CreatedAt.Format(dateTimeLayout) }},
}

// headers devuelve los encabezados en orden.
func headers() []string {
	h := make([]string, len(columns))
	for i, c := range columns {
		h[i] = c.header
	}
	return h
}

// rowValues devuelve los valores de una fila en el mismo orden que headers().
func rowValues(p *entity.Provision) []string {
	v := make([]string, len(columns))
	for i, c := range columns {
		v[i] = c.value(p)
	}
	return v
}
