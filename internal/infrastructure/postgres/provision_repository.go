package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/provision-audit-api/internal/domain"
	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
	"github.com/jhoicas/provision-audit-api/internal/domain/repository"
)

var _ repository.ProvisionRepository = (*ProvisionRepo)(nil)

// ProvisionRepo implementación de ProvisionRepository sobre PostgreSQL
// (usable con pool o tx).
type ProvisionRepo struct {
	q Querier
}

// NewProvisionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProvisionRepository(q Querier) *ProvisionRepo {
	return &ProvisionRepo{q: q}
}

// provisionColumns columnas de provisions en el orden de scanProvision.
// "end" va entre comillas por ser palabra reservada.
const provisionColumns = `p.id, p.request_number, p.is_manual_request_number,
	p.first_name, p.last_name, p.address_line1, p.province, p.city, p.barangay,
	p.landmark, p.contact_phone, p.account_number,
	p.resource, p.date, p.pr_dispatch, p.status, p.activity_type,
	p.verification_type, p.activity_lane, p.activity_grouping,
	p.activity_classification, p.activity_status, p.position_in_route,
	p.market_segment, p.zone, p.exchange, p.node_location, p.cabinet_location,
	p.modem_ownership, p.priority, p.home_service_device, p.package_type,
	p.ne_type, p.complaint_type,
	p.date_created, p.date_extracted, p.started_date_time, p.completion_date_time,
	p.start, p."end", p.sawa, p.tandem_outside_status,
	p.latitude, p.longitude,
	p.assigned_auditor_id, p.uploaded_by_id, p.audit_notes, p.audit_photos,
	p.quality_score, p.remarks, p.manager_notes, p.extended_data,
	p.created_at, p.updated_at`

// userJoinColumns columnas de los dos LEFT JOIN a users (uploadedBy ub,
// assignedAuditor aa), anulables.
const userJoinColumns = `ub.id, ub.username, ub.email, ub.first_name, ub.last_name, ub.role,
	aa.id, aa.username, aa.email, aa.first_name, aa.last_name, aa.role`

const provisionFromJoined = `FROM provisions p
	LEFT JOIN users ub ON ub.id = p.uploaded_by_id
	LEFT JOIN users aa ON aa.id = p.assigned_auditor_id`

// searchFields columnas del predicado de búsqueda libre (substring OR,
// case-insensitive vía ILIKE). account_number se castea a texto.
var searchFields = []string{
	"p.request_number", "p.first_name", "p.last_name", "p.address_line1",
	"p.province", "p.city", "p.barangay", "p.resource", "p.contact_phone",
	"p.account_number::text",
}

// scanFields punteros a los campos de p en el orden de provisionColumns.
func scanFields(p *entity.Provision) []any {
	return []any{
		&p.ID, &p.RequestNumber, &p.IsManualRequestNumber,
		&p.FirstName, &p.LastName, &p.AddressLine1, &p.Province, &p.City, &p.Barangay,
		&p.Landmark, &p.ContactPhone, &p.AccountNumber,
		&p.Resource, &p.Date, &p.PRDispatch, &p.Status, &p.ActivityType,
		&p.VerificationType, &p.ActivityLane, &p.ActivityGrouping,
		&p.ActivityClassification, &p.ActivityStatus, &p.PositionInRoute,
		&p.MarketSegment, &p.Zone, &p.Exchange, &p.NodeLocation, &p.CabinetLocation,
		&p.ModemOwnership, &p.Priority, &p.HomeServiceDevice, &p.PackageType,
		&p.NEType, &p.ComplaintType,
		&p.DateCreated, &p.DateExtracted, &p.StartedDateTime, &p.CompletionDateTime,
		&p.Start, &p.End, &p.Sawa, &p.TandemOutsideStatus,
		&p.Latitude, &p.Longitude,
		&p.AssignedAuditorID, &p.UploadedByID, &p.AuditNotes, &p.AuditPhotos,
		&p.QualityScore, &p.Remarks, &p.ManagerNotes, &p.ExtendedData,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

// joinedUser buffer de scan para un usuario anulable de un LEFT JOIN.
type joinedUser struct {
	id, username, email, firstName, lastName, role *string
}

func (j *joinedUser) fields() []any {
	return []any{&j.id, &j.username, &j.email, &j.firstName, &j.lastName, &j.role}
}

func (j *joinedUser) toEntity() *entity.User {
	if j.id == nil {
		return nil
	}
	u := &entity.User{ID: *j.id}
	if j.username != nil {
		u.Username = *j.username
	}
	if j.email != nil {
		u.Email = *j.email
	}
	if j.firstName != nil {
		u.FirstName = *j.firstName
	}
	if j.lastName != nil {
		u.LastName = *j.lastName
	}
	if j.role != nil {
		u.Role = *j.role
	}
	return u
}

// scanJoinedRow escanea una fila de provisionColumns + userJoinColumns.
func scanJoinedRow(row pgx.Row) (*entity.Provision, error) {
	var p entity.Provision
	var ub, aa joinedUser
	dest := scanFields(&p)
	dest = append(dest, ub.fields()...)
	dest = append(dest, aa.fields()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.UploadedBy = ub.toEntity()
	p.AssignedAuditor = aa.toEntity()
	return &p, nil
}

// Create inserta un registro. Devuelve domain.ErrDuplicate si request_number
// ya existe (colisión manual o carrera del generador).
func (r *ProvisionRepo) Create(p *entity.Provision) error {
	query := `
		INSERT INTO provisions (
			id, request_number, is_manual_request_number,
			first_name, last_name, address_line1, province, city, barangay,
			landmark, contact_phone, account_number,
			resource, date, pr_dispatch, status, activity_type,
			verification_type, activity_lane, activity_grouping,
			activity_classification, activity_status, position_in_route,
			market_segment, zone, exchange, node_location, cabinet_location,
			modem_ownership, priority, home_service_device, package_type,
			ne_type, complaint_type,
			date_created, date_extracted, started_date_time, completion_date_time,
			start, "end", sawa, tandem_outside_status,
			latitude, longitude,
			assigned_auditor_id, uploaded_by_id, audit_notes, audit_photos,
			quality_score, remarks, manager_notes, extended_data,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41,
			$42, $43, $44, $45, $46, $47, $48, $49, $50, $51, $52, $53, $54
		)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.RequestNumber, p.IsManualRequestNumber,
		p.FirstName, p.LastName, p.AddressLine1, p.Province, p.City, p.Barangay,
		p.Landmark, p.ContactPhone, p.AccountNumber,
		p.Resource, p.Date, p.PRDispatch, p.Status, p.ActivityType,
		p.VerificationType, p.ActivityLane, p.ActivityGrouping,
		p.ActivityClassification, p.ActivityStatus, p.PositionInRoute,
		p.MarketSegment, p.Zone, p.Exchange, p.NodeLocation, p.CabinetLocation,
		p.ModemOwnership, p.Priority, p.HomeServiceDevice, p.PackageType,
		p.NEType, p.ComplaintType,
		p.DateCreated, p.DateExtracted, p.StartedDateTime, p.CompletionDateTime,
		p.Start, p.End, p.Sawa, p.TandemOutsideStatus,
		p.Latitude, p.Longitude,
		p.AssignedAuditorID, p.UploadedByID, p.AuditNotes, p.AuditPhotos,
		p.QualityScore, p.Remarks, p.ManagerNotes, p.ExtendedData,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert provision: %w", err)
	}
	return nil
}

// GetByID obtiene un registro con uploadedBy y assignedAuditor cargados.
func (r *ProvisionRepo) GetByID(id string) (*entity.Provision, error) {
	query := fmt.Sprintf(`SELECT %s, %s %s WHERE p.id = $1`,
		provisionColumns, userJoinColumns, provisionFromJoined)
	p, err := scanJoinedRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provision: %w", err)
	}
	return p, nil
}

// GetByRequestNumber obtiene un registro por su clave visible.
func (r *ProvisionRepo) GetByRequestNumber(rn string) (*entity.Provision, error) {
	query := fmt.Sprintf(`SELECT %s, %s %s WHERE p.request_number = $1`,
		provisionColumns, userJoinColumns, provisionFromJoined)
	p, err := scanJoinedRow(r.q.QueryRow(context.Background(), query, rn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provision by request_number: %w", err)
	}
	return p, nil
}

// LatestGeneratedRequestNumber devuelve el número NO manual más alto que
// empieza por prefix, o "" si no hay ninguno.
func (r *ProvisionRepo) LatestGeneratedRequestNumber(prefix string) (string, error) {
	query := `
		SELECT request_number FROM provisions
		WHERE is_manual_request_number = FALSE AND request_number LIKE $1
		ORDER BY request_number DESC
		LIMIT 1`
	var rn string
	err := r.q.QueryRow(context.Background(), query, prefix+"%").Scan(&rn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest request_number: %w", err)
	}
	return rn, nil
}

// buildFilter arma el WHERE compartido por List/Search/count: igualdad de
// status AND substring OR sobre searchFields.
func buildFilter(status, search string) (string, []any) {
	var conds []string
	var args []any
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		ors := make([]string, 0, len(searchFields))
		for _, f := range searchFields {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", f, n))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// List devuelve la página filtrada y el total sin paginar. Orden:
// created_at DESC con desempate por id DESC para paginación estable.
func (r *ProvisionRepo) List(params repository.ListParams) ([]*entity.Provision, int, error) {
	where, args := buildFilter(params.Status, params.Search)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM provisions p %s`, where)
	var total int
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count provisions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s, %s %s %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d OFFSET $%d`,
		provisionColumns, userJoinColumns, provisionFromJoined, where,
		len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list provisions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Provision
	for rows.Next() {
		p, err := scanJoinedRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan provision: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Search variante sin total para typeahead (mismo predicado que List).
func (r *ProvisionRepo) Search(term string, limit int) ([]*entity.Provision, error) {
	where, args := buildFilter("", term)
	query := fmt.Sprintf(`SELECT %s, %s %s %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d`,
		provisionColumns, userJoinColumns, provisionFromJoined, where, len(args)+1)
	args = append(args, limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search provisions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Provision
	for rows.Next() {
		p, err := scanJoinedRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provision: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update sobreescribe la fila completa (el merge parcial ocurre en el caso de
// uso, que carga-modifica-guarda). Devuelve domain.ErrDuplicate si el nuevo
// request_number colisiona y domain.ErrNotFound si el id no existe.
func (r *ProvisionRepo) Update(p *entity.Provision) error {
	query := `
		UPDATE provisions SET
			request_number = $2, is_manual_request_number = $3,
			first_name = $4, last_name = $5, address_line1 = $6, province = $7,
			city = $8, barangay = $9, landmark = $10, contact_phone = $11,
			account_number = $12, resource = $13, date = $14, pr_dispatch = $15,
			status = $16, activity_type = $17, verification_type = $18,
			activity_lane = $19, activity_grouping = $20,
			activity_classification = $21, activity_status = $22,
			position_in_route = $23, market_segment = $24, zone = $25,
			exchange = $26, node_location = $27, cabinet_location = $28,
			modem_ownership = $29, priority = $30, home_service_device = $31,
			package_type = $32, ne_type = $33, complaint_type = $34,
			date_created = $35, date_extracted = $36, started_date_time = $37,
			completion_date_time = $38, start = $39, "end" = $40, sawa = $41,
			tandem_outside_status = $42, latitude = $43, longitude = $44,
			assigned_auditor_id = $45, audit_notes = $46, audit_photos = $47,
			quality_score = $48, remarks = $49, manager_notes = $50,
			extended_data = $51, updated_at = $52
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.RequestNumber, p.IsManualRequestNumber,
		p.FirstName, p.LastName, p.AddressLine1, p.Province,
		p.City, p.Barangay, p.Landmark, p.ContactPhone,
		p.AccountNumber, p.Resource, p.Date, p.PRDispatch,
		p.Status, p.ActivityType, p.VerificationType,
		p.ActivityLane, p.ActivityGrouping,
		p.ActivityClassification, p.ActivityStatus,
		p.PositionInRoute, p.MarketSegment, p.Zone,
		p.Exchange, p.NodeLocation, p.CabinetLocation,
		p.ModemOwnership, p.Priority, p.HomeServiceDevice,
		p.PackageType, p.NEType, p.ComplaintType,
		p.DateCreated, p.DateExtracted, p.StartedDateTime,
		p.CompletionDateTime, p.Start, p.End, p.Sawa,
		p.TandemOutsideStatus, p.Latitude, p.Longitude,
		p.AssignedAuditorID, p.AuditNotes, p.AuditPhotos,
		p.QualityScore, p.Remarks, p.ManagerNotes,
		p.ExtendedData, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update provision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina por id (borrado duro, sin tombstone).
func (r *ProvisionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM provisions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete provision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountAll total de registros.
func (r *ProvisionRepo) CountAll() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM provisions`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count provisions: %w", err)
	}
	return n, nil
}

// CountByStatus total con un estado exacto.
func (r *ProvisionRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM provisions WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count provisions by status: %w", err)
	}
	return n, nil
}

// groupableColumns columnas admitidas en CountGroupedBy; el nombre se
// interpola en el SQL, así que solo entra lo listado aquí.
var groupableColumns = map[string]bool{
	"market_segment": true,
	"activity_type":  true,
}

// CountGroupedBy agrupa por una columna permitida; NULL se reporta como
// "Unknown".
func (r *ProvisionRepo) CountGroupedBy(column string) (map[string]int, error) {
	if !groupableColumns[column] {
		return nil, fmt.Errorf("columna no agrupable: %s", column)
	}
	query := fmt.Sprintf(
		`SELECT COALESCE(%s, 'Unknown'), COUNT(*) FROM provisions GROUP BY 1`, column)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("count grouped by %s: %w", column, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan group count: %w", err)
		}
		out[key] = n
	}
	return out, rows.Err()
}

// ListAll devuelve todos los registros con relaciones, en orden de creación
// descendente (export).
func (r *ProvisionRepo) ListAll() ([]*entity.Provision, error) {
	query := fmt.Sprintf(`SELECT %s, %s %s ORDER BY p.created_at DESC, p.id DESC`,
		provisionColumns, userJoinColumns, provisionFromJoined)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all provisions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Provision
	for rows.Next() {
		p, err := scanJoinedRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provision: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
