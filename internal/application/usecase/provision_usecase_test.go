package usecase_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/provision-audit-api/internal/application/dto"
	"github.com/jhoicas/provision-audit-api/internal/application/usecase"
	"github.com/jhoicas/provision-audit-api/internal/domain"
	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
	"github.com/jhoicas/provision-audit-api/internal/domain/repository"
	"github.com/jhoicas/provision-audit-api/internal/domain/reqnum"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (emulan el contrato del Store, incluida la restricción de
// unicidad de request_number y el predicado de búsqueda)
// ──────────────────────────────────────────────────────────────────────────────

type memProvisionRepo struct {
	items []*entity.Provision
	users *memUserRepo // para cargar relaciones como haría el Store
	seq   int          // desempate estable cuando CreatedAt coincide
}

var _ repository.ProvisionRepository = (*memProvisionRepo)(nil)

func (m *memProvisionRepo) Create(p *entity.Provision) error {
	for _, e := range m.items {
		if e.RequestNumber == p.RequestNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	m.seq++
	cp.CreatedAt = cp.CreatedAt.Add(time.Duration(m.seq) * time.Microsecond)
	m.items = append(m.items, &cp)
	return nil
}

func (m *memProvisionRepo) GetByID(id string) (*entity.Provision, error) {
	for _, e := range m.items {
		if e.ID == id {
			return m.withRelations(e), nil
		}
	}
	return nil, nil
}

func (m *memProvisionRepo) GetByRequestNumber(rn string) (*entity.Provision, error) {
	for _, e := range m.items {
		if e.RequestNumber == rn {
			return m.withRelations(e), nil
		}
	}
	return nil, nil
}

func (m *memProvisionRepo) LatestGeneratedRequestNumber(prefix string) (string, error) {
	latest := ""
	for _, e := range m.items {
		if e.IsManualRequestNumber {
			continue
		}
		if strings.HasPrefix(e.RequestNumber, prefix) && e.RequestNumber > latest {
			latest = e.RequestNumber
		}
	}
	return latest, nil
}

func (m *memProvisionRepo) List(params repository.ListParams) ([]*entity.Provision, int, error) {
	filtered := m.filter(params.Status, params.Search)
	total := len(filtered)
	if params.Offset >= len(filtered) {
		return nil, total, nil
	}
	end := params.Offset + params.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	page := make([]*entity.Provision, 0, end-params.Offset)
	for _, e := range filtered[params.Offset:end] {
		page = append(page, m.withRelations(e))
	}
	return page, total, nil
}

func (m *memProvisionRepo) Search(term string, limit int) ([]*entity.Provision, error) {
	filtered := m.filter("", term)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	out := make([]*entity.Provision, 0, len(filtered))
	for _, e := range filtered {
		out = append(out, m.withRelations(e))
	}
	return out, nil
}

func (m *memProvisionRepo) Update(p *entity.Provision) error {
	for _, e := range m.items {
		if e.RequestNumber == p.RequestNumber && e.ID != p.ID {
			return domain.ErrDuplicate
		}
	}
	for i, e := range m.items {
		if e.ID == p.ID {
			cp := *p
			cp.CreatedAt = e.CreatedAt
			m.items[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memProvisionRepo) Delete(id string) error {
	for i, e := range m.items {
		if e.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memProvisionRepo) CountAll() (int, error) { return len(m.items), nil }

func (m *memProvisionRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, e := range m.items {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memProvisionRepo) CountGroupedBy(column string) (map[string]int, error) {
	out := make(map[string]int)
	for _, e := range m.items {
		var v *string
		switch column {
		case "market_segment":
			v = e.MarketSegment
		case "activity_type":
			v = e.ActivityType
		default:
			return nil, fmt.Errorf("columna no permitida: %s", column)
		}
		key := "Unknown"
		if v != nil && *v != "" {
			key = *v
		}
		out[key]++
	}
	return out, nil
}

func (m *memProvisionRepo) ListAll() ([]*entity.Provision, error) {
	out := make([]*entity.Provision, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, m.withRelations(e))
	}
	return out, nil
}

// filter aplica status (igualdad) AND search (substring OR sobre los campos
// de texto), ordenando created_at DESC con desempate por id DESC.
func (m *memProvisionRepo) filter(status, search string) []*entity.Provision {
	var out []*entity.Provision
	for _, e := range m.items {
		if status != "" && e.Status != status {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func matchesSearch(e *entity.Provision, term string) bool {
	term = strings.ToLower(term)
	fields := []string{
		e.RequestNumber, e.FirstName, e.LastName, e.AddressLine1,
		e.Province, e.City, e.Barangay, e.Resource,
	}
	if e.ContactPhone != nil {
		fields = append(fields, *e.ContactPhone)
	}
	if e.AccountNumber != nil {
		fields = append(fields, fmt.Sprintf("%d", *e.AccountNumber))
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (m *memProvisionRepo) withRelations(e *entity.Provision) *entity.Provision {
	cp := *e
	if cp.AssignedAuditorID != nil && m.users != nil {
		cp.AssignedAuditor, _ = m.users.GetByID(*cp.AssignedAuditorID)
	}
	if m.users != nil {
		cp.UploadedBy, _ = m.users.GetByID(cp.UploadedByID)
	}
	return &cp
}

type memUserRepo struct {
	users []*entity.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func (m *memUserRepo) Create(u *entity.User) error {
	m.users = append(m.users, u)
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) ListByRole(role string, onlyActive bool) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		if u.Role == role && (!onlyActive || u.IsActive) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCreatorID = "00000000-0000-0000-0000-00000000aaaa"
	testAuditorID = "00000000-0000-0000-0000-00000000bbbb"
	testManagerID = "00000000-0000-0000-0000-00000000cccc"
)

func buildUseCase() (*usecase.ProvisionUseCase, *memProvisionRepo, *memUserRepo) {
	users := &memUserRepo{users: []*entity.User{
		{ID: testCreatorID, Username: "uploader", Role: entity.RoleManager, IsActive: true},
		{ID: testAuditorID, Username: "auditor1", Role: entity.RoleQAAuditor, IsActive: true},
		{ID: testManagerID, Username: "manager1", Role: entity.RoleManager, IsActive: true},
	}}
	repo := &memProvisionRepo{users: users}
	return usecase.NewProvisionUseCase(repo, users, &memTxRunner{repo: repo}), repo, users
}

// memTxRunner emula la transacción de los lotes con snapshot + restore.
type memTxRunner struct {
	repo *memProvisionRepo
}

func (r *memTxRunner) Run(fn func(repository.ProvisionRepository) error) error {
	snapshot := make([]*entity.Provision, len(r.repo.items))
	for i, e := range r.repo.items {
		cp := *e
		snapshot[i] = &cp
	}
	seq := r.repo.seq
	if err := fn(r.repo); err != nil {
		r.repo.items, r.repo.seq = snapshot, seq
		return err
	}
	return nil
}

// createRequest fila de creación válida, variada por índice.
func createRequest(i int) dto.CreateProvisionRequest {
	return dto.CreateProvisionRequest{
		FirstName:    fmt.Sprintf("Nombre%03d", i),
		LastName:     fmt.Sprintf("Apellido%03d", i),
		AddressLine1: fmt.Sprintf("%d Calle Principal", i),
		Province:     "Cebu",
		City:         "Cebu City",
		Barangay:     "Lahug",
		Resource:     "Tech-1",
		Date:         "2024-03-01",
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de extremo a extremo: creación sin request number → número
// generado del mes en curso, estado inicial y uploadedBy estampados.
func TestCreate_GeneraNumeroYDefaults(t *testing.T) {
	uc, _, _ := buildUseCase()
	in := dto.CreateProvisionRequest{
		FirstName:    "Jane",
		LastName:     "Doe",
		AddressLine1: "123 Main",
		Province:     "Cebu",
		City:         "Cebu City",
		Barangay:     "Lahug",
		Resource:     "Tech-1",
		Date:         "2024-03-01",
	}

	got, err := uc.Create(in, testCreatorID)
	require.NoError(t, err)

	wantNumber := reqnum.MonthPrefix(time.Now()) + "000001"
	assert.Equal(t, wantNumber, got.RequestNumber,
		"el primer número del mes debe terminar en 000001")
	assert.False(t, got.IsManualRequestNumber)
	assert.Equal(t, entity.StatusPendingAssignment, got.Status)
	assert.Equal(t, testCreatorID, got.UploadedByID)
	assert.Equal(t, "2024-03-01", got.Date)
	assert.NotNil(t, got.DateCreated, "dateCreated debe defaultear a ahora")
}

func TestCreate_SecuenciaMonotonaDentroDelMes(t *testing.T) {
	uc, _, _ := buildUseCase()
	prefix := reqnum.MonthPrefix(time.Now())

	for i := 1; i <= 3; i++ {
		got, err := uc.Create(createRequest(i), testCreatorID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%s%06d", prefix, i), got.RequestNumber)
	}
}

func TestCreate_CamposRequeridosFaltantes(t *testing.T) {
	uc, _, _ := buildUseCase()
	in := createRequest(1)
	in.FirstName = "   " // blanco cuenta como ausente

	_, err := uc.Create(in, testCreatorID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_NumeroManual(t *testing.T) {
	uc, _, _ := buildUseCase()
	in := createRequest(1)
	in.RequestNumber = "PLDT-20240301"

	got, err := uc.Create(in, testCreatorID)
	require.NoError(t, err)
	assert.Equal(t, "PLDT-20240301", got.RequestNumber)
	assert.True(t, got.IsManualRequestNumber)

	// El mismo número manual por segunda vez es un conflicto, no un error
	// genérico de validación.
	in2 := createRequest(2)
	in2.RequestNumber = "PLDT-20240301"
	_, err = uc.Create(in2, testCreatorID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_NumeroManualFormatoInvalido(t *testing.T) {
	uc, _, _ := buildUseCase()
	in := createRequest(1)
	in.RequestNumber = "req 123"

	_, err := uc.Create(in, testCreatorID)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestNumber)
}

// El caller puede fijar el estado inicial, pero debe ser un estado conocido.
func TestCreate_EstadoInicialOverride(t *testing.T) {
	uc, _, _ := buildUseCase()

	in := createRequest(1)
	in.Status = strPtr(entity.StatusAuditInProgress)
	got, err := uc.Create(in, testCreatorID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAuditInProgress, got.Status)

	in2 := createRequest(2)
	in2.Status = strPtr("NO_ES_UN_ESTADO")
	_, err = uc.Create(in2, testCreatorID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ParcialPreservaCamposOmitidos(t *testing.T) {
	uc, _, _ := buildUseCase()
	in := createRequest(1)
	in.Remarks = strPtr("instalación en azotea")
	in.ContactPhone = strPtr("+63 917 555 0101")
	created, err := uc.Create(in, testCreatorID)
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdateProvisionRequest{
		QualityScore: intPtr(9),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.QualityScore)
	assert.Equal(t, 9, *updated.QualityScore)
	// Todo lo no enviado queda byte a byte igual.
	assert.Equal(t, created.RequestNumber, updated.RequestNumber)
	assert.Equal(t, created.FirstName, updated.FirstName)
	assert.Equal(t, created.LastName, updated.LastName)
	assert.Equal(t, created.AddressLine1, updated.AddressLine1)
	assert.Equal(t, created.Status, updated.Status)
	assert.Equal(t, created.Remarks, updated.Remarks)
	assert.Equal(t, created.ContactPhone, updated.ContactPhone)
	assert.Equal(t, created.Date, updated.Date)
}

// Asignar auditor fuerza AUDIT_ASSIGNED aunque la misma llamada traiga otro
// status explícito: la asignación siempre gana el campo.
func TestUpdate_AsignacionAuditorGanaElEstado(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(createRequest(1), testCreatorID)
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdateProvisionRequest{
		AssignedAuditorID: strPtr(testAuditorID),
		Status:            strPtr(entity.StatusPassed),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusAuditAssigned, updated.Status)
	require.NotNil(t, updated.AssignedAuditorID)
	assert.Equal(t, testAuditorID, *updated.AssignedAuditorID)
	require.NotNil(t, updated.AssignedAuditor, "la relación debe venir cargada")
	assert.Equal(t, "auditor1", updated.AssignedAuditor.Username)
}

func TestUpdate_AuditorInexistente(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(createRequest(1), testCreatorID)
	require.NoError(t, err)

	_, err = uc.Update(created.ID, dto.UpdateProvisionRequest{
		AssignedAuditorID: strPtr("no-existe"),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_AsignadoSinRolAuditor(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(createRequest(1), testCreatorID)
	require.NoError(t, err)

	_, err = uc.Update(created.ID, dto.UpdateProvisionRequest{
		AssignedAuditorID: strPtr(testManagerID), // MANAGER, no QA_AUDITOR
	})
	assert.ErrorIs(t, err, domain.ErrAuditorRequired)
}

func TestUpdate_CambioDeRequestNumber(t *testing.T) {
	uc, _, _ := buildUseCase()
	a, err := uc.Create(createRequest(1), testCreatorID)
	require.NoError(t, err)
	b, err := uc.Create(createRequest(2), testCreatorID)
	require.NoError(t, err)

	// Formato inválido se rechaza.
	_, err = uc.Update(a.ID, dto.UpdateProvisionRequest{RequestNumber: strPtr("mal formato")})
	assert.ErrorIs(t, err, domain.ErrInvalidRequestNumber)

	// Colisión con otro registro es conflicto.
	_, err = uc.Update(a.ID, dto.UpdateProvisionRequest{RequestNumber: strPtr(b.RequestNumber)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Un número válido y libre se acepta y marca el registro como manual.
	updated, err := uc.Update(a.ID, dto.UpdateProvisionRequest{RequestNumber: strPtr("CEBU-777")})
	require.NoError(t, err)
	assert.Equal(t, "CEBU-777", updated.RequestNumber)
	assert.True(t, updated.IsManualRequestNumber)
}

func TestUpdate_NoEncontrado(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.Update("no-existe", dto.UpdateProvisionRequest{QualityScore: intPtr(5)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove(t *testing.T) {
	uc, repo, _ := buildUseCase()
	created, err := uc.Create(createRequest(1), testCreatorID)
	require.NoError(t, err)

	require.NoError(t, uc.Remove(created.ID))
	remaining, _ := repo.CountAll()
	assert.Zero(t, remaining)

	assert.ErrorIs(t, uc.Remove(created.ID), domain.ErrNotFound,
		"borrar dos veces debe reportar no encontrado")
}

// ──────────────────────────────────────────────────────────────────────────────
// List / QuickSearch
// ──────────────────────────────────────────────────────────────────────────────

func TestList_PaginacionAritmetica(t *testing.T) {
	uc, _, _ := buildUseCase()
	for i := 1; i <= 95; i++ {
		_, err := uc.Create(createRequest(i), testCreatorID)
		require.NoError(t, err)
	}

	page1, err := uc.List(1, 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, 95, page1.Total)
	assert.Equal(t, 10, page1.TotalPages, "ceil(95/10) = 10")
	assert.Len(t, page1.Provisions, 10)

	page10, err := uc.List(10, 10, "", "")
	require.NoError(t, err)
	assert.Len(t, page10.Provisions, 5, "la última página lleva el resto")
	assert.Equal(t, 10, page10.Page)
	assert.Equal(t, 10, page10.Limit)
}

func TestList_BusquedaCaseInsensitive(t *testing.T) {
	uc, _, _ := buildUseCase()
	in := createRequest(1)
	in.City = "Quezon City"
	_, err := uc.Create(in, testCreatorID)
	require.NoError(t, err)
	_, err = uc.Create(createRequest(2), testCreatorID)
	require.NoError(t, err)

	res, err := uc.List(1, 10, "", "quezon")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total, "substring en minúsculas debe encontrar Quezon City")

	vacio, err := uc.List(1, 10, "", "zzzzzz")
	require.NoError(t, err)
	assert.Equal(t, 0, vacio.Total)
	assert.Empty(t, vacio.Provisions)
	assert.Equal(t, 0, vacio.TotalPages)
}

func TestList_EstadoYBusquedaCombinados(t *testing.T) {
	uc, _, _ := buildUseCase()

	pasada := createRequest(1)
	pasada.City = "Quezon City"
	pasada.Status = strPtr(entity.StatusPassed)
	_, err := uc.Create(pasada, testCreatorID)
	require.NoError(t, err)

	pendiente := createRequest(2)
	pendiente.City = "Quezon City"
	_, err = uc.Create(pendiente, testCreatorID)
	require.NoError(t, err)

	res, err := uc.List(1, 10, entity.StatusPassed, "quezon")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total, "status y search se combinan con AND")
	assert.Equal(t, entity.StatusPassed, res.Provisions[0].Status)
}

func TestQuickSearch(t *testing.T) {
	uc, _, _ := buildUseCase()
	for i := 1; i <= 5; i++ {
		_, err := uc.Create(createRequest(i), testCreatorID)
		require.NoError(t, err)
	}

	res, err := uc.QuickSearch("Cebu", 3)
	require.NoError(t, err)
	assert.Len(t, res, 3, "el límite acota el resultado")

	// Término en blanco: lista vacía sin consultar el Store.
	vacio, err := uc.QuickSearch("   ", 10)
	require.NoError(t, err)
	assert.Empty(t, vacio)

	// Límite fuera de rango se normaliza a [1,100].
	todos, err := uc.QuickSearch("Cebu", 100000)
	require.NoError(t, err)
	assert.Len(t, todos, 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkImport
// ──────────────────────────────────────────────────────────────────────────────

// El fallo de la fila 3 no aborta el lote: 4 éxitos, 1 fallo, un único error
// que referencia "Row 3".
func TestBulkImport_AislamientoPorFila(t *testing.T) {
	uc, _, _ := buildUseCase()

	rows := make([]dto.CreateProvisionRequest, 5)
	for i := range rows {
		rows[i] = createRequest(i + 1)
	}
	rows[2].Province = "" // fila 3 inválida

	result := uc.BulkImport(rows, testCreatorID)

	assert.Equal(t, 4, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 3:")
}

func TestBulkImport_LoteVacio(t *testing.T) {
	uc, _, _ := buildUseCase()
	result := uc.BulkImport(nil, testCreatorID)
	assert.Zero(t, result.Successful)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Errors)
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkUpdate / BulkDelete
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkUpdate(t *testing.T) {
	uc, _, _ := buildUseCase()
	a, _ := uc.Create(createRequest(1), testCreatorID)
	b, _ := uc.Create(createRequest(2), testCreatorID)

	out, err := uc.BulkUpdate(dto.BulkUpdateRequest{
		IDs:     []string{a.ID, b.ID},
		Updates: dto.UpdateProvisionRequest{Status: strPtr(entity.StatusCancelled)},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, entity.StatusCancelled, r.Provision.Status)
	}
}

func TestBulkDelete(t *testing.T) {
	uc, repo, _ := buildUseCase()
	a, _ := uc.Create(createRequest(1), testCreatorID)
	b, _ := uc.Create(createRequest(2), testCreatorID)

	n, err := uc.BulkDelete(dto.BulkDeleteRequest{IDs: []string{a.ID, b.ID}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	remaining, _ := repo.CountAll()
	assert.Zero(t, remaining)

	// Un id inexistente revierte el lote completo: nada queda borrado.
	c, _ := uc.Create(createRequest(3), testCreatorID)
	n, err = uc.BulkDelete(dto.BulkDeleteRequest{IDs: []string{c.ID, "no-existe"}})
	assert.Error(t, err)
	assert.Zero(t, n)
	remaining, _ = repo.CountAll()
	assert.Equal(t, 1, remaining, "el id válido del lote fallido sigue existiendo")
}

// El lote de actualización es atómico: un id inexistente a mitad del lote
// revierte los cambios ya aplicados.
func TestBulkUpdate_RevierteEnError(t *testing.T) {
	uc, _, _ := buildUseCase()
	a, _ := uc.Create(createRequest(1), testCreatorID)

	_, err := uc.BulkUpdate(dto.BulkUpdateRequest{
		IDs:     []string{a.ID, "no-existe"},
		Updates: dto.UpdateProvisionRequest{Status: strPtr(entity.StatusCancelled)},
	})
	require.Error(t, err)

	reloaded, err := uc.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendingAssignment, reloaded.Status,
		"el primer id del lote fallido conserva su estado original")
}

// ──────────────────────────────────────────────────────────────────────────────
// Statistics
// ──────────────────────────────────────────────────────────────────────────────

func TestStatistics_TotalesConsistentes(t *testing.T) {
	uc, _, _ := buildUseCase()

	seed := []struct {
		status  string
		segment *string
	}{
		{entity.StatusPendingAssignment, strPtr(entity.SegmentRBG)},
		{entity.StatusPendingAssignment, nil},
		{entity.StatusAuditAssigned, strPtr(entity.SegmentSME)},
		{entity.StatusPassed, strPtr(entity.SegmentRBG)},
		{entity.StatusFailed, nil},
		{entity.StatusBackjob, strPtr(entity.SegmentEnterprise)},
	}
	for i, s := range seed {
		in := createRequest(i + 1)
		in.Status = strPtr(s.status)
		in.MarketSegment = s.segment
		_, err := uc.Create(in, testCreatorID)
		require.NoError(t, err)
	}

	stats, err := uc.Statistics()
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.PendingAssignment)
	assert.Equal(t, 1, stats.AuditAssigned)
	assert.Equal(t, 1, stats.Passed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Backjobs)

	// La suma de los buckets reportados nunca excede el total.
	reported := stats.PendingAssignment + stats.AuditAssigned + stats.AuditInProgress +
		stats.Passed + stats.Failed + stats.Backjobs + stats.Completed
	assert.LessOrEqual(t, reported, stats.Total)

	// Los registros sin segmento caen en "Unknown".
	assert.Equal(t, 2, stats.ByMarketSegment["Unknown"])
	assert.Equal(t, 2, stats.ByMarketSegment[entity.SegmentRBG])
	assert.Equal(t, 1, stats.ByMarketSegment[entity.SegmentSME])
	assert.Equal(t, 1, stats.ByMarketSegment[entity.SegmentEnterprise])
}
