package repository

import "github.com/jhoicas/provision-audit-api/internal/domain/entity"

// ListParams filtros y paginación para ProvisionRepository.List.
// Status y Search vacíos desactivan el predicado correspondiente.
type ListParams struct {
	Offset int
	Limit  int
	Status string
	Search string
}

// ProvisionRepository define el puerto de persistencia para Provision (DIP).
// Create y Update devuelven domain.ErrDuplicate si request_number viola la
// restricción de unicidad; el resto de errores de infraestructura se propagan
// envueltos tal cual.
type ProvisionRepository interface {
	Create(p *entity.Provision) error
	GetByID(id string) (*entity.Provision, error)
	GetByRequestNumber(requestNumber string) (*entity.Provision, error)
	// LatestGeneratedRequestNumber devuelve el request number más alto entre
	// los NO manuales que empiezan por prefix, o "" si no existe ninguno.
	LatestGeneratedRequestNumber(prefix string) (string, error)
	// List devuelve la página y el total sin paginar, con uploadedBy y
	// assignedAuditor cargados. Orden: created_at DESC, id DESC.
	List(params ListParams) ([]*entity.Provision, int, error)
	// Search variante sin paginación para typeahead (mismo predicado de List).
	Search(term string, limit int) ([]*entity.Provision, error)
	Update(p *entity.Provision) error
	Delete(id string) error
	CountAll() (int, error)
	CountByStatus(status string) (int, error)
	// CountGroupedBy agrupa por una columna permitida (market_segment,
	// activity_type); las filas con NULL se reportan bajo "Unknown".
	CountGroupedBy(column string) (map[string]int, error)
	// ListAll devuelve todos los registros en orden de creación (export).
	ListAll() ([]*entity.Provision, error)
}
