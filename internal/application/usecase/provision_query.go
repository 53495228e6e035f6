package usecase

import (
	"strings"

	"github.com/jhoicas/provision-audit-api/internal/application/dto"
	"github.com/jhoicas/provision-audit-api/internal/domain/repository"
)

// Límites de la búsqueda rápida (typeahead).
const (
	quickSearchDefaultLimit = 10
	quickSearchMaxLimit     = 100
)

// List página filtrada y buscada de provisiones. page y limit se normalizan
// a mínimo 1; status filtra por igualdad exacta; search (tras recortar
// espacios) busca substring sin distinguir mayúsculas sobre request number,
// nombre, apellido, dirección, provincia, ciudad, barangay, resource,
// teléfono y número de cuenta. Ambos predicados se combinan con AND.
func (uc *ProvisionUseCase) List(page, limit int, status, search string) (*dto.ProvisionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	search = strings.TrimSpace(search)

	records, total, err := uc.repo.List(repository.ListParams{
		Offset: (page - 1) * limit,
		Limit:  limit,
		Status: status,
		Search: search,
	})
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	out := make([]dto.ProvisionResponse, 0, len(records))
	for _, p := range records {
		out = append(out, *toProvisionResponse(p))
	}
	return &dto.ProvisionListResponse{
		Provisions: out,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// QuickSearch variante sin metadatos de página para typeahead. El término
// vacío (tras recortar) devuelve lista vacía; limit se normaliza a [1,100].
func (uc *ProvisionUseCase) QuickSearch(term string, limit int) ([]dto.ProvisionResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.ProvisionResponse{}, nil
	}
	if limit < 1 {
		limit = quickSearchDefaultLimit
	}
	if limit > quickSearchMaxLimit {
		limit = quickSearchMaxLimit
	}

	records, err := uc.repo.Search(term, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProvisionResponse, 0, len(records))
	for _, p := range records {
		out = append(out, *toProvisionResponse(p))
	}
	return out, nil
}
