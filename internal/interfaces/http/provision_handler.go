package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/provision-audit-api/internal/application/dto"
	"github.com/jhoicas/provision-audit-api/internal/application/usecase"
	"github.com/jhoicas/provision-audit-api/internal/domain"
)

// ProvisionHandler maneja las peticiones HTTP para aprovisionamientos (protegido).
type ProvisionHandler struct {
	uc       *usecase.ProvisionUseCase
	exportUC *usecase.ExportUseCase
	reportUC *usecase.ReportUseCase
}

// NewProvisionHandler construye el handler.
func NewProvisionHandler(uc *usecase.ProvisionUseCase, exportUC *usecase.ExportUseCase, reportUC *usecase.ReportUseCase) *ProvisionHandler {
	return &ProvisionHandler{uc: uc, exportUC: exportUC, reportUC: reportUC}
}

// mapDomainError traduce errores de dominio a respuestas HTTP. Devuelve false
// si el error no es de dominio (el caller responde 500).
func mapDomainError(c *fiber.Ctx, err error) (bool, error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidRequestNumber):
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REQUEST_NUMBER", Message: err.Error()})
	case errors.Is(err, domain.ErrAuditorRequired):
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AUDITOR", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return true, c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el request number ya existe"})
	case errors.Is(err, domain.ErrUserNotFound):
		return true, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return true, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aprovisionamiento no encontrado"})
	}
	return false, nil
}

// Create godoc
// @Summary      Crear aprovisionamiento
// @Tags         provisions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProvisionRequest  true  "Datos del aprovisionamiento"
// @Success      201   {object}  dto.ProvisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/provisions [post]
func (h *ProvisionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProvisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(in, GetUserID(c))
	if err != nil {
		if handled, resp := mapDomainError(c, err); handled {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar aprovisionamientos con paginación y filtros
// @Tags         provisions
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"         default(1)
// @Param        limit   query  int     false  "Límite"         default(10)
// @Param        status  query  string  false  "Filtro de estado"
// @Param        search  query  string  false  "Texto a buscar"
// @Success      200     {object}  dto.ProvisionListResponse
// @Router       /api/provisions [get]
func (h *ProvisionHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := c.Query("status")
	search := c.Query("search")
	out, err := h.uc.List(page, limit, status, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// QuickSearch godoc
// @Summary      Búsqueda rápida (autocompletado)
// @Tags         provisions
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Término de búsqueda"
// @Param        limit  query  int     false  "Máximo de resultados"  default(10)
// @Success      200    {array}  dto.ProvisionResponse
// @Router       /api/provisions/quick-search [get]
func (h *ProvisionHandler) QuickSearch(c *fiber.Ctx) error {
	out, err := h.uc.QuickSearch(c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Statistics godoc
// @Summary      Estadísticas agregadas del flujo de auditoría
// @Tags         provisions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatisticsResponse
// @Router       /api/provisions/statistics [get]
func (h *ProvisionHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.uc.Statistics()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar todos los aprovisionamientos (csv, xlsx o xml)
// @Tags         provisions
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  false  "csv | xlsx | xml"  default(csv)
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/provisions/export [get]
func (h *ProvisionHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format", "csv")
	out, filename, contentType, err := h.exportUC.Export(format)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato no soportado: " + format})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(out)
}

// BulkImport godoc
// @Summary      Importar aprovisionamientos en lote
// @Tags         provisions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.CreateProvisionRequest  true  "Filas a importar"
// @Success      200   {object}  dto.BulkImportResult
// @Router       /api/provisions/bulk-import [post]
func (h *ProvisionHandler) BulkImport(c *fiber.Ctx) error {
	var rows []dto.CreateProvisionRequest
	if err := c.BodyParser(&rows); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return c.JSON(h.uc.BulkImport(rows, GetUserID(c)))
}

// BulkUpdate godoc
// @Summary      Actualizar varios aprovisionamientos con los mismos cambios
// @Tags         provisions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateRequest  true  "IDs + cambios"
// @Success      200   {array}  usecase.ProvisionResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/provisions/bulk [patch]
func (h *ProvisionHandler) BulkUpdate(c *fiber.Ctx) error {
	var in dto.BulkUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids es requerido"})
	}
	out, err := h.uc.BulkUpdate(in)
	if err != nil {
		if handled, resp := mapDomainError(c, err); handled {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// BulkDelete godoc
// @Summary      Eliminar varios aprovisionamientos
// @Tags         provisions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkDeleteRequest  true  "IDs a eliminar"
// @Success      200   {object}  map[string]int
// @Router       /api/provisions/bulk [delete]
func (h *ProvisionHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids es requerido"})
	}
	deleted, err := h.uc.BulkDelete(in)
	if err != nil {
		if handled, resp := mapDomainError(c, err); handled {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// GetByID godoc
// @Summary      Obtener aprovisionamiento por ID
// @Tags         provisions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ProvisionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/provisions/{id} [get]
func (h *ProvisionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if handled, resp := mapDomainError(c, err); handled {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Descargar el reporte de auditoría en PDF
// @Tags         provisions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/provisions/{id}/report [get]
func (h *ProvisionHandler) Report(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.reportUC.DownloadAuditReport(c.Context(), c.Params("id"))
	if err != nil {
		if handled, resp := mapDomainError(c, err); handled {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// Update godoc
// @Summary      Actualización parcial (incluye asignación de auditor)
// @Tags         provisions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateProvisionRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProvisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/provisions/{id} [patch]
func (h *ProvisionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProvisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if handled, resp := mapDomainError(c, err); handled {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar aprovisionamiento
// @Tags         provisions
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/provisions/{id} [delete]
func (h *ProvisionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Params("id")); err != nil {
		if handled, resp := mapDomainError(c, err); handled {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
