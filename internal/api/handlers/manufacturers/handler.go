package manufacturers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"safetyportal/database"
	"safetyportal/importer"
	"safetyportal/internal/api/handlers/common"
	"safetyportal/internal/domain/manufacturer"
	apperrors "safetyportal/server/errors"
)

const (
	// maxImportBytes ограничение размера загружаемой книги
	maxImportBytes = 5 << 20
	// multipartOverhead запас на заголовки multipart сверх размера файла
	multipartOverhead = 1 << 20
)

// Handler HTTP обработчик справочника производителей
type Handler struct {
	service  manufacturer.Service
	importer *importer.ManufacturerImporter
}

// NewHandler создает новый HTTP обработчик производителей
func NewHandler(service manufacturer.Service, importer *importer.ManufacturerImporter) *Handler {
	return &Handler{service: service, importer: importer}
}

var errorRules = slices.Concat(
	common.Rules(http.StatusBadRequest,
		manufacturer.ErrInvalidManufacturerID,
		manufacturer.ErrManufacturerNameRequired,
		manufacturer.ErrNegativePrice,
		manufacturer.ErrNothingToUpdate,
	),
	common.Rules(http.StatusNotFound, manufacturer.ErrManufacturerNotFound),
)

// List возвращает производителей
// @Summary Список производителей
// @Tags manufacturers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Подстрока в названии"
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any
// @Router /manufacturers [get]
func (h *Handler) List(c *gin.Context) {
	filter := common.ParseListFilter(c)
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.List(c, items, filter)
}

// Create создает производителя с проверкой дубликатов
// @Summary Создать производителя
// @Description Похожий производитель (название, тип продукции, цена) отклоняется с 409
// @Tags manufacturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body manufacturer.CreateRequest true "Производитель"
// @Success 201 {object} repositories.Manufacturer
// @Failure 409 {object} map[string]any "Найден дубликат"
// @Router /manufacturers [post]
func (h *Handler) Create(c *gin.Context) {
	var req manufacturer.CreateRequest
	if err := common.BindEntity(c, database.Manufacturers, &req); err != nil {
		common.WriteError(c, err)
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.Created(c, m)
}

// Get возвращает производителя
// @Summary Получить производителя
// @Tags manufacturers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} repositories.Manufacturer
// @Router /manufacturers/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		common.WriteError(c, err)
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.OK(c, m)
}

// Update изменяет переданные поля производителя
// @Summary Изменить производителя
// @Tags manufacturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body manufacturer.UpdateRequest true "Изменения"
// @Success 200 {object} repositories.Manufacturer
// @Router /manufacturers/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		common.WriteError(c, err)
		return
	}

	var req manufacturer.UpdateRequest
	if err := common.BindEntity(c, database.Manufacturers, &req); err != nil {
		common.WriteError(c, err)
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.OK(c, m)
}

// Delete удаляет производителя
// @Summary Удалить производителя
// @Tags manufacturers
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 204
// @Router /manufacturers/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		common.WriteError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	c.Status(http.StatusNoContent)
}

// Import загружает производителей из xlsx книги
// @Summary Импорт производителей из Excel
// @Description Строки, похожие на существующие записи, пропускаются и попадают в errors
// @Tags manufacturers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Книга .xlsx"
// @Success 200 {object} importer.ImportResult
// @Failure 413 {object} map[string]any "Файл больше 5 МБ"
// @Router /manufacturers/import [post]
func (h *Handler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.WriteError(c, apperrors.NewPayloadTooLargeError("Spreadsheet exceeds 5 MB", err))
			return
		}
		common.WriteError(c, apperrors.NewValidationError("Multipart field \"file\" is required", err))
		return
	}
	if header.Size > maxImportBytes {
		common.WriteError(c, apperrors.NewPayloadTooLargeError("Spreadsheet exceeds 5 MB", nil))
		return
	}

	file, err := header.Open()
	if err != nil {
		common.WriteError(c, apperrors.NewValidationError("Failed to read uploaded file", err))
		return
	}
	defer file.Close()

	records, err := importer.ParseManufacturerSheet(file)
	if err != nil {
		common.WriteError(c, apperrors.NewValidationError("Failed to parse spreadsheet: "+err.Error(), err))
		return
	}

	result, err := h.importer.Import(c.Request.Context(), records)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	common.OK(c, result)
}
