package orders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"safetyportal/database"
	"safetyportal/importer"
	"safetyportal/internal/api/handlers/common"
	"safetyportal/internal/auth"
	"safetyportal/internal/domain/order"
	apperrors "safetyportal/server/errors"
)

// multipartOverhead запас на заголовки multipart сверх размера файла
const multipartOverhead = 1 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler HTTP обработчик заказов
type Handler struct {
	service        order.Service
	maxUploadBytes int64
}

// NewHandler создает новый HTTP обработчик заказов
func NewHandler(service order.Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = importer.DefaultMaxPDFBytes
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

var errorRules = slices.Concat(
	common.Rules(http.StatusBadRequest,
		order.ErrInvalidOrderID,
		order.ErrInvalidOrderType,
		order.ErrInvalidStatus,
		order.ErrQuantityRequired,
		order.ErrNegativeValue,
		order.ErrOrderDetailsRequired,
		order.ErrNothingToUpdate,
		order.ErrInvalidDocument,
	),
	common.Rules(http.StatusNotFound, order.ErrOrderNotFound),
	common.Rules(http.StatusConflict, order.ErrInvalidStatusTransition),
	common.Rules(http.StatusRequestEntityTooLarge, order.ErrDocumentTooLarge),
)

// parseFilter читает фильтр заказов из query параметров
func parseFilter(c *gin.Context) order.ListFilter {
	base := common.ParseListFilter(c)
	return order.ListFilter{
		Status:    strings.TrimSpace(c.Query("status")),
		OrderType: strings.TrimSpace(c.Query("order_type")),
		Search:    base.Search,
		Limit:     base.Limit,
		Offset:    base.Offset,
	}
}

// List возвращает заказы
// @Summary Список заказов
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус: pending, dispatched, delivered, cancelled"
// @Param order_type query string false "Тип: purchase, sales"
// @Param search query string false "Подстрока в названии производителя"
// @Success 200 {object} map[string]any
// @Router /orders [get]
func (h *Handler) List(c *gin.Context) {
	filter := parseFilter(c)
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	if items == nil {
		items = []order.Order{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"count":  len(items),
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// Create создает заказ с проверкой дубликатов
// @Summary Создать заказ
// @Description Заказ с тем же производителем, продукцией, маршрутом и количеством отклоняется с 409
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body order.CreateRequest true "Заказ"
// @Success 201 {object} repositories.Order
// @Failure 409 {object} map[string]any "Найден дубликат"
// @Router /orders [post]
func (h *Handler) Create(c *gin.Context) {
	var req order.CreateRequest
	if err := common.BindEntity(c, database.Orders, &req); err != nil {
		common.WriteError(c, err)
		return
	}
	if current := auth.FromGin(c); current != nil {
		req.CreatedBy = current.Username
	}

	o, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.Created(c, o)
}

// Get возвращает заказ
// @Summary Получить заказ
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} repositories.Order
// @Router /orders/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		common.WriteError(c, err)
		return
	}

	o, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.OK(c, o)
}

// Update изменяет заказ, включая переход статуса
// @Summary Изменить заказ
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body order.UpdateRequest true "Изменения"
// @Success 200 {object} repositories.Order
// @Failure 409 {object} map[string]any "Недопустимый переход статуса"
// @Router /orders/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		common.WriteError(c, err)
		return
	}

	var req order.UpdateRequest
	if err := common.BindEntity(c, database.Orders, &req); err != nil {
		common.WriteError(c, err)
		return
	}

	o, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.OK(c, o)
}

// Delete удаляет заказ вместе с напоминаниями
// @Summary Удалить заказ
// @Tags orders
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 204
// @Router /orders/{id} [delete]
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

// Extract извлекает поля заказа из загруженного PDF
// @Summary Извлечь поля заказа из PDF
// @Description Документ без текстового слоя возвращает 200 с success=false и текстом ошибки
// @Tags orders
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF документ до 10 МБ"
// @Success 200 {object} extractors.ExtractionResult
// @Failure 400 {object} map[string]any "Файл не является PDF"
// @Failure 413 {object} map[string]any "Файл слишком большой"
// @Router /orders/extract [post]
func (h *Handler) Extract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.WriteError(c, order.ErrDocumentTooLarge, errorRules...)
			return
		}
		common.WriteError(c, apperrors.NewValidationError("Multipart field \"file\" is required", err))
		return
	}
	if header.Size > h.maxUploadBytes {
		common.WriteError(c, order.ErrDocumentTooLarge, errorRules...)
		return
	}

	file, err := header.Open()
	if err != nil {
		common.WriteError(c, apperrors.NewValidationError("Failed to read uploaded file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		common.WriteError(c, apperrors.NewValidationError("Failed to read uploaded file", err))
		return
	}

	result, err := h.service.ExtractFromPDF(c.Request.Context(), data)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.OK(c, result)
}

// Export выгружает заказы в Excel
// @Summary Выгрузить заказы в Excel
// @Tags orders
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "Статус"
// @Param order_type query string false "Тип"
// @Success 200 {file} file
// @Router /orders/export [get]
func (h *Handler) Export(c *gin.Context) {
	filter := parseFilter(c)
	filter.Limit = 0
	filter.Offset = 0

	var buf bytes.Buffer
	count, err := h.service.Export(c.Request.Context(), filter, &buf)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Export-Count", fmt.Sprint(count))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
