package products

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"safetyportal/database"
	"safetyportal/internal/api/handlers/common"
	"safetyportal/internal/domain/product"
)

// Handler HTTP обработчик каталога продукции
type Handler struct {
	service product.Service
}

// NewHandler создает новый HTTP обработчик каталога
func NewHandler(service product.Service) *Handler {
	return &Handler{service: service}
}

var errorRules = slices.Concat(
	common.Rules(http.StatusBadRequest,
		product.ErrInvalidProductID,
		product.ErrProductNameRequired,
		product.ErrNegativeRate,
		product.ErrNothingToUpdate,
	),
	common.Rules(http.StatusNotFound, product.ErrProductNotFound),
)

// List возвращает позиции каталога
// @Summary Список позиций каталога
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param search query string false "Подстрока в названии"
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any
// @Router /products [get]
func (h *Handler) List(c *gin.Context) {
	filter := common.ParseListFilter(c)
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.List(c, items, filter)
}

// Create создает позицию каталога с проверкой дубликатов
// @Summary Создать позицию каталога
// @Description Похожая позиция (название, подтип, ставка) отклоняется с 409
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body product.CreateRequest true "Позиция"
// @Success 201 {object} repositories.Product
// @Failure 409 {object} map[string]any "Найден дубликат"
// @Router /products [post]
func (h *Handler) Create(c *gin.Context) {
	var req product.CreateRequest
	if err := common.BindEntity(c, database.Products, &req); err != nil {
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

// Get возвращает позицию каталога
// @Summary Получить позицию каталога
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} repositories.Product
// @Router /products/{id} [get]
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

// Update изменяет переданные поля позиции каталога
// @Summary Изменить позицию каталога
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body product.UpdateRequest true "Изменения"
// @Success 200 {object} repositories.Product
// @Router /products/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		common.WriteError(c, err)
		return
	}

	var req product.UpdateRequest
	if err := common.BindEntity(c, database.Products, &req); err != nil {
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

// Delete удаляет позицию каталога
// @Summary Удалить позицию каталога
// @Tags products
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 204
// @Router /products/{id} [delete]
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
