package partners

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"safetyportal/database"
	"safetyportal/internal/api/handlers/common"
	"safetyportal/internal/domain/partner"
)

// partnerColumns таблицы импортеров, дилеров и заказчиков имеют одинаковые колонки
var partnerColumns = database.Importers

// Handler HTTP обработчик справочников контрагентов.
// Маршруты /api/importers, /api/dealers и /api/customers отличаются только типом
type Handler struct {
	service partner.Service
}

// NewHandler создает новый HTTP обработчик контрагентов
func NewHandler(service partner.Service) *Handler {
	return &Handler{service: service}
}

var errorRules = slices.Concat(
	common.Rules(http.StatusBadRequest,
		partner.ErrInvalidPartnerID,
		partner.ErrUnknownPartnerKind,
		partner.ErrPartnerNameRequired,
		partner.ErrNothingToUpdate,
	),
	common.Rules(http.StatusNotFound, partner.ErrPartnerNotFound),
)

// Routes регистрирует CRUD маршруты контрагентов одного типа.
// Удаление требует прав администратора и оборачивается adminOnly
func (h *Handler) Routes(rg *gin.RouterGroup, kind partner.Kind, adminOnly gin.HandlerFunc) {
	rg.GET("", h.List(kind))
	rg.POST("", h.Create(kind))
	rg.GET("/:id", h.Get(kind))
	rg.PUT("/:id", h.Update(kind))
	rg.DELETE("/:id", adminOnly, h.Delete(kind))
}

// List возвращает контрагентов
// @Summary Список контрагентов
// @Description Тот же обработчик обслуживает /importers, /dealers и /customers
// @Tags partners
// @Produce json
// @Security BearerAuth
// @Param search query string false "Подстрока в названии"
// @Success 200 {object} map[string]any
// @Router /importers [get]
// @Router /dealers [get]
// @Router /customers [get]
func (h *Handler) List(kind partner.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := common.ParseListFilter(c)
		items, err := h.service.List(c.Request.Context(), kind, filter)
		if err != nil {
			common.WriteError(c, err, errorRules...)
			return
		}
		common.List(c, items, filter)
	}
}

// Create создает контрагента с проверкой дубликатов по названию и городу
// @Summary Создать контрагента
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body partner.CreateRequest true "Контрагент"
// @Success 201 {object} repositories.Partner
// @Failure 409 {object} map[string]any "Найден дубликат"
// @Router /importers [post]
// @Router /dealers [post]
// @Router /customers [post]
func (h *Handler) Create(kind partner.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req partner.CreateRequest
		if err := common.BindEntity(c, partnerColumns, &req); err != nil {
			common.WriteError(c, err)
			return
		}

		p, err := h.service.Create(c.Request.Context(), kind, req)
		if err != nil {
			common.WriteError(c, err, errorRules...)
			return
		}
		common.Created(c, p)
	}
}

// Get возвращает контрагента
func (h *Handler) Get(kind partner.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := common.ParseID(c, "id")
		if err != nil {
			common.WriteError(c, err)
			return
		}

		p, err := h.service.Get(c.Request.Context(), kind, id)
		if err != nil {
			common.WriteError(c, err, errorRules...)
			return
		}
		common.OK(c, p)
	}
}

// Update изменяет переданные поля контрагента
func (h *Handler) Update(kind partner.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := common.ParseID(c, "id")
		if err != nil {
			common.WriteError(c, err)
			return
		}

		var req partner.UpdateRequest
		if err := common.BindEntity(c, partnerColumns, &req); err != nil {
			common.WriteError(c, err)
			return
		}

		p, err := h.service.Update(c.Request.Context(), kind, id, req)
		if err != nil {
			common.WriteError(c, err, errorRules...)
			return
		}
		common.OK(c, p)
	}
}

// Delete удаляет контрагента
func (h *Handler) Delete(kind partner.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := common.ParseID(c, "id")
		if err != nil {
			common.WriteError(c, err)
			return
		}

		if err := h.service.Delete(c.Request.Context(), kind, id); err != nil {
			common.WriteError(c, err, errorRules...)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
