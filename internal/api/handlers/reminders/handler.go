package reminders

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"safetyportal/database"
	"safetyportal/internal/api/handlers/common"
	"safetyportal/internal/auth"
	"safetyportal/internal/domain/reminder"
)

// Handler HTTP обработчик напоминаний об отгрузке
type Handler struct {
	service reminder.Service
	now     func() time.Time
}

// NewHandler создает новый HTTP обработчик напоминаний
func NewHandler(service reminder.Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

var errorRules = slices.Concat(
	common.Rules(http.StatusBadRequest,
		reminder.ErrInvalidReminderID,
		reminder.ErrOrderRequired,
		reminder.ErrRemindAtRequired,
		reminder.ErrInvalidStatus,
	),
	common.Rules(http.StatusNotFound, reminder.ErrReminderNotFound, reminder.ErrOrderNotFound),
	common.Rules(http.StatusConflict, reminder.ErrReminderNotPending),
)

// List возвращает напоминания
// @Summary Список напоминаний
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус: pending, sent, dismissed"
// @Success 200 {array} repositories.Reminder
// @Router /reminders [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	if items == nil {
		items = []reminder.Reminder{}
	}
	common.OK(c, items)
}

// Create планирует напоминание об отгрузке заказа
// @Summary Создать напоминание
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reminder.CreateRequest true "Напоминание, remind_at в RFC 3339 или YYYY-MM-DD"
// @Success 201 {object} repositories.Reminder
// @Router /reminders [post]
func (h *Handler) Create(c *gin.Context) {
	var req reminder.CreateRequest
	if err := common.BindEntity(c, database.Reminders, &req); err != nil {
		common.WriteError(c, err)
		return
	}
	if current := auth.FromGin(c); current != nil {
		req.CreatedBy = current.Username
	}

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.Created(c, r)
}

// Due возвращает напоминания, срок которых наступил
// @Summary Наступившие напоминания
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} reminder.DueReminder
// @Router /reminders/due [get]
func (h *Handler) Due(c *gin.Context) {
	items, err := h.service.Due(c.Request.Context(), h.now())
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	if items == nil {
		items = []reminder.DueReminder{}
	}
	common.OK(c, items)
}

// Dismiss отменяет ожидающее напоминание
// @Summary Отменить напоминание
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} repositories.Reminder
// @Failure 409 {object} map[string]any "Напоминание уже отправлено или отменено"
// @Router /reminders/{id}/dismiss [post]
func (h *Handler) Dismiss(c *gin.Context) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		common.WriteError(c, err)
		return
	}

	r, err := h.service.Dismiss(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.OK(c, r)
}
