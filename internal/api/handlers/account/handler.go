package account

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"safetyportal/internal/api/handlers/common"
	"safetyportal/internal/auth"
	"safetyportal/internal/domain/user"
	apperrors "safetyportal/server/errors"
)

// Handler HTTP обработчик входа и учетных записей
type Handler struct {
	users user.Service
}

// NewHandler создает новый HTTP обработчик учетных записей
func NewHandler(users user.Service) *Handler {
	return &Handler{users: users}
}

// LoginRequest тело запроса входа
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var errorRules = slices.Concat(
	common.Rules(http.StatusUnauthorized, user.ErrInvalidCredentials, user.ErrUserInactive),
	common.Rules(http.StatusBadRequest, user.ErrInvalidUserID, user.ErrUsernameRequired, user.ErrPasswordTooShort, user.ErrInvalidRole, user.ErrCannotDeleteSelf),
	common.Rules(http.StatusNotFound, user.ErrUserNotFound),
	common.Rules(http.StatusConflict, user.ErrUsernameTaken),
)

// Login выдает токен доступа
// @Summary Вход в портал
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Учетные данные"
// @Success 200 {object} user.LoginResult
// @Failure 401 {object} map[string]any
// @Failure 429 {object} map[string]any
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, apperrors.NewValidationError("Username and password are required", err))
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.OK(c, result)
}

// Me возвращает текущего пользователя
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repositories.User
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	current := auth.FromGin(c)
	if current == nil {
		common.WriteError(c, apperrors.NewUnauthorizedError("Authentication required", nil))
		return
	}

	u, err := h.users.Get(c.Request.Context(), current.UserID)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.OK(c, u)
}

// ListUsers возвращает список пользователей
// @Summary Список пользователей
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repositories.User
// @Router /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	if users == nil {
		users = []user.User{}
	}
	common.OK(c, users)
}

// CreateUser создает учетную запись сотрудника
// @Summary Создать пользователя
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body user.CreateRequest true "Пользователь"
// @Success 201 {object} repositories.User
// @Failure 409 {object} map[string]any
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, apperrors.NewValidationError("Invalid JSON body", err))
		return
	}

	u, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	common.Created(c, u)
}

// DeleteUser удаляет учетную запись
// @Summary Удалить пользователя
// @Tags users
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Success 204
// @Router /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		common.WriteError(c, err)
		return
	}

	var actorID int64
	if current := auth.FromGin(c); current != nil {
		actorID = current.UserID
	}

	if err := h.users.Delete(c.Request.Context(), id, actorID); err != nil {
		common.WriteError(c, err, errorRules...)
		return
	}
	c.Status(http.StatusNoContent)
}
