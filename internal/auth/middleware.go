package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ginContextKey ключ данных пользователя в gin.Context
const ginContextKey = "auth"

// Authenticate проверяет Bearer токен и кладет данные пользователя в контекст запроса
func Authenticate(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		authCtx, err := m.Parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			slog.DebugContext(c.Request.Context(), "token rejected", "error", err, "path", c.Request.URL.Path)
			abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ginContextKey, authCtx)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), authCtx))
		c.Next()
	}
}

// RequireRole пропускает только пользователей с одной из ролей.
// Должен стоять после Authenticate
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx := FromGin(c)
		if authCtx == nil {
			abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !authCtx.HasRole(roles...) {
			slog.WarnContext(c.Request.Context(), "access denied",
				"username", authCtx.Username,
				"role", authCtx.Role,
				"required", roles,
				"path", c.Request.URL.Path,
			)
			abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// FromGin извлекает данные пользователя из gin.Context
func FromGin(c *gin.Context) *Context {
	if v, ok := c.Get(ginContextKey); ok {
		if authCtx, ok := v.(*Context); ok {
			return authCtx
		}
	}
	return FromContext(c.Request.Context())
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      true,
		"message":    message,
		"request_id": c.GetString("request_id"),
	})
}
