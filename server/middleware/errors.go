package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError интерфейс для ошибок с HTTP статусом и сообщением.
// Используется для избежания циклических зависимостей с пакетом errors
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() string
	Unwrap() error
}

// detailedError ошибка, добавляющая поля в тело ответа
type detailedError interface {
	ResponseDetails() map[string]any
}

// AbortWithError записывает JSON ошибку, логирует её и прерывает цепочку обработчиков.
//
// Тело ответа: {"error": true, "message": ..., "request_id": ...} плюс
// дополнительные поля ошибки. Ошибки без HTTP статуса отдаются как 500
// без деталей
func AbortWithError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)

	statusCode := http.StatusInternalServerError
	message := "Internal server error"
	body := gin.H{}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode()
		message = httpErr.UserMessage()

		var detailed detailedError
		if errors.As(err, &detailed) {
			for k, v := range detailed.ResponseDetails() {
				body[k] = v
			}
		}

		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "HTTP error",
			"error", httpErr.Unwrap(),
			"user_message", message,
			"context", httpErr.GetContext(),
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	} else {
		slog.ErrorContext(c.Request.Context(), "HTTP error",
			"error", err,
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}

	body["error"] = true
	body["message"] = message
	body["request_id"] = reqID

	_ = c.Error(err)
	c.AbortWithStatusJSON(statusCode, body)
}
