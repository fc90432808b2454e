package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"safetyportal/database"
	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/repositories"
	apperrors "safetyportal/server/errors"
	"safetyportal/server/middleware"
)

// Лимиты списков
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// dateColumns колонки с датой, которые форма присылает без времени
var dateColumns = []string{"dispatch_date", "remind_at"}

// dateLayouts форматы дат, принимаемые помимо RFC 3339
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// BindEntity читает JSON тело запроса в dst.
//
// Ключи приводятся к колонкам сущности через database.NormalizeFields,
// поэтому клиент может слать как productType, так и product_type.
// Неизвестные ключи отбрасываются. Даты без часового пояса считаются UTC
func BindEntity(c *gin.Context, entity database.Entity, dst any) error {
	var raw map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		return apperrors.NewValidationError("Invalid JSON body", err)
	}

	fields := database.NormalizeFields(entity, raw)
	for _, column := range dateColumns {
		value, ok := fields[column]
		if !ok {
			continue
		}
		normalized, err := normalizeDate(value)
		if err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("Invalid date in %s", column), err)
		}
		fields[column] = normalized
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return apperrors.NewValidationError("Invalid request body", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperrors.NewValidationError("Invalid field type in request body", err)
	}
	return nil
}

// normalizeDate приводит дату к RFC 3339, пустая строка означает отсутствие даты
func normalizeDate(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return s, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Format(time.RFC3339), nil
		}
	}
	return nil, fmt.Errorf("unsupported date format %q", s)
}

// ParseID разбирает числовой идентификатор из параметра маршрута
func ParseID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("Invalid %s", param), err)
	}
	return id, nil
}

// ParseListFilter читает search, limit и offset из query параметров
func ParseListFilter(c *gin.Context) repositories.ListFilter {
	filter := repositories.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  DefaultListLimit,
	}

	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = min(limit, MaxListLimit)
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset >= 0 {
		filter.Offset = offset
	}
	return filter
}

// ErrorRule сопоставляет доменную ошибку с HTTP ответом
type ErrorRule struct {
	Target error
	Status int
}

// Rules короткая запись набора правил
func Rules(status int, targets ...error) []ErrorRule {
	rules := make([]ErrorRule, len(targets))
	for i, target := range targets {
		rules[i] = ErrorRule{Target: target, Status: status}
	}
	return rules
}

// WriteError переводит ошибку сервиса в HTTP ответ.
//
// Конфликт дубликатов отдается как 409 с существующей записью, ошибки
// из rules получают свой статус с текстом ошибки, остальное 500
func WriteError(c *gin.Context, err error, rules ...ErrorRule) {
	middleware.AbortWithError(c, ToAppError(err, rules...))
}

// ToAppError выполняет сопоставление ошибок для WriteError
func ToAppError(err error, rules ...ErrorRule) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var conflict *duplicates.ConflictError
	if errors.As(err, &conflict) {
		return apperrors.NewConflictError(
			fmt.Sprintf("A similar %s already exists (id %d)", conflict.Entity, conflict.ExistingID), err,
		).WithDetail("duplicate", true).WithDetail("existing", conflict.Existing)
	}

	if errors.Is(err, duplicates.ErrCheckFailed) {
		return apperrors.NewServiceUnavailableError("Duplicate check is unavailable, try again later", err)
	}

	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			return &apperrors.AppError{Code: rule.Status, Message: rule.Target.Error(), Err: err}
		}
	}

	return apperrors.NewInternalError("request failed", err)
}

// Created отвечает 201 с созданной записью
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK отвечает 200
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// List отвечает списком с параметрами пагинации
func List[T any](c *gin.Context, items []T, filter repositories.ListFilter) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"count":  len(items),
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}
