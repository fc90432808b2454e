package duplicates

import (
	"errors"
	"fmt"
)

// ErrDuplicate запись совпадает с уже существующей
var ErrDuplicate = errors.New("duplicate record")

// ErrCheckFailed не удалось прочитать существующие записи в строгом режиме
var ErrCheckFailed = errors.New("duplicate check failed")

// ConflictError найденный дубликат. Existing содержит снимок существующей записи
type ConflictError struct {
	Entity     string
	ExistingID int64
	Existing   any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s duplicates existing record %d", e.Entity, e.ExistingID)
}

// Unwrap позволяет проверять конфликт через errors.Is(err, ErrDuplicate)
func (e *ConflictError) Unwrap() error {
	return ErrDuplicate
}
