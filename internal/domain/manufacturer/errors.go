package manufacturer

import "errors"

// Доменные ошибки для производителей
var (
	ErrInvalidManufacturerID    = errors.New("invalid manufacturer ID")
	ErrManufacturerNotFound     = errors.New("manufacturer not found")
	ErrManufacturerNameRequired = errors.New("manufacturer name is required")
	ErrNegativePrice            = errors.New("price must not be negative")
	ErrNothingToUpdate          = errors.New("no fields to update")
)
