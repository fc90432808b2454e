package product

import "errors"

// Доменные ошибки для каталога продукции
var (
	ErrInvalidProductID    = errors.New("invalid product ID")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name is required")
	ErrNegativeRate        = errors.New("rate must not be negative")
	ErrNothingToUpdate     = errors.New("no fields to update")
)
