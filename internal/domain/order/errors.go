package order

import "errors"

// Доменные ошибки для заказов
var (
	ErrInvalidOrderID          = errors.New("invalid order ID")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidOrderType        = errors.New("order type must be purchase or sales")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("order status transition is not allowed")
	ErrQuantityRequired        = errors.New("quantity must be greater than zero")
	ErrNegativeValue           = errors.New("rate and distance must not be negative")
	ErrOrderDetailsRequired    = errors.New("manufacturer or product is required")
	ErrNothingToUpdate         = errors.New("no fields to update")
	ErrInvalidDocument         = errors.New("uploaded file is not a valid PDF document")
	ErrDocumentTooLarge        = errors.New("uploaded PDF exceeds the size limit")
)
