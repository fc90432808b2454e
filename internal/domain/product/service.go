package product

import (
	"context"

	"safetyportal/internal/domain/repositories"
)

// Product позиция каталога
type Product = repositories.Product

// DefaultUnit единица измерения по умолчанию
const DefaultUnit = "nos"

// Service интерфейс бизнес-логики каталога продукции
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, filter repositories.ListFilter) ([]Product, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

// CreateRequest запрос на создание позиции каталога
type CreateRequest struct {
	Name        string  `json:"name"`
	Subtype     string  `json:"subtype"`
	Unit        string  `json:"unit"`
	Rate        float64 `json:"rate"`
	Description string  `json:"description"`
}

// UpdateRequest запрос на изменение позиции, nil поля не меняются
type UpdateRequest struct {
	Name        *string  `json:"name"`
	Subtype     *string  `json:"subtype"`
	Unit        *string  `json:"unit"`
	Rate        *float64 `json:"rate"`
	Description *string  `json:"description"`
}
