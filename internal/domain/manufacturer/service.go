package manufacturer

import (
	"context"

	"safetyportal/internal/domain/repositories"
)

// Manufacturer производитель в доменной модели
type Manufacturer = repositories.Manufacturer

// Service интерфейс бизнес-логики справочника производителей
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Manufacturer, error)
	Get(ctx context.Context, id int64) (*Manufacturer, error)
	List(ctx context.Context, filter repositories.ListFilter) ([]Manufacturer, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Manufacturer, error)
	Delete(ctx context.Context, id int64) error
}

// CreateRequest запрос на создание производителя
type CreateRequest struct {
	Name          string  `json:"name"`
	ProductType   string  `json:"product_type"`
	Price         float64 `json:"price"`
	Location      string  `json:"location"`
	ContactPerson string  `json:"contact_person"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Notes         string  `json:"notes"`
}

// UpdateRequest запрос на изменение производителя, nil поля не меняются
type UpdateRequest struct {
	Name          *string  `json:"name"`
	ProductType   *string  `json:"product_type"`
	Price         *float64 `json:"price"`
	Location      *string  `json:"location"`
	ContactPerson *string  `json:"contact_person"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	Notes         *string  `json:"notes"`
}
