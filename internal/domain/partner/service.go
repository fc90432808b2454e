package partner

import (
	"context"

	"safetyportal/internal/domain/repositories"
)

// Partner импортер, дилер или заказчик
type Partner = repositories.Partner

// Kind тип контрагента
type Kind = repositories.PartnerKind

// Service интерфейс бизнес-логики справочников контрагентов.
// Импортеры, дилеры и заказчики обслуживаются одинаково, тип передается явно
type Service interface {
	Create(ctx context.Context, kind Kind, req CreateRequest) (*Partner, error)
	Get(ctx context.Context, kind Kind, id int64) (*Partner, error)
	List(ctx context.Context, kind Kind, filter repositories.ListFilter) ([]Partner, error)
	Update(ctx context.Context, kind Kind, id int64, req UpdateRequest) (*Partner, error)
	Delete(ctx context.Context, kind Kind, id int64) error
}

// CreateRequest запрос на создание контрагента
type CreateRequest struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	GSTNumber     string `json:"gst_number"`
	Notes         string `json:"notes"`
}

// UpdateRequest запрос на изменение контрагента, nil поля не меняются
type UpdateRequest struct {
	Name          *string `json:"name"`
	Location      *string `json:"location"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	GSTNumber     *string `json:"gst_number"`
	Notes         *string `json:"notes"`
}
