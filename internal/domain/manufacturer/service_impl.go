package manufacturer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/repositories"
)

// DuplicateRule производители совпадают по названию, типу продукции и цене
var DuplicateRule = duplicates.Rule[Manufacturer]{
	Entity:  "manufacturer",
	Text:    func(m Manufacturer) []string { return []string{m.Name, m.ProductType} },
	Numeric: func(m Manufacturer) []float64 { return []float64{m.Price} },
	ID:      func(m Manufacturer) int64 { return m.ID },
}

// service реализация domain service для производителей
type service struct {
	repo   repositories.ManufacturerRepository
	policy *duplicates.Policy[Manufacturer]
}

// NewService создает новый domain service для производителей
func NewService(
	repo repositories.ManufacturerRepository,
	config duplicates.Config,
	recorder duplicates.Recorder,
	logger *slog.Logger,
) Service {
	return &service{
		repo:   repo,
		policy: duplicates.NewPolicy(DuplicateRule, config, recorder, logger),
	}
}

// Create создает производителя, если похожего еще нет
func (s *service) Create(ctx context.Context, req CreateRequest) (*Manufacturer, error) {
	m := &Manufacturer{
		Name:          strings.TrimSpace(req.Name),
		ProductType:   strings.TrimSpace(req.ProductType),
		Price:         req.Price,
		Location:      strings.TrimSpace(req.Location),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		Notes:         req.Notes,
	}
	if m.Name == "" {
		return nil, ErrManufacturerNameRequired
	}
	if m.Price < 0 {
		return nil, ErrNegativePrice
	}

	if err := s.policy.Check(ctx, *m, s.listAll); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create manufacturer: %w", err)
	}
	return m, nil
}

func (s *service) listAll(ctx context.Context) ([]Manufacturer, error) {
	return s.repo.List(ctx, repositories.ListFilter{})
}

// Get возвращает производителя по ID
func (s *service) Get(ctx context.Context, id int64) (*Manufacturer, error) {
	if id <= 0 {
		return nil, ErrInvalidManufacturerID
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrManufacturerNotFound
		}
		return nil, fmt.Errorf("failed to get manufacturer: %w", err)
	}
	return m, nil
}

// List возвращает производителей по фильтру
func (s *service) List(ctx context.Context, filter repositories.ListFilter) ([]Manufacturer, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	return items, nil
}

// Update изменяет переданные поля производителя
func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Manufacturer, error) {
	if id <= 0 {
		return nil, ErrInvalidManufacturerID
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrManufacturerNameRequired
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, ErrNegativePrice
	}

	fields := repositories.Fields{}
	repositories.SetField(fields, "name", trimmed(req.Name))
	repositories.SetField(fields, "product_type", trimmed(req.ProductType))
	repositories.SetField(fields, "price", req.Price)
	repositories.SetField(fields, "location", trimmed(req.Location))
	repositories.SetField(fields, "contact_person", trimmed(req.ContactPerson))
	repositories.SetField(fields, "phone", trimmed(req.Phone))
	repositories.SetField(fields, "email", trimmed(req.Email))
	repositories.SetField(fields, "notes", req.Notes)
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	m, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrManufacturerNotFound
		}
		return nil, fmt.Errorf("failed to update manufacturer: %w", err)
	}
	return m, nil
}

// Delete удаляет производителя
func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidManufacturerID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrManufacturerNotFound
		}
		return fmt.Errorf("failed to delete manufacturer: %w", err)
	}
	return nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
