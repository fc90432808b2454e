package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/repositories"
)

// DuplicateRule позиции совпадают по названию, подтипу и цене
var DuplicateRule = duplicates.Rule[Product]{
	Entity:  "product",
	Text:    func(p Product) []string { return []string{p.Name, p.Subtype} },
	Numeric: func(p Product) []float64 { return []float64{p.Rate} },
	ID:      func(p Product) int64 { return p.ID },
}

type service struct {
	repo   repositories.ProductRepository
	policy *duplicates.Policy[Product]
}

// NewService создает новый domain service для каталога продукции
func NewService(
	repo repositories.ProductRepository,
	config duplicates.Config,
	recorder duplicates.Recorder,
	logger *slog.Logger,
) Service {
	return &service{
		repo:   repo,
		policy: duplicates.NewPolicy(DuplicateRule, config, recorder, logger),
	}
}

// Create добавляет позицию в каталог, если похожей еще нет
func (s *service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	p := &Product{
		Name:        strings.TrimSpace(req.Name),
		Subtype:     strings.TrimSpace(req.Subtype),
		Unit:        strings.TrimSpace(req.Unit),
		Rate:        req.Rate,
		Description: req.Description,
	}
	if p.Name == "" {
		return nil, ErrProductNameRequired
	}
	if p.Rate < 0 {
		return nil, ErrNegativeRate
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}

	listAll := func(ctx context.Context) ([]Product, error) {
		return s.repo.List(ctx, repositories.ListFilter{})
	}
	if err := s.policy.Check(ctx, *p, listAll); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// Get возвращает позицию по ID
func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// List возвращает позиции каталога по фильтру
func (s *service) List(ctx context.Context, filter repositories.ListFilter) ([]Product, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return items, nil
}

// Update изменяет переданные поля позиции
func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrProductNameRequired
	}
	if req.Rate != nil && *req.Rate < 0 {
		return nil, ErrNegativeRate
	}

	fields := repositories.Fields{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Subtype != nil {
		fields["subtype"] = strings.TrimSpace(*req.Subtype)
	}
	if req.Unit != nil {
		unit := strings.TrimSpace(*req.Unit)
		if unit == "" {
			unit = DefaultUnit
		}
		fields["unit"] = unit
	}
	repositories.SetField(fields, "rate", req.Rate)
	repositories.SetField(fields, "description", req.Description)
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	p, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// Delete удаляет позицию из каталога
func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidProductID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
