package partner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/repositories"
)

// DuplicateRule контрагенты одного типа совпадают по названию и местоположению
func DuplicateRule(kind Kind) duplicates.Rule[Partner] {
	return duplicates.Rule[Partner]{
		Entity: string(kind),
		Text:   func(p Partner) []string { return []string{p.Name, p.Location} },
		ID:     func(p Partner) int64 { return p.ID },
	}
}

type kindStore struct {
	repo   repositories.PartnerRepository
	policy *duplicates.Policy[Partner]
}

// service реализация domain service для контрагентов
type service struct {
	stores map[Kind]kindStore
}

// NewService создает domain service по набору репозиториев, по одному на тип
func NewService(
	repos []repositories.PartnerRepository,
	config duplicates.Config,
	recorder duplicates.Recorder,
	logger *slog.Logger,
) Service {
	stores := make(map[Kind]kindStore, len(repos))
	for _, repo := range repos {
		stores[repo.Kind()] = kindStore{
			repo:   repo,
			policy: duplicates.NewPolicy(DuplicateRule(repo.Kind()), config, recorder, logger),
		}
	}
	return &service{stores: stores}
}

func (s *service) store(kind Kind) (kindStore, error) {
	store, ok := s.stores[kind]
	if !ok {
		return kindStore{}, fmt.Errorf("%w: %q", ErrUnknownPartnerKind, kind)
	}
	return store, nil
}

// Create создает контрагента, если похожего того же типа еще нет
func (s *service) Create(ctx context.Context, kind Kind, req CreateRequest) (*Partner, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	p := &Partner{
		Kind:          kind,
		Name:          strings.TrimSpace(req.Name),
		Location:      strings.TrimSpace(req.Location),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		GSTNumber:     strings.ToUpper(strings.TrimSpace(req.GSTNumber)),
		Notes:         req.Notes,
	}
	if p.Name == "" {
		return nil, ErrPartnerNameRequired
	}

	listAll := func(ctx context.Context) ([]Partner, error) {
		return store.repo.List(ctx, repositories.ListFilter{})
	}
	if err := store.policy.Check(ctx, *p, listAll); err != nil {
		return nil, err
	}

	if err := store.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return p, nil
}

// Get возвращает контрагента по ID
func (s *service) Get(ctx context.Context, kind Kind, id int64) (*Partner, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrInvalidPartnerID
	}

	p, err := store.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return p, nil
}

// List возвращает контрагентов типа по фильтру
func (s *service) List(ctx context.Context, kind Kind, filter repositories.ListFilter) ([]Partner, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	items, err := store.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return items, nil
}

// Update изменяет переданные поля контрагента
func (s *service) Update(ctx context.Context, kind Kind, id int64, req UpdateRequest) (*Partner, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrInvalidPartnerID
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrPartnerNameRequired
	}

	fields := repositories.Fields{}
	repositories.SetField(fields, "name", trimmed(req.Name))
	repositories.SetField(fields, "location", trimmed(req.Location))
	repositories.SetField(fields, "contact_person", trimmed(req.ContactPerson))
	repositories.SetField(fields, "phone", trimmed(req.Phone))
	repositories.SetField(fields, "email", trimmed(req.Email))
	if req.GSTNumber != nil {
		fields["gst_number"] = strings.ToUpper(strings.TrimSpace(*req.GSTNumber))
	}
	repositories.SetField(fields, "notes", req.Notes)
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	p, err := store.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to update %s: %w", kind, err)
	}
	return p, nil
}

// Delete удаляет контрагента
func (s *service) Delete(ctx context.Context, kind Kind, id int64) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}
	if id <= 0 {
		return ErrInvalidPartnerID
	}

	if err := store.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPartnerNotFound
		}
		return fmt.Errorf("failed to delete %s: %w", kind, err)
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
