package persistence

import (
	"context"
	"errors"
	"fmt"

	"safetyportal/database"
	"safetyportal/internal/domain/repositories"
)

// rowRepository общий адаптер между domain репозиториями и строковым хранилищем database.ServiceDB.
// Конкретные репозитории задают только сущность и преобразования строка <-> модель
type rowRepository[T any] struct {
	serviceDB    *database.ServiceDB
	entity       database.Entity
	searchColumn string
	fromRow      func(database.Row) T
	toFields     func(*T) database.Fields
}

// Create сохраняет запись и перечитывает ее из хранилища
func (r *rowRepository[T]) Create(ctx context.Context, item *T) error {
	row, err := r.serviceDB.Insert(ctx, r.entity, r.toFields(item))
	if err != nil {
		return mapStoreError(err)
	}
	*item = r.fromRow(row)
	return nil
}

// GetByID возвращает запись по ID
func (r *rowRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	row, err := r.serviceDB.Get(ctx, r.entity, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	item := r.fromRow(row)
	return &item, nil
}

// List возвращает записи по фильтру
func (r *rowRepository[T]) List(ctx context.Context, filter repositories.ListFilter) ([]T, error) {
	rows, err := r.serviceDB.List(ctx, r.entity, r.storeFilter(filter))
	if err != nil {
		return nil, mapStoreError(err)
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		items = append(items, r.fromRow(row))
	}
	return items, nil
}

// Update меняет переданные поля и возвращает обновленную запись
func (r *rowRepository[T]) Update(ctx context.Context, id int64, fields repositories.Fields) (*T, error) {
	row, err := r.serviceDB.Update(ctx, r.entity, id, database.Fields(fields))
	if err != nil {
		return nil, mapStoreError(err)
	}
	item := r.fromRow(row)
	return &item, nil
}

// Delete удаляет запись
func (r *rowRepository[T]) Delete(ctx context.Context, id int64) error {
	return mapStoreError(r.serviceDB.Delete(ctx, r.entity, id))
}

func (r *rowRepository[T]) storeFilter(filter repositories.ListFilter) database.Filter {
	storeFilter := database.Filter{
		Equals: filter.Equals,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	if filter.Search != "" && r.searchColumn != "" {
		storeFilter.Like = map[string]string{r.searchColumn: filter.Search}
	}
	return storeFilter
}

// mapStoreError переводит ошибки хранилища в ошибки domain слоя
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return fmt.Errorf("%w: %v", repositories.ErrNotFound, err)
	case errors.Is(err, database.ErrConflict):
		return fmt.Errorf("%w: %v", repositories.ErrConflict, err)
	default:
		return err
	}
}
