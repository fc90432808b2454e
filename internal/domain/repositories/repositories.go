package repositories

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrConflict запись нарушает ограничение уникальности хранилища
	ErrConflict = errors.New("record conflicts with an existing one")
)

// CRUDRepository базовые операции над записями одного типа
type CRUDRepository[T any] interface {
	// Create сохраняет запись и заполняет ID и временные метки
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	// List без условий в фильтре возвращает все записи
	List(ctx context.Context, filter ListFilter) ([]T, error)
	// Update меняет только переданные поля
	Update(ctx context.Context, id int64, fields Fields) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository интерфейс для работы с пользователями
type UserRepository interface {
	CRUDRepository[User]
	GetByUsername(ctx context.Context, username string) (*User, error)
	Count(ctx context.Context) (int64, error)
}

// ManufacturerRepository интерфейс для работы с производителями
type ManufacturerRepository interface {
	CRUDRepository[Manufacturer]
}

// PartnerRepository интерфейс для работы с контрагентами одного типа
type PartnerRepository interface {
	CRUDRepository[Partner]
	Kind() PartnerKind
}

// ProductRepository интерфейс для работы с каталогом продукции
type ProductRepository interface {
	CRUDRepository[Product]
}

// OrderRepository интерфейс для работы с заказами
type OrderRepository interface {
	CRUDRepository[Order]
}

// ReminderRepository интерфейс для работы с напоминаниями
type ReminderRepository interface {
	CRUDRepository[Reminder]
	// ListDue возвращает ожидающие напоминания со сроком не позже now
	ListDue(ctx context.Context, now time.Time) ([]Reminder, error)
}
