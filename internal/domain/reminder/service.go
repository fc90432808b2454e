package reminder

import (
	"context"
	"time"

	"safetyportal/internal/domain/repositories"
)

// Reminder напоминание об отгрузке
type Reminder = repositories.Reminder

// Service интерфейс бизнес-логики напоминаний
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reminder, error)
	List(ctx context.Context, status string) ([]Reminder, error)
	// Due возвращает ожидающие напоминания, срок которых наступил к моменту now
	Due(ctx context.Context, now time.Time) ([]DueReminder, error)
	MarkSent(ctx context.Context, id int64, at time.Time) (*Reminder, error)
	Dismiss(ctx context.Context, id int64) (*Reminder, error)
}

// CreateRequest запрос на создание напоминания
type CreateRequest struct {
	OrderID   int64     `json:"order_id"`
	RemindAt  time.Time `json:"remind_at"`
	Message   string    `json:"message"`
	CreatedBy string    `json:"-"`
}

// DueReminder наступившее напоминание вместе с заказом.
// Order равен nil, если заказ не удалось прочитать
type DueReminder struct {
	Reminder
	Order *repositories.Order `json:"order,omitempty"`
}
