package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"safetyportal/internal/domain/repositories"
)

type service struct {
	repo   repositories.ReminderRepository
	orders repositories.OrderRepository
	logger *slog.Logger
}

// NewService создает новый domain service для напоминаний
func NewService(
	repo repositories.ReminderRepository,
	orders repositories.OrderRepository,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, orders: orders, logger: logger}
}

// Create создает напоминание для существующего заказа
func (s *service) Create(ctx context.Context, req CreateRequest) (*Reminder, error) {
	if req.OrderID <= 0 {
		return nil, ErrOrderRequired
	}
	if req.RemindAt.IsZero() {
		return nil, ErrRemindAtRequired
	}

	o, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = defaultMessage(o)
	}

	r := &Reminder{
		OrderID:   req.OrderID,
		RemindAt:  req.RemindAt.UTC().Truncate(time.Second),
		Message:   message,
		Status:    repositories.ReminderStatusPending,
		CreatedBy: req.CreatedBy,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return r, nil
}

func defaultMessage(o *repositories.Order) string {
	return fmt.Sprintf("Dispatch %s %s (%g) from %s to %s",
		o.Product, o.Subtype, o.Quantity, o.FromLocation, o.ToLocation)
}

// List возвращает напоминания, status может быть пустым
func (s *service) List(ctx context.Context, status string) ([]Reminder, error) {
	filter := repositories.ListFilter{}
	if status != "" {
		switch status {
		case repositories.ReminderStatusPending, repositories.ReminderStatusSent, repositories.ReminderStatusDismissed:
		default:
			return nil, ErrInvalidStatus
		}
		filter.Equals = map[string]any{"status": status}
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return items, nil
}

// Due возвращает наступившие напоминания с данными заказов
func (s *service) Due(ctx context.Context, now time.Time) ([]DueReminder, error) {
	reminders, err := s.repo.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}

	due := make([]DueReminder, 0, len(reminders))
	for _, r := range reminders {
		item := DueReminder{Reminder: r}
		o, err := s.orders.GetByID(ctx, r.OrderID)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to load order for reminder",
				"reminder_id", r.ID,
				"order_id", r.OrderID,
				"error", err,
			)
		} else {
			item.Order = o
		}
		due = append(due, item)
	}
	return due, nil
}

// MarkSent отмечает напоминание отправленным
func (s *service) MarkSent(ctx context.Context, id int64, at time.Time) (*Reminder, error) {
	return s.finish(ctx, id, repositories.Fields{
		"status":  repositories.ReminderStatusSent,
		"sent_at": at,
	})
}

// Dismiss закрывает напоминание без отправки
func (s *service) Dismiss(ctx context.Context, id int64) (*Reminder, error) {
	return s.finish(ctx, id, repositories.Fields{"status": repositories.ReminderStatusDismissed})
}

// finish переводит ожидающее напоминание в конечный статус
func (s *service) finish(ctx context.Context, id int64, fields repositories.Fields) (*Reminder, error) {
	if id <= 0 {
		return nil, ErrInvalidReminderID
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	if current.Status != repositories.ReminderStatusPending {
		return nil, fmt.Errorf("%w: reminder %d is %s", ErrReminderNotPending, id, current.Status)
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return updated, nil
}
