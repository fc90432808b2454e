package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"safetyportal/internal/domain/reminder"
	"safetyportal/server/monitoring"
)

// DefaultReminderInterval период опроса наступивших напоминаний
const DefaultReminderInterval = time.Minute

// ReminderRecorder принимает события отправки для метрик
type ReminderRecorder interface {
	ReminderSent()
}

// ReminderDispatcher фоновый обработчик напоминаний об отгрузке.
// На каждом тике выбирает наступившие напоминания, пишет их в журнал и помечает отправленными
type ReminderDispatcher struct {
	service  reminder.Service
	interval time.Duration
	recorder ReminderRecorder
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	lastRun time.Time
	lastErr error
	sent    int64
}

// NewReminderDispatcher создает обработчик. recorder может быть nil
func NewReminderDispatcher(service reminder.Service, interval time.Duration, recorder ReminderRecorder, logger *slog.Logger) *ReminderDispatcher {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderDispatcher{
		service:  service,
		interval: interval,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Run обрабатывает напоминания до отмены ctx. Первый проход выполняется сразу
func (d *ReminderDispatcher) Run(ctx context.Context) {
	d.logger.Info("reminder dispatcher started", "interval", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if _, err := d.RunOnce(ctx); err != nil && ctx.Err() == nil {
			d.logger.Error("reminder dispatch failed", "error", err)
		}

		select {
		case <-ctx.Done():
			d.logger.Info("reminder dispatcher stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce обрабатывает напоминания, срок которых наступил, и возвращает число отправленных.
// Ошибка отметки одного напоминания не прерывает обработку остальных
func (d *ReminderDispatcher) RunOnce(ctx context.Context) (int, error) {
	now := d.now().UTC()

	due, err := d.service.Due(ctx, now)
	if err != nil {
		d.finish(now, 0, err)
		return 0, fmt.Errorf("failed to load due reminders: %w", err)
	}

	sent := 0
	var firstErr error
	for _, item := range due {
		if err := ctx.Err(); err != nil {
			d.finish(now, sent, err)
			return sent, err
		}

		attrs := []any{
			"reminder_id", item.ID,
			"order_id", item.OrderID,
			"remind_at", item.RemindAt,
			"message", item.Message,
		}
		if item.Order != nil {
			attrs = append(attrs,
				"manufacturer", item.Order.Manufacturer,
				"product", item.Order.Product,
				"to_location", item.Order.ToLocation,
				"order_status", item.Order.Status,
			)
		}
		d.logger.Info("shipment reminder due", attrs...)

		if _, err := d.service.MarkSent(ctx, item.ID, now); err != nil {
			d.logger.Warn("failed to mark reminder as sent", "reminder_id", item.ID, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("reminder %d: %w", item.ID, err)
			}
			continue
		}

		sent++
		if d.recorder != nil {
			d.recorder.ReminderSent()
		}
	}

	d.finish(now, sent, firstErr)
	return sent, firstErr
}

func (d *ReminderDispatcher) finish(at time.Time, sent int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastRun = at
	d.lastErr = err
	d.sent += int64(sent)
}

// HealthCheck состояние обработчика для /health.
// Ошибка последнего прохода или долгое отсутствие проходов дают degraded
func (d *ReminderDispatcher) HealthCheck(ctx context.Context) monitoring.ComponentHealth {
	d.mu.RLock()
	defer d.mu.RUnlock()

	health := monitoring.ComponentHealth{
		Name:      "reminders",
		Status:    monitoring.HealthStatusHealthy,
		Timestamp: d.now(),
	}

	switch {
	case d.lastRun.IsZero():
		health.Message = "Reminder dispatcher has not run yet"
	case d.lastErr != nil:
		health.Status = monitoring.HealthStatusDegraded
		health.Message = fmt.Sprintf("Last dispatch failed: %v", d.lastErr)
	case d.now().Sub(d.lastRun) > 3*d.interval:
		health.Status = monitoring.HealthStatusDegraded
		health.Message = fmt.Sprintf("Last dispatch was at %s", d.lastRun.Format(time.RFC3339))
	default:
		health.Message = fmt.Sprintf("%d reminders sent", d.sent)
	}

	return health
}
