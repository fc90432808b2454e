package persistence

import (
	"context"
	"fmt"
	"time"

	"safetyportal/database"
	"safetyportal/internal/domain/repositories"
)

type orderRepository struct {
	rowRepository[repositories.Order]
}

// NewOrderRepository создает новый репозиторий заказов
func NewOrderRepository(serviceDB *database.ServiceDB) repositories.OrderRepository {
	return &orderRepository{
		rowRepository: rowRepository[repositories.Order]{
			serviceDB:    serviceDB,
			entity:       database.Orders,
			searchColumn: "manufacturer",
			fromRow:      orderFromRow,
			toFields:     orderFields,
		},
	}
}

func orderFromRow(row database.Row) repositories.Order {
	return repositories.Order{
		ID:             row.ID(),
		OrderType:      row.String("order_type"),
		Manufacturer:   row.String("manufacturer"),
		Product:        row.String("product"),
		Subtype:        row.String("subtype"),
		Quantity:       row.Float64("quantity"),
		Rate:           row.Float64("rate"),
		FromLocation:   row.String("from_location"),
		ToLocation:     row.String("to_location"),
		Transport:      row.String("transport"),
		DistanceKm:     row.Float64("distance_km"),
		DispatchDate:   row.TimePtr("dispatch_date"),
		Status:         row.String("status"),
		SourceDocument: row.String("source_document"),
		Notes:          row.String("notes"),
		CreatedBy:      row.String("created_by"),
		CreatedAt:      row.Time("created_at"),
		UpdatedAt:      row.Time("updated_at"),
	}
}

func orderFields(o *repositories.Order) database.Fields {
	return database.Fields{
		"order_type":      o.OrderType,
		"manufacturer":    o.Manufacturer,
		"product":         o.Product,
		"subtype":         o.Subtype,
		"quantity":        o.Quantity,
		"rate":            o.Rate,
		"from_location":   o.FromLocation,
		"to_location":     o.ToLocation,
		"transport":       o.Transport,
		"distance_km":     o.DistanceKm,
		"dispatch_date":   o.DispatchDate,
		"status":          o.Status,
		"source_document": o.SourceDocument,
		"notes":           o.Notes,
		"created_by":      o.CreatedBy,
	}
}

type reminderRepository struct {
	rowRepository[repositories.Reminder]
}

// NewReminderRepository создает новый репозиторий напоминаний
func NewReminderRepository(serviceDB *database.ServiceDB) repositories.ReminderRepository {
	return &reminderRepository{
		rowRepository: rowRepository[repositories.Reminder]{
			serviceDB:    serviceDB,
			entity:       database.Reminders,
			searchColumn: "message",
			fromRow:      reminderFromRow,
			toFields: func(r *repositories.Reminder) database.Fields {
				return database.Fields{
					"order_id":   r.OrderID,
					"remind_at":  r.RemindAt,
					"message":    r.Message,
					"status":     r.Status,
					"sent_at":    r.SentAt,
					"created_by": r.CreatedBy,
				}
			},
		},
	}
}

// ListDue возвращает ожидающие напоминания со сроком не позже now, самые ранние первыми
func (r *reminderRepository) ListDue(ctx context.Context, now time.Time) ([]repositories.Reminder, error) {
	rows, err := r.serviceDB.List(ctx, database.Reminders, database.Filter{
		Equals:  map[string]any{"status": repositories.ReminderStatusPending},
		AtMost:  map[string]any{"remind_at": now},
		OrderBy: "remind_at",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}

	reminders := make([]repositories.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, reminderFromRow(row))
	}
	return reminders, nil
}

func reminderFromRow(row database.Row) repositories.Reminder {
	return repositories.Reminder{
		ID:        row.ID(),
		OrderID:   row.Int64("order_id"),
		RemindAt:  row.Time("remind_at"),
		Message:   row.String("message"),
		Status:    row.String("status"),
		SentAt:    row.TimePtr("sent_at"),
		CreatedBy: row.String("created_by"),
		CreatedAt: row.Time("created_at"),
		UpdatedAt: row.Time("updated_at"),
	}
}
