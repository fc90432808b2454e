package database

// Entity описывает таблицу и набор колонок, доступных для записи.
// id, created_at и updated_at управляются хранилищем и в Columns не входят
type Entity struct {
	Name    string
	Table   string
	Columns []string
}

// HasColumn проверяет, что колонка принадлежит сущности
func (e Entity) HasColumn(column string) bool {
	switch column {
	case "id", "created_at", "updated_at":
		return true
	}
	for _, c := range e.Columns {
		if c == column {
			return true
		}
	}
	return false
}

var partnerColumns = []string{"name", "location", "contact_person", "phone", "email", "gst_number", "notes"}

var (
	Users = Entity{
		Name:    "user",
		Table:   "users",
		Columns: []string{"username", "password_hash", "full_name", "role", "active"},
	}

	Manufacturers = Entity{
		Name:    "manufacturer",
		Table:   "manufacturers",
		Columns: []string{"name", "product_type", "price", "location", "contact_person", "phone", "email", "notes"},
	}

	Importers = Entity{Name: "importer", Table: "importers", Columns: partnerColumns}
	Dealers   = Entity{Name: "dealer", Table: "dealers", Columns: partnerColumns}
	Customers = Entity{Name: "customer", Table: "customers", Columns: partnerColumns}

	Products = Entity{
		Name:    "product",
		Table:   "products",
		Columns: []string{"name", "subtype", "unit", "rate", "description"},
	}

	Orders = Entity{
		Name:  "order",
		Table: "orders",
		Columns: []string{
			"order_type", "manufacturer", "product", "subtype", "quantity", "rate",
			"from_location", "to_location", "transport", "distance_km", "dispatch_date",
			"status", "source_document", "notes", "created_by",
		},
	}

	Reminders = Entity{
		Name:    "reminder",
		Table:   "reminders",
		Columns: []string{"order_id", "remind_at", "message", "status", "sent_at", "created_by"},
	}
)
