package repositories

import (
	"time"
)

// Fields частичное обновление записи: колонка в snake_case -> новое значение
type Fields = map[string]any

// ListFilter фильтр для списков справочников и заказов
type ListFilter struct {
	// Search подстрока в основном текстовом поле (name, для заказов manufacturer)
	Search string
	// Equals точные совпадения по колонкам
	Equals map[string]any
	Limit  int
	Offset int
}

// ============================================================================
// Users
// ============================================================================

// Роли пользователей портала
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User учетная запись сотрудника
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ============================================================================
// Directories
// ============================================================================

// Manufacturer производитель продукции
type Manufacturer struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ProductType   string    `json:"product_type"`
	Price         float64   `json:"price"`
	Location      string    `json:"location"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PartnerKind тип контрагента: импортер, дилер или заказчик
type PartnerKind string

const (
	PartnerImporter PartnerKind = "importer"
	PartnerDealer   PartnerKind = "dealer"
	PartnerCustomer PartnerKind = "customer"
)

// PartnerKinds все типы контрагентов
var PartnerKinds = []PartnerKind{PartnerImporter, PartnerDealer, PartnerCustomer}

// Partner контрагент. Импортеры, дилеры и заказчики хранятся в разных таблицах одинаковой структуры
type Partner struct {
	ID            int64       `json:"id"`
	Kind          PartnerKind `json:"kind"`
	Name          string      `json:"name"`
	Location      string      `json:"location"`
	ContactPerson string      `json:"contact_person"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	GSTNumber     string      `json:"gst_number"`
	Notes         string      `json:"notes"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Product позиция каталога
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Subtype     string    `json:"subtype"`
	Unit        string    `json:"unit"`
	Rate        float64   `json:"rate"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ============================================================================
// Orders
// ============================================================================

// Типы заказов
const (
	OrderTypePurchase = "purchase"
	OrderTypeSales    = "sales"
)

// Статусы заказа
const (
	OrderStatusPending    = "pending"
	OrderStatusDispatched = "dispatched"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order заказ на закупку или продажу
type Order struct {
	ID             int64      `json:"id"`
	OrderType      string     `json:"order_type"`
	Manufacturer   string     `json:"manufacturer"`
	Product        string     `json:"product"`
	Subtype        string     `json:"subtype"`
	Quantity       float64    `json:"quantity"`
	Rate           float64    `json:"rate"`
	FromLocation   string     `json:"from_location"`
	ToLocation     string     `json:"to_location"`
	Transport      string     `json:"transport"`
	DistanceKm     float64    `json:"distance_km"`
	DispatchDate   *time.Time `json:"dispatch_date,omitempty"`
	Status         string     `json:"status"`
	SourceDocument string     `json:"source_document"`
	Notes          string     `json:"notes"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Amount стоимость заказа
func (o Order) Amount() float64 {
	return o.Quantity * o.Rate
}

// Статусы напоминания
const (
	ReminderStatusPending   = "pending"
	ReminderStatusSent      = "sent"
	ReminderStatusDismissed = "dismissed"
)

// Reminder напоминание об отгрузке заказа
type Reminder struct {
	ID        int64      `json:"id"`
	OrderID   int64      `json:"order_id"`
	RemindAt  time.Time  `json:"remind_at"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SetField добавляет поле в частичное обновление, если значение передано
func SetField[V any](fields Fields, column string, value *V) {
	if value != nil {
		fields[column] = *value
	}
}
