package order

import (
	"context"
	"io"
	"time"

	"safetyportal/extractors"
	"safetyportal/internal/domain/repositories"
)

// Order заказ на закупку или продажу
type Order = repositories.Order

// Service интерфейс бизнес-логики заказов
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Order, error)
	Delete(ctx context.Context, id int64) error

	// ExtractFromPDF декодирует PDF и извлекает из текста поля заказа.
	// Ошибка возвращается только для файлов, не прошедших проверку формата и размера;
	// сбой декодирования отражается в результате с success=false
	ExtractFromPDF(ctx context.Context, data []byte) (extractors.ExtractionResult, error)

	// Export записывает заказы по фильтру в книгу Excel
	Export(ctx context.Context, filter ListFilter, w io.Writer) (int, error)
}

// TextDecoder декодирует PDF в текст
type TextDecoder interface {
	ReadText(ctx context.Context, data []byte) (string, error)
}

// ExtractionRecorder принимает исходы извлечения для метрик
type ExtractionRecorder interface {
	PDFExtraction(outcome string)
}

// Исходы извлечения
const (
	OutcomeSuccess  = "success"
	OutcomeNoText   = "no_text"
	OutcomeFailed   = "decode_failed"
	OutcomeRejected = "rejected"
)

// ListFilter фильтр списка заказов
type ListFilter struct {
	Status    string
	OrderType string
	Search    string
	Limit     int
	Offset    int
}

// CreateRequest запрос на создание заказа
type CreateRequest struct {
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
	DispatchDate   *time.Time `json:"dispatch_date"`
	Status         string     `json:"status"`
	SourceDocument string     `json:"source_document"`
	Notes          string     `json:"notes"`
	CreatedBy      string     `json:"-"`
}

// UpdateRequest запрос на изменение заказа, nil поля не меняются
type UpdateRequest struct {
	Manufacturer   *string    `json:"manufacturer"`
	Product        *string    `json:"product"`
	Subtype        *string    `json:"subtype"`
	Quantity       *float64   `json:"quantity"`
	Rate           *float64   `json:"rate"`
	FromLocation   *string    `json:"from_location"`
	ToLocation     *string    `json:"to_location"`
	Transport      *string    `json:"transport"`
	DistanceKm     *float64   `json:"distance_km"`
	DispatchDate   *time.Time `json:"dispatch_date"`
	Status         *string    `json:"status"`
	SourceDocument *string    `json:"source_document"`
	Notes          *string    `json:"notes"`
}
