package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"safetyportal/extractors"
	"safetyportal/importer"
	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/repositories"
)

// DuplicateRule заказы совпадают по производителю, продукции, подтипу, маршруту и количеству
var DuplicateRule = duplicates.Rule[Order]{
	Entity: "order",
	Text: func(o Order) []string {
		return []string{o.Manufacturer, o.Product, o.Subtype, o.FromLocation, o.ToLocation}
	},
	Numeric: func(o Order) []float64 { return []float64{o.Quantity} },
	ID:      func(o Order) int64 { return o.ID },
}

type noopExtractionRecorder struct{}

func (noopExtractionRecorder) PDFExtraction(string) {}

// Config параметры domain service заказов
type Config struct {
	Duplicates     duplicates.Config
	MaxUploadBytes int64
}

// service реализация domain service для заказов
type service struct {
	repo     repositories.OrderRepository
	policy   *duplicates.Policy[Order]
	decoder  TextDecoder
	maxBytes int64
	recorder ExtractionRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService создает новый domain service для заказов
func NewService(
	repo repositories.OrderRepository,
	decoder TextDecoder,
	config Config,
	dupRecorder duplicates.Recorder,
	extractionRecorder ExtractionRecorder,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if extractionRecorder == nil {
		extractionRecorder = noopExtractionRecorder{}
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = importer.DefaultMaxPDFBytes
	}

	return &service{
		repo:     repo,
		policy:   duplicates.NewPolicy(DuplicateRule, config.Duplicates, dupRecorder, logger),
		decoder:  decoder,
		maxBytes: config.MaxUploadBytes,
		recorder: extractionRecorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Create создает заказ, если такой же еще не заведен
func (s *service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	o := &Order{
		OrderType:      strings.ToLower(strings.TrimSpace(req.OrderType)),
		Manufacturer:   strings.TrimSpace(req.Manufacturer),
		Product:        strings.TrimSpace(req.Product),
		Subtype:        strings.TrimSpace(req.Subtype),
		Quantity:       req.Quantity,
		Rate:           req.Rate,
		FromLocation:   strings.TrimSpace(req.FromLocation),
		ToLocation:     strings.TrimSpace(req.ToLocation),
		Transport:      strings.TrimSpace(req.Transport),
		DistanceKm:     req.DistanceKm,
		DispatchDate:   req.DispatchDate,
		Status:         strings.ToLower(strings.TrimSpace(req.Status)),
		SourceDocument: strings.TrimSpace(req.SourceDocument),
		Notes:          req.Notes,
		CreatedBy:      req.CreatedBy,
	}
	if o.OrderType == "" {
		o.OrderType = repositories.OrderTypePurchase
	}
	if o.Status == "" {
		o.Status = repositories.OrderStatusPending
	}

	if err := validateOrder(o); err != nil {
		return nil, err
	}

	listAll := func(ctx context.Context) ([]Order, error) {
		return s.repo.List(ctx, repositories.ListFilter{})
	}
	if err := s.policy.Check(ctx, *o, listAll); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", o.ID,
		"order_type", o.OrderType,
		"manufacturer", o.Manufacturer,
		"product", o.Product,
		"created_by", o.CreatedBy,
	)
	return o, nil
}

func validateOrder(o *Order) error {
	if !ValidOrderType(o.OrderType) {
		return ErrInvalidOrderType
	}
	if !ValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if o.Manufacturer == "" && o.Product == "" {
		return ErrOrderDetailsRequired
	}
	if o.Quantity <= 0 {
		return ErrQuantityRequired
	}
	if o.Rate < 0 || o.DistanceKm < 0 {
		return ErrNegativeValue
	}
	return nil
}

// Get возвращает заказ по ID
func (s *service) Get(ctx context.Context, id int64) (*Order, error) {
	if id <= 0 {
		return nil, ErrInvalidOrderID
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

// List возвращает заказы по статусу, типу и производителю
func (s *service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	repoFilter := repositories.ListFilter{
		Search: filter.Search,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	equals := map[string]any{}
	if filter.Status != "" {
		if !ValidStatus(filter.Status) {
			return nil, ErrInvalidStatus
		}
		equals["status"] = filter.Status
	}
	if filter.OrderType != "" {
		if !ValidOrderType(filter.OrderType) {
			return nil, ErrInvalidOrderType
		}
		equals["order_type"] = filter.OrderType
	}
	if len(equals) > 0 {
		repoFilter.Equals = equals
	}

	items, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return items, nil
}

// Update изменяет переданные поля заказа. Смена статуса проверяется по допустимым переходам,
// при отгрузке без даты проставляется текущая дата
func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Order, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := repositories.Fields{}
	setText := func(column string, value *string) {
		if value != nil {
			fields[column] = strings.TrimSpace(*value)
		}
	}
	setText("manufacturer", req.Manufacturer)
	setText("product", req.Product)
	setText("subtype", req.Subtype)
	setText("from_location", req.FromLocation)
	setText("to_location", req.ToLocation)
	setText("transport", req.Transport)
	setText("source_document", req.SourceDocument)
	repositories.SetField(fields, "notes", req.Notes)

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, ErrQuantityRequired
		}
		fields["quantity"] = *req.Quantity
	}
	if (req.Rate != nil && *req.Rate < 0) || (req.DistanceKm != nil && *req.DistanceKm < 0) {
		return nil, ErrNegativeValue
	}
	repositories.SetField(fields, "rate", req.Rate)
	repositories.SetField(fields, "distance_km", req.DistanceKm)
	if req.DispatchDate != nil {
		fields["dispatch_date"] = *req.DispatchDate
	}

	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if !ValidStatus(status) {
			return nil, ErrInvalidStatus
		}
		if !CanTransition(current.Status, status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, status)
		}
		fields["status"] = status
		if status == repositories.OrderStatusDispatched && current.DispatchDate == nil && req.DispatchDate == nil {
			fields["dispatch_date"] = s.now()
		}
	}

	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if updated.Status != current.Status {
		s.logger.InfoContext(ctx, "order status changed",
			"order_id", id,
			"from", current.Status,
			"to", updated.Status,
		)
	}
	return updated, nil
}

// Delete удаляет заказ вместе с его напоминаниями
func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidOrderID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// ExtractFromPDF декодирует документ и извлекает поля заказа
func (s *service) ExtractFromPDF(ctx context.Context, data []byte) (extractors.ExtractionResult, error) {
	if int64(len(data)) > s.maxBytes {
		s.recorder.PDFExtraction(OutcomeRejected)
		return extractors.ExtractionResult{}, ErrDocumentTooLarge
	}
	if !importer.IsPDF(data) {
		s.recorder.PDFExtraction(OutcomeRejected)
		return extractors.ExtractionResult{}, ErrInvalidDocument
	}

	start := s.now()
	text, err := s.decoder.ReadText(ctx, data)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return extractors.ExtractionResult{}, ctxErr
		}
		s.recorder.PDFExtraction(OutcomeFailed)
		s.logger.WarnContext(ctx, "failed to decode PDF", "error", err, "size_bytes", len(data))
		return extractors.FailedExtraction(fmt.Sprintf("Failed to read PDF: %v", err)), nil
	}

	result := extractors.Extract(text)
	if !result.Success {
		s.recorder.PDFExtraction(OutcomeNoText)
		s.logger.InfoContext(ctx, "PDF has no text layer", "size_bytes", len(data))
		return result, nil
	}

	s.recorder.PDFExtraction(OutcomeSuccess)
	s.logger.InfoContext(ctx, "order fields extracted from PDF",
		"size_bytes", len(data),
		"text_length", len(text),
		"manufacturer_found", result.Manufacturer != "",
		"product_found", result.Product != "",
		"quantity_found", result.Quantity != "",
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return result, nil
}
