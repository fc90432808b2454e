package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"safetyportal/database"
	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/manufacturer"
)

// ErrEmptySheet в книге нет строки заголовков
var ErrEmptySheet = errors.New("spreadsheet has no header row")

// ManufacturerRecord строка таблицы производителей
type ManufacturerRecord struct {
	Row     int
	Request manufacturer.CreateRequest
}

// ParseManufacturerSheet читает первый лист xlsx книги.
//
// Первая строка содержит заголовки ("Name", "Product Type", "Price" ...),
// которые сопоставляются с колонками таблицы manufacturers. Неизвестные
// колонки игнорируются, пустые строки пропускаются
func ParseManufacturerSheet(r io.Reader) ([]ManufacturerRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = headerKey(cell)
	}

	records := make([]ManufacturerRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		raw := make(map[string]any, len(row))
		for col, cell := range row {
			if col >= len(header) || strings.TrimSpace(cell) == "" {
				continue
			}
			raw[header[col]] = strings.TrimSpace(cell)
		}

		fields := database.NormalizeFields(database.Manufacturers, raw)
		if len(fields) == 0 {
			continue
		}

		req, err := requestFromFields(fields)
		rowNum := i + 2
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		records = append(records, ManufacturerRecord{Row: rowNum, Request: req})
	}

	return records, nil
}

// headerKey "Product Type (optional)" -> "product_type"
func headerKey(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if idx := strings.Index(cell, "("); idx > 0 {
		cell = strings.TrimSpace(cell[:idx])
	}
	return database.ToSnakeCase(cell)
}

func requestFromFields(fields database.Fields) (manufacturer.CreateRequest, error) {
	text := func(column string) string {
		s, _ := fields[column].(string)
		return s
	}

	req := manufacturer.CreateRequest{
		Name:          text("name"),
		ProductType:   text("product_type"),
		Location:      text("location"),
		ContactPerson: text("contact_person"),
		Phone:         text("phone"),
		Email:         text("email"),
		Notes:         text("notes"),
	}

	if price := strings.ReplaceAll(text("price"), ",", ""); price != "" {
		value, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return req, fmt.Errorf("invalid price %q", text("price"))
		}
		req.Price = value
	}

	return req, nil
}

// ManufacturerCreator создает производителя с проверкой дубликатов
type ManufacturerCreator interface {
	Create(ctx context.Context, req manufacturer.CreateRequest) (*manufacturer.Manufacturer, error)
}

// RowError ошибка импорта отдельной строки
type RowError struct {
	Row     int    `json:"row"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ImportResult содержит результаты импорта
type ImportResult struct {
	Total      int           `json:"total"`
	Created    int           `json:"created"`
	Duplicates int           `json:"duplicates"`
	Errors     []RowError    `json:"errors"`
	Started    time.Time     `json:"started"`
	Completed  time.Time     `json:"completed"`
	Duration   time.Duration `json:"duration"`
}

// ManufacturerImporter загружает производителей из таблицы.
// Каждая строка проходит через сервис, поэтому дубликаты отклоняются
// тем же правилом, что и при ручном вводе
type ManufacturerImporter struct {
	creator ManufacturerCreator
	logger  *slog.Logger
}

// NewManufacturerImporter создает новый импортер
func NewManufacturerImporter(creator ManufacturerCreator, logger *slog.Logger) *ManufacturerImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManufacturerImporter{creator: creator, logger: logger}
}

// Import создает записи по одной. Ошибка строки не прерывает импорт,
// отмена контекста прерывает
func (mi *ManufacturerImporter) Import(ctx context.Context, records []ManufacturerRecord) (*ImportResult, error) {
	result := &ImportResult{
		Total:   len(records),
		Errors:  make([]RowError, 0),
		Started: time.Now(),
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		_, err := mi.creator.Create(ctx, record.Request)
		var conflict *duplicates.ConflictError
		switch {
		case err == nil:
			result.Created++
		case errors.As(err, &conflict):
			result.Duplicates++
			result.Errors = append(result.Errors, RowError{
				Row:     record.Row,
				Name:    record.Request.Name,
				Message: fmt.Sprintf("duplicate of manufacturer #%d", conflict.ExistingID),
			})
		default:
			result.Errors = append(result.Errors, RowError{
				Row:     record.Row,
				Name:    record.Request.Name,
				Message: err.Error(),
			})
		}
	}

	result.Completed = time.Now()
	result.Duration = result.Completed.Sub(result.Started)

	mi.logger.InfoContext(ctx, "manufacturer import completed",
		"total", result.Total,
		"created", result.Created,
		"duplicates", result.Duplicates,
		"errors", len(result.Errors)-result.Duplicates,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}
