package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound запись с указанным id отсутствует
	ErrNotFound = errors.New("record not found")
	// ErrConflict нарушено ограничение уникальности
	ErrConflict = errors.New("record violates unique constraint")
	// ErrUnknownColumn колонка не принадлежит сущности
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNoFields нечего записывать
	ErrNoFields = errors.New("no fields to write")
)

// timestampLayout совпадает с форматом CURRENT_TIMESTAMP, поэтому даты
// сравниваются в SQL как строки
const timestampLayout = "2006-01-02 15:04:05"

// Row строка таблицы: имя колонки -> значение, прочитанное драйвером
type Row map[string]any

// ID возвращает первичный ключ строки
func (r Row) ID() int64 {
	return r.Int64("id")
}

// String возвращает текстовое значение колонки или пустую строку
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.UTC().Format(timestampLayout)
	default:
		return ""
	}
}

// Int64 возвращает целое значение колонки или 0
func (r Row) Int64(column string) int64 {
	switch v := r[column].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// Float64 возвращает числовое значение колонки или 0
func (r Row) Float64(column string) float64 {
	switch v := r[column].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

// Bool интерпретирует INTEGER колонку как флаг
func (r Row) Bool(column string) bool {
	return r.Int64(column) != 0
}

// Time возвращает значение DATETIME колонки или нулевое время
func (r Row) Time(column string) time.Time {
	switch v := r[column].(type) {
	case time.Time:
		return v.UTC()
	case string:
		if t, err := time.Parse(timestampLayout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TimePtr возвращает nil для NULL
func (r Row) TimePtr(column string) *time.Time {
	t := r.Time(column)
	if t.IsZero() {
		return nil
	}
	return &t
}

// Filter условия выборки. Все условия объединяются через AND
type Filter struct {
	// Equals колонка = значение
	Equals map[string]any
	// Like колонка содержит подстроку (без учета регистра ASCII)
	Like map[string]string
	// AtMost колонка <= значение
	AtMost  map[string]any
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// bindValue приводит значение к виду, в котором оно хранится в SQLite
func bindValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return v.UTC().Format(timestampLayout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return v.UTC().Format(timestampLayout)
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	default:
		return value
	}
}

// sortedKeys фиксирует порядок колонок в запросе
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f Filter) where(entity Entity) (string, []any, error) {
	var (
		conditions []string
		args       []any
	)

	for _, column := range sortedKeys(f.Equals) {
		if !entity.HasColumn(column) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, entity.Table, column)
		}
		conditions = append(conditions, column+" = ?")
		args = append(args, bindValue(f.Equals[column]))
	}
	for _, column := range sortedKeys(f.Like) {
		if !entity.HasColumn(column) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, entity.Table, column)
		}
		conditions = append(conditions, column+" LIKE ?")
		args = append(args, "%"+f.Like[column]+"%")
	}
	for _, column := range sortedKeys(f.AtMost) {
		if !entity.HasColumn(column) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, entity.Table, column)
		}
		conditions = append(conditions, column+" <= ?")
		args = append(args, bindValue(f.AtMost[column]))
	}

	if len(conditions) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

// List возвращает строки сущности. Пустой фильтр означает полный просмотр таблицы
func (db *ServiceDB) List(ctx context.Context, entity Entity, filter Filter) ([]Row, error) {
	where, args, err := filter.where(entity)
	if err != nil {
		return nil, err
	}

	orderBy := "id"
	if filter.OrderBy != "" {
		if !entity.HasColumn(filter.OrderBy) {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, entity.Table, filter.OrderBy)
		}
		orderBy = filter.OrderBy
	}
	if filter.Desc {
		orderBy += " DESC"
	}

	query := "SELECT * FROM " + entity.Table + where + " ORDER BY " + orderBy
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entity.Table, err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entity.Table, err)
	}
	return result, nil
}

// Count возвращает количество строк, подходящих под фильтр
func (db *ServiceDB) Count(ctx context.Context, entity Entity, filter Filter) (int64, error) {
	where, args, err := filter.where(entity)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+entity.Table+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", entity.Table, err)
	}
	return count, nil
}

// Get возвращает строку по id или ErrNotFound
func (db *ServiceDB) Get(ctx context.Context, entity Entity, id int64) (Row, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT * FROM "+entity.Table+" WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", entity.Name, id, err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", entity.Name, id, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%s %d: %w", entity.Name, id, ErrNotFound)
	}
	return result[0], nil
}

// Insert вставляет строку и возвращает ее в том виде, в каком она сохранена
func (db *ServiceDB) Insert(ctx context.Context, entity Entity, fields Fields) (Row, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	columns := sortedKeys(fields)
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, column := range columns {
		if !entity.HasColumn(column) || column == "id" {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, entity.Table, column)
		}
		placeholders[i] = "?"
		args[i] = bindValue(fields[column])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		entity.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, wrapWriteError(entity, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s id: %w", entity.Name, err)
	}

	return db.Get(ctx, entity, id)
}

// Update изменяет только переданные колонки и обновляет updated_at
func (db *ServiceDB) Update(ctx context.Context, entity Entity, id int64, fields Fields) (Row, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	columns := sortedKeys(fields)
	assignments := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+1)
	for _, column := range columns {
		switch {
		case column == "id" || column == "created_at" || column == "updated_at":
			return nil, fmt.Errorf("%w: %s.%s is managed by the store", ErrUnknownColumn, entity.Table, column)
		case !entity.HasColumn(column):
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, entity.Table, column)
		}
		assignments = append(assignments, column+" = ?")
		args = append(args, bindValue(fields[column]))
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := "UPDATE " + entity.Table + " SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, wrapWriteError(entity, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("%s %d: %w", entity.Name, id, ErrNotFound)
	}

	return db.Get(ctx, entity, id)
}

// Delete удаляет строку по id или возвращает ErrNotFound
func (db *ServiceDB) Delete(ctx context.Context, entity Entity, id int64) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM "+entity.Table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", entity.Name, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", entity.Name, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", entity.Name, id, ErrNotFound)
	}
	return nil
}

// wrapWriteError выделяет нарушения ограничений SQLite в ErrConflict
func wrapWriteError(entity Entity, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("failed to write %s: %w: %v", entity.Name, ErrConflict, err)
		}
	}
	return fmt.Errorf("failed to write %s: %w", entity.Name, err)
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
