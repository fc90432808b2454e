package database

import (
	"strings"
	"unicode"
)

// Fields значения колонок для вставки или обновления, ключи в snake_case
type Fields map[string]any

// ToSnakeCase переводит имя поля из camelCase в snake_case:
// productType -> product_type, gstNumber -> gst_number, fromLocation -> from_location.
// Имена, уже записанные в snake_case, не меняются
func ToSnakeCase(name string) string {
	runes := []rune(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(runes) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' || r == ' ' {
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeFields единственная точка сопоставления имен полей входящих данных
// с колонками таблицы. Ключи приводятся к snake_case, неизвестные ключи
// и служебные колонки (id, created_at, updated_at) отбрасываются
func NormalizeFields(entity Entity, raw map[string]any) Fields {
	fields := make(Fields, len(raw))
	for key, value := range raw {
		column := ToSnakeCase(key)
		switch column {
		case "id", "created_at", "updated_at":
			continue
		}
		if !entity.HasColumn(column) {
			continue
		}
		fields[column] = value
	}
	return fields
}
