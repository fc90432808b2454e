package algorithms

import (
	"strings"
)

// NormalizeWhitespace заменяет переводы строк и табуляции пробелами
// и схлопывает повторяющиеся пробелы
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeForComparison готовит строку к нечеткому сравнению:
// обрезает пробелы по краям, приводит к нижнему регистру и схлопывает пробелы внутри.
// Пустая строка остается пустой
func NormalizeForComparison(text string) string {
	if text == "" {
		return ""
	}
	return NormalizeWhitespace(strings.ToLower(text))
}

// NormalizeHyphens приводит варианты тире к обычному дефису
func NormalizeHyphens(text string) string {
	return hyphenReplacer.Replace(text)
}

var hyphenReplacer = strings.NewReplacer(
	"—", "-", // em dash
	"–", "-", // en dash
	"−", "-", // minus
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
)
