package algorithms

import (
	"strings"
)

// DefaultDuplicateThreshold порог схожести, начиная с которого записи считаются дубликатами.
// Значение подобрано под позиционное расстояние ниже, менять их нужно вместе
const DefaultDuplicateThreshold = 0.85

const (
	exactMatchScore    = 1.0
	containsMatchScore = 0.9
	nearMatchFloor     = 0.85
	nearMatchMaxEdits  = 2
	nearMatchMinLength = 2
)

// Similarity возвращает оценку схожести двух строк в диапазоне [0, 1].
//
// Порядок проверок:
//  1. после нормализации строки совпадают - 1.0
//  2. одна строка содержит другую - 0.9
//  3. иначе 1 - PositionalDistance/maxLen, но не ниже 0.85,
//     если отличий не больше двух и длина больше двух символов
//
// Функция симметрична и не имеет состояния, ее можно вызывать конкурентно.
func Similarity(a, b string) float64 {
	na := NormalizeForComparison(a)
	nb := NormalizeForComparison(b)

	if na == nb {
		return exactMatchScore
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return containsMatchScore
	}

	ra := []rune(na)
	rb := []rune(nb)
	maxLength := max(len(ra), len(rb))
	if maxLength == 0 {
		return exactMatchScore
	}

	distance := positionalDistance(ra, rb)
	similarity := 1 - float64(distance)/float64(maxLength)

	if distance <= nearMatchMaxEdits && maxLength > nearMatchMinLength {
		similarity = max(similarity, nearMatchFloor)
	}

	return similarity
}

// PositionalDistance считает упрощенное расстояние редактирования:
// число несовпадающих символов на одинаковых позициях в пределах более короткой строки
// плюс разница длин. Вставки и удаления со сдвигом не учитываются, это не Левенштейн.
// Строки сравниваются без нормализации, по рунам
func PositionalDistance(a, b string) int {
	return positionalDistance([]rune(a), []rune(b))
}

func positionalDistance(a, b []rune) int {
	shorter := min(len(a), len(b))

	distance := 0
	for i := 0; i < shorter; i++ {
		if a[i] != b[i] {
			distance++
		}
	}

	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}

	return distance + diff
}

// IsSimilar сообщает, превышает ли схожесть строк порог
func IsSimilar(a, b string, threshold float64) bool {
	return Similarity(a, b) > threshold
}
