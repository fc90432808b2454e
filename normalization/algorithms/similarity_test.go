package algorithms

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{name: "identical strings", a: "Jindal Steel", b: "Jindal Steel", min: 1.0, max: 1.0},
		{name: "case and whitespace", a: "ABC Industries", b: "  abc   industries ", min: 1.0, max: 1.0},
		{name: "both empty", a: "", b: "   ", min: 1.0, max: 1.0},
		{name: "substring", a: "Steel Corp", b: "Steel Corporation", min: 0.9, max: 0.9},
		{name: "dissimilar cities", a: "Mumbai", b: "Delhi", min: 0.0, max: 0.84},
		{name: "single typo", a: "Jindal Steel", b: "Jindal Steal", min: 0.91, max: 0.92},
		{name: "two edits boosted", a: "abcd", b: "abxy", min: 0.85, max: 0.85},
		{name: "short strings not boosted", a: "ab", b: "xy", min: 0.0, max: 0.0},
		{name: "shift is not forgiven", a: "xabcd", b: "abcde", min: 0.0, max: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.min, "Similarity(%q, %q)", tt.a, tt.b)
			assert.LessOrEqual(t, got, tt.max, "Similarity(%q, %q)", tt.a, tt.b)
		})
	}
}

func TestSimilarity_ReflexiveAndSymmetric(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 200; i++ {
		a := faker.Company()
		b := faker.City()

		assert.Equal(t, 1.0, Similarity(a, a), "reflexive for %q", a)
		assert.Equal(t, Similarity(a, b), Similarity(b, a), "symmetric for %q / %q", a, b)

		score := Similarity(a, b)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestPositionalDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "abcde", 2},
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"пила", "пилы", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PositionalDistance(tt.a, tt.b), "PositionalDistance(%q, %q)", tt.a, tt.b)
		assert.Equal(t, tt.want, PositionalDistance(tt.b, tt.a), "PositionalDistance(%q, %q)", tt.b, tt.a)
	}
}

func TestIsSimilar(t *testing.T) {
	assert.True(t, IsSimilar("Safety Cones Ltd", "safety cones ltd ", DefaultDuplicateThreshold))
	assert.False(t, IsSimilar("Pune", "Chennai", DefaultDuplicateThreshold))
	// ровно порог не считается превышением
	assert.False(t, IsSimilar("abcd", "abxy", DefaultDuplicateThreshold))
}

func TestNormalizeForComparison(t *testing.T) {
	assert.Equal(t, "", NormalizeForComparison(""))
	assert.Equal(t, "abc steel", NormalizeForComparison("  ABC\t\nSteel  "))
	assert.Equal(t, "w-beam", NormalizeHyphens("w–beam"))
}
