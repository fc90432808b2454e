package importer

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyportal/extractors"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.False(t, IsPDF([]byte("PK\x03\x04")))
	assert.False(t, IsPDF(nil))
}

func TestPDFReader_ReadText_Rejects(t *testing.T) {
	reader := NewPDFReader(64)

	_, err := reader.ReadText(context.Background(), []byte("plain text, not a pdf"))
	assert.ErrorIs(t, err, ErrNotPDF)

	_, err = reader.ReadText(context.Background(), append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 100)...))
	assert.ErrorIs(t, err, ErrPDFTooLarge)
}

func TestPDFReader_ReadText_CorruptedFile(t *testing.T) {
	reader := NewPDFReader(0)
	require.Equal(t, DefaultMaxPDFBytes, reader.MaxBytes())

	text, err := reader.ReadText(context.Background(), []byte("%PDF-1.4\nthis is not really a pdf body"))
	assert.Error(t, err)
	assert.Empty(t, text)
}

// buildTextPDF собирает одностраничный PDF, где каждая строка выводится отдельным оператором Tj
func buildTextPDF(t *testing.T, lines ...string) []byte {
	t.Helper()

	var content bytes.Buffer
	content.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("0 -14 Td\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", line)
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var doc bytes.Buffer
	doc.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = doc.Len()
		fmt.Fprintf(&doc, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}

	xref := doc.Len()
	fmt.Fprintf(&doc, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&doc, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&doc, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return doc.Bytes()
}

func TestPDFReader_ReadText_SeparatesTextItems(t *testing.T) {
	data := buildTextPDF(t, "Manufacturer: ABC Steel", "Quantity: 500", "From: Delhi", "To: Mumbai")
	reader := NewPDFReader(0)

	text, err := reader.ReadText(context.Background(), data)
	require.NoError(t, err)

	assert.NotContains(t, text, "SteelQuantity")
	assert.NotContains(t, text, "500From")
	assert.NotContains(t, text, "DelhiTo")

	got := extractors.Extract(text)
	assert.True(t, got.Success)
	assert.Equal(t, "ABC Steel", got.Manufacturer)
	assert.Equal(t, "500", got.Quantity)
	assert.Equal(t, "Delhi", got.FromLocation)
	assert.Equal(t, "Mumbai", got.ToLocation)
}
