package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPDFBytes максимальный размер загружаемого PDF (10 МБ)
const DefaultMaxPDFBytes int64 = 10 << 20

var (
	// ErrNotPDF файл не является PDF документом
	ErrNotPDF = errors.New("file is not a PDF document")
	// ErrPDFTooLarge файл превышает допустимый размер
	ErrPDFTooLarge = errors.New("PDF file exceeds maximum upload size")
)

var pdfMagic = []byte("%PDF-")

// IsPDF проверяет сигнатуру PDF в начале файла
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// PDFReader извлекает текстовый слой из PDF.
// Текст собирается построчно: строки страницы разделяются переводом строки,
// страницы - пустой строкой
type PDFReader struct {
	maxBytes int64
}

// NewPDFReader создает новый ридер PDF с ограничением размера
func NewPDFReader(maxBytes int64) *PDFReader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPDFBytes
	}
	return &PDFReader{maxBytes: maxBytes}
}

// MaxBytes возвращает ограничение размера файла
func (r *PDFReader) MaxBytes() int64 {
	return r.maxBytes
}

// ReadText декодирует PDF и возвращает его текст.
// Паника внутри декодера (битые файлы) превращается в ошибку
func (r *PDFReader) ReadText(ctx context.Context, data []byte) (text string, err error) {
	if int64(len(data)) > r.maxBytes {
		return "", ErrPDFTooLarge
	}
	if !IsPDF(data) {
		return "", ErrNotPDF
	}

	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("failed to decode PDF: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageNum, err)
		}

		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				if text := strings.TrimSpace(word.S); text != "" {
					words = append(words, text)
				}
			}
			if len(words) == 0 {
				continue
			}
			builder.WriteString(strings.Join(words, " "))
			builder.WriteByte('\n')
		}
		builder.WriteByte('\n')
	}

	return builder.String(), nil
}
