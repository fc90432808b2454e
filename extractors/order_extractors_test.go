package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtract проверяет извлечение полей заказа из текста документа
func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ExtractionResult
	}{
		{
			name: "labeled lines",
			text: "Manufacturer: ABC Steel\nQuantity: 500\nFrom: Delhi\nTo: Mumbai",
			want: ExtractionResult{
				Success:      true,
				Manufacturer: "ABC Steel",
				Quantity:     "500",
				FromLocation: "Delhi",
				ToLocation:   "Mumbai",
			},
		},
		{
			name: "keyword product without label",
			text: "W Beam Crash Barrier required, Qty: 200",
			want: ExtractionResult{
				Success:  true,
				Product:  "W Beam Crash Barrier",
				Subtype:  "W-Beam",
				Quantity: "200",
			},
		},
		{
			name: "alternative labels and trailing keywords",
			text: "Supplier : Kiran Road Safety Pvt. Ltd. Product\n" +
				"Material: Hot applied marking compound\n" +
				"Product Type: Yellow\n" +
				"Ordered: 1,250 kg\n" +
				"Shipped From: Ahmedabad to site\n" +
				"Deliver To: NH-48 Package 3 Transport by road",
			want: ExtractionResult{
				Success:      true,
				Manufacturer: "Kiran Road Safety Pvt. Ltd",
				Product:      "Hot applied marking compound",
				Subtype:      "Yellow",
				Quantity:     "1250",
				FromLocation: "Ahmedabad",
				ToLocation:   "NH-48 Package 3",
			},
		},
		{
			name: "too short values are dropped",
			text: "Vendor: AB\nFrom: X\nItem: Reflective road studs",
			want: ExtractionResult{
				Success: true,
				Product: "Road Studs",
				Subtype: "Reflective",
			},
		},
		{
			name: "more specific subtype wins",
			text: "Delineator, bi-directional, qty 40",
			want: ExtractionResult{
				Success:  true,
				Product:  "Delineators",
				Subtype:  "Bi-Directional",
				Quantity: "40",
			},
		},
		{
			name: "dash variants and colon spacing",
			text: "Item ; Thrie–Beam barrier sections",
			want: ExtractionResult{
				Success: true,
				Product: "Thrie Beam Crash Barrier",
				Subtype: "Thrie-Beam",
			},
		},
		{
			name: "empty label does not take the next line",
			text: "Manufacturer:\nQuantity: 500",
			want: ExtractionResult{
				Success:  true,
				Quantity: "500",
			},
		},
		{
			name: "empty from keeps to on its own line",
			text: "From:\nTo: Mumbai",
			want: ExtractionResult{
				Success:    true,
				ToLocation: "Mumbai",
			},
		},
		{
			name: "empty quantity does not read the next line",
			text: "Quantity:\nPrice: 40",
			want: ExtractionResult{Success: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtract_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\r\n"} {
		got := Extract(text)

		assert.False(t, got.Success)
		assert.NotEmpty(t, got.Error)
		assert.Empty(t, got.Manufacturer)
		assert.Empty(t, got.Product)
		assert.Empty(t, got.Subtype)
		assert.Empty(t, got.Quantity)
		assert.Empty(t, got.FromLocation)
		assert.Empty(t, got.ToLocation)
	}
}

func TestExtract_NoFieldsIsStillSuccess(t *testing.T) {
	got := Extract("Invoice #2231 dated 04/05/2024")

	assert.True(t, got.Success)
	assert.Empty(t, got.Error)
	assert.Equal(t, ExtractionResult{Success: true}, got)
}

func TestNormalizeDocumentText(t *testing.T) {
	assert.Equal(t, "Qty: 20 From: Pune - Nashik", NormalizeDocumentText("Qty ;20\r\nFrom:Pune — Nashik"))
	assert.Equal(t, "fi", NormalizeDocumentText("ﬁ"))
}
