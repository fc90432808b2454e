package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"name":           "name",
		"productType":    "product_type",
		"fromLocation":   "from_location",
		"gstNumber":      "gst_number",
		"GSTNumber":      "gst_number",
		"orderID":        "order_id",
		"distanceKm":     "distance_km",
		"from_location":  "from_location",
		"contact-person": "contact_person",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToSnakeCase(in), in)
	}
}

func TestNormalizeFields(t *testing.T) {
	fields := NormalizeFields(Orders, map[string]any{
		"id":           7,
		"createdAt":    "2024-01-01",
		"fromLocation": "Delhi",
		"to_location":  "Mumbai",
		"quantity":     500,
		"unknownField": "dropped",
	})

	assert.Equal(t, Fields{
		"from_location": "Delhi",
		"to_location":   "Mumbai",
		"quantity":      500,
	}, fields)
}
