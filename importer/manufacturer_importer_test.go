package importer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"safetyportal/database"
	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/manufacturer"
	"safetyportal/internal/domain/repositories"
	"safetyportal/internal/infrastructure/persistence"
)

// buildSheet собирает xlsx книгу в памяти
func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseManufacturerSheet(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Name", "Product Type", "Price (INR)", "Location", "Colour"},
		{"ABC Steel", "W-Beam", "1,200.50", "Pune", "red"},
		{},
		{"Kiran Road Safety", "Road Studs", "", "Ahmedabad"},
	})

	records, err := ParseManufacturerSheet(buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, manufacturer.CreateRequest{
		Name:        "ABC Steel",
		ProductType: "W-Beam",
		Price:       1200.5,
		Location:    "Pune",
	}, records[0].Request)

	assert.Equal(t, 4, records[1].Row)
	assert.Zero(t, records[1].Request.Price)
}

func TestParseManufacturerSheet_InvalidPrice(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Name", "Price"},
		{"ABC Steel", "twelve hundred"},
	})

	_, err := ParseManufacturerSheet(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseManufacturerSheet_NotSpreadsheet(t *testing.T) {
	_, err := ParseManufacturerSheet(bytes.NewReader([]byte("name,price\n")))
	assert.Error(t, err)
}

func TestManufacturerImporter_Import(t *testing.T) {
	db, err := database.NewServiceDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	svc := manufacturer.NewService(persistence.NewManufacturerRepository(db), duplicates.DefaultConfig(), nil, nil)
	importer := NewManufacturerImporter(svc, nil)

	records := []ManufacturerRecord{
		{Row: 2, Request: manufacturer.CreateRequest{Name: "ABC Steel", ProductType: "W-Beam", Price: 1200}},
		{Row: 3, Request: manufacturer.CreateRequest{Name: "ABC Steel ", ProductType: "W-Beam", Price: 1200}},
		{Row: 4, Request: manufacturer.CreateRequest{Name: "", ProductType: "Studs"}},
		{Row: 5, Request: manufacturer.CreateRequest{Name: "Kiran Road Safety", ProductType: "Road Studs", Price: 85}},
	}

	result, err := importer.Import(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Duplicates)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "duplicate of manufacturer #")
	assert.Equal(t, 4, result.Errors[1].Row)

	list, err := svc.List(context.Background(), repositories.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestManufacturerImporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewManufacturerImporter(nil, nil).Import(ctx, []ManufacturerRecord{{Row: 2}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Created)
}
