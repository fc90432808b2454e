package order

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Orders"

var exportHeaders = []string{
	"ID", "Type", "Manufacturer", "Product", "Subtype", "Quantity", "Rate", "Amount",
	"From", "To", "Transport", "Distance (km)", "Dispatch Date", "Status", "Created By", "Created At",
}

// Export записывает заказы в книгу Excel и возвращает количество строк данных
func (s *service) Export(ctx context.Context, filter ListFilter, w io.Writer) (int, error) {
	orders, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// Единственный лист книги переименовывается вместо создания нового
	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheetName, cell, header)
		f.SetCellStyle(exportSheetName, cell, cell, headerStyle)
	}

	for i, o := range orders {
		dispatchDate := ""
		if o.DispatchDate != nil {
			dispatchDate = o.DispatchDate.Format("2006-01-02")
		}

		values := []any{
			o.ID, o.OrderType, o.Manufacturer, o.Product, o.Subtype, o.Quantity, o.Rate, o.Amount(),
			o.FromLocation, o.ToLocation, o.Transport, o.DistanceKm, dispatchDate, o.Status,
			o.CreatedBy, o.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return 0, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	for i := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheetName, col, col, 16)
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return len(orders), nil
}
