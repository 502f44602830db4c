// Package export renders client views as downloadable spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/elliottking-cpu/beast-app-sub003/internal/models"
)

// ClientExportHeader is the tank-level export layout: one row per tank,
// with the owning property repeated on each row.
var ClientExportHeader = []string{
	"Property Address",
	"City",
	"Postcode",
	"Tank Name",
	"Tank Type",
	"Capacity (L)",
	"Install Date",
	"Last Service",
	"Next Service",
}

var clientExportWidths = []float64{
	30, // Property Address
	18, // City
	12, // Postcode
	20, // Tank Name
	20, // Tank Type
	14, // Capacity
	14, // Install Date
	14, // Last Service
	14, // Next Service
}

// GenerateClientExport renders the view as an xlsx workbook. Properties
// without tanks still get a row so the export shows every site.
func GenerateClientExport(view *models.ClientView) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Client Detail"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ClientExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i := range ClientExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(clientExportWidths) {
			if err := f.SetColWidth(sheetName, col, col, clientExportWidths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	row := 2
	for _, property := range view.Properties {
		if len(property.Tanks) == 0 {
			if err := writeRow(f, sheetName, row, []any{
				property.AddressLine1, property.City, property.Postcode,
				"", "", "", "", "", "",
			}); err != nil {
				f.Close()
				return nil, err
			}
			row++
			continue
		}
		for _, tank := range property.Tanks {
			if err := writeRow(f, sheetName, row, []any{
				property.AddressLine1,
				property.City,
				property.Postcode,
				tank.Name,
				strOrEmpty(tank.TypeName),
				tank.CapacityLitres,
				dateOrEmpty(tank.InstallDate),
				dateOrEmpty(tank.LastServiceDate),
				dateOrEmpty(tank.NextServiceDate),
			}); err != nil {
				f.Close()
				return nil, err
			}
			row++
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		if value == nil || value == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
