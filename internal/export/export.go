// Package export writes locally-computed license usage reports and saves
// backend binary exports to disk.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// UsageRow is one license's usage summary.
type UsageRow struct {
	SoftwareName string
	LicenseKey   string
	VendorName   string
	MaxUsage     int
	Assigned     int
	UsagePercent int
}

var usageHeaders = []string{"Software", "License Key", "Vendor", "Max Usage", "Assigned", "Usage %"}

func usageCells(r UsageRow) []string {
	return []string{
		r.SoftwareName,
		r.LicenseKey,
		r.VendorName,
		strconv.Itoa(r.MaxUsage),
		strconv.Itoa(r.Assigned),
		strconv.Itoa(r.UsagePercent),
	}
}

// LicenseUsageCSV writes the usage rows as CSV.
func LicenseUsageCSV(w io.Writer, rows []UsageRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(usageHeaders); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		if err := writer.Write(usageCells(r)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// LicenseUsageXLSX writes the usage rows as an Excel workbook.
func LicenseUsageXLSX(w io.Writer, rows []UsageRow) error {
	const sheet = "License Usage"

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, header := range usageHeaders {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, r := range rows {
		for colIdx, value := range usageCells(r) {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	for i := range usageHeaders {
		col := string(rune('A' + i))
		f.SetColWidth(sheet, col, col, 15)
	}
	f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveReport streams a backend export into path via fetch. The file is
// removed again when fetch fails so a broken download never looks like a
// finished report.
func SaveReport(path string, fetch func(w io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fetch(out); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}
