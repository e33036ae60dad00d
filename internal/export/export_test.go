package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var sampleRows = []UsageRow{
	{SoftwareName: "SolarWinds", LicenseKey: "LIC-1", VendorName: "SolarWinds Corp", MaxUsage: 2, Assigned: 3, UsagePercent: 150},
	{SoftwareName: "PAN Threat", LicenseKey: "LIC-2", VendorName: "Palo Alto", MaxUsage: 10, Assigned: 1, UsagePercent: 10},
}

func TestLicenseUsageCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := LicenseUsageCSV(&buf, sampleRows); err != nil {
		t.Fatalf("LicenseUsageCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "Software" || records[0][5] != "Usage %" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "LIC-1" || records[1][5] != "150" {
		t.Errorf("row 1 = %v, over-allocation must survive export", records[1])
	}
}

func TestLicenseUsageXLSXWritesWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := LicenseUsageXLSX(&buf, sampleRows); err != nil {
		t.Fatalf("LicenseUsageXLSX: %v", err)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("output does not look like an xlsx workbook")
	}
}

func TestSaveReportRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := SaveReport(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("connection reset")
	})
	if err == nil {
		t.Fatal("expected fetch error to propagate")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("partial download left on disk")
	}

	if err := SaveReport(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "%PDF-1.4")
		return err
	}); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("saved report = %q, %v", data, err)
	}
}
