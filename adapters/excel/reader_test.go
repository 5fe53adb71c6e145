package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/domain/program"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/errors"
)

const testSheet = "Air Board Program Summary"

// writeWorkbook writes a small source workbook for tests.
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("failed to name sheet: %v", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("failed to write cell %s: %v", cell, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "source.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func headerRow() []interface{} {
	row := make([]interface{}, len(program.Columns))
	for i, col := range program.Columns {
		row[i] = col
	}
	return row
}

func TestReadTable_Workbook(t *testing.T) {
	path := writeWorkbook(t, testSheet, [][]interface{}{
		headerRow(),
		{"2020-03-15", "Carl Moyer", "Tractor", "Case", "John Deere", "$1,500.50"},
		{"2019-06-01", "FARMER", "Truck", "Ford", "Kenworth", "2000"},
	})

	table, err := NewTableReader(path, testSheet).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("got %d records, want 2", len(table))
	}

	first := table[0]
	if first.ProjectCompleted == nil || first.ProjectCompleted.Year() != 2020 {
		t.Errorf("date not coerced: %v", first.ProjectCompleted)
	}
	if first.IncentiveAmount == nil || *first.IncentiveAmount != 1500.50 {
		t.Errorf("currency amount not coerced: %v", first.IncentiveAmount)
	}
	if first.IncentiveProgram != "Carl Moyer" || first.NewEquipmentMake != "John Deere" {
		t.Errorf("categorical fields wrong: %+v", first)
	}
}

func TestReadTable_UnparseableValuesAreNulled(t *testing.T) {
	path := writeWorkbook(t, testSheet, [][]interface{}{
		headerRow(),
		{"not a date", "Carl Moyer", "Tractor", "Case", "John Deere", "not a number"},
	})

	table, err := NewTableReader(path, testSheet).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("got %d records, want 1", len(table))
	}
	if table[0].ProjectCompleted != nil {
		t.Errorf("unparseable date should be null, got %v", table[0].ProjectCompleted)
	}
	if table[0].IncentiveAmount != nil {
		t.Errorf("unparseable amount should be null, got %v", table[0].IncentiveAmount)
	}
}

func TestReadTable_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{headerRow()})

	_, err := NewTableReader(path, testSheet).ReadTable()
	if err == nil {
		t.Fatal("expected an error for a missing sheet")
	}
	if !errors.IsCode(err, errors.CodeDataSource) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.CodeDataSource)
	}
}

func TestReadTable_MissingColumn(t *testing.T) {
	path := writeWorkbook(t, testSheet, [][]interface{}{
		{"Project Completed", "Incentive Program", "Equipment Type"}, // truncated header
		{"2020-01-01", "Carl Moyer", "Tractor"},
	})

	_, err := NewTableReader(path, testSheet).ReadTable()
	if err == nil {
		t.Fatal("expected an error for a broken header contract")
	}
	if !errors.IsCode(err, errors.CodeDataSource) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.CodeDataSource)
	}
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := NewTableReader(filepath.Join(t.TempDir(), "nope.xlsx"), testSheet).ReadTable()
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.IsCode(err, errors.CodeDataSource) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.CodeDataSource)
	}
}

func TestReadTable_CSV(t *testing.T) {
	csvContent := "Project Completed,Incentive Program,Equipment Type,Old Equipment Make,New Equipment Make,Incentive Amount\n" +
		"2021-07-04,FARMER,Harvester,Claas,Case IH,3500\n" +
		",Carl Moyer,Truck,,Volvo,\n"
	path := filepath.Join(t.TempDir(), "source.csv")
	if err := os.WriteFile(path, []byte(csvContent), 0644); err != nil {
		t.Fatalf("failed to write CSV fixture: %v", err)
	}

	table, err := NewTableReader(path, testSheet).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("got %d records, want 2", len(table))
	}
	if table[0].IncentiveAmount == nil || *table[0].IncentiveAmount != 3500 {
		t.Errorf("amount not coerced: %v", table[0].IncentiveAmount)
	}
	if table[1].ProjectCompleted != nil || table[1].IncentiveAmount != nil {
		t.Errorf("empty cells should be null: %+v", table[1])
	}
}

func TestParseDate_Layouts(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		year int
	}{
		{"2020-03-15", true, 2020},
		{"3/15/2020", true, 2020},
		{"Jan 2, 2019", true, 2019},
		{"garbage", false, 0},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("parseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Year() != tt.year {
			t.Errorf("parseDate(%q) year = %d, want %d", tt.in, got.Year(), tt.year)
		}
		if ok && (got.Hour() != 0 || got.Location() != got.UTC().Location()) {
			t.Errorf("parseDate(%q) not normalized to midnight UTC: %v", tt.in, got)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want float64
	}{
		{"1500", true, 1500},
		{"$1,500.50", true, 1500.50},
		{"  $2 000 ", true, 2000},
		{"", false, 0},
		{"N/A", false, 0},
	}
	for _, tt := range tests {
		got, ok := parseAmount(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
