package excel

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/domain/program"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/errors"
)

// TableReader loads the incentive-record table from an xlsx workbook or a
// CSV file. All type coercion happens here, once; downstream code never
// re-parses cell values.
type TableReader struct {
	filePath  string
	sheetName string
	fileType  string // "xlsx" or "csv"
}

// NewTableReader creates a reader for the given source file. CSV files
// ignore the sheet name.
func NewTableReader(filePath, sheetName string) *TableReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &TableReader{filePath: filePath, sheetName: sheetName, fileType: fileType}
}

// ReadTable reads, validates and coerces the source into a Table. Every
// failure mode here is a data-source error: missing file, missing sheet,
// or a header row missing a required column. Unparseable cell values are
// nulled, never fatal.
func (r *TableReader) ReadTable() (program.Table, error) {
	log.Printf("[TableReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DataSource("source file not found: "+r.filePath, nil)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readSheetRows()
	}
	if err != nil {
		return nil, err
	}

	table, err := r.coerceRows(rows)
	if err != nil {
		return nil, err
	}

	log.Printf("[TableReader] Loaded %d records", len(table))
	return table, nil
}

func (r *TableReader) readSheetRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.DataSource("failed to open workbook", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, errors.DataSource("sheet not found: "+r.sheetName, err)
	}
	return rows, nil
}

func (r *TableReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.DataSource("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DataSource("failed to read CSV file", err)
	}
	return rows, nil
}

// coerceRows validates the header contract and converts string cells to
// typed record fields.
func (r *TableReader) coerceRows(rows [][]string) (program.Table, error) {
	if len(rows) == 0 {
		return nil, errors.DataSource("source has no header row", nil)
	}

	index := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		index[strings.TrimSpace(header)] = i
	}
	for _, col := range program.Columns {
		if _, ok := index[col]; !ok {
			return nil, errors.DataSource("required column missing: "+col, nil)
		}
	}

	table := make(program.Table, 0, len(rows)-1)
	nulledDates, nulledAmounts := 0, 0
	for _, row := range rows[1:] {
		raw := make(rawRow, len(program.Columns))
		for _, col := range program.Columns {
			if i := index[col]; i < len(row) {
				raw[col] = strings.TrimSpace(row[i])
			}
		}

		rec := program.Record{
			IncentiveProgram: raw[program.ColIncentiveProgram],
			EquipmentType:    raw[program.ColEquipmentType],
			OldEquipmentMake: raw[program.ColOldEquipmentMake],
			NewEquipmentMake: raw[program.ColNewEquipmentMake],
		}

		if v := raw[program.ColProjectCompleted]; v != "" {
			if d, ok := parseDate(v); ok {
				rec.ProjectCompleted = &d
			} else {
				nulledDates++
			}
		}
		if v := raw[program.ColIncentiveAmount]; v != "" {
			if amt, ok := parseAmount(v); ok {
				rec.IncentiveAmount = &amt
			} else {
				nulledAmounts++
			}
		}

		table = append(table, rec)
	}

	if nulledDates > 0 || nulledAmounts > 0 {
		log.Printf("[TableReader] Coercion nulled %d dates, %d amounts", nulledDates, nulledAmounts)
	}
	return table, nil
}

// dateLayouts covers ISO dates, common US forms, and the display formats
// excelize produces for date-typed cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01-02-06",
	"Jan 2, 2006",
	"2-Jan-06",
}

// parseDate normalizes to midnight UTC so day-granular interval compares
// stay inclusive on both ends.
func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseAmount accepts plain numerics plus currency formatting ($, commas).
func parseAmount(value string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)
	if cleaned == "" {
		return 0, false
	}
	amt, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amt, true
}
