package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/domain/program"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/errors"
)

// Download filenames for the filtered subset.
const (
	CSVFilename  = "filtered_data.csv"
	XLSXFilename = "filtered_data.xlsx"

	exportSheet = "Filtered"
	dateLayout  = "2006-01-02"
)

// WriteCSV serializes the table to w in the fixed column order, header row
// first. An empty table produces header-only output; the only failure mode
// is sink I/O.
func WriteCSV(w io.Writer, table program.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(program.Columns); err != nil {
		return errors.Export("failed to write CSV header", err)
	}
	for _, rec := range table {
		if err := cw.Write(csvRow(rec)); err != nil {
			return errors.Export("failed to write CSV row", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Export("failed to flush CSV output", err)
	}
	return nil
}

func csvRow(rec program.Record) []string {
	row := make([]string, len(program.Columns))
	if rec.ProjectCompleted != nil {
		row[0] = rec.ProjectCompleted.Format(dateLayout)
	}
	row[1] = rec.IncentiveProgram
	row[2] = rec.EquipmentType
	row[3] = rec.OldEquipmentMake
	row[4] = rec.NewEquipmentMake
	if rec.IncentiveAmount != nil {
		row[5] = strconv.FormatFloat(*rec.IncentiveAmount, 'f', -1, 64)
	}
	return row
}

// WriteXLSX serializes the table to w as a single-sheet workbook with the
// same column order and a header row. Dates are written as ISO strings and
// amounts as numeric cells, matching the CSV rendering so both downloads
// show the same values.
func WriteXLSX(w io.Writer, table program.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return errors.Export("failed to name export sheet", err)
	}

	for i, col := range program.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, col); err != nil {
			return errors.Export("failed to write header row", err)
		}
	}

	for r, rec := range table {
		rowIdx := r + 2
		values := []interface{}{
			nil,
			rec.IncentiveProgram,
			rec.EquipmentType,
			rec.OldEquipmentMake,
			rec.NewEquipmentMake,
			nil,
		}
		if rec.ProjectCompleted != nil {
			values[0] = rec.ProjectCompleted.Format(dateLayout)
		}
		if rec.IncentiveAmount != nil {
			values[5] = *rec.IncentiveAmount
		}

		for c, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return errors.Export("failed to write data row", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Export("failed to write workbook stream", err)
	}
	return nil
}
