package leadexport

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetLeads = "Leads"

// ToXLSX renders rows as a single-sheet workbook using the same header and
// projection rules as ToCSV. Cells are written as plain text.
func ToXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetLeads); err != nil {
		return nil, fmt.Errorf("leadexport: rename sheet: %w", err)
	}

	header := Header(rows)
	for i, key := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("leadexport: header cell: %w", err)
		}
		if err := f.SetCellStr(sheetLeads, cell, key); err != nil {
			return nil, fmt.Errorf("leadexport: write header: %w", err)
		}
	}
	for r, row := range rows {
		for c, key := range header {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("leadexport: row %d cell: %w", r+1, err)
			}
			if err := f.SetCellStr(sheetLeads, cell, cellString(row.Get(key))); err != nil {
				return nil, fmt.Errorf("leadexport: write row %d: %w", r+1, err)
			}
		}
	}

	if len(header) > 0 {
		if err := styleHeader(f, len(header)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("leadexport: encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// styleHeader bolds the header row and widens its columns.
func styleHeader(f *excelize.File, columns int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("leadexport: header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("leadexport: header range: %w", err)
	}
	if err := f.SetCellStyle(sheetLeads, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("leadexport: apply header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return fmt.Errorf("leadexport: header columns: %w", err)
	}
	if err := f.SetColWidth(sheetLeads, "A", lastCol, 20); err != nil {
		return fmt.Errorf("leadexport: column width: %w", err)
	}
	return nil
}
