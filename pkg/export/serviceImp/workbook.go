package serviceImp

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"evergraze/entities"
)

// renderWorkbook writes one sheet per kind; headers are the stored column names.
func renderWorkbook(h history) ([]byte, error) {
	x := excelize.NewFile()
	defer x.Close()

	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, k := range entities.Kinds {
		s, _ := entities.SchemaOf(k)
		if i == 0 {
			if err := x.SetSheetName(x.GetSheetName(0), s.Sheet); err != nil {
				return nil, err
			}
		} else if _, err := x.NewSheet(s.Sheet); err != nil {
			return nil, err
		}

		header := []interface{}{"id"}
		for _, c := range s.Columns {
			header = append(header, c.Name)
		}
		if err := x.SetSheetRow(s.Sheet, "A1", &header); err != nil {
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := x.SetCellStyle(s.Sheet, "A1", last, bold); err != nil {
			return nil, err
		}

		for r, rec := range h.rows(k) {
			row := []interface{}{rec.ID}
			for _, c := range s.Columns {
				row = append(row, cellValue(c, rec.Get(c.Name)))
			}
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			if err := x.SetSheetRow(s.Sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("%s row %d: %w", s.Sheet, r+1, err)
			}
		}
		lastCol, _ := excelize.ColumnNumberToName(len(header))
		if err := x.SetColWidth(s.Sheet, "A", lastCol, 16); err != nil {
			return nil, err
		}
	}
	x.SetActiveSheet(0)

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// numeric columns go in as numbers when they parse; legacy free text stays text
func cellValue(c entities.Column, v string) interface{} {
	if c.Type == entities.ColNumber && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return v
}
