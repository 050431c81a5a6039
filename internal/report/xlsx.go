package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// DefaultXLSXFilename is the download name offered for the workbook export.
const DefaultXLSXFilename = "approved_expenses.xlsx"

const xlsxSheetName = "承認済み交通費"

// BuildXLSX renders the same 15-column table as BuildCSV into a single
// sheet workbook, for operators who post-process the export in Excel.
func BuildXLSX(submissions []entity.Submission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := writeRow(f, 1, csvHeaders); err != nil {
		return nil, err
	}
	for i, row := range exportRows(submissions) {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, fields []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	values := make([]interface{}, len(fields))
	for i, v := range fields {
		values[i] = v
	}
	if err := f.SetSheetRow(xlsxSheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to set row %d: %w", rowNum, err)
	}
	return nil
}
