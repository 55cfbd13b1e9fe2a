package loader

import (
	"github.com/xuri/excelize/v2"

	"fisheriescli/internal/dataset"
	"fisheriescli/internal/errors"
)

// LoadXLSX reads the first sheet of an Excel workbook into a Table. The
// first row is the header; rows shorter than the header are padded with
// empty values, matching the CSV loader.
func LoadXLSX(path string) (*dataset.Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewLoadError("failed to open Excel file", err).WithContext("path", path)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewLoadError("Excel file has no sheets", nil).WithContext("path", path)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read Excel sheet", err).WithContext("path", path)
	}
	if len(rows) == 0 {
		return nil, errors.NewLoadError("input file is empty", nil).WithContext("path", path)
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		data = append(data, padRow(row, len(header)))
	}

	table, err := dataset.New(header, data)
	if err != nil {
		return nil, errors.NewParsingError("input table is malformed", err).WithContext("path", path)
	}

	return table, nil
}
