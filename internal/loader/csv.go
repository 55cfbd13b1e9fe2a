package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"fisheriescli/internal/dataset"
	"fisheriescli/internal/errors"
)

// utf8BOM is stripped from the first header cell when present; spreadsheet
// exports frequently prepend it.
const utf8BOM = "\ufeff"

// LoadCSV reads a UTF-8 CSV file with a header row into a Table.
func LoadCSV(path string) (*dataset.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("failed to open input file", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewLoadError("input file is empty", nil).WithContext("path", path)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV header", err).WithContext("path", path)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("failed to read CSV row", err).WithContext("path", path)
		}
		rows = append(rows, padRow(record, len(header)))
	}

	table, err := dataset.New(header, rows)
	if err != nil {
		return nil, errors.NewParsingError("input table is malformed", err).WithContext("path", path)
	}

	return table, nil
}

// padRow right-pads or truncates a record to the header width so short
// trailing rows do not abort the load; the validator reports the resulting
// empty values.
func padRow(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	row := make([]string, width)
	copy(row, record)
	return row
}
