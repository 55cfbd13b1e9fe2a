// Package loader reads one input file into an in-memory dataset.Table.
// CSV is the primary format; XLSX is accepted for agency spreadsheets that
// have not been exported yet. Malformed input is a fatal loader-level error,
// reported upward as "cannot load input".
package loader

import (
	"path/filepath"
	"strings"

	"fisheriescli/internal/dataset"
	"fisheriescli/internal/errors"
)

// Load dispatches on the file extension.
func Load(path string) (*dataset.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, errors.NewLoadError("unsupported input format "+filepath.Ext(path), nil)
	}
}
