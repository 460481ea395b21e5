// Package loader reads transaction rows from JSON, CSV and XLSX files into
// loosely-typed RawRows for normalization. Loaders validate structure, not
// content: a loadable file with nonsense rows still loads, and the
// normalizer decides what survives.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bankview-dev/bankview/internal/model"
)

// Format identifies a supported input file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatForPath picks a Format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xls":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file format %q", filepath.Ext(path))
	}
}

// Load reads rows from path, dispatching on the file extension.
func Load(path string) ([]model.RawRow, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	return LoadFormat(path, format)
}

// LoadFormat reads rows from path using an explicit format.
func LoadFormat(path string, format Format) ([]model.RawRow, error) {
	switch format {
	case FormatJSON:
		return LoadJSON(path)
	case FormatCSV:
		return LoadCSV(path)
	case FormatXLSX:
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
