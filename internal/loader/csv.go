package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bankview-dev/bankview/internal/model"
)

// csvDelimiter matches the semicolon-delimited exports this tool ingests.
const csvDelimiter = ';'

// LoadCSV reads a semicolon-delimited CSV with a header row. A UTF-8 BOM
// on the header is tolerated.
func LoadCSV(path string) ([]model.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([]model.RawRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = csvDelimiter
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")

	return tableRows(header, records[1:]), nil
}

// tableRows zips a header with data rows into RawRows, renaming a detected
// status column to "state" when no column carries that name.
func tableRows(header []string, data [][]string) []model.RawRow {
	header = normalizeStateColumn(header, data)

	rows := make([]model.RawRow, 0, len(data))
	for _, rec := range data {
		row := make(model.RawRow, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// knownStatuses identify the status column in exports that name it
// something other than "state".
var knownStatuses = map[string]bool{"EXECUTED": true, "CANCELED": true, "PENDING": true}

// statusSampleRows bounds how many rows are inspected per column.
const statusSampleRows = 10

func normalizeStateColumn(header []string, data [][]string) []string {
	for _, name := range header {
		if name == "state" {
			return header
		}
	}

	for col := range header {
		for i, rec := range data {
			if i >= statusSampleRows {
				break
			}
			if col < len(rec) && knownStatuses[strings.ToUpper(rec[col])] {
				renamed := make([]string, len(header))
				copy(renamed, header)
				renamed[col] = "state"
				return renamed
			}
		}
	}
	return header
}
