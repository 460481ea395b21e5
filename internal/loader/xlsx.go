package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bankview-dev/bankview/internal/model"
)

// LoadXLSX reads the first sheet of a spreadsheet, treating the first row
// as a header. Column naming follows the same status-detection rules as
// CSV loading.
func LoadXLSX(path string) ([]model.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	return tableRows(records[0], records[1:]), nil
}
