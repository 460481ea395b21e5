package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bankview-dev/bankview/internal/model"
)

// LoadJSON reads a JSON array of objects. Array elements that are not
// objects are kept as nil rows so the normalizer can count them as skipped.
func LoadJSON(path string) ([]model.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: expected a JSON array of objects: %w", path, err)
	}

	rows := make([]model.RawRow, len(items))
	for i, item := range items {
		if m, ok := item.(map[string]any); ok {
			rows[i] = model.RawRow(m)
		}
	}
	return rows, nil
}
