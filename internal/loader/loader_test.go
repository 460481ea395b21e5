package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadJSON(t *testing.T) {
	rows, err := LoadJSON("../../testdata/operations.json")
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.Equal(t, "EXECUTED", rows[0]["state"])
	assert.Equal(t, "Перевод организации", rows[0]["description"])

	op, ok := rows[0]["operationAmount"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "31957.58", op["amount"])

	// The sixth element is a bare string; it loads as a nil row.
	assert.Nil(t, rows[5])
}

func TestLoadJSON_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	rows, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadJSON_NotAnArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 1}`), 0o644))

	_, err := LoadJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestLoadJSON_Missing(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCSV(t *testing.T) {
	rows, err := LoadCSV("../../testdata/operations.csv")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "650703", rows[0]["id"])
	// The operationState column is detected by its values and renamed.
	assert.Equal(t, "EXECUTED", rows[0]["state"])
	assert.Equal(t, "PEN", rows[0]["currency_code"])
}

func TestReadCSV_RenamesDetectedStatusColumn(t *testing.T) {
	data := "id;result;amount\n1;EXECUTED;10.00\n2;CANCELED;20.00\n"
	rows, err := readCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "EXECUTED", rows[0]["state"])
	assert.Equal(t, "CANCELED", rows[1]["state"])
	_, hasOld := rows[0]["result"]
	assert.False(t, hasOld)
}

func TestReadCSV_KeepsExistingStateColumn(t *testing.T) {
	data := "id;state;note\n1;EXECUTED;EXECUTED later\n"
	rows, err := readCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "EXECUTED", rows[0]["state"])
	assert.Equal(t, "EXECUTED later", rows[0]["note"])
}

func TestReadCSV_BOM(t *testing.T) {
	data := "\uFEFFid;state\n1;PENDING\n"
	rows, err := readCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["id"])
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	rows, err := readCSV(strings.NewReader("id;state\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadCSV_ShortRow(t *testing.T) {
	data := "id;state;amount\n1;EXECUTED\n"
	rows, err := readCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, ok := rows[0]["amount"]
	assert.False(t, ok)
}

func writeXLSX(t *testing.T, records [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rec))
	}
	path := filepath.Join(t.TempDir(), "operations.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"id", "status", "date", "amount", "currency_code"},
		{"1", "EXECUTED", "2023-09-05", "16210", "PEN"},
		{"2", "CANCELED", "2021-01-01", "29740", "USD"},
	})

	rows, err := LoadXLSX(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0]["id"])
	assert.Equal(t, "EXECUTED", rows[0]["status"])
	assert.Equal(t, "USD", rows[1]["currency_code"])
}

func TestLoadXLSX_DetectsStatusColumn(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"id", "outcome"},
		{"1", "PENDING"},
	})

	rows, err := LoadXLSX(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PENDING", rows[0]["state"])
}

func TestLoadXLSX_Missing(t *testing.T) {
	_, err := LoadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]Format{
		"ops.json": FormatJSON,
		"ops.csv":  FormatCSV,
		"ops.xlsx": FormatXLSX,
		"OPS.XLS":  FormatXLSX,
	}
	for path, want := range cases {
		got, err := FormatForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatForPath("ops.txt")
	assert.Error(t, err)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	rows, err := Load("../../testdata/operations.json")
	require.NoError(t, err)
	assert.Len(t, rows, 7)
}
