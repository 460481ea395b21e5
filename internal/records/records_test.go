package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankview-dev/bankview/internal/model"
)

func txn(id, state, code, description string) model.Transaction {
	return model.Transaction{ID: id, State: state, CurrencyCode: code, Description: description}
}

func dated(id string, date time.Time) model.Transaction {
	return model.Transaction{ID: id, Date: date, HasDate: true}
}

func day(d int) time.Time {
	return time.Date(2023, 6, d, 0, 0, 0, 0, time.UTC)
}

func ids(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestFilterByState(t *testing.T) {
	txns := []model.Transaction{
		txn("1", "EXECUTED", "", ""),
		txn("2", "CANCELED", "", ""),
		txn("3", "executed", "", ""),
		txn("4", "", "", ""),
	}

	got := FilterByState(txns, DefaultState)
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestFilterByState_MissingExcluded(t *testing.T) {
	got := FilterByState([]model.Transaction{txn("1", "", "", "")}, "EXECUTED")
	assert.Empty(t, got)
}

func TestFilterByCurrency_CaseSensitive(t *testing.T) {
	txns := []model.Transaction{
		txn("1", "", "USD", ""),
		txn("2", "", "usd", ""),
		txn("3", "", "RUB", ""),
		txn("4", "", "", ""),
	}

	got := FilterByCurrency(txns, "USD")
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilterRawByCurrency(t *testing.T) {
	rows := []model.RawRow{
		{"id": "1", "operationAmount": map[string]any{"currency": map[string]any{"code": "USD"}}},
		{"id": "2", "operationAmount": map[string]any{"currency": map[string]any{"code": "RUB"}}},
		{"id": "3"},
		{"id": "4", "operationAmount": "broken"},
	}

	got := FilterRawByCurrency(rows, "USD")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0]["id"])
}

func TestSortByDate_Descending(t *testing.T) {
	txns := []model.Transaction{
		dated("old", day(1)),
		dated("new", day(20)),
		dated("mid", day(10)),
	}

	got := SortByDate(txns, true)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(got))
}

func TestSortByDate_Ascending(t *testing.T) {
	txns := []model.Transaction{
		dated("new", day(20)),
		dated("old", day(1)),
	}

	got := SortByDate(txns, false)
	assert.Equal(t, []string{"old", "new"}, ids(got))
}

func TestSortByDate_DatelessAlwaysLast(t *testing.T) {
	txns := []model.Transaction{
		{ID: "nodate"},
		dated("a", day(5)),
		dated("b", day(15)),
	}

	assert.Equal(t, []string{"b", "a", "nodate"}, ids(SortByDate(txns, true)))
	assert.Equal(t, []string{"a", "b", "nodate"}, ids(SortByDate(txns, false)))
}

func TestSortByDate_Idempotent(t *testing.T) {
	txns := []model.Transaction{
		dated("c", day(3)),
		dated("a", day(30)),
		{ID: "x"},
		dated("b", day(12)),
	}

	once := SortByDate(txns, true)
	twice := SortByDate(once, true)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSortByDate_DoesNotMutateInput(t *testing.T) {
	txns := []model.Transaction{
		dated("b", day(2)),
		dated("a", day(1)),
	}

	_ = SortByDate(txns, false)
	assert.Equal(t, []string{"b", "a"}, ids(txns))
}

func TestSearchByDescription(t *testing.T) {
	txns := []model.Transaction{
		txn("1", "", "", "Перевод организации"),
		txn("2", "", "", "Открытие вклада"),
		txn("3", "", "", "перевод со счета на счет"),
	}

	got := SearchByDescription(txns, "перевод")
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestSearchByDescription_Regexp(t *testing.T) {
	txns := []model.Transaction{
		txn("1", "", "", "Deposit 2023"),
		txn("2", "", "", "Deposit 1999"),
	}

	got := SearchByDescription(txns, `deposit 20\d\d`)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestSearchByDescription_InvalidPatternIsLiteral(t *testing.T) {
	txns := []model.Transaction{
		txn("1", "", "", "payment (pending"),
		txn("2", "", "", "payment done"),
	}

	got := SearchByDescription(txns, "(pending")
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestSearchByDescription_CountsCounterparties(t *testing.T) {
	txns := []model.Transaction{
		{ID: "1", From: "Счет 123", To: "Счет 456"},
		{ID: "2", Description: "withdrawal"},
	}

	got := SearchByDescription(txns, "счет")
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestSearchByDescription_EmptyPattern(t *testing.T) {
	txns := []model.Transaction{txn("1", "", "", "a"), txn("2", "", "", "b")}
	got := SearchByDescription(txns, "")
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestCountByCategory(t *testing.T) {
	txns := []model.Transaction{
		txn("1", "", "", "Перевод организации"),
		txn("2", "", "", "Открытие вклада"),
		txn("3", "", "", "перевод со счета на счет"),
	}

	got := CountByCategory(txns, []string{"вклад", "перевод", "аренда"})
	assert.Equal(t, []CategoryCount{
		{Category: "вклад", Count: 1},
		{Category: "перевод", Count: 2},
		{Category: "аренда", Count: 0},
	}, got)
}

func TestCountByCategory_NoCategories(t *testing.T) {
	got := CountByCategory([]model.Transaction{txn("1", "", "", "x")}, nil)
	assert.Empty(t, got)
}

func TestDescriptions(t *testing.T) {
	txns := []model.Transaction{
		txn("1", "", "", "first"),
		txn("2", "", "", ""),
		txn("3", "", "", "third"),
	}

	assert.Equal(t, []string{"first", "third"}, Descriptions(txns))
}
