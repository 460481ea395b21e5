// Package records provides pure filtering, sorting and searching over
// canonical transactions. Functions never mutate their input; each returns
// a fresh slice.
package records

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bankview-dev/bankview/internal/model"
	"github.com/bankview-dev/bankview/internal/normalize"
)

// DefaultState is the status used when the caller does not pick one.
const DefaultState = "EXECUTED"

// ValidStates is the fixed set of statuses the CLI accepts.
var ValidStates = []string{"EXECUTED", "CANCELED", "PENDING"}

// FilterByState keeps transactions whose status equals state,
// case-insensitively. Records without a status are excluded.
func FilterByState(txns []model.Transaction, state string) []model.Transaction {
	var out []model.Transaction
	for _, txn := range txns {
		if txn.State != "" && strings.EqualFold(txn.State, state) {
			out = append(out, txn)
		}
	}
	return out
}

// FilterByCurrency keeps transactions whose currency code equals code.
// The match is case-sensitive, unlike status filtering; records without a
// currency are excluded.
func FilterByCurrency(txns []model.Transaction, code string) []model.Transaction {
	var out []model.Transaction
	for _, txn := range txns {
		if txn.CurrencyCode == code {
			out = append(out, txn)
		}
	}
	return out
}

// FilterRawByCurrency is the pre-normalization variant: it keeps raw rows
// whose nested operationAmount.currency.code equals code. Rows missing the
// structure are silently excluded.
func FilterRawByCurrency(rows []model.RawRow, code string) []model.RawRow {
	var out []model.RawRow
	for _, row := range rows {
		if got, ok := normalize.CurrencyCode(row); ok && got == code {
			out = append(out, row)
		}
	}
	return out
}

// SortByDate returns the transactions ordered by date, newest first when
// descending. Records without a parseable date always land at the end of
// the requested order: they compare as minimal when descending and maximal
// when ascending. The sort is stable.
func SortByDate(txns []model.Transaction, descending bool) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	copy(out, txns)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasDate != b.HasDate {
			// Dateless sorts last either way.
			return a.HasDate
		}
		if !a.HasDate {
			return false
		}
		if descending {
			return a.Date.After(b.Date)
		}
		return a.Date.Before(b.Date)
	})
	return out
}

// SearchByDescription keeps transactions whose descriptive text matches
// pattern, case-insensitively. Pattern is a regular expression; if it does
// not compile it is matched as a literal substring instead. An empty
// pattern returns the input unchanged.
func SearchByDescription(txns []model.Transaction, pattern string) []model.Transaction {
	if pattern == "" {
		return txns
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	}

	var out []model.Transaction
	for _, txn := range txns {
		text := txn.Description + " " + txn.From + " " + txn.To
		if re.MatchString(text) {
			out = append(out, txn)
		}
	}
	return out
}

// CategoryCount is one category tally; CountByCategory preserves the order
// categories were requested in.
type CategoryCount struct {
	Category string
	Count    int
}

// CountByCategory tallies transactions whose description contains each
// category, case-insensitively. Categories with no matches still appear
// with a zero count.
func CountByCategory(txns []model.Transaction, categories []string) []CategoryCount {
	counts := make([]CategoryCount, len(categories))
	for i, cat := range categories {
		counts[i] = CategoryCount{Category: cat}
	}

	for _, txn := range txns {
		desc := strings.ToLower(txn.Description)
		for i, cat := range categories {
			if strings.Contains(desc, strings.ToLower(cat)) {
				counts[i].Count++
			}
		}
	}
	return counts
}

// Descriptions returns the non-empty descriptions in record order.
func Descriptions(txns []model.Transaction) []string {
	var out []string
	for _, txn := range txns {
		if txn.Description != "" {
			out = append(out, txn.Description)
		}
	}
	return out
}
