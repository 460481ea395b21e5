// Package normalize turns raw source rows into canonical transactions.
//
// Sources name the same logical field differently and nest monetary data
// inconsistently; each logical field has an ordered candidate key list that
// is tried against the row. Rows that cannot yield a valid record are
// skipped, never fatal: batch loading always survives bad rows.
package normalize

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bankview-dev/bankview/internal/dateparse"
	"github.com/bankview-dev/bankview/internal/model"
)

// ErrUnparseableDate marks a row whose date field matched no known format.
var ErrUnparseableDate = errors.New("unparseable date")

// ErrBadAmount marks a row whose amount could not be coerced to a decimal.
var ErrBadAmount = errors.New("bad amount")

// Candidate key lists per logical field, in resolution priority order.
var (
	stateKeys       = []string{"state", "status", "operationState"}
	dateKeys        = []string{"date"}
	idKeys          = []string{"id"}
	descriptionKeys = []string{"description"}
	fromKeys        = []string{"from"}
	toKeys          = []string{"to"}
	amountKeys      = []string{"amount"}
	currencyKeys    = []string{"currency_code", "currency"}
)

// Report counts what happened to a batch during normalization.
type Report struct {
	Total            int // rows seen
	Kept             int // canonical records produced
	SkippedMalformed int // rows that were not mappings
	SkippedBadDate   int // rows with an unparseable date field
	SkippedBadAmount int // rows whose amount could not be coerced
}

// Skipped returns the total number of rows dropped.
func (r Report) Skipped() int {
	return r.SkippedMalformed + r.SkippedBadDate + r.SkippedBadAmount
}

// Resolve returns the first value present in row among candidates.
func Resolve(row model.RawRow, candidates ...string) (any, bool) {
	for _, key := range candidates {
		if v, ok := row[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Rows normalizes a batch, dropping rows that cannot produce a valid
// record. A nil row marks a source element that was not a mapping; it is
// skipped silently and counted.
func Rows(rows []model.RawRow) ([]model.Transaction, Report) {
	report := Report{Total: len(rows)}

	var txns []model.Transaction
	for _, row := range rows {
		if row == nil {
			report.SkippedMalformed++
			continue
		}
		txn, err := Row(row)
		switch {
		case errors.Is(err, ErrUnparseableDate):
			report.SkippedBadDate++
		case errors.Is(err, ErrBadAmount):
			report.SkippedBadAmount++
		case err == nil:
			txns = append(txns, txn)
		}
	}

	report.Kept = len(txns)
	return txns, report
}

// Row converts a single raw row. On error the record must be discarded;
// errors match ErrUnparseableDate or ErrBadAmount.
func Row(row model.RawRow) (model.Transaction, error) {
	var txn model.Transaction

	if v, ok := Resolve(row, idKeys...); ok {
		txn.ID = stringify(v)
	}
	if v, ok := Resolve(row, stateKeys...); ok {
		txn.State = stringify(v)
	}
	if v, ok := Resolve(row, descriptionKeys...); ok {
		txn.Description = stringify(v)
	}
	if v, ok := Resolve(row, fromKeys...); ok {
		txn.From = stringify(v)
	}
	if v, ok := Resolve(row, toKeys...); ok {
		txn.To = stringify(v)
	}

	if v, ok := Resolve(row, dateKeys...); ok {
		parsed, ok := dateparse.Parse(stringify(v))
		if !ok {
			return model.Transaction{}, fmt.Errorf("%w: %q", ErrUnparseableDate, stringify(v))
		}
		txn.Date = parsed
		txn.HasDate = true
	}

	if op, ok := row["operationAmount"].(map[string]any); ok {
		if raw, ok := op["amount"]; ok {
			amount, err := coerceDecimal(raw)
			if err != nil {
				return model.Transaction{}, fmt.Errorf("%w: %v", ErrBadAmount, err)
			}
			txn.Amount = amount
			txn.HasAmount = true
		}
		if cur, ok := op["currency"].(map[string]any); ok {
			if code, ok := cur["code"]; ok {
				txn.CurrencyCode = stringify(code)
			}
		}
	} else {
		// Tabular sources carry amount and currency as flat columns.
		if raw, ok := Resolve(row, amountKeys...); ok {
			amount, err := coerceDecimal(raw)
			if err != nil {
				return model.Transaction{}, fmt.Errorf("%w: %v", ErrBadAmount, err)
			}
			txn.Amount = amount
			txn.HasAmount = true
		}
		if code, ok := Resolve(row, currencyKeys...); ok {
			txn.CurrencyCode = stringify(code)
		}
	}

	return txn, nil
}

// CurrencyCode extracts the nested operationAmount.currency.code from a raw
// row, for filtering before normalization.
func CurrencyCode(row model.RawRow) (string, bool) {
	op, ok := row["operationAmount"].(map[string]any)
	if !ok {
		return "", false
	}
	cur, ok := op["currency"].(map[string]any)
	if !ok {
		return "", false
	}
	code, ok := cur["code"]
	if !ok {
		return "", false
	}
	return stringify(code), true
}

// coerceDecimal accepts the amount representations seen in the wild:
// strings, JSON numbers, and native Go numerics from spreadsheet cells.
func coerceDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case string:
		return decimal.NewFromString(n)
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported amount type %T", v)
	}
}

// stringify renders a raw value verbatim. Integral floats (JSON numbers for
// IDs) are rendered without a decimal point.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
