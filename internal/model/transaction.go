package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one loosely-typed row from a source file before normalization.
// Keys and value types vary by source; any field may be missing.
type RawRow map[string]any

// Transaction is the canonical record produced by normalization.
// It is never mutated after creation; filtering, sorting and conversion
// operate on copies or derived values.
type Transaction struct {
	ID           string
	Date         time.Time
	HasDate      bool // false when the source row carried no date field
	Amount       decimal.Decimal
	HasAmount    bool
	CurrencyCode string
	State        string // raw status string, compared case-insensitively
	Description  string
	From         string
	To           string
}
