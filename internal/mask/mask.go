// Package mask redacts card and account identifiers for display.
// Masking is deterministic: the same input always yields the same output,
// and invalid input always fails rather than being truncated or padded.
package mask

import (
	"errors"
	"fmt"
	"strings"
)

// accountPrefix marks an account identifier in composite mask input.
const accountPrefix = "Счет"

const (
	cardDigits       = 16
	accountMinDigits = 4
	cardNumberMax    = 9999999999999999
)

// ErrEmptyInput is returned for blank or whitespace-only composite input.
var ErrEmptyInput = errors.New("input must not be empty")

// ErrMalformedInput is returned when composite input does not split into a
// label and an all-digit number.
var ErrMalformedInput = errors.New("expected a label and a numeric identifier")

// InvalidLengthError reports a digit count outside the required bounds.
type InvalidLengthError struct {
	Kind string // "card" or "account"
	Got  int
}

func (e *InvalidLengthError) Error() string {
	if e.Kind == "card" {
		return fmt.Sprintf("card number must contain %d digits, got %d", cardDigits, e.Got)
	}
	return fmt.Sprintf("account number must contain at least %d digits, got %d", accountMinDigits, e.Got)
}

// Card masks a 16-digit card number as "XXXX XX** **** XXXX". Non-digit
// characters in the input are discarded before counting; original
// formatting is not preserved.
func Card(number string) (string, error) {
	digits := extractDigits(number)
	if len(digits) != cardDigits {
		return "", &InvalidLengthError{Kind: "card", Got: len(digits)}
	}
	return fmt.Sprintf("%s %s** **** %s", digits[:4], digits[4:6], digits[12:]), nil
}

// Account masks an account number as "**" plus its last four digits.
func Account(number string) (string, error) {
	digits := extractDigits(number)
	if len(digits) < accountMinDigits {
		return "", &InvalidLengthError{Kind: "account", Got: len(digits)}
	}
	return "**" + digits[len(digits)-4:], nil
}

// AccountOrCard masks a display string of the form "<label> <number>".
//
// Input starting with the account prefix word is masked as an account and
// the prefix is kept. Anything else is split on its last whitespace run
// into a label and a card number; the parts are rejoined with single
// spaces around the masked card.
func AccountOrCard(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}

	if rest, ok := strings.CutPrefix(text, accountPrefix+" "); ok {
		number := strings.TrimSpace(rest)
		if !isDigits(number) {
			return "", fmt.Errorf("%w: account number %q contains non-digits", ErrMalformedInput, number)
		}
		masked, err := Account(number)
		if err != nil {
			return "", err
		}
		return accountPrefix + " " + masked, nil
	}

	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", ErrMalformedInput
	}

	number := fields[len(fields)-1]
	label := strings.Join(fields[:len(fields)-1], " ")
	if !isDigits(number) {
		return "", fmt.Errorf("%w: card number %q contains non-digits", ErrMalformedInput, number)
	}

	masked, err := Card(number)
	if err != nil {
		return "", err
	}
	return label + " " + masked, nil
}

// CardNumbers produces formatted card numbers "XXXX XXXX XXXX XXXX" for
// every value in [start, end]. A start greater than end yields an empty
// sequence; values outside [1, 9999999999999999] are a range error.
func CardNumbers(start, end int64) ([]string, error) {
	if start < 1 || end > cardNumberMax {
		return nil, fmt.Errorf("card number range must be within [1, %d]", int64(cardNumberMax))
	}

	var out []string
	for n := start; n <= end; n++ {
		s := fmt.Sprintf("%016d", n)
		out = append(out, fmt.Sprintf("%s %s %s %s", s[:4], s[4:8], s[8:12], s[12:]))
	}
	return out, nil
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
