package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bankview-dev/bankview/internal/dateparse"
	"github.com/bankview-dev/bankview/internal/exchange"
	"github.com/bankview-dev/bankview/internal/loader"
	"github.com/bankview-dev/bankview/internal/logging"
	"github.com/bankview-dev/bankview/internal/mask"
	"github.com/bankview-dev/bankview/internal/model"
	"github.com/bankview-dev/bankview/internal/normalize"
	"github.com/bankview-dev/bankview/internal/records"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Interactively load, filter and display a transaction export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &session{
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
				log:      logging.New(),
				loadFile: loader.LoadFormat,
			}
			return s.run()
		},
	}
}

// session drives the interactive menu. Input, output and file loading are
// injected so the flow is testable without a terminal.
type session struct {
	in       *bufio.Scanner
	out      io.Writer
	log      zerolog.Logger
	loadFile func(path string, format loader.Format) ([]model.RawRow, error)
}

func (s *session) run() error {
	format := s.promptFormat()

	rows, err := s.promptFile(format)
	if err != nil {
		return err
	}

	txns, report := normalize.Rows(rows)
	s.log.Info().
		Int("total", report.Total).
		Int("kept", report.Kept).
		Int("skipped", report.Skipped()).
		Msg("normalized transactions")
	if report.Skipped() > 0 {
		fmt.Fprintf(s.out, "Skipped %d record(s): %d malformed, %d bad date, %d bad amount\n",
			report.Skipped(), report.SkippedMalformed, report.SkippedBadDate, report.SkippedBadAmount)
	}

	state := s.promptState()
	txns = records.FilterByState(txns, state)

	if s.promptYes("Sort by date? (y/n): ") {
		descending := s.promptDirection()
		txns = records.SortByDate(txns, descending)
	}

	if s.promptYes(fmt.Sprintf("Show only %s transactions? (y/n): ", exchange.DefaultReference)) {
		txns = records.FilterByCurrency(txns, exchange.DefaultReference)
	}

	if s.promptYes("Filter by description? (y/n): ") {
		pattern := s.prompt("Search pattern: ")
		txns = records.SearchByDescription(txns, pattern)
	}

	s.printResults(txns)

	if categories := s.prompt("Count categories (comma-separated, blank to skip): "); categories != "" {
		s.printCategories(txns, splitCategories(categories))
	}
	return nil
}

func (s *session) printResults(txns []model.Transaction) {
	if len(txns) == 0 {
		fmt.Fprintln(s.out, "No transactions match the selection.")
		return
	}

	fmt.Fprintf(s.out, "Total transactions in selection: %d\n\n", len(txns))
	for _, txn := range txns {
		fmt.Fprintln(s.out, FormatSummary(txn))
	}
}

func (s *session) printCategories(txns []model.Transaction, categories []string) {
	for _, cc := range records.CountByCategory(txns, categories) {
		fmt.Fprintf(s.out, "%s: %d\n", cc.Category, cc.Count)
	}
}

// FormatSummary renders one transaction the way the result listing shows
// it: display date and description, masked counterparties, then amount.
// Identifiers that cannot be masked are shown as-is.
func FormatSummary(txn model.Transaction) string {
	var b strings.Builder

	if txn.HasDate {
		b.WriteString(dateparse.FormatDisplay(txn.Date))
		b.WriteByte(' ')
	}
	b.WriteString(txn.Description)
	b.WriteByte('\n')

	if txn.From != "" {
		b.WriteString(maskOrRaw(txn.From))
		b.WriteString(" -> ")
	}
	if txn.To != "" {
		b.WriteString(maskOrRaw(txn.To))
		b.WriteByte('\n')
	}

	if txn.HasAmount {
		b.WriteString("Amount: ")
		b.WriteString(txn.Amount.String())
		if txn.CurrencyCode != "" {
			b.WriteByte(' ')
			b.WriteString(txn.CurrencyCode)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func maskOrRaw(text string) string {
	masked, err := mask.AccountOrCard(text)
	if err != nil {
		return text
	}
	return masked
}

// promptFormat asks for the input format until a valid choice is given.
func (s *session) promptFormat() loader.Format {
	for {
		answer := s.prompt("Select input format (1 - JSON, 2 - CSV, 3 - XLSX): ")
		switch answer {
		case "1":
			return loader.FormatJSON
		case "2":
			return loader.FormatCSV
		case "3":
			return loader.FormatXLSX
		}
		fmt.Fprintln(s.out, "Please enter 1, 2 or 3.")
	}
}

// promptFile asks for a file path until a file loads, re-prompting on
// load failure. EOF on input aborts with the last error.
func (s *session) promptFile(format loader.Format) ([]model.RawRow, error) {
	for {
		path := s.prompt("Path to file: ")
		if path == "" {
			return nil, io.EOF
		}
		rows, err := s.loadFile(path, format)
		if err != nil {
			s.log.Error().Err(err).Str("path", path).Msg("load failed")
			fmt.Fprintf(s.out, "Could not load %s: %v\nTry again.\n", path, err)
			continue
		}
		return rows, nil
	}
}

// promptState asks for a status from the fixed valid set.
func (s *session) promptState() string {
	valid := strings.Join(records.ValidStates, ", ")
	for {
		answer := s.prompt(fmt.Sprintf("Status to filter by (%s) [%s]: ", valid, records.DefaultState))
		if answer == "" {
			return records.DefaultState
		}
		for _, state := range records.ValidStates {
			if strings.EqualFold(answer, state) {
				return state
			}
		}
		fmt.Fprintf(s.out, "Status %q is not available.\n", answer)
	}
}

func (s *session) promptDirection() bool {
	for {
		answer := s.prompt("Order (1 - newest first, 2 - oldest first): ")
		switch answer {
		case "1":
			return true
		case "2":
			return false
		}
		fmt.Fprintln(s.out, "Please enter 1 or 2.")
	}
}

func (s *session) promptYes(question string) bool {
	answer := strings.ToLower(s.prompt(question))
	return answer == "y" || answer == "yes"
}

func (s *session) prompt(question string) string {
	fmt.Fprint(s.out, question)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func splitCategories(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
