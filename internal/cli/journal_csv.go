package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/finpulse/finpulse_ledger/internal/seed"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const cliActor = "ledgerctl"

var journalHeader = []string{"reference", "date", "description", "account_code", "debit", "credit"}

// csvEntry is one journal entry assembled from consecutive CSV rows that
// share a reference.
type csvEntry struct {
	Reference   string
	Date        string
	Description string
	Row         int // first data row, 1-based including the header
	Lines       []csvLine
}

type csvLine struct {
	Code   string
	Debit  string
	Credit string
	Row    int
}

// readJournalCSV groups rows by reference. Entries come back in the order
// their reference first appears.
func readJournalCSV(r io.Reader) ([]*csvEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(journalHeader)
	reader.TrimLeadingSpace = true

	var (
		entries []*csvEntry
		byRef   = map[string]*csvEntry{}
		row     int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row++
		if row == 1 && strings.EqualFold(strings.TrimSpace(record[0]), journalHeader[0]) {
			continue
		}
		ref := strings.TrimSpace(record[0])
		if ref == "" {
			return nil, fmt.Errorf("row %d: reference is required", row)
		}
		entry, ok := byRef[ref]
		if !ok {
			entry = &csvEntry{
				Reference:   ref,
				Date:        strings.TrimSpace(record[1]),
				Description: strings.TrimSpace(record[2]),
				Row:         row,
			}
			byRef[ref] = entry
			entries = append(entries, entry)
		}
		entry.Lines = append(entry.Lines, csvLine{
			Code:   strings.TrimSpace(record[3]),
			Debit:  strings.TrimSpace(record[4]),
			Credit: strings.TrimSpace(record[5]),
			Row:    row,
		})
	}
	return entries, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// toDraft resolves account codes against the engine's chart.
func (ce *csvEntry) toDraft(engine *ledger.Engine) (ledger.EntryDraft, error) {
	date, err := dto.ParseDate(ce.Date)
	if err != nil {
		return ledger.EntryDraft{}, fmt.Errorf("row %d: invalid date %q", ce.Row, ce.Date)
	}
	lines := make([]domain.JournalLine, 0, len(ce.Lines))
	for _, l := range ce.Lines {
		account, err := engine.AccountByCode(l.Code)
		if err != nil {
			return ledger.EntryDraft{}, fmt.Errorf("row %d: unknown account code %q", l.Row, l.Code)
		}
		debit, err := parseAmount(l.Debit)
		if err != nil {
			return ledger.EntryDraft{}, fmt.Errorf("row %d: invalid debit %q", l.Row, l.Debit)
		}
		credit, err := parseAmount(l.Credit)
		if err != nil {
			return ledger.EntryDraft{}, fmt.Errorf("row %d: invalid credit %q", l.Row, l.Credit)
		}
		lines = append(lines, domain.JournalLine{AccountID: account.AccountID, Debit: debit, Credit: credit})
	}
	return ledger.EntryDraft{
		Date:        date,
		Description: ce.Description,
		Reference:   ce.Reference,
		Lines:       lines,
		PostedBy:    cliActor,
	}, nil
}

// wrap prefixes err with the entry reference and, for line-level
// failures, the CSV row the line came from.
func (ce *csvEntry) wrap(err error) error {
	if idx, ok := ledger.LineIndex(err); ok && idx >= 0 && idx < len(ce.Lines) {
		return fmt.Errorf("entry %s (row %d): %w", ce.Reference, ce.Lines[idx].Row, err)
	}
	return fmt.Errorf("entry %s: %w", ce.Reference, err)
}

// loadChart reads a YAML chart, or returns the default chart when path is
// empty.
func loadChart(path string) (chart []seed.ChartAccount, err error) {
	if path == "" {
		return seed.DefaultChart, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return seed.ReadChart(f)
}

// replay builds an in-memory ledger from the chart and posts every entry of
// the journal file. Entry failures are collected rather than stopping the
// replay, so one run reports every bad entry.
func replay(ctx context.Context, chartPath, journalPath string) (engine *ledger.Engine, posted int, err error) {
	chart, err := loadChart(chartPath)
	if err != nil {
		return nil, 0, fmt.Errorf("reading chart: %w", err)
	}
	engine = ledger.New()
	if _, err := seed.Apply(ctx, engine, chart, cliActor); err != nil {
		return nil, 0, fmt.Errorf("applying chart: %w", err)
	}

	f, err := os.Open(journalPath)
	if err != nil {
		return nil, 0, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	entries, err := readJournalCSV(f)
	if err != nil {
		return nil, 0, fmt.Errorf("reading journal: %w", err)
	}

	var errs error
	for _, ce := range entries {
		draft, err := ce.toDraft(engine)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %s: %w", ce.Reference, err))
			continue
		}
		if _, err := engine.PostEntry(ctx, draft); err != nil {
			errs = multierr.Append(errs, ce.wrap(err))
			continue
		}
		posted++
	}
	return engine, posted, errs
}
