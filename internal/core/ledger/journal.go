package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
)

// EntryDraft is the input to PostEntry and SaveDraft.
type EntryDraft struct {
	Date        time.Time
	Description string
	Reference   string
	Lines       []domain.JournalLine
	PostedBy    string
}

// ValidateEntry checks lines against the posting rules without changing
// anything. Rules are checked in order and the first failure is returned as
// a *ValidationError:
//
//  1. at least two lines (ErrTooFewLines)
//  2. every account exists and is active (ErrUnknownOrInactiveAccount)
//  3. no negative amounts (ErrAmbiguousLine)
//  4. the entry moves a nonzero amount (ErrZeroAmountEntry)
//  5. every line has exactly one nonzero side (ErrAmbiguousLine)
//  6. debits equal credits (ErrUnbalancedEntry)
func (e *Engine) ValidateEntry(lines []domain.JournalLine) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.validateLocked(lines)
}

func (e *Engine) validateLocked(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return entryError(ErrTooFewLines, fmt.Sprintf("got %d", len(lines)))
	}
	for i, l := range lines {
		acc, ok := e.accounts[l.AccountID]
		if !ok {
			return lineError(ErrUnknownOrInactiveAccount, i, l.AccountID, "account does not exist")
		}
		if !acc.IsActive() {
			return lineError(ErrUnknownOrInactiveAccount, i, l.AccountID, fmt.Sprintf("account %s is inactive", acc.Code))
		}
	}
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return lineError(ErrAmbiguousLine, i, l.AccountID, "amounts must not be negative")
		}
	}
	debits, credits := domain.Totals(lines)
	if debits.IsZero() && credits.IsZero() {
		return entryError(ErrZeroAmountEntry, "")
	}
	for i, l := range lines {
		if l.Debit.IsZero() == l.Credit.IsZero() {
			return lineError(ErrAmbiguousLine, i, l.AccountID, "set either debit or credit")
		}
	}
	if !debits.Equal(credits) {
		return entryError(ErrUnbalancedEntry, fmt.Sprintf("debits %s, credits %s", debits.String(), credits.String()))
	}
	return nil
}

func (e *Engine) checkPeriodLocked(date time.Time) error {
	if e.lock.Covers(date) {
		return fmt.Errorf("%w: %s is on or before %s", ErrPeriodClosed,
			date.Format(time.DateOnly), e.lock.ClosedThrough.Format(time.DateOnly))
	}
	return nil
}

func (e *Engine) entryDate(d time.Time) time.Time {
	if d.IsZero() {
		d = e.now()
	}
	return domain.DateOnly(d)
}

func (e *Engine) copyLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		l.AccountID = strings.TrimSpace(l.AccountID)
		if l.LineID == "" {
			l.LineID = e.newID()
		}
		out[i] = l
	}
	return out
}

// PostEntry validates and posts a journal entry, applying every line to its
// account. On any failure the ledger is left exactly as it was.
func (e *Engine) PostEntry(ctx context.Context, draft EntryDraft) (domain.JournalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.postLocked(ctx, draft)
}

func (e *Engine) postLocked(ctx context.Context, draft EntryDraft) (domain.JournalEntry, error) {
	if err := e.validateLocked(draft.Lines); err != nil {
		return domain.JournalEntry{}, err
	}
	date := e.entryDate(draft.Date)
	if err := e.checkPeriodLocked(date); err != nil {
		return domain.JournalEntry{}, err
	}

	now := e.now().UTC()
	entry := domain.JournalEntry{
		JournalID:   e.newID(),
		JournalDate: date,
		Description: draft.Description,
		Reference:   draft.Reference,
		Lines:       e.copyLines(draft.Lines),
		Status:      domain.Posted,
		PostedBy:    draft.PostedBy,
		AuditFields: domain.NewAuditFields(draft.PostedBy, now),
	}
	changes, err := e.balanceChangesLocked(entry.Lines)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("ledger: compute balance changes: %w", err)
	}

	if e.store != nil {
		if err := e.store.SaveJournal(ctx, entry, changes); err != nil {
			return domain.JournalEntry{}, storeError("save journal", err)
		}
	}
	e.applyLocked(changes)
	e.addJournalLocked(entry)
	return entry.Clone(), nil
}

func (e *Engine) addJournalLocked(entry domain.JournalEntry) {
	stored := entry.Clone()
	e.journals[stored.JournalID] = &stored
	e.journalOrder = append(e.journalOrder, stored.JournalID)
}

// SaveDraft stores an entry as DRAFT. Drafts may be unbalanced or
// incomplete and do not touch balances until posted with PostDraft, but
// every line must name an existing account and carry no negative amount.
func (e *Engine) SaveDraft(ctx context.Context, draft EntryDraft) (domain.JournalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkDraftLinesLocked(draft.Lines); err != nil {
		return domain.JournalEntry{}, err
	}

	now := e.now().UTC()
	entry := domain.JournalEntry{
		JournalID:   e.newID(),
		JournalDate: e.entryDate(draft.Date),
		Description: draft.Description,
		Reference:   draft.Reference,
		Lines:       e.copyLines(draft.Lines),
		Status:      domain.Draft,
		AuditFields: domain.NewAuditFields(draft.PostedBy, now),
	}
	if e.store != nil {
		if err := e.store.SaveDraft(ctx, entry); err != nil {
			return domain.JournalEntry{}, storeError("save draft", err)
		}
	}
	e.addJournalLocked(entry)
	return entry.Clone(), nil
}

func (e *Engine) checkDraftLinesLocked(lines []domain.JournalLine) error {
	for i, l := range lines {
		if _, ok := e.accounts[l.AccountID]; !ok {
			return lineError(ErrUnknownOrInactiveAccount, i, l.AccountID, "account does not exist")
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return lineError(ErrAmbiguousLine, i, l.AccountID, "amounts must not be negative")
		}
	}
	return nil
}

// PostDraft validates a stored draft and posts it.
func (e *Engine) PostDraft(ctx context.Context, journalID, actor string) (domain.JournalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, ok := e.journals[journalID]
	if !ok {
		return domain.JournalEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, journalID)
	}
	if stored.Status != domain.Draft {
		return domain.JournalEntry{}, fmt.Errorf("%w: only drafts can be posted, entry is %s", ErrInvalidState, stored.Status)
	}
	if err := e.validateLocked(stored.Lines); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := e.checkPeriodLocked(stored.JournalDate); err != nil {
		return domain.JournalEntry{}, err
	}

	entry := stored.Clone()
	entry.Status = domain.Posted
	entry.PostedBy = actor
	entry.Touch(actor, e.now().UTC())
	changes, err := e.balanceChangesLocked(entry.Lines)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("ledger: compute balance changes: %w", err)
	}

	if e.store != nil {
		if err := e.store.PostDraft(ctx, entry, changes); err != nil {
			return domain.JournalEntry{}, storeError("post draft", err)
		}
	}
	e.applyLocked(changes)
	*stored = entry.Clone()
	return entry, nil
}

// DiscardDraft removes a draft and returns what was removed.
func (e *Engine) DiscardDraft(ctx context.Context, journalID string) (domain.JournalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, ok := e.journals[journalID]
	if !ok {
		return domain.JournalEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, journalID)
	}
	if stored.Status != domain.Draft {
		return domain.JournalEntry{}, fmt.Errorf("%w: only drafts can be discarded, entry is %s", ErrInvalidState, stored.Status)
	}
	if e.store != nil {
		if err := e.store.DeleteDraft(ctx, journalID); err != nil {
			return domain.JournalEntry{}, storeError("delete draft", err)
		}
	}
	discarded := stored.Clone()
	delete(e.journals, journalID)
	e.journalOrder = removeID(e.journalOrder, journalID)
	return discarded, nil
}

// ReverseEntry posts an offsetting entry with every line's debit and credit
// swapped, marks the original REVERSED and links the two. A reversal of an
// entry dated inside a closed period is dated the day after the lock.
func (e *Engine) ReverseEntry(ctx context.Context, journalID, actor string) (domain.JournalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, ok := e.journals[journalID]
	if !ok {
		return domain.JournalEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, journalID)
	}
	switch {
	case stored.Status == domain.Reversed:
		return domain.JournalEntry{}, fmt.Errorf("%w: %s", ErrAlreadyReversed, journalID)
	case stored.Status != domain.Posted:
		return domain.JournalEntry{}, fmt.Errorf("%w: only posted entries can be reversed, entry is %s", ErrInvalidState, stored.Status)
	case stored.IsReversal():
		return domain.JournalEntry{}, fmt.Errorf("%w: %s is itself a reversal", ErrInvalidState, journalID)
	}

	date := stored.JournalDate
	if e.lock.Covers(date) {
		date = domain.DateOnly(e.lock.ClosedThrough).AddDate(0, 0, 1)
	}

	now := e.now().UTC()
	originalID := stored.JournalID
	reversal := domain.JournalEntry{
		JournalID:         e.newID(),
		JournalDate:       date,
		Description:       fmt.Sprintf("Reversal of Journal: %s", stored.Description),
		Reference:         reversalReference(stored.Reference),
		Lines:             make([]domain.JournalLine, len(stored.Lines)),
		Status:            domain.Posted,
		OriginalJournalID: &originalID,
		PostedBy:          actor,
		AuditFields:       domain.NewAuditFields(actor, now),
	}
	for i, l := range stored.Lines {
		swapped := l.Swapped()
		swapped.LineID = e.newID()
		reversal.Lines[i] = swapped
	}

	original := stored.Clone()
	reversalID := reversal.JournalID
	original.Status = domain.Reversed
	original.ReversingJournalID = &reversalID
	original.Touch(actor, now)

	changes, err := e.balanceChangesLocked(reversal.Lines)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("ledger: compute balance changes: %w", err)
	}
	if e.store != nil {
		if err := e.store.ReverseJournal(ctx, original, reversal, changes); err != nil {
			return domain.JournalEntry{}, storeError("reverse journal", err)
		}
	}
	e.applyLocked(changes)
	*stored = original
	e.addJournalLocked(reversal)
	return reversal.Clone(), nil
}

func reversalReference(ref string) string {
	if ref == "" {
		return ""
	}
	return "REV-" + ref
}

// Entry returns the journal entry with the given id.
func (e *Engine) Entry(journalID string) (domain.JournalEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	stored, ok := e.journals[journalID]
	if !ok {
		return domain.JournalEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, journalID)
	}
	return stored.Clone(), nil
}

// EntryFilter narrows Entries. Zero values match everything.
type EntryFilter struct {
	Status    domain.JournalStatus
	AccountID string
	From      time.Time
	To        time.Time
}

func (f EntryFilter) matches(j *domain.JournalEntry) bool {
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && j.JournalDate.Before(domain.DateOnly(f.From)) {
		return false
	}
	if !f.To.IsZero() && j.JournalDate.After(domain.DateOnly(f.To)) {
		return false
	}
	if f.AccountID != "" {
		for _, l := range j.Lines {
			if l.AccountID == f.AccountID {
				return true
			}
		}
		return false
	}
	return true
}

// Entries lists journal entries by journal date, then in the order they were
// recorded.
func (e *Engine) Entries(filter EntryFilter) []domain.JournalEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]domain.JournalEntry, 0, len(e.journalOrder))
	for _, id := range e.journalOrder {
		j := e.journals[id]
		if filter.matches(j) {
			out = append(out, j.Clone())
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].JournalDate.Before(out[k].JournalDate) })
	return out
}
