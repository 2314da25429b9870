package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/finpulse/finpulse_ledger/internal/utils/pagination"
)

type journalService struct {
	BaseService
	engine *ledger.Engine
	audit  portssvc.AuditRecorderSvc
}

// NewJournalService creates the journal service.
func NewJournalService(engine *ledger.Engine, audit portssvc.AuditRecorderSvc) portssvc.JournalSvcFacade {
	return &journalService{engine: engine, audit: audit}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// parseRequestDate wraps a malformed date as an input error.
func parseRequestDate(s string) (t time.Time, err error) {
	t, err = dto.ParseDate(s)
	if err != nil {
		return t, fmt.Errorf("%w: %v", ledger.ErrInvalidInput, err)
	}
	return t, nil
}

func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	date, err := parseRequestDate(req.Date)
	if err != nil {
		return nil, err
	}
	draft := ledger.EntryDraft{
		Date:        date,
		Description: req.Description,
		Reference:   req.Reference,
		Lines:       dto.ToDomainLines(req.Lines),
		PostedBy:    userID,
	}

	if req.Draft {
		entry, err := s.engine.SaveDraft(ctx, draft)
		if err != nil {
			s.logFailure(ctx, err, "Failed to save draft journal", slog.String("reference", req.Reference))
			return nil, err
		}
		s.audit.Record(ctx, domain.ActionJournalDraft, entry.JournalID, userID,
			domain.JournalChange{After: domain.SnapshotJournal(entry)})
		s.LogInfo(ctx, "Draft journal saved", slog.String("journal_id", entry.JournalID))
		return &entry, nil
	}

	entry, err := s.engine.PostEntry(ctx, draft)
	if err != nil {
		s.logFailure(ctx, err, "Failed to post journal",
			slog.String("reference", req.Reference),
			slog.Int("line_count", len(req.Lines)))
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionJournalPost, entry.JournalID, userID,
		domain.JournalChange{After: domain.SnapshotJournal(entry)})
	s.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", entry.JournalID),
		slog.String("amount", entry.Amount().String()))
	return &entry, nil
}

func (s *journalService) ValidateJournal(ctx context.Context, lines []domain.JournalLine) error {
	if err := s.engine.ValidateEntry(lines); err != nil {
		s.LogDebug(ctx, "Journal lines failed validation", slog.String("kind", ledger.ErrorCode(err)))
		return err
	}
	return nil
}

func (s *journalService) PostDraft(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	before, err := s.engine.Entry(journalID)
	if err != nil {
		return nil, err
	}
	entry, err := s.engine.PostDraft(ctx, journalID, userID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to post draft journal", slog.String("journal_id", journalID))
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionJournalPost, entry.JournalID, userID, domain.JournalChange{
		Before: domain.SnapshotJournal(before),
		After:  domain.SnapshotJournal(entry),
	})
	s.LogInfo(ctx, "Draft journal posted", slog.String("journal_id", entry.JournalID))
	return &entry, nil
}

func (s *journalService) DiscardDraft(ctx context.Context, journalID string, userID string) error {
	discarded, err := s.engine.DiscardDraft(ctx, journalID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to discard draft journal", slog.String("journal_id", journalID))
		return err
	}
	s.audit.Record(ctx, domain.ActionJournalDiscard, journalID, userID,
		domain.JournalChange{Before: domain.SnapshotJournal(discarded)})
	s.LogInfo(ctx, "Draft journal discarded", slog.String("journal_id", journalID))
	return nil
}

func (s *journalService) ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	reversal, err := s.engine.ReverseEntry(ctx, journalID, userID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to reverse journal", slog.String("journal_id", journalID))
		return nil, err
	}

	if original, err := s.engine.Entry(journalID); err == nil {
		before := original.Clone()
		before.Status = domain.Posted
		before.ReversingJournalID = nil
		s.audit.Record(ctx, domain.ActionJournalReverse, journalID, userID, domain.JournalChange{
			Before: domain.SnapshotJournal(before),
			After:  domain.SnapshotJournal(original),
		})
	}
	s.audit.Record(ctx, domain.ActionJournalPost, reversal.JournalID, userID,
		domain.JournalChange{After: domain.SnapshotJournal(reversal)})

	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversal_id", reversal.JournalID))
	return &reversal, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.engine.Entry(journalID)
	if err != nil {
		s.LogDebug(ctx, "Journal not found", slog.String("journal_id", journalID))
		return nil, err
	}
	return &entry, nil
}

func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.JournalEntry, *string, error) {
	from, err := parseRequestDate(params.From)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseRequestDate(params.To)
	if err != nil {
		return nil, nil, err
	}

	entries := s.engine.Entries(ledger.EntryFilter{
		Status:    params.Status,
		AccountID: params.AccountID,
		From:      from,
		To:        to,
	})
	page, next, err := pagination.Page(entries, params.Limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ledger.ErrInvalidInput, err)
	}
	return page, next, nil
}
