package services

import (
	"context"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListJournals returns a page of entries matching params and the token for the next page.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.JournalEntry, *string, error)
}

// JournalValidatorSvc checks lines without posting them.
type JournalValidatorSvc interface {
	ValidateJournal(ctx context.Context, lines []domain.JournalLine) error
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateJournal posts an entry, or saves it as a draft when req.Draft is set.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error)

	PostDraft(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)

	DiscardDraft(ctx context.Context, journalID string, userID string) error

	// ReverseJournal posts the mirror image of a posted entry.
	ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalValidatorSvc
	JournalWriterSvc
}
