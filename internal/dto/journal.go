package dto

import (
	"fmt"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// JournalLineRequest is one debit or credit in a journal request. Amount
// rules (sign, one side only) are enforced by the ledger so that failures
// carry the offending line index.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes" binding:"max=255"`
}

// CreateJournalRequest defines the data needed to post a journal entry or save a draft.
type CreateJournalRequest struct {
	Date        string               `json:"date" binding:"omitempty,datetime=2006-01-02"` // Defaults to today
	Description string               `json:"description" binding:"max=500"`
	Reference   string               `json:"reference" binding:"max=64"`
	Lines       []JournalLineRequest `json:"lines" binding:"dive"`
	Draft       bool                 `json:"draft"` // Save without posting
}

// ValidateJournalRequest carries lines for a dry-run check.
type ValidateJournalRequest struct {
	Lines []JournalLineRequest `json:"lines" binding:"dive"`
}

// ValidateJournalResponse reports the live balance status of a set of lines.
type ValidateJournalResponse struct {
	Valid       bool            `json:"valid"`
	Status      string          `json:"status"` // "Balanced" only when debits equal credits and are nonzero
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Difference  decimal.Decimal `json:"difference"`
	Error       string          `json:"error,omitempty"`
	Kind        string          `json:"kind,omitempty"`
	LineIndex   *int            `json:"lineIndex,omitempty"`
}

// NewValidateJournalResponse summarizes lines and the outcome of validating them.
func NewValidateJournalResponse(lines []domain.JournalLine, validationErr error, kind string, lineIndex *int) ValidateJournalResponse {
	debits, credits := domain.Totals(lines)
	res := ValidateJournalResponse{
		Valid:       validationErr == nil,
		Status:      "Balanced",
		TotalDebit:  debits,
		TotalCredit: credits,
		Difference:  debits.Sub(credits),
		Kind:        kind,
		LineIndex:   lineIndex,
	}
	if !debits.Equal(credits) || !debits.IsPositive() {
		res.Status = "Unbalanced"
	}
	if validationErr != nil {
		res.Error = validationErr.Error()
	}
	return res
}

// ParseDate parses an optional API date. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ToDomainLines converts request lines to domain journal lines.
func ToDomainLines(lines []JournalLineRequest) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Notes:     l.Notes,
		}
	}
	return out
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	Date               string                `json:"date"`
	Description        string                `json:"description"`
	Reference          string                `json:"reference"`
	Status             domain.JournalStatus  `json:"status"`
	Amount             decimal.Decimal       `json:"amount"`
	Lines              []JournalLineResponse `json:"lines"`
	OriginalJournalID  *string               `json:"originalJournalID,omitempty"`
	ReversingJournalID *string               `json:"reversingJournalID,omitempty"`
	PostedBy           string                `json:"postedBy,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
	LastUpdatedAt      time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy      string                `json:"lastUpdatedBy"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(j *domain.JournalEntry) JournalResponse {
	lines := make([]JournalLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Notes:     l.Notes,
		}
	}
	return JournalResponse{
		JournalID:          j.JournalID,
		Date:               j.JournalDate.Format(DateLayout),
		Description:        j.Description,
		Reference:          j.Reference,
		Status:             j.Status,
		Amount:             j.Amount(),
		Lines:              lines,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		PostedBy:           j.PostedBy,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
		LastUpdatedAt:      j.LastUpdatedAt,
		LastUpdatedBy:      j.LastUpdatedBy,
	}
}

// ListJournalsParams defines query parameters for listing journal entries.
type ListJournalsParams struct {
	Status    domain.JournalStatus `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
	AccountID string               `form:"accountID"`
	From      string               `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string               `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int                  `form:"limit,default=20" binding:"min=0,max=200"`
	NextToken string               `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journal entries.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListJournalsResponse converts a page of entries.
func ToListJournalsResponse(entries []domain.JournalEntry, nextToken *string) ListJournalsResponse {
	res := ListJournalsResponse{
		Journals:  make([]JournalResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		res.Journals[i] = ToJournalResponse(&entries[i])
	}
	return res
}
