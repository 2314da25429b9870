package dto

import (
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
)

// CreateTemplateRequest defines a recurring entry template such as "Monthly Rent".
type CreateTemplateRequest struct {
	Name        string               `json:"name" binding:"required,max=128"`
	Description string               `json:"description" binding:"max=500"`
	Lines       []JournalLineRequest `json:"lines" binding:"dive"`
}

// PostTemplateRequest posts a template as a new journal entry.
type PostTemplateRequest struct {
	Date        string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" binding:"max=500"` // Defaults to the template description
	Reference   string `json:"reference" binding:"max=64"`
}

// TemplateResponse defines the data returned for a template.
type TemplateResponse struct {
	TemplateID  string                `json:"templateID"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Lines       []JournalLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ToTemplateResponse converts a domain.RecurringTemplate to TemplateResponse DTO.
func ToTemplateResponse(t *domain.RecurringTemplate) TemplateResponse {
	lines := make([]JournalLineResponse, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Notes:     l.Notes,
		}
	}
	return TemplateResponse{
		TemplateID:  t.TemplateID,
		Name:        t.Name,
		Description: t.Description,
		Lines:       lines,
		CreatedAt:   t.CreatedAt,
		CreatedBy:   t.CreatedBy,
	}
}

// ToListTemplateResponse converts a slice of templates.
func ToListTemplateResponse(templates []domain.RecurringTemplate) []TemplateResponse {
	res := make([]TemplateResponse, len(templates))
	for i := range templates {
		res[i] = ToTemplateResponse(&templates[i])
	}
	return res
}
