package mapping

import (
	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/models"
)

// ToModelJournal converts a domain JournalEntry to its journal row and line rows.
func ToModelJournal(d domain.JournalEntry) (models.Journal, []models.JournalLine) {
	journal := models.Journal{
		JournalID:          d.JournalID,
		JournalDate:        domain.DateOnly(d.JournalDate),
		Description:        d.Description,
		Reference:          d.Reference,
		Status:             string(d.Status),
		OriginalJournalID:  toNullStringPtr(d.OriginalJournalID),
		ReversingJournalID: toNullStringPtr(d.ReversingJournalID),
		PostedBy:           d.PostedBy,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			LineID:    l.LineID,
			JournalID: d.JournalID,
			LineNo:    i,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Notes:     l.Notes,
		}
	}
	return journal, lines
}

// ToDomainJournal rebuilds a domain JournalEntry. lines must be ordered by line number.
func ToDomainJournal(m models.Journal, lines []models.JournalLine) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalID:          m.JournalID,
		JournalDate:        domain.DateOnly(m.JournalDate),
		Description:        m.Description,
		Reference:          m.Reference,
		Status:             domain.JournalStatus(m.Status),
		OriginalJournalID:  fromNullStringPtr(m.OriginalJournalID),
		ReversingJournalID: fromNullStringPtr(m.ReversingJournalID),
		PostedBy:           m.PostedBy,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		Lines:              make([]domain.JournalLine, len(lines)),
	}
	for i, l := range lines {
		d.Lines[i] = domain.JournalLine{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Notes:     l.Notes,
		}
	}
	return d
}

// ToModelTemplate converts a domain RecurringTemplate to its rows.
func ToModelTemplate(d domain.RecurringTemplate) (models.Template, []models.TemplateLine) {
	tmpl := models.Template{
		TemplateID:  d.TemplateID,
		Name:        d.Name,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.TemplateLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.TemplateLine{
			TemplateID: d.TemplateID,
			LineNo:     i,
			LineID:     l.LineID,
			AccountID:  l.AccountID,
			Debit:      l.Debit,
			Credit:     l.Credit,
			Notes:      l.Notes,
		}
	}
	return tmpl, lines
}

// ToDomainTemplate rebuilds a domain RecurringTemplate.
func ToDomainTemplate(m models.Template, lines []models.TemplateLine) domain.RecurringTemplate {
	d := domain.RecurringTemplate{
		TemplateID:  m.TemplateID,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		Lines:       make([]domain.JournalLine, len(lines)),
	}
	for i, l := range lines {
		d.Lines[i] = domain.JournalLine{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Notes:     l.Notes,
		}
	}
	return d
}
