package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
)

// NewTemplate is the input to SaveTemplate.
type NewTemplate struct {
	Name        string
	Description string
	Lines       []domain.JournalLine
	CreatedBy   string
}

// TemplatePosting is the per-use data supplied when posting a template.
// An empty Description falls back to the template's description.
type TemplatePosting struct {
	Date        time.Time
	Description string
	Reference   string
	PostedBy    string
}

// SaveTemplate stores a named set of lines for repeated posting. The lines
// must pass ValidateEntry today.
func (e *Engine) SaveTemplate(ctx context.Context, req NewTemplate) (domain.RecurringTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.RecurringTemplate{}, fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, t := range e.templates {
		if strings.EqualFold(t.Name, name) {
			return domain.RecurringTemplate{}, fmt.Errorf("%w: %s", ErrDuplicateTemplate, name)
		}
	}
	if err := e.validateLocked(req.Lines); err != nil {
		return domain.RecurringTemplate{}, err
	}

	tmpl := domain.RecurringTemplate{
		TemplateID:  e.newID(),
		Name:        name,
		Description: req.Description,
		Lines:       e.copyLines(req.Lines),
		AuditFields: domain.NewAuditFields(req.CreatedBy, e.now().UTC()),
	}
	if e.store != nil {
		if err := e.store.SaveTemplate(ctx, tmpl); err != nil {
			return domain.RecurringTemplate{}, storeError("save template", err)
		}
	}
	e.templates[tmpl.TemplateID] = cloneTemplate(tmpl)
	return *cloneTemplate(tmpl), nil
}

func cloneTemplate(t domain.RecurringTemplate) *domain.RecurringTemplate {
	t.Lines = append([]domain.JournalLine(nil), t.Lines...)
	return &t
}

// Template returns the template with the given id.
func (e *Engine) Template(templateID string) (domain.RecurringTemplate, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.templates[templateID]
	if !ok {
		return domain.RecurringTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	return *cloneTemplate(*t), nil
}

// Templates lists templates by name.
func (e *Engine) Templates() []domain.RecurringTemplate {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.RecurringTemplate, 0, len(e.templates))
	for _, t := range e.templates {
		out = append(out, *cloneTemplate(*t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PostTemplate posts a new entry from a template's lines. The lines are
// revalidated, so a template referencing a since-deactivated account fails.
func (e *Engine) PostTemplate(ctx context.Context, templateID string, p TemplatePosting) (domain.JournalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.templates[templateID]
	if !ok {
		return domain.JournalEntry{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	desc := p.Description
	if desc == "" {
		desc = t.Description
	}
	if desc == "" {
		desc = t.Name
	}
	lines := make([]domain.JournalLine, len(t.Lines))
	for i, l := range t.Lines {
		l.LineID = ""
		lines[i] = l
	}
	return e.postLocked(ctx, EntryDraft{
		Date:        p.Date,
		Description: desc,
		Reference:   p.Reference,
		Lines:       lines,
		PostedBy:    p.PostedBy,
	})
}
