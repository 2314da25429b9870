package services

import (
	"context"
	"log/slog"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
)

type templateService struct {
	BaseService
	engine *ledger.Engine
	audit  portssvc.AuditRecorderSvc
}

// NewTemplateService creates the recurring template service.
func NewTemplateService(engine *ledger.Engine, audit portssvc.AuditRecorderSvc) portssvc.TemplateSvcFacade {
	return &templateService{engine: engine, audit: audit}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

func (s *templateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, userID string) (*domain.RecurringTemplate, error) {
	tmpl, err := s.engine.SaveTemplate(ctx, ledger.NewTemplate{
		Name:        req.Name,
		Description: req.Description,
		Lines:       dto.ToDomainLines(req.Lines),
		CreatedBy:   userID,
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to save template", slog.String("name", req.Name))
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionTemplateCreate, tmpl.TemplateID, userID,
		domain.TemplateChange{Name: tmpl.Name, LineCount: len(tmpl.Lines)})
	s.LogInfo(ctx, "Template saved", slog.String("template_id", tmpl.TemplateID), slog.String("name", tmpl.Name))
	return &tmpl, nil
}

func (s *templateService) GetTemplateByID(ctx context.Context, templateID string) (*domain.RecurringTemplate, error) {
	tmpl, err := s.engine.Template(templateID)
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (s *templateService) ListTemplates(ctx context.Context) ([]domain.RecurringTemplate, error) {
	return s.engine.Templates(), nil
}

func (s *templateService) PostTemplate(ctx context.Context, templateID string, req dto.PostTemplateRequest, userID string) (*domain.JournalEntry, error) {
	date, err := parseRequestDate(req.Date)
	if err != nil {
		return nil, err
	}
	entry, err := s.engine.PostTemplate(ctx, templateID, ledger.TemplatePosting{
		Date:        date,
		Description: req.Description,
		Reference:   req.Reference,
		PostedBy:    userID,
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post template", slog.String("template_id", templateID))
		return nil, err
	}
	s.audit.Record(ctx, domain.ActionJournalPost, entry.JournalID, userID,
		domain.JournalChange{After: domain.SnapshotJournal(entry)})
	s.LogInfo(ctx, "Template posted",
		slog.String("template_id", templateID),
		slog.String("journal_id", entry.JournalID))
	return &entry, nil
}

type periodService struct {
	BaseService
	engine *ledger.Engine
	audit  portssvc.AuditRecorderSvc
}

// NewPeriodService creates the period lock service.
func NewPeriodService(engine *ledger.Engine, audit portssvc.AuditRecorderSvc) portssvc.PeriodSvcFacade {
	return &periodService{engine: engine, audit: audit}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) ClosePeriod(ctx context.Context, req dto.ClosePeriodRequest, userID string) (*domain.PeriodLock, error) {
	through, err := parseRequestDate(req.Through)
	if err != nil {
		return nil, err
	}
	previous, current, err := s.engine.ClosePeriod(ctx, through, userID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to close period", slog.String("through", req.Through))
		return nil, err
	}

	change := domain.PeriodChange{After: current.ClosedThrough}
	if !previous.IsZero() {
		before := previous.ClosedThrough
		change.Before = &before
	}
	s.audit.Record(ctx, domain.ActionPeriodClose, "period", userID, change)
	s.LogInfo(ctx, "Period closed", slog.String("through", req.Through))
	return &current, nil
}

func (s *periodService) GetPeriodLock(ctx context.Context) (*domain.PeriodLock, error) {
	lock := s.engine.PeriodLock()
	return &lock, nil
}
