package services

import (
	"context"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/dto"
)

// TemplateSvcFacade manages recurring entry templates.
type TemplateSvcFacade interface {
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, userID string) (*domain.RecurringTemplate, error)
	GetTemplateByID(ctx context.Context, templateID string) (*domain.RecurringTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.RecurringTemplate, error)

	// PostTemplate posts the template's lines as a new journal entry.
	PostTemplate(ctx context.Context, templateID string, req dto.PostTemplateRequest, userID string) (*domain.JournalEntry, error)
}

// PeriodSvcFacade manages the accounting period lock.
type PeriodSvcFacade interface {
	ClosePeriod(ctx context.Context, req dto.ClosePeriodRequest, userID string) (*domain.PeriodLock, error)
	GetPeriodLock(ctx context.Context) (*domain.PeriodLock, error)
}
