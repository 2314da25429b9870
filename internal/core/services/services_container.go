package services

import (
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/platform/config"
)

// NewServiceContainer wires every service around one ledger engine.
func NewServiceContainer(cfg *config.Config, engine *ledger.Engine, auditRepo portsrepo.AuditRepository) *portssvc.ServiceContainer {
	// Audit comes first since every writing service records through it
	audit := NewAuditService(auditRepo)

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(engine, audit),
		Journal:   NewJournalService(engine, audit),
		Template:  NewTemplateService(engine, audit),
		Period:    NewPeriodService(engine, audit),
		Reporting: NewReportingService(engine),
		Audit:     audit,
		Auth:      NewAuthService(cfg),
	}
}
