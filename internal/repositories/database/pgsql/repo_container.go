package pgsql

import (
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryProvider holds the PostgreSQL-backed repositories.
type RepositoryProvider struct {
	LedgerStore portsrepo.LedgerStore
	AuditRepo   portsrepo.AuditRepository
}

// NewRepositoryProvider wires every repository to dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) RepositoryProvider {
	return RepositoryProvider{
		LedgerStore: newPgxLedgerRepository(dbPool),
		AuditRepo:   newPgxAuditRepository(dbPool),
	}
}
