package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/apperrors"
	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	"github.com/finpulse/finpulse_ledger/internal/models"
	"github.com/finpulse/finpulse_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository persists the ledger in PostgreSQL.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerStore
var _ portsrepo.LedgerStore = (*PgxLedgerRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (
			account_id, code, name, account_type, parent_account_id, status, balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Code, m.Name, m.AccountType, m.ParentAccountID, m.Status, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to insert account %s: %w", m.AccountID, err)
	}
	return nil
}

// UpdateAccountStatus persists an account status change.
func (r *PgxLedgerRepository) UpdateAccountStatus(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	return execOne(ctx, r.Pool, "account "+account.AccountID, query,
		account.AccountID, string(account.Status), account.LastUpdatedAt, account.LastUpdatedBy)
}

// UpdateAccountParent persists a move within the chart.
func (r *PgxLedgerRepository) UpdateAccountParent(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET parent_account_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	return execOne(ctx, r.Pool, "account "+account.AccountID, query,
		m.AccountID, m.ParentAccountID, m.LastUpdatedAt, m.LastUpdatedBy)
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db execer, what, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", what, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return nil
}

// SaveJournal inserts a posted journal with its lines and applies balanceChanges in one transaction.
func (r *PgxLedgerRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := insertJournal(ctx, tx, entry); err != nil {
			return err
		}
		return applyBalanceChanges(ctx, tx, balanceChanges, entry.LastUpdatedBy, entry.LastUpdatedAt)
	})
}

// SaveDraft inserts a draft journal with its lines.
func (r *PgxLedgerRepository) SaveDraft(ctx context.Context, entry domain.JournalEntry) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		return insertJournal(ctx, tx, entry)
	})
}

// DeleteDraft removes a draft journal. Lines cascade.
func (r *PgxLedgerRepository) DeleteDraft(ctx context.Context, journalID string) error {
	query := `DELETE FROM journals WHERE journal_id = $1 AND status = 'DRAFT';`
	return execOne(ctx, r.Pool, "draft journal "+journalID, query, journalID)
}

// PostDraft marks a draft as posted and applies balanceChanges in one transaction.
func (r *PgxLedgerRepository) PostDraft(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE journals
			SET status = $2, posted_by = $3, last_updated_at = $4, last_updated_by = $5
			WHERE journal_id = $1 AND status = 'DRAFT';
		`
		if err := execOne(ctx, tx, "draft journal "+entry.JournalID, query,
			entry.JournalID, string(entry.Status), entry.PostedBy, entry.LastUpdatedAt, entry.LastUpdatedBy); err != nil {
			return err
		}
		return applyBalanceChanges(ctx, tx, balanceChanges, entry.LastUpdatedBy, entry.LastUpdatedAt)
	})
}

// ReverseJournal inserts the reversal, marks the original REVERSED and applies
// balanceChanges in one transaction.
func (r *PgxLedgerRepository) ReverseJournal(ctx context.Context, original, reversal domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := insertJournal(ctx, tx, reversal); err != nil {
			return err
		}
		query := `
			UPDATE journals
			SET status = $2, reversing_journal_id = $3, last_updated_at = $4, last_updated_by = $5
			WHERE journal_id = $1 AND status = 'POSTED';
		`
		if err := execOne(ctx, tx, "posted journal "+original.JournalID, query,
			original.JournalID, string(original.Status), original.ReversingJournalID, original.LastUpdatedAt, original.LastUpdatedBy); err != nil {
			return err
		}
		return applyBalanceChanges(ctx, tx, balanceChanges, reversal.CreatedBy, reversal.CreatedAt)
	})
}

func insertJournal(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	journal, lines := mapping.ToModelJournal(entry)
	journalQuery := `
		INSERT INTO journals (
			journal_id, journal_date, description, reference, status,
			original_journal_id, reversing_journal_id, posted_by,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, journalQuery,
		journal.JournalID, journal.JournalDate, journal.Description, journal.Reference, journal.Status,
		journal.OriginalJournalID, journal.ReversingJournalID, journal.PostedBy,
		journal.CreatedAt, journal.CreatedBy, journal.LastUpdatedAt, journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", journal.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, line_no, account_id, debit, credit, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range lines {
		batch.Queue(lineQuery, l.LineID, l.JournalID, l.LineNo, l.AccountID, l.Debit, l.Credit, l.Notes)
	}
	// Close the batch results to check for errors in each command
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for journal %s: %w", journal.JournalID, err)
	}
	return nil
}

// applyBalanceChanges locks the affected accounts and adds each delta to the stored balance.
func applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, actor string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}

	rows, err := tx.Query(ctx, `SELECT account_id FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	locked, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	if len(locked) != len(accountIDs) {
		return fmt.Errorf("%w: %d of %d accounts found for balance update", apperrors.ErrNotFound, len(locked), len(accountIDs))
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for _, id := range accountIDs {
		if delta := balanceChanges[id]; !delta.IsZero() {
			batch.Queue(query, id, delta, now, actor)
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}
	return nil
}

// SaveTemplate inserts a template with its lines.
func (r *PgxLedgerRepository) SaveTemplate(ctx context.Context, template domain.RecurringTemplate) error {
	tmpl, lines := mapping.ToModelTemplate(template)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO recurring_templates (template_id, name, description, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, tmpl.TemplateID, tmpl.Name, tmpl.Description, tmpl.CreatedAt, tmpl.CreatedBy, tmpl.LastUpdatedAt, tmpl.LastUpdatedBy)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: template %s", apperrors.ErrDuplicate, tmpl.Name)
			}
			return fmt.Errorf("failed to insert template %s: %w", tmpl.TemplateID, err)
		}
		batch := &pgx.Batch{}
		for _, l := range lines {
			batch.Queue(`
				INSERT INTO template_lines (template_id, line_no, line_id, account_id, debit, credit, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7);
			`, l.TemplateID, l.LineNo, l.LineID, l.AccountID, l.Debit, l.Credit, l.Notes)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert lines for template %s: %w", tmpl.TemplateID, err)
		}
		return nil
	})
}

// SavePeriodLock stores the single period lock row.
func (r *PgxLedgerRepository) SavePeriodLock(ctx context.Context, lock domain.PeriodLock) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO period_locks (lock_id, closed_through, closed_at, closed_by)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (lock_id) DO UPDATE
		SET closed_through = EXCLUDED.closed_through, closed_at = EXCLUDED.closed_at, closed_by = EXCLUDED.closed_by;
	`, lock.ClosedThrough, lock.ClosedAt, lock.ClosedBy)
	if err != nil {
		return fmt.Errorf("failed to save period lock: %w", err)
	}
	return nil
}

// LoadLedger reads every account, journal, template and the period lock.
// Journals come back in the order they were recorded.
func (r *PgxLedgerRepository) LoadLedger(ctx context.Context) (*portsrepo.LedgerSnapshot, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	snapshot := &portsrepo.LedgerSnapshot{}
	if snapshot.Accounts, err = loadAccounts(ctx, tx); err != nil {
		return nil, err
	}
	if snapshot.Journals, err = loadJournals(ctx, tx); err != nil {
		return nil, err
	}
	if snapshot.Templates, err = loadTemplates(ctx, tx); err != nil {
		return nil, err
	}
	if snapshot.PeriodLock, err = loadPeriodLock(ctx, tx); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func loadAccounts(ctx context.Context, tx pgx.Tx) ([]domain.Account, error) {
	rows, err := tx.Query(ctx, `
		SELECT account_id, code, name, account_type, parent_account_id, status, balance,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		ORDER BY code;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.AccountID, &m.Code, &m.Name, &m.AccountType, &m.ParentAccountID, &m.Status, &m.Balance,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(out), nil
}

func loadJournals(ctx context.Context, tx pgx.Tx) ([]domain.JournalEntry, error) {
	linesByJournal := make(map[string][]models.JournalLine)
	lineRows, err := tx.Query(ctx, `
		SELECT line_id, journal_id, line_no, account_id, debit, credit, notes
		FROM journal_lines
		ORDER BY journal_id, line_no;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	for lineRows.Next() {
		var l models.JournalLine
		if err := lineRows.Scan(&l.LineID, &l.JournalID, &l.LineNo, &l.AccountID, &l.Debit, &l.Credit, &l.Notes); err != nil {
			lineRows.Close()
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		linesByJournal[l.JournalID] = append(linesByJournal[l.JournalID], l)
	}
	lineRows.Close()
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT journal_id, journal_date, description, reference, status,
		       original_journal_id, reversing_journal_id, posted_by,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		ORDER BY seq;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		var m models.Journal
		if err := rows.Scan(&m.JournalID, &m.JournalDate, &m.Description, &m.Reference, &m.Status,
			&m.OriginalJournalID, &m.ReversingJournalID, &m.PostedBy,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		out = append(out, mapping.ToDomainJournal(m, linesByJournal[m.JournalID]))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return out, nil
}

func loadTemplates(ctx context.Context, tx pgx.Tx) ([]domain.RecurringTemplate, error) {
	linesByTemplate := make(map[string][]models.TemplateLine)
	lineRows, err := tx.Query(ctx, `
		SELECT template_id, line_no, line_id, account_id, debit, credit, notes
		FROM template_lines
		ORDER BY template_id, line_no;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query template lines: %w", err)
	}
	for lineRows.Next() {
		var l models.TemplateLine
		if err := lineRows.Scan(&l.TemplateID, &l.LineNo, &l.LineID, &l.AccountID, &l.Debit, &l.Credit, &l.Notes); err != nil {
			lineRows.Close()
			return nil, fmt.Errorf("failed to scan template line row: %w", err)
		}
		linesByTemplate[l.TemplateID] = append(linesByTemplate[l.TemplateID], l)
	}
	lineRows.Close()
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template line rows: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT template_id, name, description, created_at, created_by, last_updated_at, last_updated_by
		FROM recurring_templates
		ORDER BY name;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var out []domain.RecurringTemplate
	for rows.Next() {
		var m models.Template
		if err := rows.Scan(&m.TemplateID, &m.Name, &m.Description, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		out = append(out, mapping.ToDomainTemplate(m, linesByTemplate[m.TemplateID]))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	return out, nil
}

func loadPeriodLock(ctx context.Context, tx pgx.Tx) (domain.PeriodLock, error) {
	var m models.PeriodLock
	err := tx.QueryRow(ctx, `SELECT closed_through, closed_at, closed_by FROM period_locks WHERE lock_id = 1;`).
		Scan(&m.ClosedThrough, &m.ClosedAt, &m.ClosedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PeriodLock{}, nil
	}
	if err != nil {
		return domain.PeriodLock{}, fmt.Errorf("failed to query period lock: %w", err)
	}
	return domain.PeriodLock{
		ClosedThrough: domain.DateOnly(m.ClosedThrough),
		ClosedAt:      m.ClosedAt,
		ClosedBy:      m.ClosedBy,
	}, nil
}
