// Package postgresql keeps the intent journal of storefront sessions in
// PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.IntentJournal = JournalStorage{}

const insertEntry = `
INSERT INTO intent_journal (id, session_id, name, occurred_at, payload)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`

type sqldb interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	PingContext(ctx context.Context) error
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Open connects to the database at dsn through the pgx driver and checks
// it is reachable.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	const op = "postgresql.Open"

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	slog.Info("database is available", "op", op)
	return db, nil
}

// A JournalStorage appends journal entries to the intent_journal table.
// Appending an entry twice keeps the first copy.
type JournalStorage struct {
	sqldb sqldb
}

func NewJournalStorage(db sqldb) JournalStorage {
	if db == nil {
		panic("postgresql.NewJournalStorage: nil database (develop mistake)")
	}
	return JournalStorage{db}
}

func (s JournalStorage) AppendEntries(
	ctx context.Context, entries []domain.JournalEntry,
) error {
	const op = "JournalStorage.AppendEntries"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertEntry)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.ExecContext(
			ctx, e.ID, e.SessionID, e.Name, e.OccurredAt, payloadOf(e),
		)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SessionEntries returns the journal of a session in occurrence order.
func (s JournalStorage) SessionEntries(
	ctx context.Context, sessionID string,
) ([]domain.JournalEntry, error) {
	const op = "JournalStorage.SessionEntries"

	rows, err := s.sqldb.QueryContext(ctx, `
SELECT id, session_id, name, occurred_at, payload
FROM intent_journal
WHERE session_id = $1
ORDER BY occurred_at, seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		err := rows.Scan(&e.ID, &e.SessionID, &e.Name, &e.OccurredAt, &e.Payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

func (s JournalStorage) Close() {
	const op = "JournalStorage.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.sqldb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}

// payloadOf keeps the jsonb column valid for entries without payload.
func payloadOf(e domain.JournalEntry) []byte {
	if len(e.Payload) == 0 {
		return []byte("null")
	}
	return e.Payload
}
