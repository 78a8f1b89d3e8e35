// Package sqlite persists the candidate pool in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lexitag/pkg/lexitag/pool"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a candidate pool database with WAL mode
// enabled.
func Open(ctx context.Context, path string) (pool.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	key TEXT PRIMARY KEY,
	id TEXT NOT NULL,
	word TEXT NOT NULL,
	tag TEXT NOT NULL,
	confidence REAL NOT NULL,
	source TEXT,
	first_seen TEXT NOT NULL,
	last_seen TEXT NOT NULL,
	seen_count INTEGER NOT NULL,
	contexts TEXT,
	promoted INTEGER NOT NULL DEFAULT 0,
	rejected INTEGER NOT NULL DEFAULT 0,
	reject_reason TEXT
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) Get(ctx context.Context, key string) (pool.Entry, bool, error) {
	const stmt = `
SELECT id, word, tag, confidence, source, first_seen, last_seen,
	seen_count, contexts, promoted, rejected, reject_reason
FROM candidates WHERE key = ?;
`
	e, err := scanEntry(s.db.QueryRowContext(ctx, stmt, key))
	if err == sql.ErrNoRows {
		return pool.Entry{}, false, nil
	}
	if err != nil {
		return pool.Entry{}, false, err
	}
	return e, true, nil
}

func (s *sqliteStore) Put(ctx context.Context, e pool.Entry) error {
	contexts, err := json.Marshal(e.Contexts)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO candidates (key, id, word, tag, confidence, source,
	first_seen, last_seen, seen_count, contexts, promoted, rejected, reject_reason)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
	tag=excluded.tag,
	confidence=excluded.confidence,
	source=excluded.source,
	last_seen=excluded.last_seen,
	seen_count=excluded.seen_count,
	contexts=excluded.contexts,
	promoted=excluded.promoted,
	rejected=excluded.rejected,
	reject_reason=excluded.reject_reason;
`
	_, err = s.db.ExecContext(ctx, stmt,
		pool.Key(e.Word), e.ID, e.Word, e.Tag, e.Confidence, e.Source,
		e.FirstSeen.UTC().Format(time.RFC3339Nano),
		e.LastSeen.UTC().Format(time.RFC3339Nano),
		e.SeenCount, string(contexts),
		boolInt(e.Promoted), boolInt(e.Rejected), e.RejectReason,
	)
	return err
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM candidates WHERE key = ?;", key)
	return err
}

func (s *sqliteStore) All(ctx context.Context) ([]pool.Entry, error) {
	const stmt = `
SELECT id, word, tag, confidence, source, first_seen, last_seen,
	seen_count, contexts, promoted, rejected, reject_reason
FROM candidates;
`
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []pool.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (pool.Entry, error) {
	var (
		e                   pool.Entry
		firstSeen, lastSeen string
		contexts            string
		promoted, rejected  int
	)
	err := row.Scan(&e.ID, &e.Word, &e.Tag, &e.Confidence, &e.Source,
		&firstSeen, &lastSeen, &e.SeenCount, &contexts,
		&promoted, &rejected, &e.RejectReason)
	if err != nil {
		return pool.Entry{}, err
	}

	if e.FirstSeen, err = time.Parse(time.RFC3339Nano, firstSeen); err != nil {
		return pool.Entry{}, err
	}
	if e.LastSeen, err = time.Parse(time.RFC3339Nano, lastSeen); err != nil {
		return pool.Entry{}, err
	}
	if contexts != "" {
		if err := json.Unmarshal([]byte(contexts), &e.Contexts); err != nil {
			return pool.Entry{}, err
		}
	}
	e.Promoted = promoted != 0
	e.Rejected = rejected != 0
	return e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
