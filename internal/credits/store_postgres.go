package credits

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore persists the credit event log in PostgreSQL. The unique
// constraint on the triple makes idempotence a structural property of the
// store rather than a convention in calling code.
//
// Expected schema:
//
//	CREATE TABLE credit_events (
//	    id          UUID PRIMARY KEY,
//	    fingerprint TEXT NOT NULL,
//	    from_clinic TEXT NOT NULL,
//	    to_clinic   TEXT NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    UNIQUE (fingerprint, from_clinic, to_clinic)
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) InsertIfAbsent(ctx context.Context, event Event) (bool, error) {
	query := `
		INSERT INTO credit_events (id, fingerprint, from_clinic, to_clinic, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (fingerprint, from_clinic, to_clinic) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		event.ID, event.Fingerprint, event.From, event.To, event.Timestamp)
	if err != nil {
		return false, fmt.Errorf("insert credit event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert credit event: %w", err)
	}
	return affected == 1, nil
}

func (s *PostgresStore) Recent(ctx context.Context, n int) ([]Event, error) {
	query := `
		SELECT id, fingerprint, from_clinic, to_clinic, created_at
		FROM credit_events
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("query recent credit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Fingerprint, &e.From, &e.To, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan credit event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credit events: %w", err)
	}
	return events, nil
}

func (s *PostgresStore) CountByContributor(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_clinic, COUNT(*) FROM credit_events GROUP BY from_clinic`)
	if err != nil {
		return nil, fmt.Errorf("count credit events: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var clinicID string
		var count int
		if err := rows.Scan(&clinicID, &count); err != nil {
			return nil, fmt.Errorf("scan credit count: %w", err)
		}
		totals[clinicID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credit counts: %w", err)
	}
	return totals, nil
}
