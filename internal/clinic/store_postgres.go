package clinic

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"carelink/pkg/platform/sentinel"
)

// PostgresStore persists clinics in PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE clinics (
//	    id               TEXT PRIMARY KEY,
//	    name             TEXT NOT NULL,
//	    opted_in         BOOLEAN NOT NULL DEFAULT FALSE,
//	    contribution_pct INTEGER NOT NULL DEFAULT 0
//	        CHECK (contribution_pct BETWEEN 0 AND 100)
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an existing database handle; connection lifecycle is
// owned by the caller.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, c Clinic) error {
	query := `
		INSERT INTO clinics (id, name, opted_in, contribution_pct)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			opted_in = EXCLUDED.opted_in,
			contribution_pct = EXCLUDED.contribution_pct
	`
	if _, err := s.db.ExecContext(ctx, query, c.ID, c.Name, c.OptedIn, c.ContributionPct); err != nil {
		return fmt.Errorf("put clinic: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Clinic, error) {
	var c Clinic
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, opted_in, contribution_pct FROM clinics WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.OptedIn, &c.ContributionPct)
	if err == sql.ErrNoRows {
		return Clinic{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Clinic{}, fmt.Errorf("get clinic: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Clinic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, opted_in, contribution_pct FROM clinics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	defer rows.Close()

	var out []Clinic
	for rows.Next() {
		var c Clinic
		if err := rows.Scan(&c.ID, &c.Name, &c.OptedIn, &c.ContributionPct); err != nil {
			return nil, fmt.Errorf("scan clinic: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clinics: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, optedIn bool, contributionPct int) (Clinic, error) {
	var c Clinic
	query := `
		UPDATE clinics
		SET opted_in = $2, contribution_pct = $3
		WHERE id = $1
		RETURNING id, name, opted_in, contribution_pct
	`
	err := s.db.QueryRowContext(ctx, query, id, optedIn, contributionPct).
		Scan(&c.ID, &c.Name, &c.OptedIn, &c.ContributionPct)
	if err == sql.ErrNoRows {
		return Clinic{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Clinic{}, fmt.Errorf("update clinic: %w", err)
	}
	return c, nil
}
