// Package corpus stores generated samples in a SQLite database, for batch
// test-data generation runs whose output needs to outlive the process.
package corpus

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Sample is one generated text together with the parameters that produced
// it. Seed plus TokenBudget plus the grammar make a sample reproducible.
type Sample struct {
	ID          string
	Grammar     string
	StartRule   string
	Seed        uint64
	TokenBudget int
	Output      string
	CreatedAt   time.Time
}

// Store is a SQLite-backed sample collection.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id TEXT PRIMARY KEY,
		grammar TEXT NOT NULL,
		start_rule TEXT NOT NULL,
		seed INTEGER NOT NULL,
		token_budget INTEGER NOT NULL,
		output TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_samples_grammar ON samples(grammar);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put inserts a sample. An empty ID gets a fresh UUID; a zero CreatedAt gets
// the current time.
func (s *Store) Put(sample Sample) error {
	if sample.ID == "" {
		sample.ID = uuid.New().String()
	}
	if sample.CreatedAt.IsZero() {
		sample.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO samples (id, grammar, start_rule, seed, token_budget, output, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sample.ID, sample.Grammar, sample.StartRule, int64(sample.Seed),
		sample.TokenBudget, sample.Output, sample.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// Count reports the number of stored samples.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM samples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

// Samples returns every sample stored for the named grammar, oldest first.
func (s *Store) Samples(grammarName string) ([]Sample, error) {
	rows, err := s.db.Query(
		`SELECT id, grammar, start_rule, seed, token_budget, output, created_at
		 FROM samples WHERE grammar = ? ORDER BY created_at, id`,
		grammarName,
	)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var sample Sample
		var seed int64
		if err := rows.Scan(&sample.ID, &sample.Grammar, &sample.StartRule,
			&seed, &sample.TokenBudget, &sample.Output, &sample.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		sample.Seed = uint64(seed)
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
