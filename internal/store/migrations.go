package store

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial schema",
		SQL: `
CREATE TABLE IF NOT EXISTS scenarios (
    name TEXT PRIMARY KEY,
    ev_adoption REAL NOT NULL,
    renewable_energy REAL NOT NULL,
    tree_plantation_rate REAL NOT NULL,
    industrial_controls REAL NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS projection_cache (
    fingerprint TEXT PRIMARY KEY,
    result_json TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS baselines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    fetched_at DATETIME NOT NULL,
    base_year INTEGER NOT NULL,
    base_year_emissions_tons REAL NOT NULL,
    base_vehicle_count INTEGER NOT NULL,
    base_renewable_share REAL NOT NULL,
    base_forest_cover_units REAL NOT NULL,
    base_industrial_output_index REAL NOT NULL,
    UNIQUE(source, fetched_at)
);

CREATE TABLE IF NOT EXISTS historical_emissions (
    year INTEGER PRIMARY KEY,
    co2_emissions_tons REAL NOT NULL
);
`,
	},
	{
		Version:     2,
		Description: "Index projection cache by age for pruning",
		SQL: `
CREATE INDEX IF NOT EXISTS idx_projection_cache_created ON projection_cache(created_at);
`,
	},
}

func (s *Store) Migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    description TEXT,
    applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		var applied int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.Version).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if applied > 0 {
			continue
		}

		if err := s.applyMigration(m); err != nil {
			return err
		}
		log.Info().Int("version", m.Version).Str("description", m.Description).Msg("applied migration")
	}

	return nil
}

func (s *Store) applyMigration(m migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`, m.Version, m.Description); err != nil {
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	return tx.Commit()
}
