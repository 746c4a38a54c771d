// Package store persists saved scenarios, cached projections, baseline
// snapshots and the historical emissions series behind the dashboard's
// init payload. It is plumbing around the engine: the engine itself never
// touches it.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SavedScenario is a named policy a user stored for later comparison.
type SavedScenario struct {
	Name      string               `json:"name"`
	Policy    sim.PolicyParameters `json:"policy"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func (s *Store) UpsertScenario(name string, policy sim.PolicyParameters) error {
	_, err := s.db.Exec(`
		INSERT INTO scenarios (name, ev_adoption, renewable_energy, tree_plantation_rate, industrial_controls)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			ev_adoption = excluded.ev_adoption,
			renewable_energy = excluded.renewable_energy,
			tree_plantation_rate = excluded.tree_plantation_rate,
			industrial_controls = excluded.industrial_controls,
			updated_at = CURRENT_TIMESTAMP
	`, name, policy.EVAdoptionPct, policy.RenewableEnergyPct, policy.TreePlantationRate, policy.IndustrialControlPct)
	return err
}

func (s *Store) GetScenario(name string) (*SavedScenario, error) {
	row := s.db.QueryRow(`
		SELECT name, ev_adoption, renewable_energy, tree_plantation_rate, industrial_controls, created_at, updated_at
		FROM scenarios
		WHERE name = ?
	`, name)

	var sc SavedScenario
	err := row.Scan(&sc.Name, &sc.Policy.EVAdoptionPct, &sc.Policy.RenewableEnergyPct, &sc.Policy.TreePlantationRate, &sc.Policy.IndustrialControlPct, &sc.CreatedAt, &sc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Store) ListScenarios() ([]SavedScenario, error) {
	rows, err := s.db.Query(`
		SELECT name, ev_adoption, renewable_energy, tree_plantation_rate, industrial_controls, created_at, updated_at
		FROM scenarios
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []SavedScenario
	for rows.Next() {
		var sc SavedScenario
		if err := rows.Scan(&sc.Name, &sc.Policy.EVAdoptionPct, &sc.Policy.RenewableEnergyPct, &sc.Policy.TreePlantationRate, &sc.Policy.IndustrialControlPct, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, rows.Err()
}

func (s *Store) DeleteScenario(name string) error {
	_, err := s.db.Exec(`DELETE FROM scenarios WHERE name = ?`, name)
	return err
}

// GetCachedProjection looks up a projection by input fingerprint. Safe
// because the engine is deterministic: same fingerprint, same output.
func (s *Store) GetCachedProjection(fingerprint string) (*sim.ProjectionResult, error) {
	var raw string
	err := s.db.QueryRow(`SELECT result_json FROM projection_cache WHERE fingerprint = ?`, fingerprint).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result sim.ProjectionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode cached projection: %w", err)
	}
	return &result, nil
}

func (s *Store) PutCachedProjection(fingerprint string, result *sim.ProjectionResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode projection: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO projection_cache (fingerprint, result_json)
		VALUES (?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`, fingerprint, string(raw))
	return err
}

// PruneProjectionCache drops cache entries older than maxAge and returns
// how many were removed.
func (s *Store) PruneProjectionCache(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	res, err := s.db.Exec(`DELETE FROM projection_cache WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// InsertBaselineSnapshot records a fetched baseline so refreshes are
// auditable and the latest snapshot survives restarts.
func (s *Store) InsertBaselineSnapshot(source string, fetchedAt time.Time, b sim.Baseline) error {
	_, err := s.db.Exec(`
		INSERT INTO baselines (source, fetched_at, base_year, base_year_emissions_tons, base_vehicle_count, base_renewable_share, base_forest_cover_units, base_industrial_output_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source, fetched_at) DO NOTHING
	`, source, fetchedAt, b.BaseYear, b.BaseYearEmissionsTons, b.BaseVehicleCount, b.BaseRenewableShare, b.BaseForestCoverUnits, b.BaseIndustrialOutputIdx)
	return err
}

// GetLatestBaseline returns the most recently fetched snapshot for a
// source, or nil when none exists.
func (s *Store) GetLatestBaseline(source string) (*sim.Baseline, error) {
	row := s.db.QueryRow(`
		SELECT base_year, base_year_emissions_tons, base_vehicle_count, base_renewable_share, base_forest_cover_units, base_industrial_output_index
		FROM baselines
		WHERE source = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`, source)

	var b sim.Baseline
	err := row.Scan(&b.BaseYear, &b.BaseYearEmissionsTons, &b.BaseVehicleCount, &b.BaseRenewableShare, &b.BaseForestCoverUnits, &b.BaseIndustrialOutputIdx)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// HistoricalEmission is one year of the recorded national series shown
// alongside projections.
type HistoricalEmission struct {
	Year             int     `json:"year"`
	CO2EmissionsTons float64 `json:"co2_emissions_tons"`
}

func (s *Store) UpsertHistoricalEmission(h HistoricalEmission) error {
	_, err := s.db.Exec(`
		INSERT INTO historical_emissions (year, co2_emissions_tons)
		VALUES (?, ?)
		ON CONFLICT(year) DO UPDATE SET co2_emissions_tons = excluded.co2_emissions_tons
	`, h.Year, h.CO2EmissionsTons)
	return err
}

func (s *Store) GetHistoricalEmissions() ([]HistoricalEmission, error) {
	rows, err := s.db.Query(`SELECT year, co2_emissions_tons FROM historical_emissions ORDER BY year ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []HistoricalEmission
	for rows.Next() {
		var h HistoricalEmission
		if err := rows.Scan(&h.Year, &h.CO2EmissionsTons); err != nil {
			return nil, err
		}
		series = append(series, h)
	}
	return series, rows.Err()
}
