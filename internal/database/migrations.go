package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents one schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered, append-only schema history.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_tracks",
		SQL: `
			CREATE TABLE IF NOT EXISTS tracks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				source TEXT NOT NULL DEFAULT 'gpx',
				point_count INTEGER NOT NULL,
				total_distance_km REAL NOT NULL,
				duration_seconds REAL NOT NULL,
				started_at TIMESTAMP NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS track_points (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				track_id INTEGER NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
				seq INTEGER NOT NULL,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				time TIMESTAMP NOT NULL,
				distance_km REAL NOT NULL,
				elapsed_seconds REAL NOT NULL,
				bearing_deg REAL NOT NULL,
				heart_rate REAL NOT NULL DEFAULT 0,
				cadence REAL NOT NULL DEFAULT 0,
				UNIQUE(track_id, seq)
			);
			CREATE INDEX IF NOT EXISTS idx_track_points_track ON track_points(track_id);
		`,
	},
	{
		Version: 2,
		Name:    "create_gates",
		SQL: `
			CREATE TABLE IF NOT EXISTS gates (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				course TEXT NOT NULL,
				name TEXT NOT NULL,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				bearing_deg REAL NOT NULL,
				UNIQUE(course, name)
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_analysis_results",
		SQL: `
			CREATE TABLE IF NOT EXISTS crossings (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				track_id INTEGER NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
				gate_name TEXT NOT NULL,
				distance_km REAL NOT NULL,
				crossed_at TIMESTAMP NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_crossings_track ON crossings(track_id);

			CREATE TABLE IF NOT EXISTS best_splits (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				track_id INTEGER NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
				label TEXT NOT NULL,
				target_km REAL NOT NULL,
				start_distance_km REAL NOT NULL,
				elapsed_seconds REAL NOT NULL,
				split_pace_seconds REAL NOT NULL,
				extra_metrics TEXT
			);
			CREATE INDEX IF NOT EXISTS idx_best_splits_track ON best_splits(track_id);
		`,
	},
}

// Migrate applies every migration not yet recorded in the migrations table.
func Migrate(d *sql.DB) error {
	if _, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := d.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := Transaction(d, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name,
			); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("[Database] Applied migration %d: %s", m.Version, m.Name)
	}
	return nil
}
