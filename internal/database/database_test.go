package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	_, err = d.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	return d
}

func TestMigrate(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, Migrate(d))

	// Applying again is a no-op
	require.NoError(t, Migrate(d))

	var count int
	require.NoError(t, d.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(migrations), count)

	// The schema is usable
	_, err := d.Exec(`
		INSERT INTO tracks (name, source, point_count, total_distance_km, duration_seconds, started_at)
		VALUES ('outing', 'gpx', 2, 1.0, 240, '2024-05-12T08:00:00Z')
	`)
	require.NoError(t, err)
}

func TestTransaction(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, Migrate(d))

	t.Run("commit", func(t *testing.T) {
		err := Transaction(d, func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				INSERT INTO gates (course, name, latitude, longitude, bearing_deg)
				VALUES ('cam', 'start', 52.2, 0.12, 35)
			`)
			return err
		})
		require.NoError(t, err)

		var count int
		require.NoError(t, d.QueryRow("SELECT COUNT(*) FROM gates").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := Transaction(d, func(tx *sql.Tx) error {
			if _, err := tx.Exec(`
				INSERT INTO gates (course, name, latitude, longitude, bearing_deg)
				VALUES ('cam', 'finish', 52.3, 0.13, 35)
			`); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		var count int
		require.NoError(t, d.QueryRow("SELECT COUNT(*) FROM gates WHERE name = 'finish'").Scan(&count))
		assert.Zero(t, count)
	})
}
