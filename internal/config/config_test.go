package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()
		assert.Equal(t, ":8080", cfg.Port)
		assert.Equal(t, 0.15, cfg.ProximityThreshKm)
		assert.Equal(t, 400, cfg.FrontierMaxPoints)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", ":9090")
		t.Setenv("PROXIMITY_THRESH_KM", "0.1")
		t.Setenv("BATCH_MAX_WORKERS", "4")

		cfg := Load()
		assert.Equal(t, ":9090", cfg.Port)
		assert.Equal(t, 0.1, cfg.ProximityThreshKm)
		assert.Equal(t, 4, cfg.BatchMaxWorkers)
	})

	t.Run("malformed numbers fall back", func(t *testing.T) {
		t.Setenv("PROXIMITY_THRESH_KM", "close")
		cfg := Load()
		assert.Equal(t, 0.15, cfg.ProximityThreshKm)
	})
}
