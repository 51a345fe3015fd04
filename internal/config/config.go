package config

import (
	"os"
	"strconv"
)

// Config holds the runtime configuration, loaded from the environment.
type Config struct {
	Port              string
	DBPath            string
	GatesDir          string
	JWTSecret         string
	AdminPassword     string
	ProximityThreshKm float64
	FrontierMaxPoints int
	BatchMaxWorkers   int
}

// Load reads the configuration from environment variables, falling back to
// development defaults.
func Load() *Config {
	return &Config{
		Port:              getString("PORT", ":8080"),
		DBPath:            getString("DB_PATH", "./data/rowing.db"),
		GatesDir:          getString("GATES_DIR", "./data/gates"),
		JWTSecret:         getString("JWT_SECRET", "change-me-in-production"),
		AdminPassword:     getString("ADMIN_PASSWORD", "coxswain"),
		ProximityThreshKm: getFloat("PROXIMITY_THRESH_KM", 0.15),
		FrontierMaxPoints: getInt("FRONTIER_MAX_POINTS", 400),
		BatchMaxWorkers:   getInt("BATCH_MAX_WORKERS", 10),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
