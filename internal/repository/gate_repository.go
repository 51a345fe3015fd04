package repository

import (
	"database/sql"
	"fmt"

	"github.com/strokeside/rowing-analysis-go/internal/database"
	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// GateRepository handles database operations for the gate reference tables
type GateRepository struct {
	db *sql.DB
}

// NewGateRepository creates a new gate repository
func NewGateRepository(db *sql.DB) *GateRepository {
	return &GateRepository{db: db}
}

// ReplaceAll swaps the whole stored gate table for the given one. Gate
// tables are static reference data, so a reload replaces rather than merges.
func (r *GateRepository) ReplaceAll(gates []models.Gate) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM gates"); err != nil {
			return fmt.Errorf("failed to clear gates: %w", err)
		}
		stmt, err := tx.Prepare(`
			INSERT INTO gates (course, name, latitude, longitude, bearing_deg)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare gate insert: %w", err)
		}
		defer stmt.Close()

		for _, g := range gates {
			if _, err := stmt.Exec(g.Course, g.Name, g.Latitude, g.Longitude, g.BearingDeg); err != nil {
				return fmt.Errorf("failed to insert gate %q: %w", g.Name, err)
			}
		}
		return nil
	})
}

// ListGates retrieves the gate table, optionally restricted to one course.
func (r *GateRepository) ListGates(course string) ([]models.Gate, error) {
	query := "SELECT course, name, latitude, longitude, bearing_deg FROM gates"
	var args []interface{}
	if course != "" {
		query += " WHERE course = ?"
		args = append(args, course)
	}
	query += " ORDER BY course, id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gates: %w", err)
	}
	defer rows.Close()

	var gates []models.Gate
	for rows.Next() {
		var g models.Gate
		if err := rows.Scan(&g.Course, &g.Name, &g.Latitude, &g.Longitude, &g.BearingDeg); err != nil {
			return nil, fmt.Errorf("failed to scan gate: %w", err)
		}
		gates = append(gates, g)
	}
	return gates, rows.Err()
}

// Courses lists the distinct course keys present in the gate table.
func (r *GateRepository) Courses() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT course FROM gates ORDER BY course")
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
