// Package gates loads the static reference tables of course landmarks:
// named gate lines (position plus forward bearing) whose crossing times the
// analysis reports.
package gates

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// fileSuffix is the naming convention for course files: <course>_locations.tsv
const fileSuffix = "_locations.tsv"

// ParseTSV reads one course's gate table from tab-separated data with a
// header of location, latitude, longitude and bearing columns.
func ParseTSV(r io.Reader, course string) ([]models.Gate, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read gate table header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"location", "latitude", "longitude", "bearing"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("gate table missing %q column", required)
		}
	}

	var gates []models.Gate
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read gate table row: %w", err)
		}

		lat, err := strconv.ParseFloat(row[col["latitude"]], 64)
		if err != nil {
			return nil, fmt.Errorf("gate %q has invalid latitude: %w", row[col["location"]], err)
		}
		lon, err := strconv.ParseFloat(row[col["longitude"]], 64)
		if err != nil {
			return nil, fmt.Errorf("gate %q has invalid longitude: %w", row[col["location"]], err)
		}
		bearing, err := strconv.ParseFloat(row[col["bearing"]], 64)
		if err != nil {
			return nil, fmt.Errorf("gate %q has invalid bearing: %w", row[col["location"]], err)
		}

		gates = append(gates, models.Gate{
			Position:   models.Position{Latitude: lat, Longitude: lon},
			BearingDeg: bearing,
			Name:       strings.TrimSpace(row[col["location"]]),
			Course:     course,
		})
	}
	return gates, nil
}

// LoadFile reads one <course>_locations.tsv file.
func LoadFile(path string) ([]models.Gate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gate table: %w", err)
	}
	defer f.Close()

	return ParseTSV(f, CourseName(path))
}

// LoadDir reads every course file in a directory into one combined table.
func LoadDir(dir string) ([]models.Gate, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+fileSuffix))
	if err != nil {
		return nil, err
	}

	var gates []models.Gate
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		gates = append(gates, loaded...)
		log.Printf("[Gates] Loaded %d gates for course %q from %s", len(loaded), CourseName(path), filepath.Base(path))
	}
	return gates, nil
}

// CourseName derives the course key from a gate file path.
func CourseName(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, fileSuffix) {
		return strings.TrimSuffix(base, fileSuffix)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
