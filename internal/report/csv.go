package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// WriteSplitsCSV writes a split table as CSV. Extra metric columns are the
// union of keys across records, sorted for a stable header.
func WriteSplitsCSV(w io.Writer, splits []models.SplitRecord) error {
	extras := extraColumns(splits)

	header := []string{"label", "target_km", "start_km", "elapsed", "split_per_500m"}
	header = append(header, extras...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, s := range splits {
		row := []string{
			s.Label,
			fmt.Sprintf("%.3f", s.TargetKm),
			fmt.Sprintf("%.3f", s.StartDistanceKm),
			FormatSplit(s.Elapsed, false),
			FormatSplit(s.SplitPace, false),
		}
		for _, col := range extras {
			if v, ok := s.ExtraMetrics[col]; ok {
				row = append(row, fmt.Sprintf("%.1f", v))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCrossingsCSV writes a crossing table as CSV.
func WriteCrossingsCSV(w io.Writer, crossings []models.CrossingEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"gate", "distance_km", "time"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, c := range crossings {
		row := []string{
			c.GateName,
			fmt.Sprintf("%.3f", c.DistanceKm),
			c.Time.UTC().Format("2006-01-02T15:04:05.00Z"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func extraColumns(splits []models.SplitRecord) []string {
	seen := make(map[string]bool)
	for _, s := range splits {
		for col := range s.ExtraMetrics {
			seen[col] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for col := range seen {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}
