package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/strokeside/rowing-analysis-go/internal/models"
	"github.com/strokeside/rowing-analysis-go/internal/spatial"
)

// gpxFile mirrors the subset of the GPX 1.1 schema the service reads,
// including the Garmin TrackPointExtension fields carrying heart rate and
// cadence.
type gpxFile struct {
	XMLName  xml.Name `xml:"gpx"`
	Creator  string   `xml:"creator,attr"`
	Metadata struct {
		Time string `xml:"time"`
	} `xml:"metadata"`
	Tracks []struct {
		Name     string `xml:"name"`
		Segments []struct {
			Points []gpxPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

type gpxPoint struct {
	Lat        float64 `xml:"lat,attr"`
	Lon        float64 `xml:"lon,attr"`
	Time       string  `xml:"time"`
	Extensions struct {
		TPX struct {
			HR      float64 `xml:"hr"`
			Cadence float64 `xml:"cad"`
		} `xml:"TrackPointExtension"`
	} `xml:"extensions"`
}

// ParseGPX reads a GPX document and builds a validated track table:
// cumulative haversine distance from the first sample, elapsed time, and the
// outgoing bearing toward the next sample (the last point replicates its
// neighbour's bearing so every row carries a defined value). Malformed
// input fails here, fast and descriptively, so the analysis components only
// ever see tracks holding the table invariants.
func ParseGPX(r io.Reader) (models.Track, string, error) {
	var doc gpxFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("failed to decode GPX: %w", err)
	}

	var name string
	var raw []gpxPoint
	for _, trk := range doc.Tracks {
		if name == "" {
			name = trk.Name
		}
		for _, seg := range trk.Segments {
			raw = append(raw, seg.Points...)
		}
	}
	if len(raw) < 2 {
		return nil, name, fmt.Errorf("GPX contains %d track points, need at least 2", len(raw))
	}

	track := make(models.Track, len(raw))
	for i, p := range raw {
		ts, err := time.Parse(time.RFC3339, p.Time)
		if err != nil {
			return nil, name, fmt.Errorf("track point %d has invalid timestamp %q: %w", i, p.Time, err)
		}
		track[i] = models.TrackPoint{
			Position:  models.Position{Latitude: p.Lat, Longitude: p.Lon},
			Time:      ts,
			HeartRate: p.Extensions.TPX.HR,
			Cadence:   p.Extensions.TPX.Cadence,
		}
	}

	fillDerived(track)

	if err := track.Validate(); err != nil {
		return nil, name, fmt.Errorf("invalid track: %w", err)
	}
	return track, name, nil
}

// fillDerived computes the cumulative distance, elapsed time and outgoing
// bearing columns in place.
func fillDerived(track models.Track) {
	start := track[0].Time
	cumulative := 0.0
	for i := range track {
		if i > 0 {
			cumulative += spatial.HaversineKm(track[i-1].Position, track[i].Position)
		}
		track[i].DistanceKm = cumulative
		track[i].Elapsed = track[i].Time.Sub(start)
		if i < len(track)-1 {
			track[i].BearingDeg = spatial.Bearing(track[i].Position, track[i+1].Position)
		}
	}
	// Edge-of-sequence policy: the last sample has no next point, so it
	// carries the previous outgoing bearing
	track[len(track)-1].BearingDeg = track[len(track)-2].BearingDeg
}
