package gates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const camTable = "location\tlatitude\tlongitude\tbearing\n" +
	"start\t52.2053\t0.1218\t35\n" +
	"railway bridge\t52.2100\t0.1300\t40\n" +
	"finish\t52.2150\t0.1400\t45\n"

func TestParseTSV(t *testing.T) {
	t.Run("parses rows", func(t *testing.T) {
		gates, err := ParseTSV(strings.NewReader(camTable), "cam")
		require.NoError(t, err)
		require.Len(t, gates, 3)

		assert.Equal(t, "railway bridge", gates[1].Name)
		assert.Equal(t, "cam", gates[1].Course)
		assert.Equal(t, 52.21, gates[1].Latitude)
		assert.Equal(t, 40.0, gates[1].BearingDeg)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := ParseTSV(strings.NewReader("location\tlatitude\nx\t1\n"), "cam")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("bad number", func(t *testing.T) {
		table := "location\tlatitude\tlongitude\tbearing\nstart\tnorth\t0.1\t35\n"
		_, err := ParseTSV(strings.NewReader(table), "cam")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cam_locations.tsv"), []byte(camTable), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ely_locations.tsv"), []byte(
		"location\tlatitude\tlongitude\tbearing\nbridge\t52.4\t0.26\t120\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	gates, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, gates, 4)

	courses := map[string]int{}
	for _, g := range gates {
		courses[g.Course]++
	}
	assert.Equal(t, 3, courses["cam"])
	assert.Equal(t, 1, courses["ely"])
}

func TestCourseName(t *testing.T) {
	assert.Equal(t, "cam", CourseName("/data/cam_locations.tsv"))
	assert.Equal(t, "tideway", CourseName("tideway_locations.tsv"))
	assert.Equal(t, "other", CourseName("other.tsv"))
}
