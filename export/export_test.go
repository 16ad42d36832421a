package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"motiontracker/stats"
)

func sampleReport() stats.Report {
	return stats.Report{
		Objects: []stats.ObjectStats{
			{ID: 1, Lifetime: 5, Samples: 5, TotalDistance: 40, AverageSpeed: 8},
			{ID: 2, Lifetime: 0, Samples: 0},
			{ID: 3, Lifetime: 3, Samples: 3, TotalDistance: 2.83, AverageSpeed: 0.94},
		},
		Trajectories: []stats.Trajectory{
			{
				ID:     1,
				Points: []image.Point{{0, 0}, {10, 0}, {10, 10}, {20, 10}, {20, 20}},
				Start:  image.Pt(0, 0),
				End:    image.Pt(20, 20),
			},
			{
				ID:     3,
				Points: []image.Point{{0, 0}, {1, 1}, {2, 2}},
				Start:  image.Pt(0, 0),
				End:    image.Pt(2, 2),
			},
		},
	}
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, sampleReport().Objects))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Object ID", "Total Distance (px)", "Average Speed (px/frame)"},
		{"1", "40.00", "8.00"},
		{"2", "0.00", "0.00"},
		{"3", "2.83", "0.94"},
	}, rows)
}

func TestWriteCSVCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracking_stats.csv")
	require.NoError(t, WriteCSV(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Object ID,Total Distance (px),Average Speed (px/frame)\n", string(data))
}

func TestWriteCSVMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "stats.csv")
	assert.Error(t, WriteCSV(path, nil))
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, sampleReport().Objects))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Average Speed (px/frame)")
	assert.Contains(t, lines[1], "40.00")
	assert.Contains(t, lines[1], "8.00")
}

func TestNewTrajectoryPlot(t *testing.T) {
	p, err := NewTrajectoryPlot(sampleReport().Trajectories)
	require.NoError(t, err)

	assert.Equal(t, "Motion Paths of Tracked Objects", p.Title.Text)
	assert.Equal(t, "X Position (pixels)", p.X.Label.Text)
	assert.IsType(t, plot.InvertedScale{}, p.Y.Scale)
	assert.InDelta(t, 0, p.X.Min, 1e-9)
	assert.InDelta(t, 20, p.X.Max, 1e-9)
}

func TestSavePlotPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motion_paths.png")
	require.NoError(t, SavePlotPNG(path, sampleReport().Trajectories))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderPlotHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPlotHTML(&buf, sampleReport().Trajectories))

	html := buf.String()
	assert.Contains(t, html, "Motion Paths of Tracked Objects")
	assert.Contains(t, html, "Object ID 1")
	assert.Contains(t, html, "Object ID 3")
	assert.Contains(t, html, "Start 3")
	assert.Contains(t, html, "End 1")
}

func TestSaveRun(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	report := sampleReport()

	first := RunInfo{ID: uuid.New(), Source: "0", StartedAt: time.Now(), Frames: 120}
	second := RunInfo{ID: uuid.New(), Source: "clip.mp4", StartedAt: time.Now(), Frames: 30}
	require.NoError(t, SaveRun(ctx, dbPath, first, report))
	require.NoError(t, SaveRun(ctx, dbPath, second, stats.Report{}))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var runs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tracking_runs`).Scan(&runs))
	assert.Equal(t, 2, runs)

	var objects, frames int
	require.NoError(t, db.QueryRow(`SELECT total_objects, total_frames FROM tracking_runs WHERE run_id = ?`, first.ID.String()).Scan(&objects, &frames))
	assert.Equal(t, 3, objects)
	assert.Equal(t, 120, frames)

	var speed float64
	require.NoError(t, db.QueryRow(`SELECT average_speed_px_per_frame FROM object_stats WHERE run_id = ? AND object_id = 1`, first.ID.String()).Scan(&speed))
	assert.Equal(t, 8.0, speed)

	var points int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM trajectory_points WHERE run_id = ?`, first.ID.String()).Scan(&points))
	assert.Equal(t, 8, points)
}
