package export

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"motiontracker/stats"
)

// RunInfo describes one finished session
type RunInfo struct {
	ID        uuid.UUID
	Source    string
	StartedAt time.Time
	Frames    int
}

const schema = `
	CREATE TABLE IF NOT EXISTS tracking_runs (
		run_id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		started_at TEXT NOT NULL,
		total_frames INTEGER NOT NULL,
		total_objects INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS object_stats (
		run_id TEXT NOT NULL,
		object_id INTEGER NOT NULL,
		lifetime_frames INTEGER NOT NULL,
		samples INTEGER NOT NULL,
		total_distance_px REAL NOT NULL,
		average_speed_px_per_frame REAL NOT NULL,
		PRIMARY KEY (run_id, object_id),
		FOREIGN KEY (run_id) REFERENCES tracking_runs(run_id)
	);

	CREATE TABLE IF NOT EXISTS trajectory_points (
		run_id TEXT NOT NULL,
		object_id INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		PRIMARY KEY (run_id, object_id, seq),
		FOREIGN KEY (run_id) REFERENCES tracking_runs(run_id)
	);
`

// SaveRun appends the report of one session to the SQLite archive at dbPath
func SaveRun(ctx context.Context, dbPath string, run RunInfo, report stats.Report) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "create schema")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	runID := run.ID.String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tracking_runs (run_id, source, started_at, total_frames, total_objects) VALUES (?, ?, ?, ?, ?)`,
		runID, run.Source, run.StartedAt.UTC().Format(time.RFC3339), run.Frames, len(report.Objects),
	); err != nil {
		return errors.Wrap(err, "insert run")
	}

	for _, s := range report.Objects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO object_stats (run_id, object_id, lifetime_frames, samples, total_distance_px, average_speed_px_per_frame) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, s.ID, s.Lifetime, s.Samples, s.TotalDistance, s.AverageSpeed,
		); err != nil {
			return errors.Wrapf(err, "insert stats for object %d", s.ID)
		}
	}

	for _, traj := range report.Trajectories {
		for seq, pt := range traj.Points {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO trajectory_points (run_id, object_id, seq, x, y) VALUES (?, ?, ?, ?, ?)`,
				runID, traj.ID, seq, pt.X, pt.Y,
			); err != nil {
				return errors.Wrapf(err, "insert trajectory point %d of object %d", seq, traj.ID)
			}
		}
	}

	return errors.Wrap(tx.Commit(), "commit run")
}
