// Package sampledb is the sqlite-backed sample store: recordings of
// insole frames grouped by capture date, pulled by the render and
// playback layers. It is the only package that touches the database.
package sampledb

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/neurosense/plantar.report/internal/pressure"
)

// DB wraps the sqlite handle. Create one per process and pass it by
// reference; there is no package-level connection state.
type DB struct {
	*sql.DB
}

// Recording is one captured session of frames for one foot.
type Recording struct {
	ID    string            `json:"recording_id"`
	Side  pressure.FootSide `json:"side"`
	Date  string            `json:"date"` // YYYY-MM-DD
	Label string            `json:"label"`
}

// Open opens (or creates) the sample database at path and ensures the
// schema exists. Use "file::memory:?cache=shared" style paths for
// throwaway stores in tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS recordings (
			recording_id   TEXT PRIMARY KEY,
			foot_side      TEXT NOT NULL,
			recorded_date  TEXT NOT NULL,
			label          TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS frames (
			recording_id   TEXT NOT NULL,
			frame_idx      INTEGER NOT NULL,
			ts_unix_ms     INTEGER NOT NULL,
			sr1 DOUBLE, sr2 DOUBLE, sr3 DOUBLE,
			sr4 DOUBLE, sr5 DOUBLE, sr6 DOUBLE,
			sr7 DOUBLE, sr8 DOUBLE, sr9 DOUBLE,
			PRIMARY KEY (recording_id, frame_idx),
			FOREIGN KEY (recording_id) REFERENCES recordings(recording_id)
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_date
			ON recordings(recorded_date, foot_side);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db}, nil
}

// CreateRecording registers a new recording and returns it with a
// freshly minted identifier.
func (db *DB) CreateRecording(side pressure.FootSide, date, label string) (Recording, error) {
	rec := Recording{
		ID:    uuid.NewString(),
		Side:  side,
		Date:  date,
		Label: label,
	}
	_, err := db.Exec(
		`INSERT INTO recordings (recording_id, foot_side, recorded_date, label) VALUES (?, ?, ?, ?)`,
		rec.ID, string(rec.Side), rec.Date, rec.Label,
	)
	if err != nil {
		return Recording{}, fmt.Errorf("failed to insert recording: %w", err)
	}
	return rec, nil
}

// AppendFrame stores one frame at the given index of a recording.
// Missing (NaN) readings persist as NULL.
func (db *DB) AppendFrame(recordingID string, idx int, ts time.Time, readings map[int]float64) error {
	args := make([]interface{}, 0, 3+pressure.SensorCount)
	args = append(args, recordingID, idx, ts.UnixMilli())
	for id := 1; id <= pressure.SensorCount; id++ {
		v, ok := readings[id]
		if !ok || math.IsNaN(v) {
			args = append(args, nil)
			continue
		}
		args = append(args, v)
	}
	_, err := db.Exec(`
		INSERT INTO frames
			(recording_id, frame_idx, ts_unix_ms, sr1, sr2, sr3, sr4, sr5, sr6, sr7, sr8, sr9)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("failed to insert frame: %w", err)
	}
	return nil
}

// Dates lists the distinct capture dates that have recordings, newest
// first.
func (db *DB) Dates() ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT recorded_date FROM recordings ORDER BY recorded_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// Recordings lists the recordings captured on a date. An empty side
// matches both feet.
func (db *DB) Recordings(date string, side pressure.FootSide) ([]Recording, error) {
	query := `SELECT recording_id, foot_side, recorded_date, label
		FROM recordings WHERE recorded_date = ?`
	args := []interface{}{date}
	if side != "" {
		query += ` AND foot_side = ?`
		args = append(args, string(side))
	}
	query += ` ORDER BY created_at, recording_id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		var r Recording
		var sideStr string
		if err := rows.Scan(&r.ID, &sideStr, &r.Date, &r.Label); err != nil {
			return nil, err
		}
		r.Side = pressure.FootSide(sideStr)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Recording fetches a single recording by id.
func (db *DB) Recording(id string) (Recording, error) {
	var r Recording
	var sideStr string
	err := db.QueryRow(
		`SELECT recording_id, foot_side, recorded_date, label FROM recordings WHERE recording_id = ?`,
		id,
	).Scan(&r.ID, &sideStr, &r.Date, &r.Label)
	if err != nil {
		return Recording{}, fmt.Errorf("recording %s: %w", id, err)
	}
	r.Side = pressure.FootSide(sideStr)
	return r, nil
}

// Frames materializes every frame of a recording in index order. NULL
// readings come back as the missing sentinel.
func (db *DB) Frames(recordingID string) ([]*pressure.Frame, error) {
	rec, err := db.Recording(recordingID)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT ts_unix_ms, sr1, sr2, sr3, sr4, sr5, sr6, sr7, sr8, sr9
		FROM frames WHERE recording_id = ? ORDER BY frame_idx`, recordingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []*pressure.Frame
	for rows.Next() {
		var tsMs int64
		vals := make([]sql.NullFloat64, pressure.SensorCount)
		dest := make([]interface{}, 0, 1+pressure.SensorCount)
		dest = append(dest, &tsMs)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		readings := make(map[int]float64, pressure.SensorCount)
		for i, v := range vals {
			if v.Valid {
				readings[i+1] = v.Float64
			}
		}
		frame, err := pressure.NewFrame(rec.Side, time.UnixMilli(tsMs), readings)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, rows.Err()
}

// FrameAt fetches one frame of a recording by index.
func (db *DB) FrameAt(recordingID string, idx int) (*pressure.Frame, error) {
	rec, err := db.Recording(recordingID)
	if err != nil {
		return nil, err
	}

	var tsMs int64
	vals := make([]sql.NullFloat64, pressure.SensorCount)
	dest := make([]interface{}, 0, 1+pressure.SensorCount)
	dest = append(dest, &tsMs)
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	err = db.QueryRow(`
		SELECT ts_unix_ms, sr1, sr2, sr3, sr4, sr5, sr6, sr7, sr8, sr9
		FROM frames WHERE recording_id = ? AND frame_idx = ?`, recordingID, idx).Scan(dest...)
	if err != nil {
		return nil, fmt.Errorf("frame %d of %s: %w", idx, recordingID, err)
	}

	readings := make(map[int]float64, pressure.SensorCount)
	for i, v := range vals {
		if v.Valid {
			readings[i+1] = v.Float64
		}
	}
	return pressure.NewFrame(rec.Side, time.UnixMilli(tsMs), readings)
}

// FrameCount returns the number of frames stored for a recording.
func (db *DB) FrameCount(recordingID string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM frames WHERE recording_id = ?`, recordingID).Scan(&n)
	return n, err
}
