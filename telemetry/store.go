package telemetry

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store persists the sample series to SQLite so runs can be compared after
// the process exits. The simulation itself is never restored from it.
type Store struct {
	conn  *sqlx.DB
	runID int64
}

// OpenStore opens or creates a SQLite database at the given path and
// registers a new run with the given seed.
func OpenStore(path string, seed int64) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.beginRun(seed); err != nil {
		conn.Close()
		return nil, fmt.Errorf("begin run: %w", err)
	}

	return s, nil
}

// NewRun registers a fresh run row with the given seed. Samples written
// afterwards attach to the new run, so a restarted simulation never mixes
// into its predecessor's series.
func (s *Store) NewRun(seed int64) error {
	if s == nil {
		return nil
	}
	return s.beginRun(seed)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		day INTEGER NOT NULL,
		sim_time REAL NOT NULL,
		population INTEGER NOT NULL,
		food_count INTEGER NOT NULL,
		avg_speed REAL NOT NULL,
		avg_sense REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, day);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *Store) beginRun(seed int64) error {
	res, err := s.conn.Exec(
		`INSERT INTO runs (seed, started_at) VALUES (?, ?)`,
		seed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.runID = id
	return nil
}

// WriteSample appends a sample row for the current run.
func (s *Store) WriteSample(smp Sample) error {
	if s == nil {
		return nil
	}
	_, err := s.conn.Exec(
		`INSERT INTO samples (run_id, day, sim_time, population, food_count, avg_speed, avg_sense)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.runID, smp.Day, smp.SimTime, smp.Population, smp.FoodCount, smp.AvgSpeed, smp.AvgSense,
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// RunSamples loads the full sample series of a run, ordered by day.
func (s *Store) RunSamples(runID int64) ([]Sample, error) {
	var out []Sample
	err := s.conn.Select(&out,
		`SELECT day, sim_time, population, food_count, avg_speed, avg_sense
		 FROM samples WHERE run_id = ? ORDER BY day`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("select samples: %w", err)
	}
	return out, nil
}

// RunID returns the identifier of the run opened by OpenStore.
func (s *Store) RunID() int64 {
	return s.runID
}
