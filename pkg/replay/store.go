// Package replay provides SQLite-backed trajectory storage. A Store is a
// driver listener that persists every non-boundary trajectory record and can
// aggregate stored episodes back out, e.g. for offline analysis or replay.
package replay

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // database/sql driver

	"rollout/pkg/driver"
	"rollout/pkg/logx"
)

const schema = `
CREATE TABLE IF NOT EXISTS trajectory_steps (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	env_index INTEGER NOT NULL,
	episode_index INTEGER NOT NULL,
	step_number INTEGER NOT NULL,
	current_kind INTEGER NOT NULL,
	next_kind INTEGER NOT NULL,
	observation TEXT NOT NULL,
	next_observation TEXT NOT NULL,
	action TEXT NOT NULL,
	reward REAL NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_trajectory_run_env
	ON trajectory_steps(run_id, env_index, episode_index);
`

// Store persists trajectory records for one run. It is owned by a single
// driver for the duration of a Run call and is not safe for concurrent use.
type Store[O, A, S any] struct {
	db    *sql.DB
	runID string
	log   *logx.Logger

	episodeIndex []int // per env instance
	stepNumber   []int // per env instance, within the current episode
	err          error // first write failure, surfaced via Err
}

var _ driver.Listener[int, int, struct{}] = (*Store[int, int, struct{}])(nil)

// Open opens (creating if needed) a trajectory store at path. An empty runID
// gets a fresh UUID. Observations and actions must be JSON-marshalable.
func Open[O, A, S any](path, runID string) (*Store[O, A, S], error) {
	if runID == "" {
		runID = uuid.NewString()
	}

	// WAL mode and a busy timeout keep readers usable while a run writes.
	db, err := sql.Open("sqlite", fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_busy_timeout=5000", path,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to open replay database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping replay database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize replay schema: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store[O, A, S]{
		db:    db,
		runID: runID,
		log:   logx.NewLogger("replay"),
	}
	s.log.Debug("replay store opened: %s (run %s)", path, runID)
	return s, nil
}

// RunID returns the identifier stored with every record.
func (s *Store[O, A, S]) RunID() string {
	return s.runID
}

// Err returns the first write failure, if any. Listeners cannot return
// errors, so callers should check Err after a run.
func (s *Store[O, A, S]) Err() error {
	return s.err
}

// Close closes the underlying database.
func (s *Store[O, A, S]) Close() error {
	return s.db.Close()
}

// OnTrajectory persists one record per environment instance. Boundary
// records (auto-reset transitions out of a terminal step) carry no
// experience and are skipped.
func (s *Store[O, A, S]) OnTrajectory(t driver.Trajectory[O, A, S]) {
	if len(s.episodeIndex) == 0 {
		s.episodeIndex = make([]int, t.Len())
		s.stepNumber = make([]int, t.Len())
	}

	for i := 0; i < t.Len(); i++ {
		record := t.At(i)
		if record.IsBoundary() {
			continue
		}
		if err := s.insert(i, record); err != nil && s.err == nil {
			s.err = err
			s.log.Error("trajectory insert failed: %v", err)
		}
		s.stepNumber[i]++
		if record.IsLast() {
			s.episodeIndex[i]++
			s.stepNumber[i] = 0
		}
	}
}

func (s *Store[O, A, S]) insert(envIndex int, record driver.TrajectoryStep[O, A, S]) error {
	observation, err := json.Marshal(record.Current.Observation)
	if err != nil {
		return fmt.Errorf("failed to marshal observation: %w", err)
	}
	nextObservation, err := json.Marshal(record.Next.Observation)
	if err != nil {
		return fmt.Errorf("failed to marshal next observation: %w", err)
	}
	action, err := json.Marshal(record.Action)
	if err != nil {
		return fmt.Errorf("failed to marshal action: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO trajectory_steps
			(run_id, env_index, episode_index, step_number,
			 current_kind, next_kind, observation, next_observation, action, reward)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, envIndex, s.episodeIndex[envIndex], s.stepNumber[envIndex],
		int(record.Current.Kind), int(record.Next.Kind),
		string(observation), string(nextObservation), string(action),
		record.Next.Reward,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trajectory step: %w", err)
	}
	return nil
}

// EpisodeReturn aggregates one stored episode.
type EpisodeReturn struct {
	EnvIndex     int
	EpisodeIndex int
	Return       float64
	Length       int
}

// EpisodeReturns sums rewards per stored episode for this store's run,
// ordered by environment instance then episode. Incomplete trailing
// episodes are included.
func (s *Store[O, A, S]) EpisodeReturns() ([]EpisodeReturn, error) {
	rows, err := s.db.Query(`
		SELECT env_index, episode_index, SUM(reward), COUNT(*)
		FROM trajectory_steps
		WHERE run_id = ?
		GROUP BY env_index, episode_index
		ORDER BY env_index, episode_index`,
		s.runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query episode returns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []EpisodeReturn
	for rows.Next() {
		var r EpisodeReturn
		if err := rows.Scan(&r.EnvIndex, &r.EpisodeIndex, &r.Return, &r.Length); err != nil {
			return nil, fmt.Errorf("failed to scan episode return: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate episode returns: %w", err)
	}
	return out, nil
}

// NumSteps returns how many records this store's run has persisted.
func (s *Store[O, A, S]) NumSteps() (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM trajectory_steps WHERE run_id = ?`, s.runID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count trajectory steps: %w", err)
	}
	return n, nil
}
