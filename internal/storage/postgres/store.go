package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gasscope/internal/model"
)

// Store provides Postgres persistence for analysis runs and findings.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InsertRun records one analysis run and returns its id.
func (s *Store) InsertRun(ctx context.Context, rep model.Report) (int64, error) {
	generatedAt, err := time.Parse(time.RFC3339, rep.GeneratedAt)
	if err != nil {
		generatedAt = time.Now().UTC()
	}

	var runID int64
	row := s.pool.QueryRow(ctx, `
		INSERT INTO analysis_runs (log_path, generated_at, trace_count, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id
	`, rep.LogPath, generatedAt, rep.Traces)
	if err := row.Scan(&runID); err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// InsertResults stores per-detector results and their findings for a run.
func (s *Store) InsertResults(ctx context.Context, runID int64, results []model.DetectionResult) error {
	if len(results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, result := range results {
		batch.Queue(`
			INSERT INTO detection_results (run_id, kind, total, severity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (run_id, kind)
			DO UPDATE SET total = EXCLUDED.total, severity = EXCLUDED.severity
		`, runID, string(result.Kind), result.Total, string(result.Severity))

		for _, finding := range result.Findings {
			indexes := make([]int64, 0, len(finding.EventIndexes))
			for _, idx := range finding.EventIndexes {
				indexes = append(indexes, int64(idx))
			}
			batch.Queue(`
				INSERT INTO findings (run_id, kind, trace_index, trace_id, event_indexes, activities, resolved_user, count, description)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`,
				runID,
				string(finding.Kind),
				finding.TraceIndex,
				finding.TraceID,
				indexes,
				finding.Activities,
				finding.User,
				finding.Count,
				finding.Description,
			)
		}
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("store results: %w", err)
		}
	}
	return nil
}

// LatestRun returns the id of the most recent run for a log path.
func (s *Store) LatestRun(ctx context.Context, logPath string) (int64, bool, error) {
	var runID int64
	row := s.pool.QueryRow(ctx, `
		SELECT id FROM analysis_runs WHERE log_path = $1 ORDER BY generated_at DESC LIMIT 1
	`, logPath)
	if err := row.Scan(&runID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return runID, true, nil
}
