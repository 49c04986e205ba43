package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// LevelResult is the outcome of one level run.
type LevelResult struct {
	RunID      string
	Level      int
	Outcome    string // world.Status name
	Score      int
	Lives      int
	Ticks      uint64
	RecordedAt time.Time
}

type ResultRepo struct {
	db *DB
}

func NewResultRepo(db *DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// RecordRun writes every level result of one run in a single transaction,
// so a run is stored whole or not at all.
func (r *ResultRepo) RecordRun(ctx context.Context, results []LevelResult) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("results begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, res := range results {
		if _, err := tx.Exec(ctx,
			`INSERT INTO level_results (run_id, level, outcome, score, lives, ticks)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			res.RunID, res.Level, res.Outcome, res.Score, res.Lives, int64(res.Ticks),
		); err != nil {
			return fmt.Errorf("results insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Best returns the highest-scoring results for a level, best first.
func (r *ResultRepo) Best(ctx context.Context, level, limit int) ([]LevelResult, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT run_id, level, outcome, score, lives, ticks, recorded_at
		 FROM level_results
		 WHERE level = $1
		 ORDER BY score DESC, ticks ASC
		 LIMIT $2`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query best results: %w", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (LevelResult, error) {
		var res LevelResult
		var ticks int64
		err := row.Scan(&res.RunID, &res.Level, &res.Outcome, &res.Score, &res.Lives, &ticks, &res.RecordedAt)
		res.Ticks = uint64(ticks)
		return res, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan best results: %w", err)
	}
	return results, nil
}
