// Package history persists description runs to SQLite so past outputs
// can be reviewed and compared across models and prompt variants.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/trendtell/internal/db"
	"github.com/ziadkadry99/trendtell/internal/describe"
	"github.com/ziadkadry99/trendtell/internal/series"
)

// Store provides persistence for description runs.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a run from a describe result. Implements
// describe.Recorder.
func (s *Store) Record(ctx context.Context, res describe.Result) error {
	stats, err := json.Marshal(res.Series.Describe())
	if err != nil {
		return fmt.Errorf("marshalling series stats: %w", err)
	}

	labels := res.Labels
	if labels == "" {
		labels = series.LabelNone
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, series, labels, prompt, description, provider, model,
			finish_reason, input_tokens, output_tokens, cost_usd,
			elapsed_ms, stats
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		res.Series.String(),
		string(labels),
		res.Prompt,
		res.Description,
		res.Provider,
		res.Model,
		res.FinishReason,
		res.InputTokens,
		res.OutputTokens,
		res.CostUSD,
		res.Elapsed.Milliseconds(),
		string(stats),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// GetByID retrieves a single run.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, series, labels, prompt, description,
			   provider, model, finish_reason, input_tokens, output_tokens,
			   cost_usd, elapsed_ms, stats
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", id)
		}
		return nil, fmt.Errorf("querying run: %w", err)
	}
	return run, nil
}

// List returns runs matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter QueryFilter) ([]Run, error) {
	query := `
		SELECT id, created_at, series, labels, prompt, description,
			   provider, model, finish_reason, input_tokens, output_tokens,
			   cost_usd, elapsed_ms, stats
		FROM runs`

	var conds []string
	var args []any
	if filter.Model != "" {
		conds = append(conds, "model = ?")
		args = append(args, filter.Model)
	}
	if filter.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format("2006-01-02 15:04:05"))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY created_at DESC, id"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Count returns the total number of recorded runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

// TotalCost returns the summed estimated cost of all recorded runs.
func (s *Store) TotalCost(ctx context.Context) (float64, error) {
	var total float64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(cost_usd), 0) FROM runs`).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing run cost: %w", err)
	}
	return total, nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var createdAt string
	var stats string
	err := row.Scan(
		&run.ID, &createdAt, &run.Series, &run.Labels, &run.Prompt,
		&run.Description, &run.Provider, &run.Model, &run.FinishReason,
		&run.InputTokens, &run.OutputTokens, &run.CostUSD,
		&run.ElapsedMS, &stats,
	)
	if err != nil {
		return nil, err
	}

	if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		run.CreatedAt = t.UTC()
	} else if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		run.CreatedAt = t.UTC()
	}

	if err := json.Unmarshal([]byte(stats), &run.Stats); err != nil {
		// Stats are advisory; a bad row should not hide the run.
		run.Stats = series.Stats{OutlierIndex: -1}
	}
	return &run, nil
}
