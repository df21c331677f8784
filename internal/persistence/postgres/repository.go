package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/ftracker/internal/domain"
)

const summaryColumns = `summary_id, workout_code, workout_type, sensor_values, duration_h, distance_km, mean_speed_kmh, calories, message, processed_at`

// Repository provides Postgres-backed persistence for workout summaries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record stores summary; it lets the repository act as a tracker sink.
func (r *Repository) Record(ctx context.Context, summary domain.Summary) error {
	return r.Save(ctx, summary)
}

// Save inserts the summary. Saving the same summary ID twice is a no-op.
func (r *Repository) Save(ctx context.Context, summary domain.Summary) error {
	const stmt = `INSERT INTO workout_summaries (` + summaryColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (summary_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, stmt,
		summary.ID,
		summary.Code,
		summary.Message.WorkoutType,
		summary.Values,
		summary.Message.Duration,
		summary.Message.Distance,
		summary.Message.Speed,
		summary.Message.Calories,
		summary.Text,
		summary.ProcessedAt,
	)
	return err
}

// Get retrieves a summary by ID. A missing summary yields (nil, nil).
func (r *Repository) Get(ctx context.Context, id string) (*domain.Summary, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+summaryColumns+` FROM workout_summaries WHERE summary_id=$1`, id)

	summary, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// ListRecent returns summaries newest first, starting after cursor.
func (r *Repository) ListRecent(ctx context.Context, cursor *domain.Cursor, limit int) ([]domain.Summary, *domain.Cursor, error) {
	args := []interface{}{limit}
	query := `SELECT ` + summaryColumns + ` FROM workout_summaries`

	if cursor != nil {
		query += ` WHERE (processed_at, summary_id) < ($2, $3)`
		args = append(args, cursor.ProcessedAt, cursor.ID)
	}

	query += ` ORDER BY processed_at DESC, summary_id DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	results := make([]domain.Summary, 0, limit)
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(results) == limit {
		last := results[len(results)-1]
		next = &domain.Cursor{ProcessedAt: last.ProcessedAt, ID: last.ID}
	}
	return results, next, nil
}

func scanSummary(row pgx.Row) (domain.Summary, error) {
	var s domain.Summary
	err := row.Scan(
		&s.ID,
		&s.Code,
		&s.Message.WorkoutType,
		&s.Values,
		&s.Message.Duration,
		&s.Message.Distance,
		&s.Message.Speed,
		&s.Message.Calories,
		&s.Text,
		&s.ProcessedAt,
	)
	if err != nil {
		return domain.Summary{}, err
	}
	s.ProcessedAt = s.ProcessedAt.UTC()
	return s, nil
}
