package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

// PostgresProgressRepository stores one row per (user, week). The task map
// and the daily counters are JSONB columns; the totals are plain columns so
// they stay queryable.
type PostgresProgressRepository struct {
	db *sqlx.DB
}

func NewPostgresProgressRepository(db *sqlx.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

func (r *PostgresProgressRepository) Get(ctx context.Context, userID string, week int) (*domain.WeekProgress, error) {
	query := `
		SELECT tasks, daily, total_tasks, completed_tasks
		FROM user_progress
		WHERE user_id = $1 AND week = $2
	`

	var tasksJSON, dailyJSON []byte
	var p domain.WeekProgress

	err := r.db.QueryRowContext(ctx, query, userID, week).Scan(
		&tasksJSON, &dailyJSON, &p.TotalTasks, &p.CompletedTasks,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("repository: get progress failed: %w", err)
	}

	if len(tasksJSON) > 0 {
		if err := json.Unmarshal(tasksJSON, &p.Tasks); err != nil {
			return nil, fmt.Errorf("repository: failed to unmarshal tasks: %w", err)
		}
	}
	if p.Tasks == nil {
		p.Tasks = make(map[string]bool)
	}

	if len(dailyJSON) > 0 {
		if err := json.Unmarshal(dailyJSON, &p.Daily); err != nil {
			return nil, fmt.Errorf("repository: failed to unmarshal daily counters: %w", err)
		}
	}
	if p.Daily == nil {
		p.Daily = make(map[string]domain.DayCounter)
	}

	return &p, nil
}

func (r *PostgresProgressRepository) Save(ctx context.Context, userID string, week int, progress *domain.WeekProgress) error {
	tasksJSON, err := json.Marshal(progress.Tasks)
	if err != nil {
		return fmt.Errorf("repository: failed to marshal tasks: %w", err)
	}
	dailyJSON, err := json.Marshal(progress.Daily)
	if err != nil {
		return fmt.Errorf("repository: failed to marshal daily counters: %w", err)
	}

	query := `
		INSERT INTO user_progress (user_id, week, tasks, daily, total_tasks, completed_tasks, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, week) DO UPDATE SET
			tasks = EXCLUDED.tasks,
			daily = EXCLUDED.daily,
			total_tasks = EXCLUDED.total_tasks,
			completed_tasks = EXCLUDED.completed_tasks,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query,
		userID, week, tasksJSON, dailyJSON, progress.TotalTasks, progress.CompletedTasks,
	); err != nil {
		return fmt.Errorf("repository: save progress failed: %w", err)
	}
	return nil
}

func (r *PostgresProgressRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_progress WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("repository: delete progress failed: %w", err)
	}
	return nil
}
