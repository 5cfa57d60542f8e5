package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresWorkoutRepository struct {
	db *sqlx.DB
}

func NewPostgresWorkoutRepository(db *sqlx.DB) *PostgresWorkoutRepository {
	return &PostgresWorkoutRepository{db: db}
}

// CreateBatch inserts the whole plan in one transaction so a half-written
// program never becomes visible.
func (r *PostgresWorkoutRepository) CreateBatch(ctx context.Context, workouts []*domain.Workout) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin workout batch failed: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO workouts (user_id, week, day, title, description, details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, w := range workouts {
		if _, err := tx.ExecContext(ctx, query,
			w.UserID, w.Week, w.Day, w.Title, w.Description, w.Details,
		); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return domain.ErrAlreadyEnrolled
			}
			return fmt.Errorf("repository: insert workout failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit workout batch failed: %w", err)
	}
	return nil
}

func (r *PostgresWorkoutRepository) GetByUserWeekDay(ctx context.Context, userID string, week int, day string) (*domain.Workout, error) {
	query := `
		SELECT user_id, week, day, title, description, details
		FROM workouts
		WHERE user_id = $1 AND week = $2 AND day = $3
	`

	var w domain.Workout
	err := r.db.QueryRowContext(ctx, query, userID, week, day).Scan(
		&w.UserID, &w.Week, &w.Day, &w.Title, &w.Description, &w.Details,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("repository: get workout failed: %w", err)
	}

	return &w, nil
}

func (r *PostgresWorkoutRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Workout, error) {
	query := `
		SELECT user_id, week, day, title, description, details
		FROM workouts
		WHERE user_id = $1
		ORDER BY week ASC, day ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list workouts failed: %w", err)
	}
	defer rows.Close()

	var workouts []*domain.Workout
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.UserID, &w.Week, &w.Day, &w.Title, &w.Description, &w.Details); err != nil {
			return nil, fmt.Errorf("repository: workout row scan failed: %w", err)
		}
		workouts = append(workouts, &w)
	}

	return workouts, rows.Err()
}

func (r *PostgresWorkoutRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("repository: delete workouts failed: %w", err)
	}
	return nil
}
