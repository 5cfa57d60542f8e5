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

type PostgresMealRepository struct {
	db *sqlx.DB
}

func NewPostgresMealRepository(db *sqlx.DB) *PostgresMealRepository {
	return &PostgresMealRepository{db: db}
}

func (r *PostgresMealRepository) CreateBatch(ctx context.Context, meals []*domain.Meal) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin meal batch failed: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO meals (user_id, day, main_meal, snack)
		VALUES ($1, $2, $3, $4)
	`

	for _, m := range meals {
		if _, err := tx.ExecContext(ctx, query, m.UserID, m.Day, m.MainMeal, m.Snack); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return domain.ErrAlreadyEnrolled
			}
			return fmt.Errorf("repository: insert meal failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit meal batch failed: %w", err)
	}
	return nil
}

func (r *PostgresMealRepository) GetByUserDay(ctx context.Context, userID, day string) (*domain.Meal, error) {
	query := `
		SELECT user_id, day, main_meal, snack
		FROM meals
		WHERE user_id = $1 AND day = $2
	`

	var m domain.Meal
	err := r.db.QueryRowContext(ctx, query, userID, day).Scan(&m.UserID, &m.Day, &m.MainMeal, &m.Snack)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMealNotFound
		}
		return nil, fmt.Errorf("repository: get meal failed: %w", err)
	}

	return &m, nil
}

func (r *PostgresMealRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Meal, error) {
	query := `
		SELECT user_id, day, main_meal, snack
		FROM meals
		WHERE user_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list meals failed: %w", err)
	}
	defer rows.Close()

	var meals []*domain.Meal
	for rows.Next() {
		var m domain.Meal
		if err := rows.Scan(&m.UserID, &m.Day, &m.MainMeal, &m.Snack); err != nil {
			return nil, fmt.Errorf("repository: meal row scan failed: %w", err)
		}
		meals = append(meals, &m)
	}

	return meals, rows.Err()
}

func (r *PostgresMealRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("repository: delete meals failed: %w", err)
	}
	return nil
}
