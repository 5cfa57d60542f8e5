package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	// Create persists a new user account.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by its lowercase email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ListEnrolled returns every user with an active program; the reminder
	// scheduler builds its trigger set from this snapshot.
	ListEnrolled(ctx context.Context) ([]*User, error)

	// SetStartDate moves the user's program start.
	SetStartDate(ctx context.Context, id string, start time.Time) error
}

type WorkoutRepository interface {
	// CreateBatch inserts a full plan atomically.
	CreateBatch(ctx context.Context, workouts []*Workout) error

	// GetByUserWeekDay fetches the single row for (user, week, day).
	GetByUserWeekDay(ctx context.Context, userID string, week int, day string) (*Workout, error)

	// ListByUser returns all workout rows of a user.
	ListByUser(ctx context.Context, userID string) ([]*Workout, error)

	// DeleteByUser removes every workout row of a user.
	DeleteByUser(ctx context.Context, userID string) error
}

type MealRepository interface {
	CreateBatch(ctx context.Context, meals []*Meal) error
	GetByUserDay(ctx context.Context, userID, day string) (*Meal, error)
	ListByUser(ctx context.Context, userID string) ([]*Meal, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type ProgressRepository interface {
	// Get returns the stored progress for (user, week) or ErrProgressNotFound.
	Get(ctx context.Context, userID string, week int) (*WeekProgress, error)

	// Save upserts the progress for (user, week).
	Save(ctx context.Context, userID string, week int, progress *WeekProgress) error

	// DeleteByUser removes all progress of a user (regenerate path).
	DeleteByUser(ctx context.Context, userID string) error
}
