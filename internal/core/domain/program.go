package domain

import "errors"

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrMealNotFound    = errors.New("meal not found")
	ErrAlreadyEnrolled = errors.New("user already has an active program")
	ErrNotEnrolled     = errors.New("user has no active program")
)

// Workout is one planned session, keyed by (user, week, day).
type Workout struct {
	UserID      string `json:"user_id" db:"user_id"`
	Week        int    `json:"week" db:"week"`
	Day         string `json:"day" db:"day"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Details     string `json:"details,omitempty" db:"details"`
}

// Meal is the day-of-week meal content for a user. Meals repeat weekly, so
// there is no week column.
type Meal struct {
	UserID   string `json:"user_id" db:"user_id"`
	Day      string `json:"day" db:"day"`
	MainMeal string `json:"main_meal" db:"main_meal"`
	Snack    string `json:"snack" db:"snack"`
}
