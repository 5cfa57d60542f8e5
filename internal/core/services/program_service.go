package services

import (
	"context"
	"fmt"
	"time"

	"github.com/castellanimarco/trainflow-engine/internal/core/catalog"
	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
)

// ReminderRegistry is the slice of the scheduler the program service needs:
// arming (or re-arming) the triggers of one user after enrollment.
type ReminderRegistry interface {
	RegisterUser(u *domain.User)
}

type ProgramService struct {
	users     domain.UserRepository
	workouts  domain.WorkoutRepository
	meals     domain.MealRepository
	progress  domain.ProgressRepository
	reminders ReminderRegistry

	now func() time.Time
}

func NewProgramService(users domain.UserRepository, workouts domain.WorkoutRepository, meals domain.MealRepository, progress domain.ProgressRepository, reminders ReminderRegistry) *ProgramService {
	return &ProgramService{
		users:     users,
		workouts:  workouts,
		meals:     meals,
		progress:  progress,
		reminders: reminders,
		now:       time.Now,
	}
}

// Generate enrolls a user: builds the 8-week workout catalog and the 7-day
// meal catalog, stamps the program start and arms the user's reminder
// triggers. A user with an active program is rejected with ErrAlreadyEnrolled.
func (s *ProgramService) Generate(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Enrolled() {
		return nil, domain.ErrAlreadyEnrolled
	}

	if err := s.createProgram(ctx, user); err != nil {
		return nil, err
	}

	s.reminders.RegisterUser(user)
	return user, nil
}

// Regenerate wipes the user's workouts, meals and progress and builds a fresh
// program starting now. Works for enrolled and never-enrolled users alike.
func (s *ProgramService) Regenerate(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.workouts.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("program service: failed to delete workouts: %w", err)
	}
	if err := s.meals.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("program service: failed to delete meals: %w", err)
	}
	if err := s.progress.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("program service: failed to delete progress: %w", err)
	}

	if err := s.createProgram(ctx, user); err != nil {
		return nil, err
	}

	s.reminders.RegisterUser(user)
	return user, nil
}

func (s *ProgramService) createProgram(ctx context.Context, user *domain.User) error {
	if err := s.workouts.CreateBatch(ctx, catalog.WorkoutPlan(user.ID)); err != nil {
		return fmt.Errorf("program service: failed to create workout plan: %w", err)
	}
	if err := s.meals.CreateBatch(ctx, catalog.MealPlan(user.ID)); err != nil {
		return fmt.Errorf("program service: failed to create meal plan: %w", err)
	}

	start := s.now().UTC()
	if err := s.users.SetStartDate(ctx, user.ID, start); err != nil {
		return fmt.Errorf("program service: failed to set start date: %w", err)
	}
	user.StartProgram(start)

	return nil
}

// CurrentWeek returns the user's live program week. A user without a start
// date reports week 1 by convention.
func (s *ProgramService) CurrentWeek(ctx context.Context, userID string) (int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.CurrentWeek(user.StartDate, s.now()), nil
}
