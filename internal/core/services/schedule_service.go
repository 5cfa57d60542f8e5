package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
)

type ScheduleService struct {
	workouts domain.WorkoutRepository
	meals    domain.MealRepository
	template domain.ScheduleTemplate
}

func NewScheduleService(workouts domain.WorkoutRepository, meals domain.MealRepository, template domain.ScheduleTemplate) *ScheduleService {
	return &ScheduleService{
		workouts: workouts,
		meals:    meals,
		template: template,
	}
}

// ResolveForDay merges the fixed slot template with the user's day-specific
// content: the workout slot gets the (week, day) session, the snack and main
// meal slots get the day's meal fields. Missing content is not an error, the
// slot falls back to its generic template text. The result always contains
// exactly the template's slots.
func (s *ScheduleService) ResolveForDay(ctx context.Context, userID, day string, week int) (map[string]domain.ResolvedEntry, error) {
	resolved := make(map[string]domain.ResolvedEntry, len(s.template))

	for slot, entry := range s.template {
		kind := domain.KindOfSlot(slot)
		out := domain.ResolvedEntry{
			Time:        slot,
			Kind:        kind,
			Title:       entry.Title,
			Description: entry.Description,
		}

		switch kind {
		case domain.SlotKindWorkout:
			w, err := s.workouts.GetByUserWeekDay(ctx, userID, week, day)
			if err == nil {
				out.Title = w.Title
				out.Description = w.Description
				out.Details = w.Details
			} else if !errors.Is(err, domain.ErrWorkoutNotFound) {
				return nil, fmt.Errorf("schedule service: workout lookup failed: %w", err)
			}

		case domain.SlotKindSnack, domain.SlotKindMainMeal:
			m, err := s.meals.GetByUserDay(ctx, userID, day)
			if err == nil {
				if kind == domain.SlotKindSnack {
					out.MealContent = m.Snack
				} else {
					out.MealContent = m.MainMeal
				}
			} else if !errors.Is(err, domain.ErrMealNotFound) {
				return nil, fmt.Errorf("schedule service: meal lookup failed: %w", err)
			}
		}

		resolved[slot] = out
	}

	return resolved, nil
}
