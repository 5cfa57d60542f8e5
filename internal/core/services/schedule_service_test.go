package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/castellanimarco/trainflow-engine/internal/core/catalog"
	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/castellanimarco/trainflow-engine/internal/core/services"
)

func TestScheduleService_ResolveForDay(t *testing.T) {
	ctx := context.Background()
	template := catalog.DailyTemplate()

	t.Run("Merges workout and meals into their slots", func(t *testing.T) {
		workouts := NewMockWorkoutRepo()
		meals := NewMockMealRepo()

		_ = workouts.CreateBatch(ctx, []*domain.Workout{{
			UserID:      "user-1",
			Week:        2,
			Day:         "monday",
			Title:       "Full Body Circuit A",
			Description: "Squats and push-ups.",
			Details:     "40s work / 20s rest.",
		}})
		_ = meals.CreateBatch(ctx, []*domain.Meal{{
			UserID:   "user-1",
			Day:      "monday",
			MainMeal: "Grilled chicken.",
			Snack:    "A banana.",
		}})

		svc := services.NewScheduleService(workouts, meals, template)

		resolved, err := svc.ResolveForDay(ctx, "user-1", "monday", 2)
		assert.NoError(t, err)
		assert.Len(t, resolved, len(template))

		workout := resolved[domain.WorkoutSlot]
		assert.Equal(t, domain.SlotKindWorkout, workout.Kind)
		assert.Equal(t, "Full Body Circuit A", workout.Title)
		assert.Equal(t, "40s work / 20s rest.", workout.Details)

		snack := resolved[domain.SnackSlot]
		assert.Equal(t, domain.SlotKindSnack, snack.Kind)
		assert.Equal(t, "A banana.", snack.MealContent)

		mainMeal := resolved[domain.MainMealSlot]
		assert.Equal(t, domain.SlotKindMainMeal, mainMeal.Kind)
		assert.Equal(t, "Grilled chicken.", mainMeal.MealContent)
	})

	t.Run("Generic slots keep the template text", func(t *testing.T) {
		svc := services.NewScheduleService(NewMockWorkoutRepo(), NewMockMealRepo(), template)

		resolved, err := svc.ResolveForDay(ctx, "user-1", "monday", 1)
		assert.NoError(t, err)

		morning := resolved["07:00"]
		assert.Equal(t, domain.SlotKindGeneric, morning.Kind)
		assert.Equal(t, template["07:00"].Title, morning.Title)
		assert.Equal(t, template["07:00"].Description, morning.Description)
		assert.Empty(t, morning.MealContent)
	})

	t.Run("Missing content falls back without error", func(t *testing.T) {
		svc := services.NewScheduleService(NewMockWorkoutRepo(), NewMockMealRepo(), template)

		resolved, err := svc.ResolveForDay(ctx, "nobody", "tuesday", 5)
		assert.NoError(t, err)
		assert.Len(t, resolved, len(template))

		workout := resolved[domain.WorkoutSlot]
		assert.Equal(t, template[domain.WorkoutSlot].Title, workout.Title)
		assert.Empty(t, workout.Details)
		assert.Empty(t, resolved[domain.SnackSlot].MealContent)
	})

	t.Run("Repository failures propagate", func(t *testing.T) {
		workouts := NewMockWorkoutRepo()
		workouts.simulateError = errors.New("connection refused")

		svc := services.NewScheduleService(workouts, NewMockMealRepo(), template)

		_, err := svc.ResolveForDay(ctx, "user-1", "monday", 1)
		assert.Error(t, err)
	})
}
