package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// Program rows are written once per enrollment and read on every reminder
// firing and schedule query, so the whole per-user row set is cached and
// point lookups are answered from it. Cache problems only cost a log line
// and a trip to Postgres.

const programCacheTTL = 30 * time.Minute

var _ domain.WorkoutRepository = (*CachedWorkoutRepository)(nil)

type CachedWorkoutRepository struct {
	next  domain.WorkoutRepository
	cache *redis.Client
}

func NewCachedWorkoutRepository(next domain.WorkoutRepository, cache *redis.Client) *CachedWorkoutRepository {
	return &CachedWorkoutRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedWorkoutRepository) cacheKey(userID string) string {
	return fmt.Sprintf("workouts:%s", userID)
}

func (r *CachedWorkoutRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate workouts for user %s: %v", userID, err)
	}
}

func (r *CachedWorkoutRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Workout, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var workouts []*domain.Workout
		if err := json.Unmarshal([]byte(val), &workouts); err == nil {
			return workouts, nil
		}

		log.Printf("[CACHE] Corrupted workout data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	workouts, err := r.next.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(workouts); err == nil {
		if setErr := r.cache.Set(ctx, key, data, programCacheTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return workouts, nil
}

func (r *CachedWorkoutRepository) GetByUserWeekDay(ctx context.Context, userID string, week int, day string) (*domain.Workout, error) {
	workouts, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, w := range workouts {
		if w.Week == week && w.Day == day {
			return w, nil
		}
	}
	return nil, domain.ErrWorkoutNotFound
}

func (r *CachedWorkoutRepository) CreateBatch(ctx context.Context, workouts []*domain.Workout) error {
	if err := r.next.CreateBatch(ctx, workouts); err != nil {
		return err
	}
	if len(workouts) > 0 {
		r.invalidate(ctx, workouts[0].UserID)
	}
	return nil
}

func (r *CachedWorkoutRepository) DeleteByUser(ctx context.Context, userID string) error {
	defer r.invalidate(ctx, userID)
	return r.next.DeleteByUser(ctx, userID)
}

var _ domain.MealRepository = (*CachedMealRepository)(nil)

type CachedMealRepository struct {
	next  domain.MealRepository
	cache *redis.Client
}

func NewCachedMealRepository(next domain.MealRepository, cache *redis.Client) *CachedMealRepository {
	return &CachedMealRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedMealRepository) cacheKey(userID string) string {
	return fmt.Sprintf("meals:%s", userID)
}

func (r *CachedMealRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate meals for user %s: %v", userID, err)
	}
}

func (r *CachedMealRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Meal, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var meals []*domain.Meal
		if err := json.Unmarshal([]byte(val), &meals); err == nil {
			return meals, nil
		}

		log.Printf("[CACHE] Corrupted meal data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	meals, err := r.next.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(meals); err == nil {
		if setErr := r.cache.Set(ctx, key, data, programCacheTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return meals, nil
}

func (r *CachedMealRepository) GetByUserDay(ctx context.Context, userID, day string) (*domain.Meal, error) {
	meals, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, m := range meals {
		if m.Day == day {
			return m, nil
		}
	}
	return nil, domain.ErrMealNotFound
}

func (r *CachedMealRepository) CreateBatch(ctx context.Context, meals []*domain.Meal) error {
	if err := r.next.CreateBatch(ctx, meals); err != nil {
		return err
	}
	if len(meals) > 0 {
		r.invalidate(ctx, meals[0].UserID)
	}
	return nil
}

func (r *CachedMealRepository) DeleteByUser(ctx context.Context, userID string) error {
	defer r.invalidate(ctx, userID)
	return r.next.DeleteByUser(ctx, userID)
}
