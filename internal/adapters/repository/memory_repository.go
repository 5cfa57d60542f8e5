package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
)

// In-memory implementations of the repositories, used by tests and for
// running the engine without Postgres.

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) ListEnrolled(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*domain.User
	for _, u := range r.store {
		if u.Enrolled() {
			clone := *u
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (r *InMemoryUserRepository) SetStartDate(ctx context.Context, id string, start time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.StartDate = start
	u.UpdatedAt = time.Now().UTC()
	return nil
}

type workoutKey struct {
	userID string
	week   int
	day    string
}

type InMemoryWorkoutRepository struct {
	store map[workoutKey]*domain.Workout

	mu sync.RWMutex
}

func NewInMemoryWorkoutRepository() *InMemoryWorkoutRepository {
	return &InMemoryWorkoutRepository{
		store: make(map[workoutKey]*domain.Workout),
	}
}

func (r *InMemoryWorkoutRepository) CreateBatch(ctx context.Context, workouts []*domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range workouts {
		clone := *w
		r.store[workoutKey{w.UserID, w.Week, w.Day}] = &clone
	}
	return nil
}

func (r *InMemoryWorkoutRepository) GetByUserWeekDay(ctx context.Context, userID string, week int, day string) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.store[workoutKey{userID, week, day}]
	if !ok {
		return nil, domain.ErrWorkoutNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *InMemoryWorkoutRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var workouts []*domain.Workout
	for key, w := range r.store {
		if key.userID == userID {
			clone := *w
			workouts = append(workouts, &clone)
		}
	}
	return workouts, nil
}

func (r *InMemoryWorkoutRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.store {
		if key.userID == userID {
			delete(r.store, key)
		}
	}
	return nil
}

type mealKey struct {
	userID string
	day    string
}

type InMemoryMealRepository struct {
	store map[mealKey]*domain.Meal

	mu sync.RWMutex
}

func NewInMemoryMealRepository() *InMemoryMealRepository {
	return &InMemoryMealRepository{
		store: make(map[mealKey]*domain.Meal),
	}
}

func (r *InMemoryMealRepository) CreateBatch(ctx context.Context, meals []*domain.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range meals {
		clone := *m
		r.store[mealKey{m.UserID, m.Day}] = &clone
	}
	return nil
}

func (r *InMemoryMealRepository) GetByUserDay(ctx context.Context, userID, day string) (*domain.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.store[mealKey{userID, day}]
	if !ok {
		return nil, domain.ErrMealNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *InMemoryMealRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var meals []*domain.Meal
	for key, m := range r.store {
		if key.userID == userID {
			clone := *m
			meals = append(meals, &clone)
		}
	}
	return meals, nil
}

func (r *InMemoryMealRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.store {
		if key.userID == userID {
			delete(r.store, key)
		}
	}
	return nil
}

type progressKey struct {
	userID string
	week   int
}

type InMemoryProgressRepository struct {
	store map[progressKey][]byte

	mu sync.RWMutex
}

func NewInMemoryProgressRepository() *InMemoryProgressRepository {
	return &InMemoryProgressRepository{
		store: make(map[progressKey][]byte),
	}
}

func (r *InMemoryProgressRepository) Get(ctx context.Context, userID string, week int) (*domain.WeekProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.store[progressKey{userID, week}]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}

	var p domain.WeekProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p.Tasks == nil {
		p.Tasks = make(map[string]bool)
	}
	if p.Daily == nil {
		p.Daily = make(map[string]domain.DayCounter)
	}
	return &p, nil
}

func (r *InMemoryProgressRepository) Save(ctx context.Context, userID string, week int, progress *domain.WeekProgress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[progressKey{userID, week}] = raw
	return nil
}

func (r *InMemoryProgressRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.store {
		if key.userID == userID {
			delete(r.store, key)
		}
	}
	return nil
}
