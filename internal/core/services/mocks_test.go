package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
)

type MockUserRepo struct {
	store         map[string]*domain.User
	simulateError error
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{
		store: make(map[string]*domain.User),
	}
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for _, u := range m.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	for _, u := range m.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepo) ListEnrolled(ctx context.Context) ([]*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.User
	for _, u := range m.store {
		if u.Enrolled() {
			clone := *u
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockUserRepo) SetStartDate(ctx context.Context, id string, start time.Time) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	u, ok := m.store[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.StartDate = start
	return nil
}

type MockWorkoutRepo struct {
	store         map[string]*domain.Workout
	simulateError error
}

func NewMockWorkoutRepo() *MockWorkoutRepo {
	return &MockWorkoutRepo{
		store: make(map[string]*domain.Workout),
	}
}

func workoutKey(userID string, week int, day string) string {
	return fmt.Sprintf("%s/%d/%s", userID, week, day)
}

func (m *MockWorkoutRepo) CreateBatch(ctx context.Context, workouts []*domain.Workout) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for _, w := range workouts {
		clone := *w
		m.store[workoutKey(w.UserID, w.Week, w.Day)] = &clone
	}
	return nil
}

func (m *MockWorkoutRepo) GetByUserWeekDay(ctx context.Context, userID string, week int, day string) (*domain.Workout, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	w, ok := m.store[workoutKey(userID, week, day)]
	if !ok {
		return nil, domain.ErrWorkoutNotFound
	}
	clone := *w
	return &clone, nil
}

func (m *MockWorkoutRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Workout, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Workout
	for _, w := range m.store {
		if w.UserID == userID {
			clone := *w
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockWorkoutRepo) DeleteByUser(ctx context.Context, userID string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for k, w := range m.store {
		if w.UserID == userID {
			delete(m.store, k)
		}
	}
	return nil
}

type MockMealRepo struct {
	store         map[string]*domain.Meal
	simulateError error
}

func NewMockMealRepo() *MockMealRepo {
	return &MockMealRepo{
		store: make(map[string]*domain.Meal),
	}
}

func (m *MockMealRepo) CreateBatch(ctx context.Context, meals []*domain.Meal) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for _, meal := range meals {
		clone := *meal
		m.store[meal.UserID+"/"+meal.Day] = &clone
	}
	return nil
}

func (m *MockMealRepo) GetByUserDay(ctx context.Context, userID, day string) (*domain.Meal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	meal, ok := m.store[userID+"/"+day]
	if !ok {
		return nil, domain.ErrMealNotFound
	}
	clone := *meal
	return &clone, nil
}

func (m *MockMealRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Meal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Meal
	for _, meal := range m.store {
		if meal.UserID == userID {
			clone := *meal
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockMealRepo) DeleteByUser(ctx context.Context, userID string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for k, meal := range m.store {
		if meal.UserID == userID {
			delete(m.store, k)
		}
	}
	return nil
}

// MockProgressRepo serializes rows through JSON so tests catch services that
// mutate a returned value and expect the store to follow.
type MockProgressRepo struct {
	mu            sync.Mutex
	store         map[string][]byte
	saves         int
	simulateError error
}

func NewMockProgressRepo() *MockProgressRepo {
	return &MockProgressRepo{
		store: make(map[string][]byte),
	}
}

func progressKey(userID string, week int) string {
	return fmt.Sprintf("%s/%d", userID, week)
}

func (m *MockProgressRepo) Get(ctx context.Context, userID string, week int) (*domain.WeekProgress, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.store[progressKey(userID, week)]
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
	return &p, nil
}

func (m *MockProgressRepo) Save(ctx context.Context, userID string, week int, progress *domain.WeekProgress) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	m.store[progressKey(userID, week)] = raw
	m.saves++
	return nil
}

func (m *MockProgressRepo) DeleteByUser(ctx context.Context, userID string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.store {
		if strings.HasPrefix(k, userID+"/") {
			delete(m.store, k)
		}
	}
	return nil
}

// FakeRegistry records which users were (re-)registered with the scheduler.
type FakeRegistry struct {
	registered []string
}

func (f *FakeRegistry) RegisterUser(u *domain.User) {
	f.registered = append(f.registered, u.ID)
}
