package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
)

// ProgressService serializes all progress writes per user: a record-completion
// is a read-modify-write of the whole WeekProgress row, and two of them
// interleaving would lose tasks.
type ProgressService struct {
	users domain.UserRepository
	repo  domain.ProgressRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressService(users domain.UserRepository, repo domain.ProgressRepository) *ProgressService {
	return &ProgressService{
		users: users,
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *ProgressService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// RecordCompletion flips one task flag and recounts the week's aggregates.
// Unknown users are a silent no-op per the tracker contract; callers must not
// rely on an error being raised.
func (s *ProgressService) RecordCompletion(ctx context.Context, userID string, week int, taskKey string, completed bool) error {
	if week < 1 || week > domain.ProgramWeeks {
		return domain.ErrInvalidWeek
	}
	if strings.TrimSpace(taskKey) == "" {
		return domain.ErrEmptyTaskKey
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("progress service: user lookup failed: %w", err)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.repo.Get(ctx, userID, week)
	if err != nil {
		if !errors.Is(err, domain.ErrProgressNotFound) {
			return fmt.Errorf("progress service: load failed: %w", err)
		}
		progress = domain.NewWeekProgress()
	}

	progress.SetTask(taskKey, completed)

	if err := s.repo.Save(ctx, userID, week, progress); err != nil {
		return fmt.Errorf("progress service: save failed: %w", err)
	}
	return nil
}

// GetProgress returns the week's progress, zero-valued when nothing has been
// recorded yet. Rows written before the daily counters existed are backfilled
// on read and persisted; the backfill is idempotent, so repeated reads return
// identical data.
func (s *ProgressService) GetProgress(ctx context.Context, userID string, week int) (*domain.WeekProgress, error) {
	if week < 1 || week > domain.ProgramWeeks {
		return nil, domain.ErrInvalidWeek
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.repo.Get(ctx, userID, week)
	if err != nil {
		if errors.Is(err, domain.ErrProgressNotFound) {
			return domain.NewWeekProgress(), nil
		}
		return nil, fmt.Errorf("progress service: load failed: %w", err)
	}

	if progress.BackfillDaily() {
		if err := s.repo.Save(ctx, userID, week, progress); err != nil {
			return nil, fmt.Errorf("progress service: backfill save failed: %w", err)
		}
	}

	return progress, nil
}
