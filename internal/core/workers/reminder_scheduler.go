package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
)

type UserSource interface {
	ListEnrolled(ctx context.Context) ([]*domain.User, error)
}

type WorkoutSource interface {
	GetByUserWeekDay(ctx context.Context, userID string, week int, day string) (*domain.Workout, error)
}

type MealSource interface {
	GetByUserDay(ctx context.Context, userID, day string) (*domain.Meal, error)
}

// Notifier is the outbound message transport. Send failures are logged and
// swallowed; the trigger fires again on its next occurrence.
type Notifier interface {
	Send(ctx context.Context, user *domain.User, text string) error
}

const (
	fallbackWorkoutText = "No session found for today. Open the app to check your plan."
	fallbackMealText    = "No meal planned for today. Open the app to check your plan."
)

type trigger struct {
	user  *domain.User
	slot  string
	kind  domain.SlotKind
	entry domain.TemplateEntry
}

// ReminderScheduler owns one recurring wall-clock trigger per (enrolled user,
// template slot). Every trigger is an independent goroutine that sleeps until
// the next occurrence of its slot time in the configured zone, fires, and
// re-arms for the next day. The registry can be rebuilt from the store and
// single users can be registered live after enrollment.
type ReminderScheduler struct {
	users    UserSource
	workouts WorkoutSource
	meals    MealSource
	notifier Notifier
	template domain.ScheduleTemplate
	loc      *time.Location

	// now is swapped out in tests.
	now func() time.Time

	mu      sync.Mutex
	base    context.Context
	cancels map[string]context.CancelFunc
	started bool
}

func NewReminderScheduler(users UserSource, workouts WorkoutSource, meals MealSource, notifier Notifier, template domain.ScheduleTemplate, loc *time.Location) *ReminderScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderScheduler{
		users:    users,
		workouts: workouts,
		meals:    meals,
		notifier: notifier,
		template: template,
		loc:      loc,
		now:      time.Now,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Start snapshots the enrolled users and arms their triggers. The passed
// context is the lifetime of the scheduler; cancelling it stops every trigger.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.base = ctx
	s.started = true
	s.mu.Unlock()

	log.Println("Reminder scheduler starting...")
	return s.Rebuild(ctx)
}

// Rebuild drops every registered trigger and re-arms from the current
// enrollment snapshot. Errors before Start: triggers need the lifetime
// context Start installs.
func (s *ReminderScheduler) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return errors.New("reminder scheduler: rebuild before start")
	}

	users, err := s.users.ListEnrolled(ctx)
	if err != nil {
		return fmt.Errorf("reminder scheduler: enrollment snapshot failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}

	for _, u := range users {
		s.registerLocked(u)
	}

	log.Printf("Reminder scheduler armed for %d users (%d slots each)", len(users), len(s.template))
	return nil
}

// RegisterUser arms (or re-arms, after regenerate) the triggers of a single
// user without touching the rest of the registry. A no-op before Start.
func (s *ReminderScheduler) RegisterUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.registerLocked(u)
}

func (s *ReminderScheduler) registerLocked(u *domain.User) {
	if cancel, ok := s.cancels[u.ID]; ok {
		cancel()
	}

	ctx, cancel := context.WithCancel(s.base)
	s.cancels[u.ID] = cancel

	for slot, entry := range s.template {
		t := trigger{user: u, slot: slot, kind: domain.KindOfSlot(slot), entry: entry}
		go s.run(ctx, t)
	}
}

// Stop cancels every trigger. Firings already in flight finish on their own.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
	log.Println("Reminder scheduler stopped.")
}

func (s *ReminderScheduler) run(ctx context.Context, t trigger) {
	for {
		now := s.now().In(s.loc)
		next, err := nextOccurrence(now, t.slot)
		if err != nil {
			log.Printf("Reminder trigger dropped, bad slot %q: %v", t.slot, err)
			return
		}

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.fire(ctx, t)
		}
	}
}

// nextOccurrence returns the first wall-clock instant strictly after `after`
// at which the "HH:MM" slot time comes around in after's location.
func nextOccurrence(after time.Time, slot string) (time.Time, error) {
	parts := strings.SplitN(slot, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("slot %q is not HH:MM", slot)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("slot %q has invalid hour", slot)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("slot %q has invalid minute", slot)
	}

	candidate := time.Date(after.Year(), after.Month(), after.Day(), hour, minute, 0, 0, after.Location())
	if !candidate.After(after) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, nil
}

// fire resolves the trigger's content against the live program position (day
// and week are evaluated now, not at registration) and dispatches it. Errors
// never escape: a failed dispatch is logged and the trigger stays armed.
func (s *ReminderScheduler) fire(ctx context.Context, t trigger) {
	now := s.now().In(s.loc)
	day := domain.DayName(now.Weekday())
	week := domain.CurrentWeek(t.user.StartDate, now)

	text := s.composeMessage(ctx, t, day, week)

	if err := s.notifier.Send(ctx, t.user, text); err != nil {
		log.Printf("Reminder dispatch failed for user %s slot %s: %v", t.user.ID, t.slot, err)
	}
}

func (s *ReminderScheduler) composeMessage(ctx context.Context, t trigger, day string, week int) string {
	switch t.kind {
	case domain.SlotKindWorkout:
		w, err := s.workouts.GetByUserWeekDay(ctx, t.user.ID, week, day)
		if err != nil {
			if !errors.Is(err, domain.ErrWorkoutNotFound) {
				log.Printf("Reminder workout lookup failed for user %s: %v", t.user.ID, err)
			}
			return fmt.Sprintf("%s\n%s", t.entry.Title, fallbackWorkoutText)
		}
		text := fmt.Sprintf("%s\n%s", w.Title, w.Description)
		if w.Details != "" {
			text += "\n\n" + w.Details
		}
		return text

	case domain.SlotKindSnack, domain.SlotKindMainMeal:
		m, err := s.meals.GetByUserDay(ctx, t.user.ID, day)
		if err != nil {
			if !errors.Is(err, domain.ErrMealNotFound) {
				log.Printf("Reminder meal lookup failed for user %s: %v", t.user.ID, err)
			}
			return fmt.Sprintf("%s\n%s", t.entry.Title, fallbackMealText)
		}
		content := m.Snack
		if t.kind == domain.SlotKindMainMeal {
			content = m.MainMeal
		}
		return fmt.Sprintf("%s\n%s", t.entry.Title, content)
	}

	return fmt.Sprintf("%s\n%s", t.entry.Title, t.entry.Description)
}
