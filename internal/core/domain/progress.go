package domain

import (
	"errors"
	"strings"
)

var (
	ErrProgressNotFound = errors.New("progress not found")
	ErrInvalidWeek      = errors.New("week must be between 1 and 8")
	ErrEmptyTaskKey     = errors.New("task key cannot be empty")
)

type DayCounter struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// WeekProgress holds per-week task completion state. Daily counters and the
// week totals are always recomputed from Tasks, never adjusted in place, so
// they cannot drift from the task map.
type WeekProgress struct {
	Tasks          map[string]bool       `json:"tasks"`
	Daily          map[string]DayCounter `json:"daily"`
	TotalTasks     int                   `json:"total_tasks"`
	CompletedTasks int                   `json:"completed_tasks"`
}

func NewWeekProgress() *WeekProgress {
	return &WeekProgress{
		Tasks: make(map[string]bool),
		Daily: make(map[string]DayCounter),
	}
}

// TaskDay extracts the day prefix of a task key of the form "<day>_<slot>".
// Keys without an underscore or with an unknown day are reported as not
// day-scoped; they still count toward the week totals.
func TaskDay(key string) (string, bool) {
	idx := strings.Index(key, "_")
	if idx <= 0 {
		return "", false
	}
	day := key[:idx]
	if !IsDayName(day) {
		return "", false
	}
	return day, true
}

// SetTask records a completion flag and recounts the affected aggregates.
func (p *WeekProgress) SetTask(key string, completed bool) {
	if p.Tasks == nil {
		p.Tasks = make(map[string]bool)
	}
	p.Tasks[key] = completed

	if day, ok := TaskDay(key); ok {
		p.recountDay(day)
	}
	p.recountTotals()
}

func (p *WeekProgress) recountDay(day string) {
	if p.Daily == nil {
		p.Daily = make(map[string]DayCounter)
	}

	var c DayCounter
	prefix := day + "_"
	for key, done := range p.Tasks {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		c.Total++
		if done {
			c.Completed++
		}
	}
	p.Daily[day] = c
}

func (p *WeekProgress) recountTotals() {
	total, completed := 0, 0
	for _, done := range p.Tasks {
		total++
		if done {
			completed++
		}
	}
	p.TotalTasks = total
	p.CompletedTasks = completed
}

// BackfillDaily rebuilds the daily counters from scratch over the seven
// canonical days and reports whether anything changed. Days without tasks are
// not materialized. Calling it repeatedly is a no-op after the first pass.
func (p *WeekProgress) BackfillDaily() bool {
	fresh := make(map[string]DayCounter)
	for _, day := range DayNames {
		var c DayCounter
		prefix := day + "_"
		for key, done := range p.Tasks {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			c.Total++
			if done {
				c.Completed++
			}
		}
		if c.Total > 0 {
			fresh[day] = c
		}
	}

	if dailyEqual(p.Daily, fresh) {
		return false
	}
	p.Daily = fresh
	return true
}

func dailyEqual(a, b map[string]DayCounter) bool {
	if len(a) != len(b) {
		return false
	}
	for day, c := range a {
		if b[day] != c {
			return false
		}
	}
	return true
}
