package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeekProgress_SetTask(t *testing.T) {
	t.Run("Counters follow the task map", func(t *testing.T) {
		p := NewWeekProgress()

		p.SetTask("monday_1700", true)
		p.SetTask("monday_1600", false)

		assert.Equal(t, DayCounter{Total: 2, Completed: 1}, p.Daily["monday"])
		assert.Equal(t, 2, p.TotalTasks)
		assert.Equal(t, 1, p.CompletedTasks)
	})

	t.Run("Re-setting a task recounts instead of drifting", func(t *testing.T) {
		p := NewWeekProgress()

		p.SetTask("tuesday_0800", true)
		p.SetTask("tuesday_0800", true)
		p.SetTask("tuesday_0800", false)

		assert.Equal(t, DayCounter{Total: 1, Completed: 0}, p.Daily["tuesday"])
		assert.Equal(t, 1, p.TotalTasks)
		assert.Equal(t, 0, p.CompletedTasks)
	})

	t.Run("Key without day prefix counts only toward the week", func(t *testing.T) {
		p := NewWeekProgress()

		p.SetTask("stretching", true)

		assert.Empty(t, p.Daily)
		assert.Equal(t, 1, p.TotalTasks)
		assert.Equal(t, 1, p.CompletedTasks)
	})

	t.Run("Unknown day prefix skips the daily aggregation", func(t *testing.T) {
		p := NewWeekProgress()

		p.SetTask("someday_1700", true)

		assert.Empty(t, p.Daily)
		assert.Equal(t, 1, p.TotalTasks)
	})

	t.Run("Days are tracked independently", func(t *testing.T) {
		p := NewWeekProgress()

		p.SetTask("monday_1700", true)
		p.SetTask("friday_1700", false)
		p.SetTask("friday_1600", true)

		assert.Equal(t, DayCounter{Total: 1, Completed: 1}, p.Daily["monday"])
		assert.Equal(t, DayCounter{Total: 2, Completed: 1}, p.Daily["friday"])
		assert.Equal(t, 3, p.TotalTasks)
		assert.Equal(t, 2, p.CompletedTasks)
	})
}

func TestTaskDay(t *testing.T) {
	tests := []struct {
		key     string
		wantDay string
		wantOK  bool
	}{
		{"monday_1700", "monday", true},
		{"sunday_x", "sunday", true},
		{"monday", "", false},
		{"_1700", "", false},
		{"holiday_1700", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		day, ok := TaskDay(tt.key)
		assert.Equal(t, tt.wantOK, ok, "key %q", tt.key)
		assert.Equal(t, tt.wantDay, day, "key %q", tt.key)
	}
}

func TestWeekProgress_BackfillDaily(t *testing.T) {
	t.Run("Populates missing daily counters", func(t *testing.T) {
		p := &WeekProgress{
			Tasks: map[string]bool{
				"monday_1700": true,
				"monday_1600": false,
				"friday_0800": true,
			},
		}

		changed := p.BackfillDaily()

		assert.True(t, changed)
		assert.Equal(t, DayCounter{Total: 2, Completed: 1}, p.Daily["monday"])
		assert.Equal(t, DayCounter{Total: 1, Completed: 1}, p.Daily["friday"])
		assert.Len(t, p.Daily, 2)
	})

	t.Run("Second call is a no-op", func(t *testing.T) {
		p := &WeekProgress{
			Tasks: map[string]bool{"monday_1700": true},
		}

		assert.True(t, p.BackfillDaily())
		before := p.Daily["monday"]

		assert.False(t, p.BackfillDaily())
		assert.Equal(t, before, p.Daily["monday"])
	})

	t.Run("Drops stale days no longer backed by tasks", func(t *testing.T) {
		p := &WeekProgress{
			Tasks: map[string]bool{"monday_1700": true},
			Daily: map[string]DayCounter{
				"monday":  {Total: 5, Completed: 5},
				"tuesday": {Total: 3, Completed: 0},
			},
		}

		assert.True(t, p.BackfillDaily())
		assert.Equal(t, DayCounter{Total: 1, Completed: 1}, p.Daily["monday"])
		assert.NotContains(t, p.Daily, "tuesday")
	})

	t.Run("Empty tasks yields empty daily", func(t *testing.T) {
		p := NewWeekProgress()
		assert.False(t, p.BackfillDaily())
		assert.Empty(t, p.Daily)
	})
}
