package catalog

import "github.com/castellanimarco/trainflow-engine/internal/core/domain"

// dailyTemplate is the fixed per-slot reminder text shared by every user.
// The 16:00, 17:00 and 22:00 slots get day-specific content attached at
// resolve time; the rest are sent verbatim.
var dailyTemplate = domain.ScheduleTemplate{
	"07:00": {
		Title:       "Good morning!",
		Description: "Start the day with a tall glass of water and five minutes of light stretching.",
	},
	"08:30": {
		Title:       "Breakfast",
		Description: "Protein-rich breakfast: eggs, oats or greek yogurt. Skip the sugary cereals.",
	},
	"12:30": {
		Title:       "Midday check-in",
		Description: "Stand up, walk around for a few minutes and refill your water bottle.",
	},
	"16:00": {
		Title:       "Snack time",
		Description: "Have your planned afternoon snack to fuel the workout.",
	},
	"17:00": {
		Title:       "Workout",
		Description: "Time to train. Check the app for today's session.",
	},
	"22:00": {
		Title:       "Main meal",
		Description: "Tonight's main meal is waiting in your plan.",
	},
	"23:00": {
		Title:       "Wind down",
		Description: "Screens off. Aim for at least 7 hours of sleep to recover properly.",
	},
}

// DailyTemplate returns a copy of the fixed slot template so callers can't
// mutate the shared catalog.
func DailyTemplate() domain.ScheduleTemplate {
	out := make(domain.ScheduleTemplate, len(dailyTemplate))
	for slot, entry := range dailyTemplate {
		out[slot] = entry
	}
	return out
}
