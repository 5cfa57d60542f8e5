package catalog

import (
	"fmt"
	"regexp"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
)

type dayPlan struct {
	title       string
	description string
}

// weekPattern is the repeating weekly structure. The week focus line below is
// appended to the description so the plan progresses without changing shape.
var weekPattern = map[string]dayPlan{
	"monday": {
		title:       "Full Body Circuit A",
		description: "Squats, push-ups, rows and plank, performed back to back.",
	},
	"tuesday": {
		title:       "Easy Run",
		description: "Conversational pace. Keep the heart rate low, this is aerobic base work.",
	},
	"wednesday": {
		title:       "Core & Mobility",
		description: "Dead bugs, bird dogs, side planks and hip openers.",
	},
	"thursday": {
		title:       "Full Body Circuit B",
		description: "Lunges, pike push-ups, glute bridges and hollow hold.",
	},
	"friday": {
		title:       "Tempo Run",
		description: "Warm up, then hold a comfortably hard pace for the main block.",
	},
	"saturday": {
		title:       "Long Walk or Hike",
		description: "At least one hour outdoors at an easy effort.",
	},
	"sunday": {
		title:       "Rest Day",
		description: "No training. Light stretching only if you feel stiff.",
	},
}

var weekFocus = [domain.ProgramWeeks]string{
	"Foundation week: 2 rounds per circuit, runs capped at 20 minutes.",
	"Foundation week: 3 rounds per circuit, runs capped at 25 minutes.",
	"Build week: 3 rounds, add 2 reps per exercise, runs up to 30 minutes.",
	"Build week: 4 rounds, runs up to 30 minutes with strides.",
	"Intensity week: 4 rounds with shorter rests, tempo blocks of 12 minutes.",
	"Intensity week: 4 rounds, tempo blocks of 15 minutes.",
	"Peak week: 5 rounds, longest runs of the program.",
	"Deload week: 2 easy rounds, cut all run durations in half.",
}

var (
	circuitPattern = regexp.MustCompile(`(?i)circuit`)
	runPattern     = regexp.MustCompile(`(?i)\brun\b`)
)

const circuitDetails = "Circuit format: perform every exercise for 40 seconds " +
	"with 20 seconds of rest between exercises. Rest 90 seconds between rounds. " +
	"Stop a set when your form breaks down, not when the timer says so."

const runDetails = "Run format: 5 minute brisk-walk warm-up, then the main block, " +
	"then 5 minutes of easy walking. If you cannot speak a full sentence on an " +
	"easy run, slow down."

// workoutDetails attaches instructional text to sessions whose title matches
// a known circuit or run pattern.
func workoutDetails(title string) string {
	if circuitPattern.MatchString(title) {
		return circuitDetails
	}
	if runPattern.MatchString(title) {
		return runDetails
	}
	return ""
}

// WorkoutPlan builds the full 8-week plan for a user: one row per (week, day),
// weeks ordered 1..8, days Monday..Sunday. Identical output for every user.
func WorkoutPlan(userID string) []*domain.Workout {
	plan := make([]*domain.Workout, 0, domain.ProgramWeeks*len(domain.DayNames))

	for week := 1; week <= domain.ProgramWeeks; week++ {
		for _, day := range domain.DayNames {
			base := weekPattern[day]
			plan = append(plan, &domain.Workout{
				UserID:      userID,
				Week:        week,
				Day:         day,
				Title:       base.title,
				Description: fmt.Sprintf("%s %s", base.description, weekFocus[week-1]),
				Details:     workoutDetails(base.title),
			})
		}
	}

	return plan
}
