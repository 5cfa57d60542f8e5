package domain

import "time"

// ProgramWeeks is the fixed length of the training program.
const ProgramWeeks = 8

// DayNames are the canonical lowercase day keys used for workouts, meals and
// task keys, Monday first.
var DayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// DayName returns the canonical key for a weekday.
func DayName(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return "sunday"
}

// IsDayName reports whether s is one of the seven canonical day keys.
func IsDayName(s string) bool {
	for _, d := range DayNames {
		if d == s {
			return true
		}
	}
	return false
}

// CurrentWeek derives the 1-indexed program week from the elapsed time since
// the program start, capped at ProgramWeeks. A zero start time maps to week 1;
// callers that need to distinguish "not enrolled" must check Enrolled first.
func CurrentWeek(start, now time.Time) int {
	if start.IsZero() {
		return 1
	}

	elapsed := now.Sub(start)
	if elapsed < 0 {
		elapsed = -elapsed
	}

	days := int(elapsed / (24 * time.Hour))
	week := days/7 + 1
	if week > ProgramWeeks {
		week = ProgramWeeks
	}
	return week
}
