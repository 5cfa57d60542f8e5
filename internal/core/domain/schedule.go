package domain

type SlotKind string

const (
	SlotKindWorkout  SlotKind = "workout"
	SlotKindSnack    SlotKind = "snack"
	SlotKindMainMeal SlotKind = "main_meal"
	SlotKindGeneric  SlotKind = "generic"
)

// The three slots with special content resolution, identified by their
// literal "HH:MM" time.
const (
	SnackSlot    = "16:00"
	WorkoutSlot  = "17:00"
	MainMealSlot = "22:00"
)

// KindOfSlot classifies a template slot purely by its time value.
func KindOfSlot(slot string) SlotKind {
	switch slot {
	case WorkoutSlot:
		return SlotKindWorkout
	case SnackSlot:
		return SlotKindSnack
	case MainMealSlot:
		return SlotKindMainMeal
	}
	return SlotKindGeneric
}

// TemplateEntry is the generic text for one slot of the shared daily template.
type TemplateEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ScheduleTemplate maps "HH:MM" slot times to their generic entries. It is
// shared catalog data, not per-user state.
type ScheduleTemplate map[string]TemplateEntry

// ResolvedEntry is one slot of a user's concrete schedule for a given day:
// the template entry with any workout override applied and any meal content
// attached.
type ResolvedEntry struct {
	Time        string   `json:"time"`
	Kind        SlotKind `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Details     string   `json:"details,omitempty"`
	MealContent string   `json:"meal_content,omitempty"`
}
