package catalog

import "github.com/castellanimarco/trainflow-engine/internal/core/domain"

type mealPlanDay struct {
	mainMeal string
	snack    string
}

// Meals are keyed by day of week only; the same 7-day rotation repeats for
// all 8 weeks.
var weeklyMeals = map[string]mealPlanDay{
	"monday": {
		mainMeal: "Grilled chicken breast with roasted vegetables and quinoa.",
		snack:    "A banana and a small handful of almonds.",
	},
	"tuesday": {
		mainMeal: "Baked salmon with sweet potato and steamed broccoli.",
		snack:    "Greek yogurt with a spoon of honey.",
	},
	"wednesday": {
		mainMeal: "Lentil and vegetable stew with a slice of wholegrain bread.",
		snack:    "Carrot sticks with hummus.",
	},
	"thursday": {
		mainMeal: "Turkey stir-fry with brown rice and mixed peppers.",
		snack:    "An apple and a piece of cheese.",
	},
	"friday": {
		mainMeal: "Baked white fish with couscous and a green salad.",
		snack:    "A protein shake or a glass of milk.",
	},
	"saturday": {
		mainMeal: "Lean beef chili with kidney beans and a small portion of rice.",
		snack:    "A handful of mixed berries.",
	},
	"sunday": {
		mainMeal: "Roast chicken with potatoes and seasonal vegetables.",
		snack:    "Rice cakes with peanut butter.",
	},
}

// MealPlan builds the 7-day meal catalog for a user, days ordered
// Monday..Sunday. Identical output for every user.
func MealPlan(userID string) []*domain.Meal {
	plan := make([]*domain.Meal, 0, len(domain.DayNames))

	for _, day := range domain.DayNames {
		m := weeklyMeals[day]
		plan = append(plan, &domain.Meal{
			UserID:   userID,
			Day:      day,
			MainMeal: m.mainMeal,
			Snack:    m.snack,
		})
	}

	return plan
}
