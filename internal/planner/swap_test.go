package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portion100(f FoodItem) MealItem {
	return MealItem{FoodID: f.ID, Name: f.Name, Grams: 100, Nutrients: f.Per100g}
}

// handmadePlan builds a three-meal plan by hand so the swap tests control
// the acceptance band instead of depending on whatever the solver found
// optimal. The lunch is deliberately under its target.
func handmadePlan(c *Catalog, proteinID FoodID, lunchDeviation float64) *DailyPlan {
	protein, _ := c.Food(proteinID)
	rice, _ := c.Food("rice")
	broccoli, _ := c.Food("broccoli")
	banana, _ := c.Food("banana")

	lunchItems := []MealItem{portion100(protein), portion100(rice), portion100(broccoli)}
	lunch := SelectedMeal{
		Slot: Slot{
			Label:   "Lunch",
			Purpose: SlotLunch,
			Time:    at(13, 0),
			Target:  NutrientTarget{Kcal: 600, ProteinG: 40, CarbsG: 70, FatG: 15},
		},
		Items:     lunchItems,
		Totals:    sumItems(lunchItems),
		Deviation: lunchDeviation,
	}
	breakfast := SelectedMeal{
		Slot:  Slot{Label: "Breakfast", Purpose: SlotBreakfast, Time: at(8, 0), Target: NutrientTarget{Kcal: 500}},
		Items: []MealItem{portion100(banana)},
	}
	dinner := SelectedMeal{
		Slot:  Slot{Label: "Dinner", Purpose: SlotDinner, Time: at(20, 0), Target: NutrientTarget{Kcal: 700}},
		Items: []MealItem{portion100(rice)},
	}
	breakfast.Totals = sumItems(breakfast.Items)
	dinner.Totals = sumItems(dinner.Items)

	return &DailyPlan{
		Date:   testDate,
		Target: NutrientTarget{Kcal: 1800, ProteinG: 110, CarbsG: 220, FatG: 50, FluidML: 2450},
		Meals:  []SelectedMeal{breakfast, lunch, dinner},
	}
}

func TestSwapReplacesSingleItem(t *testing.T) {
	catalog := testCatalog()
	p := New()
	plan := handmadePlan(catalog, "tofu", 0.7)
	before, err := json.Marshal(plan)
	require.NoError(t, err)

	swapped, unsat, err := p.Swap(plan, SwapRequest{
		SlotLabel: "Lunch",
		Item:      "tofu",
		Catalog:   catalog,
		Date:      testDate,
	})
	require.NoError(t, err)
	require.Nil(t, unsat)
	require.NotNil(t, swapped)

	// The original plan is untouched.
	after, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	oldLunch := plan.Meals[1]
	newLunch := swapped.Meals[1]
	require.Len(t, newLunch.Items, len(oldLunch.Items))
	changed := 0
	for i := range oldLunch.Items {
		if oldLunch.Items[i].FoodID != newLunch.Items[i].FoodID {
			changed++
			assert.Equal(t, FoodID("tofu"), oldLunch.Items[i].FoodID, "only the requested item may change")
		}
	}
	assert.Equal(t, 1, changed)

	// The replacement keeps the meal inside its original acceptance band
	// and actually closes some of the energy gap.
	assert.LessOrEqual(t, newLunch.Deviation, oldLunch.Deviation+1e-6)
	assert.Greater(t, newLunch.Totals.Kcal, oldLunch.Totals.Kcal)

	// Untouched meals carry over as-is.
	assert.Equal(t, plan.Meals[0], swapped.Meals[0])
	assert.Equal(t, plan.Meals[2], swapped.Meals[2])
}

func TestSwapRespectsConstraints(t *testing.T) {
	catalog := testCatalog()
	p := New()
	plan := handmadePlan(catalog, "tofu", 0.7)

	// Fish, soy, and egg allergies plus a dislike of the swapped item leave
	// chicken as the only admissible protein.
	cons := Constraints{Allergies: []string{"fish", "soy", "egg"}, Dislikes: []FoodID{"tofu"}}
	swapped, unsat, err := p.Swap(plan, SwapRequest{
		SlotLabel:   "Lunch",
		Item:        "tofu",
		Catalog:     catalog,
		Constraints: cons,
		Date:        testDate,
	})
	require.NoError(t, err)
	require.Nil(t, unsat)
	require.NotNil(t, swapped)

	assert.Equal(t, FoodID("chicken-breast"), swapped.Meals[1].Items[0].FoodID)
}

func TestSwapSelfOnlyWhenNothingElseFits(t *testing.T) {
	// A catalog whose only protein is chicken: swapping chicken can only
	// land back on chicken, which must leave the plan unchanged.
	var foods []FoodItem
	for _, f := range testFoods() {
		if f.Category != CategoryProtein || f.ID == "chicken-breast" {
			foods = append(foods, f)
		}
	}
	catalog := NewCatalog(foods, testTemplates())

	p := New()
	plan := handmadePlan(catalog, "chicken-breast", 0.5)
	before, err := json.Marshal(plan)
	require.NoError(t, err)

	swapped, unsat, err := p.Swap(plan, SwapRequest{
		SlotLabel: "Lunch",
		Item:      "chicken-breast",
		Catalog:   catalog,
		Date:      testDate,
	})
	require.NoError(t, err)
	require.Nil(t, unsat)
	require.NotNil(t, swapped)

	after, err := json.Marshal(swapped)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "a self-swap must not nudge portions")
}

func TestSwapUnsatisfiableWhenCategoryEmpties(t *testing.T) {
	catalog := testCatalog()
	p := New()
	plan := handmadePlan(catalog, "tofu", 0.7)

	// Dislike every protein, the swapped item included, so no replacement
	// and no self-swap remain.
	var dislikes []FoodID
	for _, f := range catalog.FoodsInCategory(CategoryProtein) {
		dislikes = append(dislikes, f.ID)
	}
	swapped, unsat, err := p.Swap(plan, SwapRequest{
		SlotLabel:   "Lunch",
		Item:        "tofu",
		Catalog:     catalog,
		Constraints: Constraints{Dislikes: dislikes},
		Date:        testDate,
	})
	require.NoError(t, err)
	assert.Nil(t, swapped)
	require.NotNil(t, unsat)
	require.NotEmpty(t, unsat.Blocking)
	assert.Equal(t, BlockedByTolerance, unsat.Blocking[0].Code)
	assert.Equal(t, CategoryProtein, unsat.Blocking[0].Category)
}

func TestSwapTightToleranceRejectsWorseMeals(t *testing.T) {
	catalog := testCatalog()
	p := New()
	// A band this narrow admits no recomposed meal; the engine must refuse
	// rather than quietly regress the meal.
	plan := handmadePlan(catalog, "tofu", 0.01)

	swapped, unsat, err := p.Swap(plan, SwapRequest{
		SlotLabel: "Lunch",
		Item:      "tofu",
		Catalog:   catalog,
		Date:      testDate,
	})
	require.NoError(t, err)
	assert.Nil(t, swapped)
	require.NotNil(t, unsat)
	require.NotEmpty(t, unsat.Blocking)
	assert.Equal(t, BlockedByTolerance, unsat.Blocking[0].Code)
}

func TestSwapUnknownSlotOrItem(t *testing.T) {
	catalog := testCatalog()
	p := New()
	plan := handmadePlan(catalog, "tofu", 0.7)

	_, _, err := p.Swap(plan, SwapRequest{SlotLabel: "Second breakfast", Item: "rice", Catalog: catalog, Date: testDate})
	assert.ErrorIs(t, err, ErrIncompletePlan)

	_, _, err = p.Swap(plan, SwapRequest{SlotLabel: "Lunch", Item: "dragonfruit", Catalog: catalog, Date: testDate})
	assert.ErrorIs(t, err, ErrIncompletePlan)
}
