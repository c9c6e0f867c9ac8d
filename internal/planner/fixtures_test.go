package planner

import "time"

// Shared fixtures for the planner tests: a small but realistic catalog with
// every category populated and templates for each slot purpose.

var testDate = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 5, 4, hour, min, 0, 0, time.UTC)
}

func allTags() []RestrictionTag {
	return []RestrictionTag{TagVegan, TagVegetarian, TagLactoseFree, TagGlutenFree}
}

func testFoods() []FoodItem {
	return []FoodItem{
		{ID: "oats", Name: "Rolled oats", Category: CategoryCarb,
			Per100g:  Nutrients{Kcal: 370, ProteinG: 13, CarbsG: 62, FatG: 7},
			DietTags: []RestrictionTag{TagVegan, TagVegetarian, TagLactoseFree}},
		{ID: "rice", Name: "White rice", Category: CategoryCarb,
			Per100g: Nutrients{Kcal: 360, ProteinG: 7, CarbsG: 79, FatG: 1}, DietTags: allTags()},
		{ID: "potato", Name: "Potato", Category: CategoryCarb,
			Per100g: Nutrients{Kcal: 87, ProteinG: 1.9, CarbsG: 20, FatG: 0.1}, DietTags: allTags()},
		{ID: "chicken-breast", Name: "Chicken breast", Category: CategoryProtein,
			Per100g:  Nutrients{Kcal: 165, ProteinG: 31, CarbsG: 0, FatG: 3.6},
			DietTags: []RestrictionTag{TagLactoseFree, TagGlutenFree}},
		{ID: "salmon", Name: "Salmon fillet", Category: CategoryProtein,
			Per100g:  Nutrients{Kcal: 208, ProteinG: 20, CarbsG: 0, FatG: 13},
			DietTags: []RestrictionTag{TagLactoseFree, TagGlutenFree}, Allergens: []string{"fish"}},
		{ID: "tofu", Name: "Firm tofu", Category: CategoryProtein,
			Per100g:  Nutrients{Kcal: 76, ProteinG: 8, CarbsG: 1.9, FatG: 4.8},
			DietTags: allTags(), Allergens: []string{"soy"}},
		{ID: "eggs", Name: "Eggs", Category: CategoryProtein,
			Per100g:  Nutrients{Kcal: 155, ProteinG: 13, CarbsG: 1.1, FatG: 11},
			DietTags: []RestrictionTag{TagVegetarian, TagLactoseFree, TagGlutenFree}, Allergens: []string{"egg"}},
		{ID: "banana", Name: "Banana", Category: CategoryFruit,
			Per100g: Nutrients{Kcal: 89, ProteinG: 1.1, CarbsG: 23, FatG: 0.3}, DietTags: allTags()},
		{ID: "apple", Name: "Apple", Category: CategoryFruit,
			Per100g: Nutrients{Kcal: 52, ProteinG: 0.3, CarbsG: 14, FatG: 0.2}, DietTags: allTags()},
		{ID: "greek-yogurt", Name: "Greek yogurt", Category: CategoryDairy,
			Per100g:  Nutrients{Kcal: 59, ProteinG: 10, CarbsG: 3.6, FatG: 0.4},
			DietTags: []RestrictionTag{TagVegetarian, TagGlutenFree}, Allergens: []string{"milk"}},
		{ID: "milk", Name: "Whole milk", Category: CategoryDairy,
			Per100g:  Nutrients{Kcal: 64, ProteinG: 3.4, CarbsG: 5, FatG: 3.5},
			DietTags: []RestrictionTag{TagVegetarian, TagGlutenFree}, Allergens: []string{"milk"}},
		{ID: "olive-oil", Name: "Olive oil", Category: CategoryFat,
			Per100g: Nutrients{Kcal: 884, ProteinG: 0, CarbsG: 0, FatG: 100}, DietTags: allTags()},
		{ID: "peanut-butter", Name: "Peanut butter", Category: CategoryFat,
			Per100g:  Nutrients{Kcal: 588, ProteinG: 25, CarbsG: 20, FatG: 50},
			DietTags: allTags(), Allergens: []string{"peanut"}},
		{ID: "broccoli", Name: "Broccoli", Category: CategoryVeg,
			Per100g: Nutrients{Kcal: 34, ProteinG: 2.8, CarbsG: 7, FatG: 0.4}, DietTags: allTags()},
		{ID: "spinach", Name: "Spinach", Category: CategoryVeg,
			Per100g: Nutrients{Kcal: 23, ProteinG: 2.9, CarbsG: 3.6, FatG: 0.4}, DietTags: allTags()},
		{ID: "sports-drink", Name: "Sports drink", Category: CategoryBeverage,
			Per100g: Nutrients{Kcal: 26, ProteinG: 0, CarbsG: 6.5, FatG: 0}, DietTags: allTags()},
	}
}

func testTemplates() []MealTemplate {
	return []MealTemplate{
		{ID: "tpl-oats-bowl", Name: "Oats bowl", Purposes: []SlotPurpose{SlotBreakfast},
			Slots: []TemplateSlot{
				{Category: CategoryCarb, Grams: 60},
				{Category: CategoryFruit},
				{Category: CategoryDairy},
			}},
		{ID: "tpl-protein-plate", Name: "Protein plate", Purposes: []SlotPurpose{SlotLunch, SlotDinner},
			Slots: []TemplateSlot{
				{Category: CategoryProtein},
				{Category: CategoryCarb},
				{Category: CategoryVeg},
			}},
		{ID: "tpl-protein-plate-oil", Name: "Protein plate with dressing", Purposes: []SlotPurpose{SlotDinner},
			Slots: []TemplateSlot{
				{Category: CategoryProtein},
				{Category: CategoryCarb},
				{Category: CategoryVeg},
				{Category: CategoryFat, Grams: 15},
			}},
		{ID: "tpl-fruit-snack", Name: "Fruit snack", Purposes: []SlotPurpose{SlotSnack, SlotPreTraining},
			Slots: []TemplateSlot{
				{Category: CategoryFruit},
			}},
		{ID: "tpl-recovery-shake", Name: "Recovery shake", Purposes: []SlotPurpose{SlotRecovery},
			Slots: []TemplateSlot{
				{Category: CategoryDairy},
				{Category: CategoryFruit},
			}},
	}
}

func testCatalog() *Catalog {
	return NewCatalog(testFoods(), testTemplates())
}

func testProfile() AthleteProfile {
	return AthleteProfile{
		MassKG:        70,
		HeightCM:      178,
		Age:           29,
		Sex:           SexMale,
		ActivityLevel: ActivityNormal,
		Goal:          GoalMaintain,
	}
}

func restDayContext() DayContext {
	return DayContext{Date: testDate, Wake: at(7, 0), Bed: at(23, 0)}
}

func morningSession() TrainingSession {
	return TrainingSession{
		Label:       "Strength",
		Start:       at(7, 0),
		DurationMin: 60,
		Intensity:   IntensityHigh,
		Modality:    ModalityStrength,
	}
}
