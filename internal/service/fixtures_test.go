package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/models"
	"github.com/fuelcast/backend/internal/testhelpers"
)

// Shared fixtures for the service tests: a seeded catalog with every
// category populated and templates for each slot purpose, plus a user with a
// complete athlete profile.

func allTags() []string {
	return []string{"vegan", "vegetarian", "lactose_free", "gluten_free"}
}

func fixtureFood(id, name, category string, kcal, protein, carbs, fat float64, tags, allergens []string) models.FoodItem {
	return models.FoodItem{
		ID:        id,
		Name:      name,
		Category:  category,
		Kcal:      kcal,
		ProteinG:  protein,
		CarbsG:    carbs,
		FatG:      fat,
		DietTags:  models.JSONBStringArray(tags),
		Allergens: models.JSONBStringArray(allergens),
		Embedding: GenerateEmbedding(name + " " + category),
	}
}

func fixtureFoods() []models.FoodItem {
	return []models.FoodItem{
		fixtureFood("oats", "Rolled oats", "carb", 370, 13, 62, 7, []string{"vegan", "vegetarian", "lactose_free"}, nil),
		fixtureFood("rice", "White rice", "carb", 360, 7, 79, 1, allTags(), nil),
		fixtureFood("potato", "Potato", "carb", 87, 1.9, 20, 0.1, allTags(), nil),
		fixtureFood("chicken-breast", "Chicken breast", "protein", 165, 31, 0, 3.6, []string{"lactose_free", "gluten_free"}, nil),
		fixtureFood("salmon", "Salmon fillet", "protein", 208, 20, 0, 13, []string{"lactose_free", "gluten_free"}, []string{"fish"}),
		fixtureFood("tofu", "Firm tofu", "protein", 76, 8, 1.9, 4.8, allTags(), []string{"soy"}),
		fixtureFood("eggs", "Eggs", "protein", 155, 13, 1.1, 11, []string{"vegetarian", "lactose_free", "gluten_free"}, []string{"egg"}),
		fixtureFood("banana", "Banana", "fruit", 89, 1.1, 23, 0.3, allTags(), nil),
		fixtureFood("apple", "Apple", "fruit", 52, 0.3, 14, 0.2, allTags(), nil),
		fixtureFood("greek-yogurt", "Greek yogurt", "dairy", 59, 10, 3.6, 0.4, []string{"vegetarian", "gluten_free"}, []string{"milk"}),
		fixtureFood("milk", "Whole milk", "dairy", 64, 3.4, 5, 3.5, []string{"vegetarian", "gluten_free"}, []string{"milk"}),
		fixtureFood("olive-oil", "Olive oil", "fat", 884, 0, 0, 100, allTags(), nil),
		fixtureFood("peanut-butter", "Peanut butter", "fat", 588, 25, 20, 50, allTags(), []string{"peanut"}),
		fixtureFood("broccoli", "Broccoli", "veg", 34, 2.8, 7, 0.4, allTags(), nil),
		fixtureFood("spinach", "Spinach", "veg", 23, 2.9, 3.6, 0.4, allTags(), nil),
		fixtureFood("sports-drink", "Sports drink", "beverage", 26, 0, 6.5, 0, allTags(), nil),
	}
}

func fixtureTemplates() []models.MealTemplate {
	return []models.MealTemplate{
		{ID: "tpl-oats-bowl", Name: "Oats bowl",
			Purposes: models.JSONBStringArray{"breakfast"},
			Slots: models.JSONBTemplateSlots{
				{Category: "carb", Grams: 60},
				{Category: "fruit"},
				{Category: "dairy"},
			}},
		{ID: "tpl-protein-plate", Name: "Protein plate",
			Purposes: models.JSONBStringArray{"lunch", "dinner"},
			Slots: models.JSONBTemplateSlots{
				{Category: "protein"},
				{Category: "carb"},
				{Category: "veg"},
			}},
		{ID: "tpl-protein-plate-oil", Name: "Protein plate with dressing",
			Purposes: models.JSONBStringArray{"dinner"},
			Slots: models.JSONBTemplateSlots{
				{Category: "protein"},
				{Category: "carb"},
				{Category: "veg"},
				{Category: "fat", Grams: 15},
			}},
		{ID: "tpl-fruit-snack", Name: "Fruit snack",
			Purposes: models.JSONBStringArray{"snack", "pre_training"},
			Slots: models.JSONBTemplateSlots{
				{Category: "fruit"},
			}},
		{ID: "tpl-recovery-shake", Name: "Recovery shake",
			Purposes: models.JSONBStringArray{"recovery"},
			Slots: models.JSONBTemplateSlots{
				{Category: "dairy"},
				{Category: "fruit"},
			}},
	}
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, f := range fixtureFoods() {
		if err := db.Create(&f).Error; err != nil {
			t.Fatalf("failed to seed food %s: %v", f.ID, err)
		}
	}
	for _, tpl := range fixtureTemplates() {
		if err := db.Create(&tpl).Error; err != nil {
			t.Fatalf("failed to seed template %s: %v", tpl.ID, err)
		}
	}
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Name:         "Test Athlete",
		Email:        "athlete@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user.ID
}

func seedProfile(t *testing.T, db *gorm.DB, userID uuid.UUID) {
	t.Helper()
	profile := models.AthleteProfile{
		ID:            uuid.New(),
		UserID:        userID,
		MassKG:        70,
		HeightCM:      178,
		Age:           29,
		Sex:           "male",
		ActivityLevel: "normal",
		Goal:          "maintain",
		WakeTime:      "07:00",
		BedTime:       "23:00",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed athlete profile: %v", err)
	}
}

func setupServices(t *testing.T) (*gorm.DB, *ProfileService, *CatalogService, *PlanService) {
	t.Helper()
	db := testhelpers.SetupSQLiteDatabase(t)
	profiles := NewProfileService(db)
	catalog := NewCatalogService(db, nil)
	plans := NewPlanService(db, nil, profiles, catalog)
	return db, profiles, catalog, plans
}

func testCtx() context.Context {
	return context.Background()
}
