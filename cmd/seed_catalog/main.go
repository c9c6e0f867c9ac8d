package main

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/models"
	"github.com/fuelcast/backend/internal/service"
)

var (
	vegan      = []string{"vegan", "vegetarian", "lactose_free", "gluten_free"}
	vegetarian = []string{"vegetarian", "gluten_free"}
	omni       = []string{"gluten_free", "lactose_free"}
)

func food(id, name, category string, kcal, protein, carbs, fat float64, dietTags, allergens []string) models.FoodItem {
	return models.FoodItem{
		ID:        id,
		Name:      name,
		Category:  category,
		Kcal:      kcal,
		ProteinG:  protein,
		CarbsG:    carbs,
		FatG:      fat,
		DietTags:  models.JSONBStringArray(dietTags),
		Allergens: models.JSONBStringArray(allergens),
		Embedding: service.GenerateEmbedding(name + " " + category),
	}
}

// seedFoods is a starter catalog; nutrients are per 100 g.
func seedFoods() []models.FoodItem {
	return []models.FoodItem{
		food("oats", "Rolled oats", "carb", 379, 13.2, 67.7, 6.5, []string{"vegan", "vegetarian", "lactose_free"}, nil),
		food("white-rice", "White rice, cooked", "carb", 130, 2.7, 28.2, 0.3, vegan, nil),
		food("brown-rice", "Brown rice, cooked", "carb", 123, 2.7, 25.6, 1.0, vegan, nil),
		food("potato", "Boiled potato", "carb", 87, 1.9, 20.1, 0.1, vegan, nil),
		food("sweet-potato", "Baked sweet potato", "carb", 90, 2.0, 20.7, 0.2, vegan, nil),
		food("whole-wheat-pasta", "Whole wheat pasta, cooked", "carb", 124, 5.3, 26.5, 0.5, []string{"vegan", "vegetarian", "lactose_free"}, []string{"gluten"}),
		food("quinoa", "Cooked quinoa", "carb", 120, 4.4, 21.3, 1.9, vegan, nil),
		food("bread-wholegrain", "Wholegrain bread", "carb", 247, 13.0, 41.3, 3.4, []string{"vegan", "vegetarian", "lactose_free"}, []string{"gluten"}),

		food("chicken-breast", "Chicken breast, grilled", "protein", 165, 31.0, 0, 3.6, omni, nil),
		food("turkey-breast", "Turkey breast, roasted", "protein", 147, 30.1, 0, 2.1, omni, nil),
		food("lean-beef", "Lean beef, 5% fat", "protein", 137, 21.4, 0, 5.0, omni, nil),
		food("salmon", "Atlantic salmon, baked", "protein", 208, 20.4, 0, 13.4, omni, []string{"fish"}),
		food("tuna", "Canned tuna in water", "protein", 116, 25.5, 0, 0.8, omni, []string{"fish"}),
		food("tofu", "Firm tofu", "protein", 144, 15.5, 3.9, 8.7, vegan, []string{"soy"}),
		food("tempeh", "Tempeh", "protein", 192, 20.3, 7.6, 10.8, vegan, []string{"soy"}),
		food("lentils", "Cooked lentils", "protein", 116, 9.0, 20.1, 0.4, vegan, nil),
		food("eggs", "Whole eggs", "protein", 143, 12.6, 0.7, 9.5, vegetarian, []string{"egg"}),

		food("banana", "Banana", "fruit", 89, 1.1, 22.8, 0.3, vegan, nil),
		food("apple", "Apple", "fruit", 52, 0.3, 13.8, 0.2, vegan, nil),
		food("orange", "Orange", "fruit", 47, 0.9, 11.8, 0.1, vegan, nil),
		food("blueberries", "Blueberries", "fruit", 57, 0.7, 14.5, 0.3, vegan, nil),
		food("dates", "Medjool dates", "fruit", 277, 1.8, 75.0, 0.2, vegan, nil),

		food("greek-yogurt", "Greek yogurt, 2%", "dairy", 73, 9.9, 3.9, 1.9, []string{"vegetarian", "gluten_free"}, []string{"milk"}),
		food("skyr", "Skyr", "dairy", 63, 11.0, 4.0, 0.2, []string{"vegetarian", "gluten_free"}, []string{"milk"}),
		food("milk", "Semi-skimmed milk", "dairy", 47, 3.4, 4.8, 1.7, []string{"vegetarian", "gluten_free"}, []string{"milk"}),
		food("soy-yogurt", "Soy yogurt, plain", "dairy", 54, 4.0, 2.9, 2.7, vegan, []string{"soy"}),

		food("olive-oil", "Extra virgin olive oil", "fat", 884, 0, 0, 100, vegan, nil),
		food("peanut-butter", "Peanut butter", "fat", 588, 25.1, 20.0, 50.4, vegan, []string{"peanut"}),
		food("almonds", "Almonds", "fat", 579, 21.2, 21.6, 49.9, vegan, []string{"tree_nut"}),
		food("avocado", "Avocado", "fat", 160, 2.0, 8.5, 14.7, vegan, nil),

		food("broccoli", "Steamed broccoli", "veg", 35, 2.4, 7.2, 0.4, vegan, nil),
		food("spinach", "Baby spinach", "veg", 23, 2.9, 3.6, 0.4, vegan, nil),
		food("mixed-salad", "Mixed salad greens", "veg", 17, 1.5, 2.9, 0.2, vegan, nil),
		food("green-beans", "Green beans", "veg", 31, 1.8, 7.0, 0.2, vegan, nil),

		food("sports-drink", "Isotonic sports drink", "beverage", 26, 0, 6.4, 0, vegan, nil),
		food("orange-juice", "Orange juice", "beverage", 45, 0.7, 10.4, 0.2, vegan, nil),
	}
}

func template(id, name string, purposes []string, slots []models.TemplateSlotRow) models.MealTemplate {
	return models.MealTemplate{
		ID:       id,
		Name:     name,
		Purposes: models.JSONBStringArray(purposes),
		Slots:    models.JSONBTemplateSlots(slots),
	}
}

func seedTemplates() []models.MealTemplate {
	return []models.MealTemplate{
		template("oat-bowl", "Oat bowl with fruit and yogurt",
			[]string{"breakfast"},
			[]models.TemplateSlotRow{
				{Category: "carb", Grams: 60, FoodID: "oats"},
				{Category: "fruit"},
				{Category: "dairy"},
			}),
		template("eggs-on-toast", "Eggs on wholegrain toast",
			[]string{"breakfast"},
			[]models.TemplateSlotRow{
				{Category: "protein", FoodID: "eggs"},
				{Category: "carb", FoodID: "bread-wholegrain"},
				{Category: "fruit"},
			}),
		template("protein-plate", "Protein, carb, and veg plate",
			[]string{"lunch", "dinner"},
			[]models.TemplateSlotRow{
				{Category: "protein"},
				{Category: "carb"},
				{Category: "veg"},
			}),
		template("protein-plate-oil", "Protein plate with olive oil",
			[]string{"lunch", "dinner"},
			[]models.TemplateSlotRow{
				{Category: "protein"},
				{Category: "carb"},
				{Category: "veg"},
				{Category: "fat", Grams: 15},
			}),
		template("grain-salad", "Grain salad with greens",
			[]string{"lunch"},
			[]models.TemplateSlotRow{
				{Category: "carb", FoodID: "quinoa"},
				{Category: "protein"},
				{Category: "veg"},
				{Category: "fat", Grams: 10},
			}),
		template("fruit-snack", "Piece of fruit",
			[]string{"snack", "pre_training"},
			[]models.TemplateSlotRow{
				{Category: "fruit"},
			}),
		template("fruit-and-nuts", "Fruit with nut butter",
			[]string{"snack"},
			[]models.TemplateSlotRow{
				{Category: "fruit"},
				{Category: "fat", Grams: 20},
			}),
		template("pre-session-carbs", "Quick carbs before training",
			[]string{"pre_training"},
			[]models.TemplateSlotRow{
				{Category: "fruit"},
				{Category: "beverage", Grams: 250},
			}),
		template("recovery-shake", "Recovery dairy shake",
			[]string{"recovery"},
			[]models.TemplateSlotRow{
				{Category: "dairy"},
				{Category: "fruit"},
			}),
		template("recovery-plate", "Light recovery plate",
			[]string{"recovery"},
			[]models.TemplateSlotRow{
				{Category: "protein"},
				{Category: "carb"},
			}),
	}
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	for _, f := range seedFoods() {
		if err := db.Save(&f).Error; err != nil {
			log.Fatalf("Failed to seed food %s: %v", f.ID, err)
		}
	}
	log.Printf("Seeded %d foods", len(seedFoods()))

	for _, tpl := range seedTemplates() {
		if err := db.Save(&tpl).Error; err != nil {
			log.Fatalf("Failed to seed template %s: %v", tpl.ID, err)
		}
	}
	log.Printf("Seeded %d meal templates", len(seedTemplates()))
}
