package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/planner"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// FoodItem is one catalog entry; nutrient columns are per 100 g. The
// embedding column feeds similarity search over name and category.
type FoodItem struct {
	ID        string           `gorm:"size:100;primaryKey" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Category  string           `gorm:"size:20;not null;index" json:"category"`
	Kcal      float64          `gorm:"type:float;not null" json:"kcal"`
	ProteinG  float64          `gorm:"type:float;not null" json:"protein_g"`
	CarbsG    float64          `gorm:"type:float;not null" json:"carbs_g"`
	FatG      float64          `gorm:"type:float;not null" json:"fat_g"`
	DietTags  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"diet_tags"`
	Allergens JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergens"`
	ImageURL  string           `gorm:"size:255" json:"image_url,omitempty"`
	Embedding pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}

func (FoodItem) TableName() string {
	return "food_items"
}

// ToPlanner converts the stored row to the engine's value type.
func (f *FoodItem) ToPlanner() planner.FoodItem {
	out := planner.FoodItem{
		ID:       planner.FoodID(f.ID),
		Name:     f.Name,
		Category: planner.FoodCategory(f.Category),
		Per100g: planner.Nutrients{
			Kcal:     f.Kcal,
			ProteinG: f.ProteinG,
			CarbsG:   f.CarbsG,
			FatG:     f.FatG,
		},
		Allergens: f.Allergens,
	}
	for _, t := range f.DietTags {
		out.DietTags = append(out.DietTags, planner.RestrictionTag(t))
	}
	return out
}
