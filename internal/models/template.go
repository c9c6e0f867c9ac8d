package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/planner"
)

// TemplateSlotRow is one category position inside a stored meal template.
type TemplateSlotRow struct {
	Category string  `json:"category"`
	Grams    float64 `json:"grams,omitempty"`
	FoodID   string  `json:"food_id,omitempty"`
}

// JSONBTemplateSlots stores the ordered slot list as JSONB.
type JSONBTemplateSlots []TemplateSlotRow

// Value implements the driver.Valuer interface
func (s JSONBTemplateSlots) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface
func (s *JSONBTemplateSlots) Scan(value interface{}) error {
	if value == nil {
		*s = JSONBTemplateSlots{}
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

	return json.Unmarshal(bytes, s)
}

// MealTemplate is a stored meal shape: the slot purposes it can serve and
// the category slots it requires.
type MealTemplate struct {
	ID        string             `gorm:"size:100;primaryKey" json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
	Name      string             `gorm:"size:255;not null" json:"name"`
	Purposes  JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"purposes"`
	Slots     JSONBTemplateSlots `gorm:"type:jsonb;not null;default:'[]'" json:"slots"`
}

func (MealTemplate) TableName() string {
	return "meal_templates"
}

// ToPlanner converts the stored row to the engine's value type.
func (t *MealTemplate) ToPlanner() planner.MealTemplate {
	out := planner.MealTemplate{
		ID:   planner.TemplateID(t.ID),
		Name: t.Name,
	}
	for _, p := range t.Purposes {
		out.Purposes = append(out.Purposes, planner.SlotPurpose(p))
	}
	for _, s := range t.Slots {
		out.Slots = append(out.Slots, planner.TemplateSlot{
			Category: planner.FoodCategory(s.Category),
			Grams:    s.Grams,
			FoodID:   planner.FoodID(s.FoodID),
		})
	}
	return out
}
