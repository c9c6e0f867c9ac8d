package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/planner"
)

// AthleteProfile holds the physical and goal parameters the planning engine
// works from. One per user.
type AthleteProfile struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	MassKG        float64        `gorm:"not null" json:"mass_kg"`
	HeightCM      float64        `gorm:"not null" json:"height_cm"`
	Age           int            `gorm:"not null" json:"age"`
	Sex           string         `gorm:"size:10;not null" json:"sex"`
	ActivityLevel string         `gorm:"size:10;not null;default:'normal'" json:"activity_level"`
	Goal          string         `gorm:"size:10;not null;default:'maintain'" json:"goal"`
	WakeTime      string         `gorm:"size:5;not null;default:'07:00'" json:"wake_time"`
	BedTime       string         `gorm:"size:5;not null;default:'23:00'" json:"bed_time"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AthleteProfile) TableName() string {
	return "athlete_profiles"
}

// DietaryRestriction is one diet rule for a user, e.g. "vegan".
type DietaryRestriction struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Restriction string         `gorm:"size:50;not null" json:"restriction"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DietaryRestriction) TableName() string {
	return "dietary_restrictions"
}

// Allergy is one allergen a user must never be served.
type Allergy struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Allergen  string         `gorm:"size:50;not null" json:"allergen"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Allergy) TableName() string {
	return "allergies"
}

// DislikedFood is a catalog item a user refuses, referenced by its food id.
type DislikedFood struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	FoodID    string         `gorm:"size:100;not null" json:"food_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DislikedFood) TableName() string {
	return "disliked_foods"
}

// ToPlanner assembles the engine-facing profile from the stored rows.
func (p *AthleteProfile) ToPlanner(restrictions []DietaryRestriction, allergies []Allergy, dislikes []DislikedFood) planner.AthleteProfile {
	out := planner.AthleteProfile{
		MassKG:        p.MassKG,
		HeightCM:      p.HeightCM,
		Age:           p.Age,
		Sex:           planner.Sex(p.Sex),
		ActivityLevel: planner.ActivityLevel(p.ActivityLevel),
		Goal:          planner.Goal(p.Goal),
	}
	for _, r := range restrictions {
		out.Diets = append(out.Diets, planner.RestrictionTag(r.Restriction))
	}
	for _, a := range allergies {
		out.Allergies = append(out.Allergies, a.Allergen)
	}
	for _, d := range dislikes {
		out.Dislikes = append(out.Dislikes, planner.FoodID(d.FoodID))
	}
	return out
}
