package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/planner"
)

// JSONBPlan stores a generated daily plan verbatim as JSONB.
type JSONBPlan planner.DailyPlan

// Value implements the driver.Valuer interface
func (p JSONBPlan) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface
func (p *JSONBPlan) Scan(value interface{}) error {
	if value == nil {
		*p = JSONBPlan{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("unsupported plan column type")
	}

	return json.Unmarshal(bytes, p)
}

// PlanRecord is one persisted daily plan. A user has at most one plan per
// calendar date; regeneration overwrites it.
type PlanRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_plan_user_date,unique" json:"user_id"`
	Date      string         `gorm:"size:10;not null;index:idx_plan_user_date,unique" json:"date"`
	Plan      JSONBPlan      `gorm:"type:jsonb;not null" json:"plan"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PlanRecord) TableName() string {
	return "plan_records"
}
