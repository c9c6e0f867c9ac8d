// Package planner implements the nutrition planning engine: energy
// expenditure estimation, per-slot target distribution, constrained food
// selection, daily schedule assembly, and constraint-preserving swaps.
//
// Everything in this package is a pure, deterministic computation over
// immutable inputs. The catalog is an explicitly passed read-only handle,
// never ambient state, so concurrent planning requests need no coordination.
package planner

import "time"

// Sex is the biological parameter used by the resting-metabolic formula.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Goal adjusts the daily energy target around maintenance.
type Goal string

const (
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
	GoalLose     Goal = "lose"
)

// ActivityLevel captures non-training daily activity (NEAT).
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityNormal ActivityLevel = "normal"
	ActivityHigh   ActivityLevel = "high"
)

// Intensity of a training session.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
	IntensityMax      Intensity = "max"
)

// Modality is the kind of training being done.
type Modality string

const (
	ModalityStrength    Modality = "strength"
	ModalityEndurance   Modality = "endurance"
	ModalitySkill       Modality = "skill"
	ModalityMixed       Modality = "mixed"
	ModalityCompetition Modality = "competition"
)

// SlotPurpose identifies a meal or snack position in the daily schedule.
type SlotPurpose string

const (
	SlotBreakfast   SlotPurpose = "breakfast"
	SlotLunch       SlotPurpose = "lunch"
	SlotDinner      SlotPurpose = "dinner"
	SlotSnack       SlotPurpose = "snack"
	SlotPreTraining SlotPurpose = "pre_training"
	SlotRecovery    SlotPurpose = "recovery"
)

// FoodCategory groups catalog items for template slots.
type FoodCategory string

const (
	CategoryProtein  FoodCategory = "protein"
	CategoryCarb     FoodCategory = "carb"
	CategoryVeg      FoodCategory = "veg"
	CategoryFruit    FoodCategory = "fruit"
	CategoryDairy    FoodCategory = "dairy"
	CategoryFat      FoodCategory = "fat"
	CategoryBeverage FoodCategory = "beverage"
)

// RestrictionTag is a diet property a food satisfies (e.g. "vegan",
// "lactose_free"). An athlete's diet restrictions require every listed tag
// to be present on a food for it to be eligible.
type RestrictionTag string

const (
	TagVegan       RestrictionTag = "vegan"
	TagVegetarian  RestrictionTag = "vegetarian"
	TagLactoseFree RestrictionTag = "lactose_free"
	TagGlutenFree  RestrictionTag = "gluten_free"
)

// FoodID identifies a catalog food item.
type FoodID string

// TemplateID identifies a meal template.
type TemplateID string

// Nutrients is an energy/macro bundle. For FoodItem it is per 100 g of the
// food; for meals and totals it is absolute.
type Nutrients struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Add returns the element-wise sum of two nutrient bundles.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Kcal:     n.Kcal + o.Kcal,
		ProteinG: n.ProteinG + o.ProteinG,
		CarbsG:   n.CarbsG + o.CarbsG,
		FatG:     n.FatG + o.FatG,
	}
}

// Scale returns the bundle multiplied by f.
func (n Nutrients) Scale(f float64) Nutrients {
	return Nutrients{
		Kcal:     n.Kcal * f,
		ProteinG: n.ProteinG * f,
		CarbsG:   n.CarbsG * f,
		FatG:     n.FatG * f,
	}
}

// NutrientTarget is a daily or per-slot energy/macro/fluid goal. Targets are
// created fresh per planning request and never mutated; recomputation
// produces a new value.
type NutrientTarget struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FluidML  int     `json:"fluid_ml"`
}

// AthleteProfile is the caller-supplied athlete input for one planning day.
type AthleteProfile struct {
	MassKG        float64          `json:"mass_kg"`
	HeightCM      float64          `json:"height_cm"`
	Age           int              `json:"age"`
	Sex           Sex              `json:"sex"`
	ActivityLevel ActivityLevel    `json:"activity_level"`
	Goal          Goal             `json:"goal"`
	Diets         []RestrictionTag `json:"diets"`
	Allergies     []string         `json:"allergies"`
	Dislikes      []FoodID         `json:"dislikes"`
}

// TrainingSession is one scheduled workout on the planning day. Sessions are
// assumed non-overlapping; the engine does not enforce this.
type TrainingSession struct {
	Label       string    `json:"label"`
	Start       time.Time `json:"start"`
	DurationMin int       `json:"duration_min"`
	Intensity   Intensity `json:"intensity"`
	Modality    Modality  `json:"modality"`
}

// End returns the session end time.
func (s TrainingSession) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMin) * time.Minute)
}

// Hours returns the session duration in hours, never negative.
func (s TrainingSession) Hours() float64 {
	if s.DurationMin <= 0 {
		return 0
	}
	return float64(s.DurationMin) / 60.0
}

// FoodItem is a catalog entry with nutrients per 100 g reference serving.
type FoodItem struct {
	ID        FoodID           `json:"id"`
	Name      string           `json:"name"`
	Category  FoodCategory     `json:"category"`
	Per100g   Nutrients        `json:"per_100g"`
	DietTags  []RestrictionTag `json:"diet_tags"`
	Allergens []string         `json:"allergens"`
}

// TemplateSlot is one required category position in a meal template. Grams
// is the base portion before scaling; zero means the category default.
// FoodID optionally pins a specific catalog item to the slot.
type TemplateSlot struct {
	Category FoodCategory `json:"category"`
	Grams    float64      `json:"grams,omitempty"`
	FoodID   FoodID       `json:"food_id,omitempty"`
}

// MealTemplate describes a meal shape: which slot purposes it can serve and
// the ordered category slots it requires.
type MealTemplate struct {
	ID       TemplateID     `json:"id"`
	Name     string         `json:"name"`
	Purposes []SlotPurpose  `json:"purposes"`
	Slots    []TemplateSlot `json:"slots"`
}

// servesPurpose reports whether the template can fill the given slot purpose.
func (t MealTemplate) servesPurpose(p SlotPurpose) bool {
	for _, tp := range t.Purposes {
		if tp == p {
			return true
		}
	}
	return false
}

// Slot is a timed meal position with its nutrient target.
type Slot struct {
	Label   string         `json:"label"`
	Purpose SlotPurpose    `json:"purpose"`
	Time    time.Time      `json:"time"`
	Target  NutrientTarget `json:"target"`
}

// MealItem is one chosen food with its portion and resulting nutrients.
type MealItem struct {
	FoodID    FoodID    `json:"food_id"`
	Name      string    `json:"name"`
	Grams     float64   `json:"grams"`
	Nutrients Nutrients `json:"nutrients"`
}

// SelectedMeal is the solver's output for one slot.
type SelectedMeal struct {
	Slot         Slot       `json:"slot"`
	TemplateID   TemplateID `json:"template_id,omitempty"`
	TemplateName string     `json:"template_name,omitempty"`
	Items        []MealItem `json:"items"`
	Totals       Nutrients  `json:"totals"`
	Deviation    float64    `json:"deviation"`
	Note         string     `json:"note"`
}

// HydrationReminder is one timed fluid-intake prompt.
type HydrationReminder struct {
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
	ML    int       `json:"ml"`
}

// DailyPlan is the assembled output for one planning day. It owns its meals;
// meal items reference catalog foods by id only.
type DailyPlan struct {
	Date        time.Time           `json:"date"`
	Target      NutrientTarget      `json:"target"`
	Meals       []SelectedMeal      `json:"meals"`
	Hydration   []HydrationReminder `json:"hydration"`
	Unsatisfied []Unsatisfiable     `json:"unsatisfied,omitempty"`
}

// History maps food ids to the date they were last served, supplied by the
// caller for the variety (no-repeat) soft constraint.
type History map[FoodID]time.Time

// DayContext anchors the planning day on the calendar.
type DayContext struct {
	Date time.Time `json:"date"`
	Wake time.Time `json:"wake"`
	Bed  time.Time `json:"bed"`
}
