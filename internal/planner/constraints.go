package planner

import "fmt"

// Constraints is the hard tier of the rule set: a food violating any of
// these is filtered out before scoring and can never appear in an accepted
// plan. Soft preferences (variety, deviation) are scoring terms in the
// solver, kept deliberately separate.
type Constraints struct {
	Diets     []RestrictionTag `json:"diets"`
	Allergies []string         `json:"allergies"`
	Dislikes  []FoodID         `json:"dislikes"`
}

// ConstraintsFromProfile extracts the hard constraint set from a profile.
func ConstraintsFromProfile(p AthleteProfile) Constraints {
	return Constraints{
		Diets:     p.Diets,
		Allergies: p.Allergies,
		Dislikes:  p.Dislikes,
	}
}

// ConstraintCode classifies why a food or slot was blocked.
type ConstraintCode string

const (
	BlockedByDiet      ConstraintCode = "diet_restriction"
	BlockedByAllergen  ConstraintCode = "allergen"
	BlockedByDislike   ConstraintCode = "dislike"
	BlockedCategory    ConstraintCode = "empty_category"
	BlockedCatalog     ConstraintCode = "empty_catalog"
	BlockedByTolerance ConstraintCode = "tolerance"
)

// BlockingConstraint is a structured explanation of an unsatisfied hard
// constraint, suitable for direct rendering in a UI.
type BlockingConstraint struct {
	Code     ConstraintCode `json:"code"`
	Category FoodCategory   `json:"category,omitempty"`
	Detail   string         `json:"detail"`
}

// Unsatisfiable is the solver's normal, non-exceptional outcome when no food
// combination can satisfy every hard constraint for a slot. It is always a
// result value, never an error.
type Unsatisfiable struct {
	Slot     string               `json:"slot"`
	Purpose  SlotPurpose          `json:"purpose"`
	Blocking []BlockingConstraint `json:"blocking"`
}

// Permits checks a single food against the hard constraint tier. When the
// food is blocked it returns the first violated constraint.
func (c Constraints) Permits(f FoodItem) (bool, *BlockingConstraint) {
	for _, want := range c.Diets {
		if !hasTag(f.DietTags, want) {
			return false, &BlockingConstraint{
				Code:   BlockedByDiet,
				Detail: fmt.Sprintf("%s does not satisfy diet restriction %q", f.Name, want),
			}
		}
	}
	for _, a := range c.Allergies {
		if hasString(f.Allergens, a) {
			return false, &BlockingConstraint{
				Code:   BlockedByAllergen,
				Detail: fmt.Sprintf("%s contains allergen %q", f.Name, a),
			}
		}
	}
	for _, id := range c.Dislikes {
		if f.ID == id {
			return false, &BlockingConstraint{
				Code:   BlockedByDislike,
				Detail: fmt.Sprintf("%s is on the dislike list", f.Name),
			}
		}
	}
	return true, nil
}

func hasTag(tags []RestrictionTag, want RestrictionTag) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func hasString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
