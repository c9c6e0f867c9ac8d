package planner

import (
	"fmt"
	"time"
)

// SwapRequest asks for one item in an existing plan to be replaced while the
// meal stays inside its original nutrient acceptance band.
type SwapRequest struct {
	SlotLabel   string
	Item        FoodID
	Catalog     *Catalog
	Constraints Constraints
	History     History
	Date        time.Time
}

// Swap re-solves the single category slot occupied by the replaced item. The
// input plan is never mutated: on success a new plan is returned with exactly
// one item changed and every other meal shared with the original. A
// replacement must keep the whole-meal deviation within the band the meal was
// originally accepted at; when nothing qualifies, Swap returns Unsatisfiable
// and the caller may relax tolerance and retry.
func (p *Planner) Swap(plan *DailyPlan, req SwapRequest) (*DailyPlan, *Unsatisfiable, error) {
	mealIdx := -1
	for i, m := range plan.Meals {
		if m.Slot.Label == req.SlotLabel {
			mealIdx = i
			break
		}
	}
	if mealIdx < 0 {
		return nil, nil, fmt.Errorf("%w: plan has no slot %q", ErrIncompletePlan, req.SlotLabel)
	}
	meal := plan.Meals[mealIdx]

	itemIdx := -1
	for i, it := range meal.Items {
		if it.FoodID == req.Item {
			itemIdx = i
			break
		}
	}
	if itemIdx < 0 {
		return nil, nil, fmt.Errorf("%w: slot %q has no item %q", ErrIncompletePlan, req.SlotLabel, req.Item)
	}

	replaced, ok := req.Catalog.Food(req.Item)
	if !ok {
		return nil, nil, fmt.Errorf("%w: item %q is not in the catalog", ErrIncompletePlan, req.Item)
	}

	// Nutrients the rest of the meal already provides; the replacement only
	// needs to cover the remaining deficit.
	var remaining Nutrients
	usedInMeal := make(map[FoodID]bool, len(meal.Items))
	for i, it := range meal.Items {
		if i == itemIdx {
			continue
		}
		remaining = remaining.Add(it.Nutrients)
		usedInMeal[it.FoodID] = true
	}
	deficitKcal := meal.Slot.Target.Kcal - remaining.Kcal
	if deficitKcal < 0 {
		deficitKcal = 0
	}

	// The original acceptance band: a swap may not regress the meal beyond
	// the deviation it was accepted at.
	tolerance := meal.Deviation + 1e-9

	scoreReq := SolveRequest{History: req.History, Date: req.Date}
	var (
		bestOther    *MealItem
		bestOtherKey float64
		selfOK       bool
	)
	for _, f := range req.Catalog.FoodsInCategory(replaced.Category) {
		if usedInMeal[f.ID] {
			continue
		}
		if ok, _ := req.Constraints.Permits(f); !ok {
			continue
		}
		item := p.solver.portionForKcal(f, deficitKcal)
		dev := p.solver.deviation(remaining.Add(item.Nutrients), meal.Slot.Target)
		if dev > tolerance {
			continue
		}
		if f.ID == req.Item {
			// Self-swap is a valid last resort but never preferred.
			selfOK = true
			continue
		}
		score := dev + p.solver.varietyPenalty(f.ID, scoreReq)
		if bestOther == nil || score < bestOtherKey || (score == bestOtherKey && item.FoodID < bestOther.FoodID) {
			it := item
			bestOther, bestOtherKey = &it, score
		}
	}

	if bestOther == nil {
		if selfOK {
			// Nothing else fits the band; keep the plan as it stands.
			clone := *plan
			return &clone, nil, nil
		}
		return nil, &Unsatisfiable{
			Slot:    meal.Slot.Label,
			Purpose: meal.Slot.Purpose,
			Blocking: []BlockingConstraint{{
				Code:     BlockedByTolerance,
				Category: replaced.Category,
				Detail:   fmt.Sprintf("no eligible %q replacement keeps the meal within its accepted deviation", replaced.Category),
			}},
		}, nil
	}

	newItems := make([]MealItem, len(meal.Items))
	copy(newItems, meal.Items)
	newItems[itemIdx] = *bestOther

	newMeal := meal
	newMeal.Items = newItems
	newMeal.Totals = sumItems(newItems)
	newMeal.Deviation = p.solver.deviation(newMeal.Totals, meal.Slot.Target)

	newMeals := make([]SelectedMeal, len(plan.Meals))
	copy(newMeals, plan.Meals)
	newMeals[mealIdx] = newMeal

	clone := *plan
	clone.Meals = newMeals
	return &clone, nil, nil
}
