package planner

import "time"

// Planner bundles the engine components behind one entry point. A Planner is
// immutable after construction and safe for concurrent use; every request
// carries its own catalog, profile, and history.
type Planner struct {
	tuning            Tuning
	policy            DistributionPolicy
	solver            *Solver
	hydrationInterval time.Duration
}

// New returns a planner with the stock tuning, distribution policy, and
// solver options.
func New() *Planner {
	return NewWithConfig(DefaultTuning(), DefaultDistributionPolicy(), DefaultSolverOptions())
}

// NewWithConfig returns a planner with caller-supplied coefficient tables.
func NewWithConfig(t Tuning, pol DistributionPolicy, opts SolverOptions) *Planner {
	return &Planner{
		tuning:            t,
		policy:            pol,
		solver:            NewSolver(opts),
		hydrationInterval: 2 * time.Hour,
	}
}

// PlanRequest is the full input for one planning day.
type PlanRequest struct {
	Profile  AthleteProfile
	Day      DayContext
	Sessions []TrainingSession
	Catalog  *Catalog
	History  History
}

// GenerateDailyPlan runs the whole pipeline: estimate the daily target,
// distribute it across timed slots, solve each slot, and assemble the
// schedule. Slots the solver cannot satisfy appear as Unsatisfied markers in
// the returned plan rather than failing the request.
func (p *Planner) GenerateDailyPlan(req PlanRequest) (*DailyPlan, error) {
	target, err := EstimateDailyTarget(req.Profile, req.Sessions, p.tuning)
	if err != nil {
		return nil, err
	}

	slots := BuildSlots(req.Day, req.Sessions)
	slots = DistributeTarget(target, slots, req.Sessions, p.policy)
	constraints := ConstraintsFromProfile(req.Profile)

	usedFoods := make(map[FoodID]bool)
	usedTemplates := make(map[TemplateID]bool)
	var meals []SelectedMeal
	var unsat []Unsatisfiable

	for _, slot := range slots {
		meal, u := p.solver.Select(SolveRequest{
			Slot:          slot,
			Catalog:       req.Catalog,
			Constraints:   constraints,
			History:       req.History,
			Date:          req.Day.Date,
			UsedFoods:     usedFoods,
			UsedTemplates: usedTemplates,
		})
		if u != nil {
			unsat = append(unsat, *u)
			continue
		}
		meals = append(meals, *meal)
		for _, it := range meal.Items {
			usedFoods[it.FoodID] = true
		}
		if meal.TemplateID != "" {
			usedTemplates[meal.TemplateID] = true
		}
	}

	return AssemblePlan(req.Day, slots, meals, unsat, req.Sessions, target, p.hydrationInterval)
}
