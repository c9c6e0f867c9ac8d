package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// DeviationWeights weight each nutrient's relative deviation in the meal
// score. Energy dominates, then protein, then carbs and fat.
type DeviationWeights struct {
	Kcal    float64
	Protein float64
	Carbs   float64
	Fat     float64
}

// SolverOptions bound the search and tune the soft-constraint scoring.
type SolverOptions struct {
	// CandidatesPerSlot caps how many foods are tried per template category
	// slot. Category slot counts are small (≤5), so the search stays
	// near-exhaustive yet bounded.
	CandidatesPerSlot int
	// NoRepeatDays is the variety window: foods served within this many
	// days are penalised, not excluded.
	NoRepeatDays int
	// RepeatPenalty scales the history penalty; it decays linearly as the
	// last use recedes toward NoRepeatDays.
	RepeatPenalty float64
	// SameDayPenalty discourages repeating a food within the planning day.
	SameDayPenalty float64
	// TemplateReusePenalty discourages serving the same template twice in
	// one day.
	TemplateReusePenalty float64
	Weights              DeviationWeights
	// Portions are rounded to PortionStepGrams with a MinPortionGrams floor.
	MinPortionGrams  float64
	PortionStepGrams float64
}

// DefaultSolverOptions returns the stock search bounds and weights.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		CandidatesPerSlot:    4,
		NoRepeatDays:         3,
		RepeatPenalty:        0.25,
		SameDayPenalty:       0.4,
		TemplateReusePenalty: 0.3,
		Weights:              DeviationWeights{Kcal: 1.0, Protein: 0.6, Carbs: 0.25, Fat: 0.15},
		MinPortionGrams:      20,
		PortionStepGrams:     10,
	}
}

// Solver selects foods for one slot at a time. It holds no state between
// calls; given identical inputs it produces identical output.
type Solver struct {
	opts SolverOptions
}

// NewSolver builds a solver with the given options.
func NewSolver(opts SolverOptions) *Solver {
	return &Solver{opts: opts}
}

// SolveRequest carries everything one slot selection needs. UsedFoods and
// UsedTemplates track choices made earlier in the same day; History is the
// caller-supplied recent-use record feeding the variety penalty.
type SolveRequest struct {
	Slot          Slot
	Catalog       *Catalog
	Constraints   Constraints
	History       History
	Date          time.Time
	UsedFoods     map[FoodID]bool
	UsedTemplates map[TemplateID]bool
	// Exclude removes specific items from consideration (swap support).
	Exclude map[FoodID]bool
}

// Select picks the minimal-deviation food set for the slot. Exactly one of
// the returns is non-nil: a meal on success, an Unsatisfiable marker when no
// combination can honour every hard constraint. Unsatisfiable is an expected
// outcome, not a failure.
func (s *Solver) Select(req SolveRequest) (*SelectedMeal, *Unsatisfiable) {
	eligible, rejections := s.eligibleFoods(req)
	if len(eligible) == 0 {
		return nil, &Unsatisfiable{
			Slot:     req.Slot.Label,
			Purpose:  req.Slot.Purpose,
			Blocking: summarizeRejections(req.Catalog.NumFoods(), rejections),
		}
	}

	templates := req.Catalog.TemplatesFor(req.Slot.Purpose)
	if len(templates) == 0 {
		// No template describes this slot; compose a meal directly from
		// eligible foods by macro role.
		return s.composeAdHoc(req, eligible), nil
	}

	best, blocking := s.searchTemplates(req, templates, eligible)
	if best == nil {
		return nil, &Unsatisfiable{
			Slot:     req.Slot.Label,
			Purpose:  req.Slot.Purpose,
			Blocking: blocking,
		}
	}
	return best, nil
}

// eligibleFoods applies the hard constraint tier to the whole catalog,
// tallying why items were rejected for later explanation.
func (s *Solver) eligibleFoods(req SolveRequest) ([]FoodItem, map[ConstraintCode][]string) {
	var out []FoodItem
	rejections := make(map[ConstraintCode][]string)
	for _, f := range req.Catalog.Foods() {
		if req.Exclude[f.ID] {
			continue
		}
		ok, why := req.Constraints.Permits(f)
		if !ok {
			rejections[why.Code] = append(rejections[why.Code], why.Detail)
			continue
		}
		out = append(out, f)
	}
	return out, rejections
}

func summarizeRejections(catalogSize int, rejections map[ConstraintCode][]string) []BlockingConstraint {
	if catalogSize == 0 {
		return []BlockingConstraint{{Code: BlockedCatalog, Detail: "food catalog is empty"}}
	}
	codes := make([]ConstraintCode, 0, len(rejections))
	for code := range rejections {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	out := make([]BlockingConstraint, 0, len(codes))
	for _, code := range codes {
		details := rejections[code]
		out = append(out, BlockingConstraint{
			Code:   code,
			Detail: fmt.Sprintf("%d items blocked (e.g. %s)", len(details), details[0]),
		})
	}
	return out
}

// searchTemplates runs the bounded combinatorial search over every feasible
// template and returns the lowest-scoring meal. When every template is
// infeasible it returns the deduplicated blocking constraints instead.
func (s *Solver) searchTemplates(req SolveRequest, templates []MealTemplate, eligible []FoodItem) (*SelectedMeal, []BlockingConstraint) {
	byCategory := make(map[FoodCategory][]FoodItem)
	byID := make(map[FoodID]FoodItem, len(eligible))
	for _, f := range eligible {
		byCategory[f.Category] = append(byCategory[f.Category], f)
		byID[f.ID] = f
	}

	var (
		best        *SelectedMeal
		bestScore   float64
		bestKey     string
		blockingSet = map[string]BlockingConstraint{}
	)

	for _, tmpl := range templates {
		candidates, blocked := s.templateCandidates(req, tmpl, byCategory, byID)
		if blocked != nil {
			key := string(blocked.Code) + "/" + string(blocked.Category)
			if _, seen := blockingSet[key]; !seen {
				blockingSet[key] = *blocked
			}
			continue
		}

		templatePenalty := 0.0
		if req.UsedTemplates[tmpl.ID] {
			templatePenalty = s.opts.TemplateReusePenalty
		}

		s.enumerate(tmpl, candidates, nil, func(combo []FoodItem) {
			items, ok := s.scalePortions(tmpl, combo, req.Slot.Target)
			if !ok {
				return
			}
			totals := sumItems(items)
			dev := s.deviation(totals, req.Slot.Target)
			score := dev + templatePenalty
			for _, f := range combo {
				score += s.varietyPenalty(f.ID, req)
			}

			key := string(tmpl.ID) + ":" + comboKey(combo)
			if best == nil || score < bestScore || (score == bestScore && key < bestKey) {
				meal := &SelectedMeal{
					Slot:         req.Slot,
					TemplateID:   tmpl.ID,
					TemplateName: tmpl.Name,
					Items:        items,
					Totals:       totals,
					Deviation:    dev,
					Note:         noteFor(req.Slot.Purpose),
				}
				best, bestScore, bestKey = meal, score, key
			}
		})
	}

	if best != nil {
		return best, nil
	}
	blocking := make([]BlockingConstraint, 0, len(blockingSet))
	keys := make([]string, 0, len(blockingSet))
	for k := range blockingSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		blocking = append(blocking, blockingSet[k])
	}
	return nil, blocking
}

// templateCandidates resolves each template slot to its ranked candidate
// foods. A nil blocking return means the template is feasible.
func (s *Solver) templateCandidates(req SolveRequest, tmpl MealTemplate, byCategory map[FoodCategory][]FoodItem, byID map[FoodID]FoodItem) ([][]FoodItem, *BlockingConstraint) {
	candidates := make([][]FoodItem, len(tmpl.Slots))
	for i, ts := range tmpl.Slots {
		if ts.FoodID != "" {
			f, ok := byID[ts.FoodID]
			if !ok {
				return nil, s.categoryBlocker(req, ts.Category, fmt.Sprintf("pinned item %q is not eligible", ts.FoodID))
			}
			candidates[i] = []FoodItem{f}
			continue
		}
		pool := byCategory[ts.Category]
		if len(pool) == 0 {
			return nil, s.categoryBlocker(req, ts.Category, "")
		}
		ranked := make([]FoodItem, len(pool))
		copy(ranked, pool)
		sort.SliceStable(ranked, func(a, b int) bool {
			pa, pb := s.varietyPenalty(ranked[a].ID, req), s.varietyPenalty(ranked[b].ID, req)
			if pa != pb {
				return pa < pb
			}
			return ranked[a].ID < ranked[b].ID
		})
		if len(ranked) > s.opts.CandidatesPerSlot {
			ranked = ranked[:s.opts.CandidatesPerSlot]
		}
		candidates[i] = ranked
	}
	return candidates, nil
}

// categoryBlocker explains why a template category has no eligible items,
// citing the hard constraint that emptied it.
func (s *Solver) categoryBlocker(req SolveRequest, cat FoodCategory, detail string) *BlockingConstraint {
	if detail == "" {
		raw := req.Catalog.FoodsInCategory(cat)
		if len(raw) == 0 {
			detail = fmt.Sprintf("catalog has no %q items", cat)
		} else {
			// Cite the constraint that blocked this category's items.
			var sample string
			for _, f := range raw {
				if req.Exclude[f.ID] {
					continue
				}
				if ok, why := req.Constraints.Permits(f); !ok && sample == "" {
					sample = why.Detail
				}
			}
			if sample == "" {
				sample = "all items excluded"
			}
			detail = fmt.Sprintf("no eligible %q item: %s", cat, sample)
		}
	}
	return &BlockingConstraint{Code: BlockedCategory, Category: cat, Detail: detail}
}

// enumerate walks every combination of one candidate per template slot,
// skipping combos that repeat a food within the meal.
func (s *Solver) enumerate(tmpl MealTemplate, candidates [][]FoodItem, combo []FoodItem, visit func([]FoodItem)) {
	if len(combo) == len(candidates) {
		visit(combo)
		return
	}
	for _, f := range candidates[len(combo)] {
		dup := false
		for _, chosen := range combo {
			if chosen.ID == f.ID {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		s.enumerate(tmpl, candidates, append(combo, f), visit)
	}
}

// scalePortions scales the template's base portions so the meal approaches
// the slot's kcal target, rounding to the portion step with a minimum floor.
func (s *Solver) scalePortions(tmpl MealTemplate, combo []FoodItem, target NutrientTarget) ([]MealItem, bool) {
	baseKcal := 0.0
	baseGrams := make([]float64, len(combo))
	for i, f := range combo {
		g := tmpl.Slots[i].Grams
		if g <= 0 {
			g = defaultGramsFor(tmpl.Slots[i].Category)
		}
		baseGrams[i] = g
		baseKcal += f.Per100g.Kcal * g / 100
	}
	if baseKcal <= 0 {
		return nil, false
	}
	scale := target.Kcal / baseKcal

	items := make([]MealItem, len(combo))
	for i, f := range combo {
		items[i] = s.buildItem(f, baseGrams[i]*scale)
	}
	return items, true
}

func (s *Solver) buildItem(f FoodItem, grams float64) MealItem {
	grams = math.Round(grams/s.opts.PortionStepGrams) * s.opts.PortionStepGrams
	if grams < s.opts.MinPortionGrams {
		grams = s.opts.MinPortionGrams
	}
	factor := grams / 100
	return MealItem{
		FoodID: f.ID,
		Name:   f.Name,
		Grams:  grams,
		Nutrients: Nutrients{
			Kcal:     round1(f.Per100g.Kcal * factor),
			ProteinG: round1(f.Per100g.ProteinG * factor),
			CarbsG:   round1(f.Per100g.CarbsG * factor),
			FatG:     round1(f.Per100g.FatG * factor),
		},
	}
}

// deviation is the weighted relative distance between achieved nutrients and
// the slot target. Nutrients without a positive target contribute nothing.
func (s *Solver) deviation(actual Nutrients, target NutrientTarget) float64 {
	dev := s.opts.Weights.Kcal * relDev(actual.Kcal, target.Kcal)
	dev += s.opts.Weights.Protein * relDev(actual.ProteinG, target.ProteinG)
	dev += s.opts.Weights.Carbs * relDev(actual.CarbsG, target.CarbsG)
	dev += s.opts.Weights.Fat * relDev(actual.FatG, target.FatG)
	return dev
}

func relDev(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Abs(actual-target) / target
}

// varietyPenalty scores the soft no-repeat constraint: foods served earlier
// today or within the recent-history window cost extra but stay eligible.
func (s *Solver) varietyPenalty(id FoodID, req SolveRequest) float64 {
	p := 0.0
	if req.UsedFoods[id] {
		p += s.opts.SameDayPenalty
	}
	if last, ok := req.History[id]; ok && s.opts.NoRepeatDays > 0 {
		days := int(req.Date.Sub(last).Hours() / 24)
		if days >= 0 && days < s.opts.NoRepeatDays {
			p += s.opts.RepeatPenalty * float64(s.opts.NoRepeatDays-days) / float64(s.opts.NoRepeatDays)
		}
	}
	return p
}

// composeAdHoc builds a meal without a template: the highest-carb,
// highest-protein, and highest-fat eligible foods split the slot's energy by
// role. Snack-like slots lean almost entirely on carbs.
func (s *Solver) composeAdHoc(req SolveRequest, eligible []FoodItem) *SelectedMeal {
	carb := pickByNutrient(eligible, func(n Nutrients) float64 { return n.CarbsG }, req, s)
	protein := pickByNutrient(eligible, func(n Nutrients) float64 { return n.ProteinG }, req, s)
	fat := pickByNutrient(eligible, func(n Nutrients) float64 { return n.FatG }, req, s)

	k := req.Slot.Target.Kcal
	var items []MealItem
	switch req.Slot.Purpose {
	case SlotPreTraining, SlotSnack, SlotRecovery:
		second := protein
		if req.Slot.Purpose == SlotSnack {
			second = fat
		}
		items = append(items, s.portionForKcal(carb, k*0.8))
		if second.ID != carb.ID {
			items = append(items, s.portionForKcal(second, k*0.2))
		}
	default:
		items = append(items, s.portionForKcal(carb, k*0.6))
		if protein.ID != carb.ID {
			items = append(items, s.portionForKcal(protein, k*0.25))
		}
		if fat.ID != carb.ID && fat.ID != protein.ID {
			items = append(items, s.portionForKcal(fat, k*0.15))
		}
	}

	totals := sumItems(items)
	return &SelectedMeal{
		Slot:      req.Slot,
		Items:     items,
		Totals:    totals,
		Deviation: s.deviation(totals, req.Slot.Target),
		Note:      noteFor(req.Slot.Purpose),
	}
}

func (s *Solver) portionForKcal(f FoodItem, kcal float64) MealItem {
	grams := s.opts.MinPortionGrams
	if f.Per100g.Kcal > 0 {
		grams = kcal / f.Per100g.Kcal * 100
	}
	return s.buildItem(f, grams)
}

// pickByNutrient returns the eligible food richest in the given nutrient,
// preferring less recently used foods and breaking remaining ties by id.
func pickByNutrient(eligible []FoodItem, nutrient func(Nutrients) float64, req SolveRequest, s *Solver) FoodItem {
	best := eligible[0]
	for _, f := range eligible[1:] {
		bp := s.varietyPenalty(best.ID, req)
		fp := s.varietyPenalty(f.ID, req)
		bv, fv := nutrient(best.Per100g)-bp*10, nutrient(f.Per100g)-fp*10
		if fv > bv || (fv == bv && f.ID < best.ID) {
			best = f
		}
	}
	return best
}

func defaultGramsFor(cat FoodCategory) float64 {
	switch cat {
	case CategoryCarb:
		return 180
	case CategoryProtein:
		return 140
	case CategoryFat:
		return 20
	case CategoryFruit:
		return 150
	case CategoryDairy:
		return 170
	case CategoryVeg:
		return 150
	case CategoryBeverage:
		return 500
	default:
		return 120
	}
}

func sumItems(items []MealItem) Nutrients {
	var total Nutrients
	for _, it := range items {
		total = total.Add(it.Nutrients)
	}
	return total
}

func comboKey(combo []FoodItem) string {
	ids := make([]string, len(combo))
	for i, f := range combo {
		ids[i] = string(f.ID)
	}
	return strings.Join(ids, ",")
}

func noteFor(p SlotPurpose) string {
	switch p {
	case SlotBreakfast:
		return "High-carb breakfast with some protein and fat to fuel the morning."
	case SlotLunch:
		return "Balanced lunch for sustained energy through the day."
	case SlotDinner:
		return "Evening meal with extra protein to support recovery."
	case SlotPreTraining:
		return "Mostly fast-digesting carbs before your session for quick energy."
	case SlotRecovery:
		return "Recovery fuel: carbs to refill glycogen plus protein for muscle repair."
	default:
		return "Quick snack to top up energy between meals."
	}
}
