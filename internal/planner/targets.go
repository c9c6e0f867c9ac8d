package planner

import (
	"math"
	"sort"
	"time"
)

// DistributionPolicy controls how the daily target is split across slots.
type DistributionPolicy struct {
	// Fractions are base kcal shares per slot purpose. They are renormalised
	// over the slots actually present, so they need not sum to one.
	Fractions map[SlotPurpose]float64
	// DefaultFraction backstops purposes missing from the table.
	DefaultFraction float64
	// RecoveryBonus is extra share shifted to the slot nearest-following a
	// high or max intensity session.
	RecoveryBonus float64
	// PreTrainingLead is how soon before a session a slot must fall to get
	// the carbohydrate-weighted macro profile.
	PreTrainingLead time.Duration
	// PreTrainingCarbShare is the kcal share of carbs in a carb-weighted
	// slot; protein takes PreTrainingProteinShare and fat the rest.
	PreTrainingCarbShare    float64
	PreTrainingProteinShare float64
}

// DefaultDistributionPolicy returns the stock split.
func DefaultDistributionPolicy() DistributionPolicy {
	return DistributionPolicy{
		Fractions: map[SlotPurpose]float64{
			SlotBreakfast:   0.25,
			SlotLunch:       0.30,
			SlotDinner:      0.30,
			SlotSnack:       0.05,
			SlotPreTraining: 0.06,
			SlotRecovery:    0.08,
		},
		DefaultFraction:         0.05,
		RecoveryBonus:           0.04,
		PreTrainingLead:         2 * time.Hour,
		PreTrainingCarbShare:    0.65,
		PreTrainingProteinShare: 0.15,
	}
}

// DistributeTarget assigns each slot its share of the daily target. Slot
// kcal are integers and reconcile exactly against the rounded daily total;
// macro grams follow the slot's kcal share, except carb-weighted slots
// (those shortly before a session) which shift energy toward carbohydrate.
// The input slice is not modified.
func DistributeTarget(daily NutrientTarget, slots []Slot, sessions []TrainingSession, pol DistributionPolicy) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	if len(out) == 0 {
		return out
	}

	fractions := make([]float64, len(out))
	var sum float64
	for i, s := range out {
		f, ok := pol.Fractions[s.Purpose]
		if !ok {
			f = pol.DefaultFraction
		}
		fractions[i] = f
	}

	// Recovery emphasis: the first slot at or after the end of a hard
	// session absorbs the bonus share.
	for _, sess := range sessions {
		if sess.Intensity != IntensityHigh && sess.Intensity != IntensityMax {
			continue
		}
		if i := nearestFollowingSlot(out, sess.End()); i >= 0 {
			fractions[i] += pol.RecoveryBonus
		}
	}

	for _, f := range fractions {
		sum += f
	}
	if sum <= 0 {
		sum = 1
	}

	// Integer kcal per slot via largest remainder so the total reconciles
	// exactly with the (already rounded) daily target.
	totalKcal := int(math.Round(daily.Kcal))
	kcals := apportion(totalKcal, fractions, sum)

	for i := range out {
		share := fractions[i] / sum
		slotKcal := float64(kcals[i])

		t := NutrientTarget{Kcal: slotKcal}
		if carbWeighted(out[i], sessions, pol.PreTrainingLead) {
			t.CarbsG = round1(slotKcal * pol.PreTrainingCarbShare / 4)
			t.ProteinG = round1(slotKcal * pol.PreTrainingProteinShare / 4)
			fatKcal := slotKcal * (1 - pol.PreTrainingCarbShare - pol.PreTrainingProteinShare)
			if fatKcal < 0 {
				fatKcal = 0
			}
			t.FatG = round1(fatKcal / 9)
		} else {
			t.ProteinG = round1(daily.ProteinG * share)
			t.CarbsG = round1(daily.CarbsG * share)
			t.FatG = round1(daily.FatG * share)
		}
		out[i].Target = t
	}
	return out
}

// apportion splits total into integer parts proportional to fractions,
// assigning leftover units to the largest remainders (index order breaks
// ties, keeping the result deterministic).
func apportion(total int, fractions []float64, sum float64) []int {
	n := len(fractions)
	parts := make([]int, n)
	remainders := make([]float64, n)
	assigned := 0
	for i, f := range fractions {
		exact := float64(total) * f / sum
		parts[i] = int(math.Floor(exact))
		remainders[i] = exact - float64(parts[i])
		assigned += parts[i]
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return remainders[order[a]] > remainders[order[b]] })
	for k := 0; k < total-assigned; k++ {
		parts[order[k%n]]++
	}
	return parts
}

func nearestFollowingSlot(slots []Slot, t time.Time) int {
	best := -1
	for i, s := range slots {
		if s.Time.Before(t) {
			continue
		}
		if best < 0 || s.Time.Before(slots[best].Time) {
			best = i
		}
	}
	return best
}

// carbWeighted reports whether the slot precedes a session closely enough
// to get the carbohydrate-heavy macro profile. Pre-training slots always
// qualify; other slots qualify when a session starts within the lead window.
func carbWeighted(s Slot, sessions []TrainingSession, lead time.Duration) bool {
	if s.Purpose == SlotPreTraining {
		return true
	}
	for _, sess := range sessions {
		if !fuelingRelevant(sess) {
			continue
		}
		until := sess.Start.Sub(s.Time)
		if until >= 0 && until <= lead {
			return true
		}
	}
	return false
}
