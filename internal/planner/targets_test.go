package planner

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributeTargetReconcilesKcal(t *testing.T) {
	daily := NutrientTarget{Kcal: 2250, ProteinG: 126, CarbsG: 310.5, FatG: 56, FluidML: 2450}
	slots := BuildSlots(restDayContext(), nil)

	out := DistributeTarget(daily, slots, nil, DefaultDistributionPolicy())
	require.Len(t, out, len(slots))

	var sum float64
	for _, s := range out {
		assert.Equal(t, s.Target.Kcal, math.Trunc(s.Target.Kcal), "slot kcal must be whole")
		assert.Greater(t, s.Target.Kcal, 0.0)
		sum += s.Target.Kcal
	}
	assert.Equal(t, daily.Kcal, sum, "slot kcal must reconcile exactly with the daily total")
}

func TestDistributeTargetReconciliationFuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	purposes := []SlotPurpose{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack, SlotPreTraining, SlotRecovery}

	for i := 0; i < 500; i++ {
		daily := NutrientTarget{Kcal: float64(1500 + rng.Intn(61)*50)}
		n := 1 + rng.Intn(6)
		slots := make([]Slot, n)
		for j := range slots {
			slots[j] = Slot{
				Label:   string(purposes[rng.Intn(len(purposes))]) + string(rune('A'+j)),
				Purpose: purposes[rng.Intn(len(purposes))],
				Time:    at(6, 0).Add(time.Duration(j) * 2 * time.Hour),
			}
		}
		out := DistributeTarget(daily, slots, nil, DefaultDistributionPolicy())
		var sum float64
		for _, s := range out {
			sum += s.Target.Kcal
		}
		assert.Equal(t, daily.Kcal, sum, "iteration %d: %d slots over %.0f kcal", i, n, daily.Kcal)
	}
}

func TestDistributeTargetRecoveryBonus(t *testing.T) {
	daily := NutrientTarget{Kcal: 2700, ProteinG: 126, CarbsG: 330, FatG: 56}
	session := morningSession() // ends 08:00, high intensity
	slots := []Slot{
		{Label: "Breakfast", Purpose: SlotBreakfast, Time: at(8, 30)},
		{Label: "Lunch", Purpose: SlotLunch, Time: at(14, 0)},
		{Label: "Dinner", Purpose: SlotDinner, Time: at(19, 30)},
	}

	plain := DistributeTarget(daily, slots, nil, DefaultDistributionPolicy())
	boosted := DistributeTarget(daily, slots, []TrainingSession{session}, DefaultDistributionPolicy())

	// The first slot after the hard session absorbs the recovery share.
	assert.Greater(t, boosted[0].Target.Kcal, plain[0].Target.Kcal)
	assert.Less(t, boosted[1].Target.Kcal, plain[1].Target.Kcal)
}

func TestDistributeTargetCarbWeighting(t *testing.T) {
	daily := NutrientTarget{Kcal: 2700, ProteinG: 126, CarbsG: 330, FatG: 56}
	session := TrainingSession{
		Label: "Intervals", Start: at(18, 0), DurationMin: 60,
		Intensity: IntensityHigh, Modality: ModalityEndurance,
	}
	slots := []Slot{
		{Label: "Breakfast", Purpose: SlotBreakfast, Time: at(8, 0)},
		{Label: "Pre snack", Purpose: SlotPreTraining, Time: at(16, 30)},
		{Label: "Dinner", Purpose: SlotDinner, Time: at(20, 0)},
	}
	out := DistributeTarget(daily, slots, []TrainingSession{session}, DefaultDistributionPolicy())

	// The pre-session slot shifts its energy toward carbohydrate.
	pre := out[1].Target
	carbShare := pre.CarbsG * 4 / pre.Kcal
	assert.InDelta(t, 0.65, carbShare, 0.02)

	// A slot with no session ahead keeps the daily macro balance.
	breakfast := out[0].Target
	assert.Less(t, breakfast.CarbsG*4/breakfast.Kcal, 0.62)
}

func TestDistributeTargetMealNearSessionIsCarbWeighted(t *testing.T) {
	daily := NutrientTarget{Kcal: 2700, ProteinG: 126, CarbsG: 330, FatG: 56}
	session := TrainingSession{
		Label: "Intervals", Start: at(13, 0), DurationMin: 60,
		Intensity: IntensityHigh, Modality: ModalityEndurance,
	}
	slots := []Slot{
		{Label: "Lunch", Purpose: SlotLunch, Time: at(11, 30)},
	}
	out := DistributeTarget(daily, slots, []TrainingSession{session}, DefaultDistributionPolicy())

	lunch := out[0].Target
	assert.InDelta(t, 0.65, lunch.CarbsG*4/lunch.Kcal, 0.02,
		"a main meal within the pre-training lead gets the carb profile")
}

func TestDistributeTargetEmptySlots(t *testing.T) {
	out := DistributeTarget(NutrientTarget{Kcal: 2250}, nil, nil, DefaultDistributionPolicy())
	assert.Empty(t, out)
}

func TestDistributeTargetDoesNotMutateInput(t *testing.T) {
	slots := []Slot{{Label: "Breakfast", Purpose: SlotBreakfast, Time: at(8, 0)}}
	DistributeTarget(NutrientTarget{Kcal: 2250}, slots, nil, DefaultDistributionPolicy())
	assert.Zero(t, slots[0].Target.Kcal, "caller's slice must stay untouched")
}

func TestApportionDeterministicTies(t *testing.T) {
	fractions := []float64{1, 1, 1}
	first := apportion(100, fractions, 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, apportion(100, fractions, 3))
	}
	total := 0
	for _, p := range first {
		total += p
	}
	assert.Equal(t, 100, total)
}
