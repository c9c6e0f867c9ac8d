package planner

import (
	"fmt"
	"math"
)

// Tuning holds the numeric coefficients of the expenditure model. They are
// sports-nutrition calibration data, not algorithm logic, so callers can
// replace the whole table without touching the engine. DefaultTuning
// reproduces common published heuristics (Mifflin-St Jeor baseline, MET
// increments, 35 ml/kg fluid).
type Tuning struct {
	// ActivityFactors multiply BMR to cover non-training daily activity.
	ActivityFactors map[ActivityLevel]float64
	// MET maps (modality, intensity) to a MET value for session energy.
	// Each intensity row must be non-decreasing low→max so that raising a
	// session's intensity never lowers the daily target.
	MET map[Modality]map[Intensity]float64
	// DefaultMET backstops unknown modality/intensity combinations.
	DefaultMET float64
	// GoalKcalAdjust shifts the daily total per goal (negative for a cut).
	GoalKcalAdjust map[Goal]float64
	// ProteinGPerKG is the per-goal protein floor in g per kg body mass.
	ProteinGPerKG map[Goal]float64
	// FatGPerKG sets fat intake; carbs take the remaining energy.
	FatGPerKG float64
	// Fluid coefficients: baseline per kg, per training hour, and an extra
	// bump per hour trained at high or max intensity.
	FluidBaseMLPerKG       float64
	FluidMLPerTrainingHour float64
	FluidMLPerHardHour     float64
}

// DefaultTuning returns the stock coefficient table.
func DefaultTuning() Tuning {
	return Tuning{
		ActivityFactors: map[ActivityLevel]float64{
			ActivityLow:    1.2,
			ActivityNormal: 1.35,
			ActivityHigh:   1.5,
		},
		MET: map[Modality]map[Intensity]float64{
			ModalityStrength:    {IntensityLow: 3.5, IntensityModerate: 5.0, IntensityHigh: 6.0, IntensityMax: 7.0},
			ModalityEndurance:   {IntensityLow: 6.0, IntensityModerate: 8.0, IntensityHigh: 10.0, IntensityMax: 11.5},
			ModalitySkill:       {IntensityLow: 3.0, IntensityModerate: 4.0, IntensityHigh: 5.0, IntensityMax: 6.0},
			ModalityMixed:       {IntensityLow: 5.0, IntensityModerate: 7.0, IntensityHigh: 9.0, IntensityMax: 10.5},
			ModalityCompetition: {IntensityLow: 9.0, IntensityModerate: 11.0, IntensityHigh: 12.0, IntensityMax: 13.0},
		},
		DefaultMET:     6.0,
		GoalKcalAdjust: map[Goal]float64{GoalLose: -300, GoalMaintain: 0, GoalGain: 250},
		ProteinGPerKG:  map[Goal]float64{GoalLose: 2.1, GoalMaintain: 1.8, GoalGain: 1.8},
		FatGPerKG:      0.8,

		FluidBaseMLPerKG:       35,
		FluidMLPerTrainingHour: 500,
		FluidMLPerHardHour:     250,
	}
}

// EstimateDailyTarget computes the athlete's total daily energy, macro, and
// fluid needs from the profile and the day's training sessions. An empty
// session list yields the rest-day baseline; it is never an error.
func EstimateDailyTarget(p AthleteProfile, sessions []TrainingSession, t Tuning) (NutrientTarget, error) {
	if p.MassKG <= 0 {
		return NutrientTarget{}, fmt.Errorf("%w: body mass must be positive, got %.1f", ErrInvalidProfile, p.MassKG)
	}
	adjust, ok := t.GoalKcalAdjust[p.Goal]
	if !ok {
		return NutrientTarget{}, fmt.Errorf("%w: unrecognized goal %q", ErrInvalidProfile, p.Goal)
	}

	// Mifflin-St Jeor resting baseline.
	bmr := 10*p.MassKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	af, ok := t.ActivityFactors[p.ActivityLevel]
	if !ok {
		af = t.ActivityFactors[ActivityNormal]
	}
	base := bmr * af

	var sessionKcal float64
	for _, s := range sessions {
		sessionKcal += t.met(s.Modality, s.Intensity) * p.MassKG * s.Hours()
	}

	total := base + sessionKcal + adjust
	total = math.Round(total/50) * 50

	proteinG := t.ProteinGPerKG[p.Goal] * p.MassKG
	fatG := t.FatGPerKG * p.MassKG
	carbsKcal := total - proteinG*4 - fatG*9
	if carbsKcal < 0 {
		carbsKcal = 0
	}

	fluid := t.FluidBaseMLPerKG * p.MassKG
	for _, s := range sessions {
		fluid += t.FluidMLPerTrainingHour * s.Hours()
		if s.Intensity == IntensityHigh || s.Intensity == IntensityMax {
			fluid += t.FluidMLPerHardHour * s.Hours()
		}
	}

	return NutrientTarget{
		Kcal:     total,
		ProteinG: round1(proteinG),
		CarbsG:   round1(carbsKcal / 4),
		FatG:     round1(fatG),
		FluidML:  int(math.Round(fluid/10) * 10),
	}, nil
}

func (t Tuning) met(m Modality, i Intensity) float64 {
	row, ok := t.MET[m]
	if !ok {
		row = t.MET[ModalityMixed]
	}
	if v, ok := row[i]; ok {
		return v
	}
	return t.DefaultMET
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
