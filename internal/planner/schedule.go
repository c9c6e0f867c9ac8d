package planner

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	breakfastAfterWake  = time.Hour
	dinnerAfterSession  = time.Hour
	dinnerBeforeBed     = 3 * time.Hour
	preSessionLead      = 90 * time.Minute
	slotSpacing         = time.Hour
	recoveryAfterEnd    = 30 * time.Minute
	lastFoodBeforeBed   = 45 * time.Minute
	gapSnackThreshold   = 4 * time.Hour
	firstDrinkAfterWake = 30 * time.Minute
	hydrationDedupe     = 20 * time.Minute
	sipDuringMinimum    = 45 // minutes of training before a mid-session reminder
)

// fuelingRelevant reports whether a session is intense enough to anchor
// pre/post fueling slots around it.
func fuelingRelevant(s TrainingSession) bool {
	switch s.Intensity {
	case IntensityModerate, IntensityHigh, IntensityMax:
		return true
	}
	return false
}

// BuildSlots lays out the day's meal slots around wake, bed, and training.
// Pre-session snacks anchor first; the main meals arrange themselves around
// them, so an early-morning session pushes breakfast past the session instead
// of crowding out the snack. Targets are not assigned here; DistributeTarget
// fills them in.
func BuildSlots(day DayContext, sessions []TrainingSession) []Slot {
	var slots []Slot

	for _, s := range sessions {
		if !fuelingRelevant(s) {
			continue
		}
		proposed := s.Start.Add(-preSessionLead)
		if earliest := day.Wake.Add(15 * time.Minute); proposed.Before(earliest) {
			proposed = earliest
			if alt := s.Start.Add(-45 * time.Minute); alt.After(proposed) {
				proposed = alt
			}
		}
		if !proposed.Before(s.Start) || conflictsWith(slots, proposed) {
			continue
		}
		slots = append(slots, Slot{
			Label:   fmt.Sprintf("Pre-%s snack", s.Label),
			Purpose: SlotPreTraining,
			Time:    proposed,
		})
	}

	// Breakfast an hour after wake, unless a pre-session snack occupies that
	// window; then breakfast follows the first session as its first proper
	// meal.
	breakfast := day.Wake.Add(breakfastAfterWake)
	if conflictsWith(slots, breakfast) {
		if first := firstRelevantSession(sessions); first != nil {
			breakfast = first.End().Add(recoveryAfterEnd)
		}
	}
	slots = append(slots, Slot{Label: "Breakfast", Purpose: SlotBreakfast, Time: breakfast})

	// Dinner lands an hour after the day's last session when that falls in
	// the evening, otherwise three hours before bed.
	dinner := day.Bed.Add(-dinnerBeforeBed)
	if last := lastSessionEnd(sessions); !last.IsZero() {
		afterTraining := last.Add(dinnerAfterSession)
		if afterTraining.After(day.Bed.Add(-5*time.Hour)) && !afterTraining.After(day.Bed.Add(-lastFoodBeforeBed)) {
			dinner = afterTraining
		}
	}
	slots = append(slots, Slot{Label: "Dinner", Purpose: SlotDinner, Time: dinner})

	lunch := breakfast.Add(dinner.Sub(breakfast) / 2)
	slots = append(slots, Slot{Label: "Lunch", Purpose: SlotLunch, Time: lunch})

	for _, s := range sessions {
		if !fuelingRelevant(s) {
			continue
		}
		proposed := s.End().Add(recoveryAfterEnd)
		if proposed.After(day.Bed.Add(-lastFoodBeforeBed)) {
			continue
		}
		if conflictsWith(slots, proposed) {
			continue
		}
		slots = append(slots, Slot{
			Label:   fmt.Sprintf("Post-%s recovery", s.Label),
			Purpose: SlotRecovery,
			Time:    proposed,
		})
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Time.Before(slots[j].Time) })

	// Fill gaps longer than four hours with a midpoint snack.
	var gapSnacks []Slot
	for i := 0; i+1 < len(slots); i++ {
		gap := slots[i+1].Time.Sub(slots[i].Time)
		if gap > gapSnackThreshold {
			gapSnacks = append(gapSnacks, Slot{
				Label:   "Snack",
				Purpose: SlotSnack,
				Time:    slots[i].Time.Add(gap / 2),
			})
		}
	}
	slots = append(slots, gapSnacks...)
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Time.Before(slots[j].Time) })
	return slots
}

func firstRelevantSession(sessions []TrainingSession) *TrainingSession {
	var first *TrainingSession
	for i := range sessions {
		if !fuelingRelevant(sessions[i]) {
			continue
		}
		if first == nil || sessions[i].Start.Before(first.Start) {
			first = &sessions[i]
		}
	}
	return first
}

func lastSessionEnd(sessions []TrainingSession) time.Time {
	var last time.Time
	for _, s := range sessions {
		if end := s.End(); end.After(last) {
			last = end
		}
	}
	return last
}

func conflictsWith(slots []Slot, t time.Time) bool {
	for _, s := range slots {
		d := s.Time.Sub(t)
		if d < 0 {
			d = -d
		}
		if d < slotSpacing {
			return true
		}
	}
	return false
}

// GenerateHydration spreads the day's fluid target over evenly spaced
// reminders, with extra prompts bracketing each training session. Reminders
// closer together than twenty minutes are merged, keeping the earliest.
func GenerateHydration(day DayContext, sessions []TrainingSession, totalML int, interval time.Duration) []HydrationReminder {
	start := day.Wake.Add(firstDrinkAfterWake)
	end := day.Bed.Add(-lastFoodBeforeBed)
	if !end.After(start) {
		return nil
	}

	var reminders []HydrationReminder
	for t := start; !t.After(end); t = t.Add(interval) {
		reminders = append(reminders, HydrationReminder{Time: t, Label: "Drink water"})
	}

	for _, s := range sessions {
		reminders = append(reminders, HydrationReminder{
			Time:  s.Start.Add(-20 * time.Minute),
			Label: fmt.Sprintf("Hydrate before %s", s.Label),
		})
		if s.DurationMin >= sipDuringMinimum {
			reminders = append(reminders, HydrationReminder{
				Time:  s.Start.Add(time.Duration(s.DurationMin/2) * time.Minute),
				Label: fmt.Sprintf("Sip during %s", s.Label),
			})
		}
		reminders = append(reminders, HydrationReminder{
			Time:  s.End().Add(15 * time.Minute),
			Label: fmt.Sprintf("Hydrate after %s", s.Label),
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool { return reminders[i].Time.Before(reminders[j].Time) })

	deduped := reminders[:0]
	for _, r := range reminders {
		if len(deduped) > 0 && r.Time.Sub(deduped[len(deduped)-1].Time) < hydrationDedupe {
			continue
		}
		deduped = append(deduped, r)
	}

	if len(deduped) > 0 {
		per := int(math.Round(float64(totalML)/float64(len(deduped))/10) * 10)
		if per < 100 {
			per = 100
		}
		for i := range deduped {
			deduped[i].ML = per
		}
	}
	return deduped
}

// AssemblePlan builds the final DailyPlan from solved meals. Every built
// slot must be accounted for, either by a selected meal or by an
// Unsatisfiable marker; anything else is a sequencing bug in the caller.
func AssemblePlan(day DayContext, slots []Slot, meals []SelectedMeal, unsat []Unsatisfiable, sessions []TrainingSession, target NutrientTarget, hydrationInterval time.Duration) (*DailyPlan, error) {
	covered := make(map[string]bool, len(meals)+len(unsat))
	for _, m := range meals {
		covered[m.Slot.Label] = true
	}
	for _, u := range unsat {
		covered[u.Slot] = true
	}
	for _, s := range slots {
		if !covered[s.Label] {
			return nil, fmt.Errorf("%w: slot %q has neither a meal nor an unsatisfiable marker", ErrIncompletePlan, s.Label)
		}
	}

	ordered := make([]SelectedMeal, len(meals))
	copy(ordered, meals)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Slot.Time.Before(ordered[j].Slot.Time) })

	return &DailyPlan{
		Date:        day.Date,
		Target:      target,
		Meals:       ordered,
		Hydration:   GenerateHydration(day, sessions, target.FluidML, hydrationInterval),
		Unsatisfied: unsat,
	}, nil
}
