package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/models"
	"github.com/fuelcast/backend/internal/planner"
)

var (
	ErrPlanNotFound = errors.New("plan not found")

	// ErrInvalidInput marks malformed client input such as unparseable
	// dates or clock times.
	ErrInvalidInput = errors.New("invalid input")
)

const historyWindow = 14 * 24 * time.Hour

// PlanService generates, stores, and amends daily nutrition plans
type PlanService struct {
	db       *gorm.DB
	redis    *redis.Client
	profiles *ProfileService
	catalog  *CatalogService
	engine   *planner.Planner
}

// NewPlanService creates a new PlanService instance
func NewPlanService(db *gorm.DB, redisClient *redis.Client, profiles *ProfileService, catalog *CatalogService) *PlanService {
	return &PlanService{
		db:       db,
		redis:    redisClient,
		profiles: profiles,
		catalog:  catalog,
		engine:   planner.New(),
	}
}

// SessionInput is one training session as submitted by the client. Start is a
// wall-clock time of day in 15:04 form on the plan date.
type SessionInput struct {
	Label       string `json:"label" binding:"required"`
	Start       string `json:"start" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required,gt=0"`
	Intensity   string `json:"intensity" binding:"required,oneof=low moderate high max"`
	Modality    string `json:"modality" binding:"required"`
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, date)
	}
	return d, nil
}

// clockOn anchors an HH:MM wall-clock string on the given date.
func clockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad time %q", ErrInvalidInput, clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func buildDayContext(day time.Time, profile *models.AthleteProfile) (planner.DayContext, error) {
	wake, err := clockOn(day, profile.WakeTime)
	if err != nil {
		return planner.DayContext{}, err
	}
	bed, err := clockOn(day, profile.BedTime)
	if err != nil {
		return planner.DayContext{}, err
	}
	if !bed.After(wake) {
		// Bed times past midnight roll into the next day.
		bed = bed.Add(24 * time.Hour)
	}
	return planner.DayContext{Date: day, Wake: wake, Bed: bed}, nil
}

func buildSessions(day time.Time, inputs []SessionInput) ([]planner.TrainingSession, error) {
	sessions := make([]planner.TrainingSession, 0, len(inputs))
	for _, in := range inputs {
		start, err := clockOn(day, in.Start)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, planner.TrainingSession{
			Label:       in.Label,
			Start:       start,
			DurationMin: in.DurationMin,
			Intensity:   planner.Intensity(in.Intensity),
			Modality:    planner.Modality(in.Modality),
		})
	}
	return sessions, nil
}

func historyKey(userID uuid.UUID) string {
	return fmt.Sprintf("plan:history:%s", userID)
}

// loadHistory reads the recently-served food map from Redis. A missing or
// unreachable Redis yields an empty history, never an error.
func (s *PlanService) loadHistory(ctx context.Context, userID uuid.UUID) planner.History {
	history := planner.History{}
	if s.redis == nil {
		return history
	}
	entries, err := s.redis.HGetAll(ctx, historyKey(userID)).Result()
	if err != nil {
		return history
	}
	cutoff := time.Now().UTC().Add(-historyWindow)
	for foodID, dateStr := range entries {
		served, err := time.Parse("2006-01-02", dateStr)
		if err != nil || served.Before(cutoff) {
			continue
		}
		history[planner.FoodID(foodID)] = served
	}
	return history
}

// recordHistory remembers which foods a plan served, for the variety scoring
// of future plans.
func (s *PlanService) recordHistory(ctx context.Context, userID uuid.UUID, plan *planner.DailyPlan, date string) {
	if s.redis == nil {
		return
	}
	fields := make(map[string]interface{})
	for _, meal := range plan.Meals {
		for _, item := range meal.Items {
			fields[string(item.FoodID)] = date
		}
	}
	if len(fields) == 0 {
		return
	}
	key := historyKey(userID)
	s.redis.HSet(ctx, key, fields)
	s.redis.Expire(ctx, key, historyWindow)
}

// GeneratePlan builds and persists the daily plan for a user and date,
// replacing any existing plan for that date.
func (s *PlanService) GeneratePlan(ctx context.Context, userID uuid.UUID, date string, sessions []SessionInput) (*planner.DailyPlan, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	profile, stored, err := s.profiles.PlannerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	dayCtx, err := buildDayContext(day, stored)
	if err != nil {
		return nil, err
	}
	trainingSessions, err := buildSessions(day, sessions)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.engine.GenerateDailyPlan(planner.PlanRequest{
		Profile:  profile,
		Day:      dayCtx,
		Sessions: trainingSessions,
		Catalog:  catalog,
		History:  s.loadHistory(ctx, userID),
	})
	if err != nil {
		return nil, err
	}

	if err := s.storePlan(ctx, userID, date, plan); err != nil {
		return nil, err
	}
	s.recordHistory(ctx, userID, plan, date)
	return plan, nil
}

// GetPlan retrieves the stored plan for a user and date
func (s *PlanService) GetPlan(ctx context.Context, userID uuid.UUID, date string) (*planner.DailyPlan, error) {
	record, err := s.getRecord(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	plan := planner.DailyPlan(record.Plan)
	return &plan, nil
}

// SwapItem replaces one item in a stored plan with a constraint-respecting
// alternative and persists the result. The second return value reports why
// no replacement exists when the swap cannot be satisfied.
func (s *PlanService) SwapItem(ctx context.Context, userID uuid.UUID, date, slotLabel string, foodID string) (*planner.DailyPlan, *planner.Unsatisfiable, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, nil, err
	}
	record, err := s.getRecord(ctx, userID, date)
	if err != nil {
		return nil, nil, err
	}
	profile, _, err := s.profiles.PlannerProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	plan := planner.DailyPlan(record.Plan)
	swapped, unsat, err := s.engine.Swap(&plan, planner.SwapRequest{
		SlotLabel:   slotLabel,
		Item:        planner.FoodID(foodID),
		Catalog:     catalog,
		Constraints: planner.ConstraintsFromProfile(profile),
		History:     s.loadHistory(ctx, userID),
		Date:        day,
	})
	if err != nil {
		return nil, nil, err
	}
	if unsat != nil {
		return nil, unsat, nil
	}

	if err := s.storePlan(ctx, userID, date, swapped); err != nil {
		return nil, nil, err
	}
	s.recordHistory(ctx, userID, swapped, date)
	return swapped, nil, nil
}

func (s *PlanService) getRecord(ctx context.Context, userID uuid.UUID, date string) (*models.PlanRecord, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	var record models.PlanRecord
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *PlanService) storePlan(ctx context.Context, userID uuid.UUID, date string, plan *planner.DailyPlan) error {
	var record models.PlanRecord
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		record = models.PlanRecord{ID: uuid.New(), UserID: userID, Date: date}
	}
	record.Plan = models.JSONBPlan(*plan)
	return s.db.WithContext(ctx).Save(&record).Error
}
