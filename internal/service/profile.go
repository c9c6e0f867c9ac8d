package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/models"
	"github.com/fuelcast/backend/internal/planner"
)

var ErrProfileNotFound = errors.New("athlete profile not found")

// ProfileService handles athlete profile and constraint operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// UpsertProfileRequest carries the editable athlete profile fields.
type UpsertProfileRequest struct {
	MassKG        float64 `json:"mass_kg" binding:"required,gt=0"`
	HeightCM      float64 `json:"height_cm" binding:"required,gt=0"`
	Age           int     `json:"age" binding:"required,gt=0"`
	Sex           string  `json:"sex" binding:"required,oneof=male female"`
	ActivityLevel string  `json:"activity_level" binding:"omitempty,oneof=low normal high"`
	Goal          string  `json:"goal" binding:"omitempty,oneof=maintain gain lose"`
	WakeTime      string  `json:"wake_time"`
	BedTime       string  `json:"bed_time"`
}

// GetProfile retrieves a user's athlete profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.AthleteProfile, error) {
	var profile models.AthleteProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates or updates a user's athlete profile
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *UpsertProfileRequest) (*models.AthleteProfile, error) {
	var profile models.AthleteProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = models.AthleteProfile{ID: uuid.New(), UserID: userID}
	}

	profile.MassKG = req.MassKG
	profile.HeightCM = req.HeightCM
	profile.Age = req.Age
	profile.Sex = req.Sex
	if req.ActivityLevel != "" {
		profile.ActivityLevel = req.ActivityLevel
	}
	if profile.ActivityLevel == "" {
		profile.ActivityLevel = string(planner.ActivityNormal)
	}
	if req.Goal != "" {
		profile.Goal = req.Goal
	}
	if profile.Goal == "" {
		profile.Goal = string(planner.GoalMaintain)
	}
	if req.WakeTime != "" {
		if _, err := time.Parse("15:04", req.WakeTime); err != nil {
			return nil, fmt.Errorf("invalid wake_time %q: %w", req.WakeTime, err)
		}
		profile.WakeTime = req.WakeTime
	}
	if profile.WakeTime == "" {
		profile.WakeTime = "07:00"
	}
	if req.BedTime != "" {
		if _, err := time.Parse("15:04", req.BedTime); err != nil {
			return nil, fmt.Errorf("invalid bed_time %q: %w", req.BedTime, err)
		}
		profile.BedTime = req.BedTime
	}
	if profile.BedTime == "" {
		profile.BedTime = "23:00"
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetRestrictions replaces a user's dietary restriction list
func (s *ProfileService) SetRestrictions(ctx context.Context, userID uuid.UUID, restrictions []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DietaryRestriction{}).Error; err != nil {
			return err
		}
		for _, r := range restrictions {
			row := models.DietaryRestriction{ID: uuid.New(), UserID: userID, Restriction: r}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetAllergies replaces a user's allergen list
func (s *ProfileService) SetAllergies(ctx context.Context, userID uuid.UUID, allergens []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Allergy{}).Error; err != nil {
			return err
		}
		for _, a := range allergens {
			row := models.Allergy{ID: uuid.New(), UserID: userID, Allergen: a}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetDislikes replaces a user's disliked food list
func (s *ProfileService) SetDislikes(ctx context.Context, userID uuid.UUID, foodIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DislikedFood{}).Error; err != nil {
			return err
		}
		for _, id := range foodIDs {
			row := models.DislikedFood{ID: uuid.New(), UserID: userID, FoodID: id}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetRestrictions returns the user's diet, allergen, and dislike rows.
func (s *ProfileService) GetRestrictions(ctx context.Context, userID uuid.UUID) ([]models.DietaryRestriction, []models.Allergy, []models.DislikedFood, error) {
	var restrictions []models.DietaryRestriction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("restriction").Find(&restrictions).Error; err != nil {
		return nil, nil, nil, err
	}
	var allergies []models.Allergy
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("allergen").Find(&allergies).Error; err != nil {
		return nil, nil, nil, err
	}
	var dislikes []models.DislikedFood
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("food_id").Find(&dislikes).Error; err != nil {
		return nil, nil, nil, err
	}
	return restrictions, allergies, dislikes, nil
}

// PlannerProfile assembles the engine-facing profile for a user.
func (s *ProfileService) PlannerProfile(ctx context.Context, userID uuid.UUID) (planner.AthleteProfile, *models.AthleteProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return planner.AthleteProfile{}, nil, err
	}
	restrictions, allergies, dislikes, err := s.GetRestrictions(ctx, userID)
	if err != nil {
		return planner.AthleteProfile{}, nil, err
	}
	return profile.ToPlanner(restrictions, allergies, dislikes), profile, nil
}
