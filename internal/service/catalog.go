package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/models"
	"github.com/fuelcast/backend/internal/planner"
)

var (
	ErrFoodNotFound     = errors.New("food not found")
	ErrTemplateNotFound = errors.New("meal template not found")
)

const (
	catalogCacheKey = "catalog:snapshot"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService manages the food and meal template catalog
type CatalogService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(db *gorm.DB, redisClient *redis.Client) *CatalogService {
	return &CatalogService{
		db:    db,
		redis: redisClient,
	}
}

// CreateFood inserts or updates a catalog food item
func (s *CatalogService) CreateFood(ctx context.Context, food *models.FoodItem) error {
	food.Embedding = GenerateEmbedding(food.Name + " " + food.Category)
	if err := s.db.WithContext(ctx).Save(food).Error; err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

// GetFood retrieves a single food item by ID
func (s *CatalogService) GetFood(ctx context.Context, id string) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := s.db.WithContext(ctx).First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return &food, nil
}

// ListFoods returns catalog foods, optionally filtered by category
func (s *CatalogService) ListFoods(ctx context.Context, category string) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	query := s.db.WithContext(ctx).Order("id")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// SearchFoods searches the catalog by name and category
func (s *CatalogService) SearchFoods(ctx context.Context, query string) ([]models.FoodItem, error) {
	var foods []models.FoodItem

	dbQuery := s.db.WithContext(ctx)

	if query != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)

			// Combine semantic and keyword search
			subQuery := s.db.Model(&models.FoodItem{}).
				Select("id, embedding <-> ? as similarity", vec).
				Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?",
					"%"+strings.ToLower(query)+"%",
					"%"+strings.ToLower(query)+"%",
				)

			dbQuery = dbQuery.Joins("JOIN (?) as search ON food_items.id = search.id", subQuery).
				Order("search.similarity ASC")
		} else {
			// Fallback to keyword search for non-PostgreSQL databases
			like := "%" + strings.ToLower(query) + "%"
			dbQuery = dbQuery.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like)
		}
	}

	if err := dbQuery.Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// DeleteFood removes a food item from the catalog
func (s *CatalogService) DeleteFood(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.FoodItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFoodNotFound
	}
	s.invalidateSnapshot(ctx)
	return nil
}

// CreateTemplate inserts or updates a meal template
func (s *CatalogService) CreateTemplate(ctx context.Context, tpl *models.MealTemplate) error {
	if err := s.db.WithContext(ctx).Save(tpl).Error; err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

// GetTemplate retrieves a single meal template by ID
func (s *CatalogService) GetTemplate(ctx context.Context, id string) (*models.MealTemplate, error) {
	var tpl models.MealTemplate
	if err := s.db.WithContext(ctx).First(&tpl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// ListTemplates returns all meal templates
func (s *CatalogService) ListTemplates(ctx context.Context) ([]models.MealTemplate, error) {
	var templates []models.MealTemplate
	if err := s.db.WithContext(ctx).Order("id").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// DeleteTemplate removes a meal template
func (s *CatalogService) DeleteTemplate(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.MealTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	s.invalidateSnapshot(ctx)
	return nil
}

// catalogSnapshot is the cached wire form of the full catalog.
type catalogSnapshot struct {
	Foods     []planner.FoodItem     `json:"foods"`
	Templates []planner.MealTemplate `json:"templates"`
}

// Snapshot loads the full catalog for the planning engine, served from
// Redis when the cached copy is still fresh.
func (s *CatalogService) Snapshot(ctx context.Context) (*planner.Catalog, error) {
	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var snap catalogSnapshot
			if err := json.Unmarshal([]byte(raw), &snap); err == nil {
				return planner.NewCatalog(snap.Foods, snap.Templates), nil
			}
		}
	}

	var foodRows []models.FoodItem
	if err := s.db.WithContext(ctx).Find(&foodRows).Error; err != nil {
		return nil, err
	}
	var templateRows []models.MealTemplate
	if err := s.db.WithContext(ctx).Find(&templateRows).Error; err != nil {
		return nil, err
	}

	snap := catalogSnapshot{
		Foods:     make([]planner.FoodItem, 0, len(foodRows)),
		Templates: make([]planner.MealTemplate, 0, len(templateRows)),
	}
	for i := range foodRows {
		snap.Foods = append(snap.Foods, foodRows[i].ToPlanner())
	}
	for i := range templateRows {
		snap.Templates = append(snap.Templates, templateRows[i].ToPlanner())
	}

	if s.redis != nil {
		if data, err := json.Marshal(snap); err == nil {
			s.redis.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
		}
	}

	return planner.NewCatalog(snap.Foods, snap.Templates), nil
}

func (s *CatalogService) invalidateSnapshot(ctx context.Context) {
	if s.redis != nil {
		s.redis.Del(ctx, catalogCacheKey)
	}
}
