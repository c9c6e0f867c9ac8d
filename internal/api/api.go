package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/config"
	"github.com/fuelcast/backend/internal/middleware"
	"github.com/fuelcast/backend/internal/planner"
	"github.com/fuelcast/backend/internal/service"
)

// SetupAPI wires services and handlers onto the /api/v1 group. redisClient
// and s3Config may be nil; the affected features degrade instead of failing.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, jwtSecret string) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, jwtSecret)
		profileService := service.NewProfileService(db)
		catalogService := service.NewCatalogService(db, redisClient)
		planService := service.NewPlanService(db, redisClient, profileService, catalogService)

		var imageService *service.ImageService
		if s3Config != nil {
			imageService = service.NewImageService(s3Config)
		}

		var generateRate, swapRate *middleware.RateLimiter
		if redisClient != nil {
			generateRate = middleware.NewPlanGenerationRateLimiter(redisClient)
			swapRate = middleware.NewSwapRateLimiter(redisClient)
		}

		authHandler := NewAuthHandler(authService)
		profileHandler := NewProfileHandler(profileService, authService)
		catalogHandler := NewCatalogHandler(catalogService, imageService, authService)
		planHandler := NewPlanHandler(planService, authService, generateRate, swapRate)

		authHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		planHandler.RegisterRoutes(v1)
	}
}

// isInputError reports whether the error is a caller mistake that should map
// to a 400 rather than a 500.
func isInputError(err error) bool {
	return errors.Is(err, service.ErrInvalidInput) ||
		errors.Is(err, planner.ErrInvalidProfile) ||
		errors.Is(err, planner.ErrIncompletePlan)
}
