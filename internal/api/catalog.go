package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuelcast/backend/internal/middleware"
	"github.com/fuelcast/backend/internal/models"
	"github.com/fuelcast/backend/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	imageService   *service.ImageService
	authService    *service.AuthService
}

// NewCatalogHandler creates the catalog handler. imageService may be nil when
// no object storage is configured; photo upload then returns 503.
func NewCatalogHandler(catalogService *service.CatalogService, imageService *service.ImageService, authService *service.AuthService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		imageService:   imageService,
		authService:    authService,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		foods.GET("", h.ListFoods)
		foods.GET("/:id", h.GetFood)
		foods.POST("", middleware.AuthMiddleware(h.authService), h.CreateFood)
		foods.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteFood)
		foods.POST("/:id/image", middleware.AuthMiddleware(h.authService), h.UploadFoodImage)
	}

	templates := router.Group("/templates")
	{
		templates.GET("", h.ListTemplates)
		templates.GET("/:id", h.GetTemplate)
		templates.POST("", middleware.AuthMiddleware(h.authService), h.CreateTemplate)
		templates.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteTemplate)
	}
}

func (h *CatalogHandler) ListFoods(c *gin.Context) {
	if search := c.Query("q"); search != "" {
		foods, err := h.catalogService.SearchFoods(c.Request.Context(), search)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search foods"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"foods": foods})
		return
	}

	foods, err := h.catalogService.ListFoods(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch foods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *CatalogHandler) GetFood(c *gin.Context) {
	food, err := h.catalogService.GetFood(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch food"})
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *CatalogHandler) CreateFood(c *gin.Context) {
	var food models.FoodItem
	if err := c.ShouldBindJSON(&food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if food.ID == "" || food.Name == "" || food.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id, name, and category are required"})
		return
	}

	if err := h.catalogService.CreateFood(c.Request.Context(), &food); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create food"})
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *CatalogHandler) DeleteFood(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalogService.DeleteFood(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete food"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted successfully", "id": id})
}

func (h *CatalogHandler) UploadFoodImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	id := c.Param("id")
	food, err := h.catalogService.GetFood(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch food"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}

	url, err := h.imageService.UploadFoodImage(c.Request.Context(), id, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food.ImageURL = url
	if err := h.catalogService.CreateFood(c.Request.Context(), food); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	templates, err := h.catalogService.ListTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *CatalogHandler) GetTemplate(c *gin.Context) {
	tpl, err := h.catalogService.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *CatalogHandler) CreateTemplate(c *gin.Context) {
	var tpl models.MealTemplate
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if tpl.ID == "" || len(tpl.Purposes) == 0 || len(tpl.Slots) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id, purposes, and slots are required"})
		return
	}

	if err := h.catalogService.CreateTemplate(c.Request.Context(), &tpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *CatalogHandler) DeleteTemplate(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalogService.DeleteTemplate(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully", "id": id})
}
