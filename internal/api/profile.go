package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fuelcast/backend/internal/middleware"
	"github.com/fuelcast/backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
}

func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile", middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpsertProfile)
		profile.PUT("/restrictions", h.SetRestrictions)
		profile.PUT("/allergies", h.SetAllergies)
		profile.PUT("/dislikes", h.SetDislikes)
	}
}

type ConstraintsResponse struct {
	Restrictions []string `json:"restrictions"`
	Allergies    []string `json:"allergies"`
	Dislikes     []string `json:"dislikes"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	restrictions, allergies, dislikes, err := h.profileService.GetRestrictions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	cons := ConstraintsResponse{
		Restrictions: make([]string, 0, len(restrictions)),
		Allergies:    make([]string, 0, len(allergies)),
		Dislikes:     make([]string, 0, len(dislikes)),
	}
	for _, r := range restrictions {
		cons.Restrictions = append(cons.Restrictions, r.Restriction)
	}
	for _, a := range allergies {
		cons.Allergies = append(cons.Allergies, a.Allergen)
	}
	for _, d := range dislikes {
		cons.Dislikes = append(cons.Dislikes, d.FoodID)
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":     profile,
		"constraints": cons,
	})
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req service.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.UpsertProfile(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

type stringListRequest struct {
	Values []string `json:"values"`
}

func (h *ProfileHandler) SetRestrictions(c *gin.Context) {
	h.setList(c, h.profileService.SetRestrictions)
}

func (h *ProfileHandler) SetAllergies(c *gin.Context) {
	h.setList(c, h.profileService.SetAllergies)
}

func (h *ProfileHandler) SetDislikes(c *gin.Context) {
	h.setList(c, h.profileService.SetDislikes)
}

func (h *ProfileHandler) setList(c *gin.Context, apply func(ctx context.Context, userID uuid.UUID, values []string) error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req stringListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := apply(c.Request.Context(), userID, req.Values); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"values": req.Values})
}
