package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuelcast/backend/internal/middleware"
	"github.com/fuelcast/backend/internal/service"
)

type PlanHandler struct {
	planService  *service.PlanService
	authService  *service.AuthService
	generateRate *middleware.RateLimiter
	swapRate     *middleware.RateLimiter
}

// NewPlanHandler creates the plan handler. The rate limiters may be nil when
// Redis is not configured; the routes then run unthrottled.
func NewPlanHandler(planService *service.PlanService, authService *service.AuthService, generateRate, swapRate *middleware.RateLimiter) *PlanHandler {
	return &PlanHandler{
		planService:  planService,
		authService:  authService,
		generateRate: generateRate,
		swapRate:     swapRate,
	}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/plans", middleware.AuthMiddleware(h.authService))
	{
		plans.GET("/:date", h.GetPlan)
		if h.generateRate != nil {
			plans.POST("/:date", h.generateRate.RateLimitMiddleware(), h.GeneratePlan)
		} else {
			plans.POST("/:date", h.GeneratePlan)
		}
		if h.swapRate != nil {
			plans.POST("/:date/swap", h.swapRate.PerPlanRateLimitMiddleware(), h.SwapItem)
		} else {
			plans.POST("/:date/swap", h.SwapItem)
		}
	}
}

type GeneratePlanRequest struct {
	Sessions []service.SessionInput `json:"sessions"`
}

type SwapRequest struct {
	SlotLabel string `json:"slot_label" binding:"required"`
	FoodID    string `json:"food_id" binding:"required"`
}

func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID, c.Param("date"), req.Sessions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "athlete profile must be completed first"})
		case isInputError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate plan"})
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		case isInputError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan"})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) SwapItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, unsat, err := h.planService.SwapItem(c.Request.Context(), userID, c.Param("date"), req.SlotLabel, req.FoodID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		case isInputError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to swap item"})
		}
		return
	}
	if unsat != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":       "no acceptable replacement",
			"unsatisfied": unsat,
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}
