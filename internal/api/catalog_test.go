package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcast/backend/internal/models"
)

func TestListFoodsPublic(t *testing.T) {
	router, db := setupTestAPI(t)
	seedTestCatalog(t, db)

	w := doJSON(router, "GET", "/api/v1/foods", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Foods []models.FoodItem `json:"foods"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Foods, 9)
}

func TestListFoodsByCategoryAndSearch(t *testing.T) {
	router, db := setupTestAPI(t)
	seedTestCatalog(t, db)

	w := doJSON(router, "GET", "/api/v1/foods?category=fruit", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Foods []models.FoodItem `json:"foods"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Foods, 2)

	w = doJSON(router, "GET", "/api/v1/foods?q=yogurt", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp.Foods = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Foods, 1)
	assert.Equal(t, "greek-yogurt", resp.Foods[0].ID)
}

func TestCreateFoodRequiresAuth(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(router, "POST", "/api/v1/foods", "", gin.H{
		"id": "lentils", "name": "Cooked lentils", "category": "protein",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndDeleteFood(t *testing.T) {
	router, _ := setupTestAPI(t)
	token := registerUser(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/v1/foods", token, gin.H{
		"id":        "lentils",
		"name":      "Cooked lentils",
		"category":  "protein",
		"kcal":      116,
		"protein_g": 9,
		"carbs_g":   20,
		"fat_g":     0.4,
		"diet_tags": []string{"vegan", "vegetarian"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, "GET", "/api/v1/foods/lentils", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", "/api/v1/foods/lentils", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/v1/foods/lentils", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateFoodMissingFields(t *testing.T) {
	router, _ := setupTestAPI(t)
	token := registerUser(t, router, "admin2@example.com")

	w := doJSON(router, "POST", "/api/v1/foods", token, gin.H{
		"name": "No ID",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateEndpoints(t *testing.T) {
	router, db := setupTestAPI(t)
	seedTestCatalog(t, db)
	token := registerUser(t, router, "tpl@example.com")

	w := doJSON(router, "GET", "/api/v1/templates", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Templates []models.MealTemplate `json:"templates"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Templates, 4)

	w = doJSON(router, "POST", "/api/v1/templates", token, gin.H{
		"id":       "tpl-big-breakfast",
		"name":     "Big breakfast",
		"purposes": []string{"breakfast"},
		"slots": []gin.H{
			{"category": "protein"},
			{"category": "carb"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, "GET", "/api/v1/templates/tpl-big-breakfast", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", "/api/v1/templates/tpl-big-breakfast", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	router, db := setupTestAPI(t)
	seedTestCatalog(t, db)
	token := registerUser(t, router, "photo@example.com")

	w := doJSON(router, "POST", "/api/v1/foods/oats/image", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
