package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fuelcast/backend/internal/models"
	"github.com/fuelcast/backend/internal/service"
	"github.com/fuelcast/backend/internal/testhelpers"
)

func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDatabase(t)

	router := gin.New()
	router.Use(gin.Recovery())
	SetupAPI(router, db, nil, nil, "test-secret")

	return router, db
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(router, "POST", "/api/v1/auth/register", "", gin.H{
		"name":     "Test Athlete",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func putProfile(t *testing.T, router *gin.Engine, token string) {
	t.Helper()
	w := doJSON(router, "PUT", "/api/v1/profile", token, gin.H{
		"mass_kg":   70,
		"height_cm": 178,
		"age":       29,
		"sex":       "male",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func seedTestCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	foods := []models.FoodItem{
		{ID: "oats", Name: "Rolled oats", Category: "carb", Kcal: 370, ProteinG: 13, CarbsG: 62, FatG: 7,
			DietTags: models.JSONBStringArray{"vegan", "vegetarian", "lactose_free"}},
		{ID: "rice", Name: "White rice", Category: "carb", Kcal: 360, ProteinG: 7, CarbsG: 79, FatG: 1,
			DietTags: models.JSONBStringArray{"vegan", "vegetarian", "lactose_free", "gluten_free"}},
		{ID: "chicken-breast", Name: "Chicken breast", Category: "protein", Kcal: 165, ProteinG: 31, FatG: 3.6,
			DietTags: models.JSONBStringArray{"lactose_free", "gluten_free"}},
		{ID: "tofu", Name: "Firm tofu", Category: "protein", Kcal: 76, ProteinG: 8, CarbsG: 1.9, FatG: 4.8,
			DietTags:  models.JSONBStringArray{"vegan", "vegetarian", "lactose_free", "gluten_free"},
			Allergens: models.JSONBStringArray{"soy"}},
		{ID: "banana", Name: "Banana", Category: "fruit", Kcal: 89, ProteinG: 1.1, CarbsG: 23, FatG: 0.3,
			DietTags: models.JSONBStringArray{"vegan", "vegetarian", "lactose_free", "gluten_free"}},
		{ID: "apple", Name: "Apple", Category: "fruit", Kcal: 52, ProteinG: 0.3, CarbsG: 14, FatG: 0.2,
			DietTags: models.JSONBStringArray{"vegan", "vegetarian", "lactose_free", "gluten_free"}},
		{ID: "greek-yogurt", Name: "Greek yogurt", Category: "dairy", Kcal: 59, ProteinG: 10, CarbsG: 3.6, FatG: 0.4,
			DietTags:  models.JSONBStringArray{"vegetarian", "gluten_free"},
			Allergens: models.JSONBStringArray{"milk"}},
		{ID: "broccoli", Name: "Broccoli", Category: "veg", Kcal: 34, ProteinG: 2.8, CarbsG: 7, FatG: 0.4,
			DietTags: models.JSONBStringArray{"vegan", "vegetarian", "lactose_free", "gluten_free"}},
		{ID: "olive-oil", Name: "Olive oil", Category: "fat", Kcal: 884, FatG: 100,
			DietTags: models.JSONBStringArray{"vegan", "vegetarian", "lactose_free", "gluten_free"}},
	}
	for i := range foods {
		foods[i].Embedding = service.GenerateEmbedding(foods[i].Name + " " + foods[i].Category)
		require.NoError(t, db.Create(&foods[i]).Error)
	}

	templates := []models.MealTemplate{
		{ID: "tpl-oats-bowl", Name: "Oats bowl",
			Purposes: models.JSONBStringArray{"breakfast"},
			Slots: models.JSONBTemplateSlots{
				{Category: "carb", Grams: 60},
				{Category: "fruit"},
				{Category: "dairy"},
			}},
		{ID: "tpl-protein-plate", Name: "Protein plate",
			Purposes: models.JSONBStringArray{"lunch", "dinner"},
			Slots: models.JSONBTemplateSlots{
				{Category: "protein"},
				{Category: "carb"},
				{Category: "veg"},
			}},
		{ID: "tpl-fruit-snack", Name: "Fruit snack",
			Purposes: models.JSONBStringArray{"snack", "pre_training"},
			Slots: models.JSONBTemplateSlots{
				{Category: "fruit"},
			}},
		{ID: "tpl-recovery-shake", Name: "Recovery shake",
			Purposes: models.JSONBStringArray{"recovery"},
			Slots: models.JSONBTemplateSlots{
				{Category: "dairy"},
				{Category: "fruit"},
			}},
	}
	for i := range templates {
		require.NoError(t, db.Create(&templates[i]).Error)
	}
}
