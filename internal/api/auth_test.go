package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	router, _ := setupTestAPI(t)

	token := registerUser(t, router, "new@example.com")
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicate(t *testing.T) {
	router, _ := setupTestAPI(t)

	registerUser(t, router, "dup@example.com")

	w := doJSON(router, "POST", "/api/v1/auth/register", "", gin.H{
		"name":     "Other",
		"email":    "dup@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterInvalidBody(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(router, "POST", "/api/v1/auth/register", "", gin.H{
		"name":     "No Email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/api/v1/auth/register", "", gin.H{
		"name":     "Short Password",
		"email":    "short@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	router, _ := setupTestAPI(t)
	registerUser(t, router, "login@example.com")

	w := doJSON(router, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "login@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := setupTestAPI(t)
	registerUser(t, router, "wrong@example.com")

	w := doJSON(router, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "wrong@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(router, "GET", "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "GET", "/api/v1/profile", "garbage.token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
