package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"farmlink/initializers"
	"farmlink/models"
)

func TestSignInUserSignsWithInjectedSecret(t *testing.T) {
	db := setupTestDB(t, "auth_login")

	country := models.Country{Code: "JM", Name: "Jamaica", CurrencyCode: "JMD"}
	require.NoError(t, db.Create(&country).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Str0ngPass!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FarmName:    "Blue Mountain Coffee",
		Email:       "bluemountain@example.com",
		Password:    string(hashed),
		CountryCode: "JM",
	}
	require.NoError(t, db.Create(&user).Error)

	config := &initializers.Config{
		JwtSecret:    "test-secret",
		JwtExpiresIn: time.Hour,
		JwtMaxAge:    60,
	}

	app := fiber.New()
	app.Post("/api/auth/login", SignInUser(config))

	body, err := json.Marshal(fiber.Map{
		"farm_name": "Blue Mountain Coffee",
		"password":  "Str0ngPass!",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)

	// The token must verify against the secret the server was started with.
	parsed, err := jwt.Parse(out.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.JwtSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
}

func TestSignInUserWrongPassword(t *testing.T) {
	db := setupTestDB(t, "auth_login_bad")

	country := models.Country{Code: "BB", Name: "Barbados", CurrencyCode: "BBD"}
	require.NoError(t, db.Create(&country).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Str0ngPass!"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		FarmName:    "Bridgetown Produce",
		Email:       "bridgetown@example.com",
		Password:    string(hashed),
		CountryCode: "BB",
	}).Error)

	app := fiber.New()
	app.Post("/api/auth/login", SignInUser(&initializers.Config{JwtSecret: "test-secret", JwtExpiresIn: time.Hour}))

	body, _ := json.Marshal(fiber.Map{"farm_name": "Bridgetown Produce", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
