package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmlink/models"
)

func getAnalytics(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/analytics/", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestFarmerAnalyticsWithSalesButNoListings(t *testing.T) {
	db := setupTestDB(t, "analytics_delisted")
	fx := seedCheckout(t, db, 2)

	order := models.Order{
		BuyerID:         fx.buyer.ID,
		FarmerID:        fx.farmer.ID,
		Status:          models.OrderStatusDelivered,
		TotalAmount:     decimal.RequireFromString("78.13"),
		ShippingAddress: "12 Market St, Port of Spain",
	}
	require.NoError(t, db.Create(&order).Error)

	// Sold out and delisted: the sales history still belongs to the farmer.
	require.NoError(t, db.Delete(&models.Product{}, "id = ?", fx.product.ID).Error)

	app := userApp(fx.farmer, http.MethodGet, "/api/analytics/", FarmerAnalytics)
	resp := getAnalytics(t, app)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		TotalSales   decimal.Decimal `json:"total_sales"`
		RecentOrders []recentOrder   `json:"recent_orders"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.TotalSales.Equal(decimal.RequireFromString("78.13")), out.TotalSales.String())
	assert.Len(t, out.RecentOrders, 1)
}

func TestFarmerAnalyticsNoActivityForbidden(t *testing.T) {
	db := setupTestDB(t, "analytics_buyer")
	fx := seedCheckout(t, db, 2)

	// The buyer has neither listings nor sales.
	app := userApp(fx.buyer, http.MethodGet, "/api/analytics/", FarmerAnalytics)
	resp := getAnalytics(t, app)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestFarmerAnalyticsWithListings(t *testing.T) {
	db := setupTestDB(t, "analytics_listed")
	fx := seedCheckout(t, db, 2)

	app := userApp(fx.farmer, http.MethodGet, "/api/analytics/", FarmerAnalytics)
	resp := getAnalytics(t, app)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
