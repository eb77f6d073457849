package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
)

// setupTestDB opens a named in-memory database and points the package-global
// handle at it. Shared cache keeps the schema alive across the pool's
// connections for the duration of the test.
func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Country{},
		&models.Category{},
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Notification{},
	))

	initializers.DB = db
	return db
}

// checkoutFixture is a buyer with one active cart line against a farmer's
// product: 2 x 12.50 in TT (12.5% tax), both parties at the same coordinates
// so shipping quotes at the base cost.
type checkoutFixture struct {
	buyer   models.User
	farmer  models.User
	product models.Product
	cart    models.Cart
}

func seedCheckout(t *testing.T, db *gorm.DB, cartQuantity int) checkoutFixture {
	t.Helper()

	country := models.Country{Code: "TT", Name: "Trinidad and Tobago", CurrencyCode: "TTD", TaxRate: decimal.RequireFromString("12.5")}
	require.NoError(t, db.Create(&country).Error)

	category := models.Category{Code: "FRT", Name: "Fruits"}
	require.NoError(t, db.Create(&category).Error)

	farmer := models.User{
		FarmName:    "Maracas Valley Farm",
		Email:       "maracas@example.com",
		Password:    "x",
		CountryCode: "TT",
		Location:    "10.65,-61.40",
	}
	require.NoError(t, db.Create(&farmer).Error)

	buyer := models.User{
		FarmName:    "Port of Spain Greens",
		Email:       "posgreens@example.com",
		Password:    "x",
		CountryCode: "TT",
		Location:    "10.65,-61.40",
	}
	require.NoError(t, db.Create(&buyer).Error)

	product := models.Product{
		Name:       "Julie Mango",
		Price:      decimal.RequireFromString("12.50"),
		Unit:       "kg",
		Quantity:   10,
		CategoryID: category.ID,
		FarmerID:   farmer.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	cart := models.Cart{UserID: buyer.ID, IsActive: true}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  cartQuantity,
	}).Error)

	return checkoutFixture{buyer: buyer, farmer: farmer, product: product, cart: cart}
}

// stubGateway returns a fixed intent, or nil to simulate a provider failure.
type stubGateway struct {
	intent *stripe.PaymentIntent
}

func (s stubGateway) CreateIntent(amount decimal.Decimal, currency string, metadata map[string]string) *stripe.PaymentIntent {
	return s.intent
}

type emailRecorder struct {
	sent []string
}

func (r *emailRecorder) Send(to, subject, body string) error {
	r.sent = append(r.sent, to)
	return nil
}

func userApp(user models.User, method, path string, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", models.FilterUserRecord(&user))
		return c.Next()
	})
	app.Add(method, path, handler)
	return app
}

func postOrder(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()

	body, err := json.Marshal(fiber.Map{"shipping_address": "12 Market St, Port of Spain"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/order/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateOrderSuccess(t *testing.T) {
	db := setupTestDB(t, "checkout_success")
	fx := seedCheckout(t, db, 2)

	mail := &emailRecorder{}
	oc := NewOrderController(
		stubGateway{intent: &stripe.PaymentIntent{ID: "pi_test_123", ClientSecret: "pi_test_123_secret"}},
		services.NewNotifier(db, mail),
		nil,
		services.NewGeoService("50.00", "1.20", "100.00"),
	)
	app := userApp(fx.buyer, http.MethodPost, "/api/order/", oc.CreateOrder)

	resp := postOrder(t, app)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		OrderID      string `json:"order_id"`
		ClientSecret string `json:"client_secret"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "pi_test_123_secret", out.ClientSecret)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", out.OrderID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "pi_test_123", order.PaymentIntentID)
	// 25.00 + 3.13 tax + 50.00 shipping (same coordinates, base cost only).
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("78.13")), order.TotalAmount.String())
	assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("3.13")), order.TaxAmount.String())
	assert.True(t, order.ShippingCost.Equal(decimal.RequireFromString("50.00")), order.ShippingCost.String())

	var items int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items)
	assert.EqualValues(t, 1, items)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", fx.product.ID).Error)
	assert.Equal(t, 8, product.Quantity)

	var cart models.Cart
	require.NoError(t, db.First(&cart, "id = ?", fx.cart.ID).Error)
	assert.False(t, cart.IsActive)

	var notifications int64
	db.Model(&models.Notification{}).Where("type = ?", models.NotificationOrder).Count(&notifications)
	assert.EqualValues(t, 2, notifications)
	assert.Len(t, mail.sent, 2)
}

func TestCreateOrderPaymentFailureRollsBack(t *testing.T) {
	db := setupTestDB(t, "checkout_rollback")
	fx := seedCheckout(t, db, 2)

	oc := NewOrderController(
		stubGateway{intent: nil},
		services.NewNotifier(db, &emailRecorder{}),
		nil,
		services.NewGeoService("50.00", "1.20", "100.00"),
	)
	app := userApp(fx.buyer, http.MethodPost, "/api/order/", oc.CreateOrder)

	resp := postOrder(t, app)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// The whole checkout rolls back: no order, no item snapshots, stock and
	// cart untouched, nobody notified.
	var orders, items, notifications int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	db.Model(&models.Notification{}).Count(&notifications)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
	assert.EqualValues(t, 0, notifications)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", fx.product.ID).Error)
	assert.Equal(t, 10, product.Quantity)

	var cart models.Cart
	require.NoError(t, db.First(&cart, "id = ?", fx.cart.ID).Error)
	assert.True(t, cart.IsActive)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t, "checkout_oversell")
	fx := seedCheckout(t, db, 20)

	oc := NewOrderController(
		stubGateway{intent: &stripe.PaymentIntent{ID: "pi_unused", ClientSecret: "s"}},
		services.NewNotifier(db, &emailRecorder{}),
		nil,
		services.NewGeoService("50.00", "1.20", "100.00"),
	)
	app := userApp(fx.buyer, http.MethodPost, "/api/order/", oc.CreateOrder)

	resp := postOrder(t, app)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 0, orders)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", fx.product.ID).Error)
	assert.Equal(t, 10, product.Quantity)
}
