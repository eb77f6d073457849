package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"

	"farmlink/initializers"
	"farmlink/models"
)

type recentOrder struct {
	ID          uuid.UUID       `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

type topProduct struct {
	Name          string          `json:"name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// FarmerAnalytics aggregates a farmer's lifetime sales, five most recent
// orders and five top products by revenue. Read-only; empty results are fine.
func FarmerAnalytics(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	// Only sellers get a dashboard. Current listings or past sales both
	// qualify; a farmer who sold out and delisted keeps their history.
	var productCount int64
	initializers.DB.Model(&models.Product{}).Where("farmer_id = ?", user.ID).Count(&productCount)
	if productCount == 0 {
		var orderCount int64
		initializers.DB.Model(&models.Order{}).Where("farmer_id = ?", user.ID).Count(&orderCount)
		if orderCount == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Farmer access only",
			})
		}
	}

	var totalSales decimal.NullDecimal
	err := initializers.DB.Model(&models.Order{}).
		Where("farmer_id = ?", user.ID).
		Select("SUM(total_amount)").
		Scan(&totalSales).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analytics",
		})
	}
	sales := decimal.Zero
	if totalSales.Valid {
		sales = totalSales.Decimal
	}

	var recentOrders []recentOrder
	err = initializers.DB.Model(&models.Order{}).
		Where("farmer_id = ?", user.ID).
		Order("created_at DESC").
		Limit(5).
		Select("id", "created_at", "total_amount", "status").
		Scan(&recentOrders).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analytics",
		})
	}

	var topProducts []topProduct
	err = initializers.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.farmer_id = ?", user.ID).
		Group("products.name").
		Select("products.name AS name, SUM(order_items.quantity) AS total_quantity, SUM(order_items.quantity * order_items.price) AS total_revenue").
		Order("total_revenue DESC").
		Limit(5).
		Scan(&topProducts).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analytics",
		})
	}

	return c.JSON(fiber.Map{
		"total_sales":   sales,
		"recent_orders": recentOrders,
		"top_products":  topProducts,
	})
}
