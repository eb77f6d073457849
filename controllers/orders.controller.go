package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
	"farmlink/utils"
)

var (
	errPaymentFailed     = errors.New("payment processing failed")
	errInsufficientStock = errors.New("insufficient stock")
)

// OrderController holds the collaborators checkout needs. The payment client
// is an injected instance, not a package global.
type OrderController struct {
	Payments services.PaymentGateway
	Notifier *services.Notifier
	Events   *services.EventPublisher
	Geo      *services.GeoService
}

func NewOrderController(payments services.PaymentGateway, notifier *services.Notifier, events *services.EventPublisher, geo *services.GeoService) *OrderController {
	return &OrderController{Payments: payments, Notifier: notifier, Events: events, Geo: geo}
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// orderTotals is the checkout arithmetic: subtotal over the item snapshot,
// tax from the buyer's country rate (a percentage), shipping as quoted.
// total = subtotal + tax + shipping, computed once and stored.
func orderTotals(items []models.CartItem, taxRate, shipping decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Product.Price.Mul(decimalFromInt(item.Quantity)))
	}
	tax = subtotal.Mul(taxRate.Div(decimal.NewFromInt(100))).Round(2)
	total = subtotal.Add(tax).Add(shipping)
	return subtotal, tax, total
}

type CreateOrderInput struct {
	ShippingAddress string `json:"shipping_address"`
}

func (oc *OrderController) CreateOrder(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	var payload CreateOrderInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	shippingAddress := utils.SanitizeInput(payload.ShippingAddress)
	if shippingAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Shipping address required",
		})
	}

	var cart models.Cart
	err := initializers.DB.
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Preload("Items.Product.Farmer").
		First(&cart).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Active cart not found",
		})
	}

	if len(cart.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cart is empty",
		})
	}

	var buyer models.User
	if err := initializers.DB.Preload("Country").First(&buyer, "id = ?", user.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Order processing failed",
		})
	}

	// The cart holds a single farmer's produce (enforced at add-to-cart),
	// so the order's farmer comes from the first line.
	farmer := cart.Items[0].Product.Farmer

	var quote services.Quote
	if buyer.Location != "" {
		quote = oc.Geo.EstimateShipping(farmer.Location, buyer.Location)
	} else {
		quote = services.Quote{Cost: oc.Geo.FallbackCost, Fallback: true}
	}

	_, taxAmount, totalAmount := orderTotals(cart.Items, buyer.Country.TaxRate, quote.Cost)

	var order models.Order
	var clientSecret string

	txErr := initializers.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			BuyerID:         buyer.ID,
			FarmerID:        farmer.ID,
			Status:          models.OrderStatusPending,
			TotalAmount:     totalAmount,
			TaxAmount:       taxAmount,
			ShippingCost:    quote.Cost,
			ShippingAddress: shippingAddress,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range cart.Items {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			// Conditional decrement: the WHERE guard rejects oversell even
			// under concurrent checkouts of the same product.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientStock
			}
		}

		// External call inside the transaction: if the commit fails after
		// this succeeds, the remote intent is orphaned and reconciled via
		// the webhook or support. Accepted risk.
		intent := oc.Payments.CreateIntent(totalAmount, buyer.Country.CurrencyCode, map[string]string{
			"order_id": order.ID.String(),
		})
		if intent == nil {
			return errPaymentFailed
		}

		if err := tx.Model(&order).Update("payment_intent_id", intent.ID).Error; err != nil {
			return err
		}
		order.PaymentIntentID = intent.ID
		clientSecret = intent.ClientSecret

		return tx.Model(&cart).Update("is_active", false).Error
	})

	if txErr != nil {
		if errors.Is(txErr, errInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Insufficient stock for a cart item",
			})
		}
		if errors.Is(txErr, errPaymentFailed) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Payment processing failed",
			})
		}
		log.Error().Err(txErr).Msg("Order creation error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Order processing failed",
		})
	}

	orderID := order.ID
	oc.Notifier.Notify(&buyer,
		fmt.Sprintf("Order #%s created. Total: %s", orderID, totalAmount.StringFixed(2)),
		models.NotificationOrder, &orderID)
	oc.Notifier.Notify(&farmer,
		fmt.Sprintf("New order #%s from %s", orderID, buyer.FarmName),
		models.NotificationOrder, &orderID)

	oc.Events.Publish("order.created", fiber.Map{
		"order_id":  orderID,
		"buyer_id":  buyer.ID,
		"farmer_id": farmer.ID,
		"total":     totalAmount.StringFixed(2),
		"currency":  buyer.Country.CurrencyCode,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":        "success",
		"order_id":      orderID,
		"client_secret": clientSecret,
	})
}

func GetMyOrders(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	query := initializers.DB.Model(&models.Order{}).
		Where("buyer_id = ?", user.ID).
		Preload("Items").
		Order("created_at DESC")

	var orders []models.Order
	return utils.Paginate(c, query, &orders)
}

func GetOrdersForSeller(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	query := initializers.DB.Model(&models.Order{}).
		Where("farmer_id = ?", user.ID).
		Preload("Items").
		Order("created_at DESC")

	var orders []models.Order
	return utils.Paginate(c, query, &orders)
}

// MarkDelivered lets the buyer confirm receipt of a shipped order, which
// unlocks the review flow.
func MarkDelivered(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	orderID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order id",
		})
	}

	res := initializers.DB.Model(&models.Order{}).
		Where("id = ? AND buyer_id = ? AND status = ?", orderID, user.ID, models.OrderStatusShipped).
		Update("status", models.OrderStatusDelivered)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Order processing failed",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
