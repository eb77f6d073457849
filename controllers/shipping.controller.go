package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
	"farmlink/utils"
)

// ShippingController lets a farmer mark their paid orders shipped.
type ShippingController struct {
	Notifier *services.Notifier
	Events   *services.EventPublisher
}

func NewShippingController(notifier *services.Notifier, events *services.EventPublisher) *ShippingController {
	return &ShippingController{Notifier: notifier, Events: events}
}

type ShipOrderInput struct {
	TrackingNumber string `json:"tracking_number" validate:"required,max=100"`
}

func (sc *ShippingController) ShipOrder(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	orderID, err := uuid.FromString(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order id",
		})
	}

	var payload ShipOrderInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := validate.Struct(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Tracking number is required",
		})
	}

	trackingNumber := utils.SanitizeInput(payload.TrackingNumber)

	// Only the order's own farmer can ship, and only from "paid".
	var order models.Order
	err = initializers.DB.First(&order,
		"id = ? AND farmer_id = ? AND status = ?",
		orderID, user.ID, models.OrderStatusPaid).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	order.TrackingNumber = trackingNumber
	order.Status = models.OrderStatusShipped
	if err := initializers.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order",
		})
	}

	var buyer models.User
	if err := initializers.DB.First(&buyer, "id = ?", order.BuyerID).Error; err == nil {
		sc.Notifier.Notify(&buyer,
			fmt.Sprintf("Order #%s shipped. Tracking: %s", order.ID, trackingNumber),
			models.NotificationOrder, &orderID)
	}

	sc.Events.Publish("order.shipped", fiber.Map{
		"order_id":        order.ID,
		"tracking_number": trackingNumber,
	})

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
