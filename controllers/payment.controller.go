package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
)

const webhookDedupTTL = 24 * time.Hour

// PaymentController handles inbound gateway webhooks.
type PaymentController struct {
	Payments *services.PaymentClient
	Notifier *services.Notifier
	Events   *services.EventPublisher
	Redis    *redis.Client
}

func NewPaymentController(payments *services.PaymentClient, notifier *services.Notifier, events *services.EventPublisher, rdb *redis.Client) *PaymentController {
	return &PaymentController{Payments: payments, Notifier: notifier, Events: events, Redis: rdb}
}

// Webhook verifies the provider signature and, for payment_intent.succeeded,
// transitions the matching order pending -> paid. Unknown event types are
// acknowledged and ignored. Duplicate deliveries are no-ops: the transition
// is a guarded UPDATE, and event ids are remembered in redis only once the
// transition is durable so that a failed attempt stays retryable.
func (pc *PaymentController) Webhook(c *fiber.Ctx) error {
	event, err := pc.Payments.VerifyWebhook(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature or payload",
		})
	}

	if event.Type != "payment_intent.succeeded" {
		return c.SendStatus(fiber.StatusOK)
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Malformed event payload",
		})
	}

	if pc.seenEvent(c.Context(), event.ID) {
		return c.SendStatus(fiber.StatusOK)
	}

	var order models.Order
	err = initializers.DB.First(&order, "payment_intent_id = ?", intent.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("payment_intent", intent.ID).Msg("Webhook for unknown payment intent")
			return c.SendStatus(fiber.StatusOK)
		}
		// Transient DB failure: 500 so the provider redelivers.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load order",
		})
	}

	// Guarded transition: only a pending order moves to paid, so a replayed
	// event finds zero rows and changes nothing.
	res := initializers.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
		Update("status", models.OrderStatusPaid)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order status",
		})
	}
	if res.RowsAffected == 0 {
		pc.markEvent(c.Context(), event.ID)
		return c.SendStatus(fiber.StatusOK)
	}

	var buyer, farmer models.User
	if err := initializers.DB.First(&buyer, "id = ?", order.BuyerID).Error; err == nil {
		orderID := order.ID
		pc.Notifier.Notify(&buyer,
			fmt.Sprintf("Payment confirmed for order #%s", order.ID),
			models.NotificationPayment, &orderID)
	}
	if err := initializers.DB.First(&farmer, "id = ?", order.FarmerID).Error; err == nil {
		orderID := order.ID
		pc.Notifier.Notify(&farmer,
			fmt.Sprintf("Payment received for order #%s", order.ID),
			models.NotificationPayment, &orderID)
	}

	pc.Events.Publish("order.paid", fiber.Map{
		"order_id":       order.ID,
		"payment_intent": intent.ID,
	})

	pc.markEvent(c.Context(), event.ID)

	return c.SendStatus(fiber.StatusOK)
}

// seenEvent reports whether a previous delivery already completed this event.
// Read-only; nothing is claimed until the transition lands. Without redis
// every delivery looks new and the guarded UPDATE alone carries idempotency.
func (pc *PaymentController) seenEvent(ctx context.Context, eventID string) bool {
	if pc.Redis == nil {
		return false
	}
	n, err := pc.Redis.Exists(ctx, "webhook:"+eventID).Result()
	if err != nil {
		log.Warn().Err(err).Msg("Webhook dedup unavailable")
		return false
	}
	return n > 0
}

// markEvent remembers a fully processed event id. Called only after the
// status transition committed (or was found already done).
func (pc *PaymentController) markEvent(ctx context.Context, eventID string) {
	if pc.Redis == nil {
		return
	}
	if err := pc.Redis.Set(ctx, "webhook:"+eventID, 1, webhookDedupTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to record webhook event id")
	}
}
