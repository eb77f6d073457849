package controllers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/utils"
)

type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// CreateReview records post-delivery feedback: one review per order, only by
// the buyer, only once the order is delivered. Resubmitting replaces the
// existing review and the farmer's average rating is recomputed either way.
func CreateReview(c *fiber.Ctx) error {
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

	var payload CreateReviewInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := validate.Struct(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	var order models.Order
	err = initializers.DB.First(&order,
		"id = ? AND buyer_id = ? AND status = ?",
		orderID, user.ID, models.OrderStatusDelivered).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found or not eligible for review",
		})
	}

	comment := utils.SanitizeInput(payload.Comment)

	txErr := initializers.DB.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		err := tx.Where("order_id = ?", order.ID).First(&review).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			review = models.Review{OrderID: order.ID, Rating: payload.Rating, Comment: comment}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			review.Rating = payload.Rating
			review.Comment = comment
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		}

		// Arithmetic mean over all reviews of this farmer's orders.
		var avg float64
		row := tx.Model(&models.Review{}).
			Joins("JOIN orders ON orders.id = reviews.order_id").
			Where("orders.farmer_id = ?", order.FarmerID).
			Select("COALESCE(AVG(reviews.rating), 0)").
			Row()
		if err := row.Scan(&avg); err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", order.FarmerID).
			Update("rating", avg).Error
	})
	if txErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
	})
}
