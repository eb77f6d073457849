package controllers

import (
	"github.com/gofiber/fiber/v2"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/utils"
)

func GetNotifications(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	query := initializers.DB.Model(&models.Notification{}).
		Where("user_id = ?", user.ID).
		Order("created_at DESC")

	var notifications []models.Notification
	return utils.Paginate(c, query, &notifications)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	res := initializers.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		Update("is_read", true)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notification",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
