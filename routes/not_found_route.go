package routes

import (
	"github.com/gofiber/fiber/v2"
)

// NotFoundRoute describes the 404 route for anything unmatched.
func NotFoundRoute(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true,
			"msg":   "sorry, endpoint is not found",
		})
	})
}
