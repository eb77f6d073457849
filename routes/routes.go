package routes

import (
	"github.com/gofiber/fiber/v2"

	"farmlink/controllers"
	"farmlink/initializers"
	"farmlink/middleware"
)

// Controllers groups the handlers that carry injected collaborators.
type Controllers struct {
	Orders   *controllers.OrderController
	Payments *controllers.PaymentController
	Shipping *controllers.ShippingController
	Products *controllers.ProductController
}

func SetupRoutes(app *fiber.App, config *initializers.Config, ctrl *Controllers) {
	auth := middleware.DeserializeUser(config)

	api := app.Group("/api")

	api.Post("/auth/register", controllers.SignUpUser)
	api.Post("/auth/login", controllers.SignInUser(config))
	api.Get("/auth/logout", auth, controllers.LogoutUser)
	api.Get("/users/me", auth, controllers.GetMe)

	api.Get("/products/search", ctrl.Products.SearchProducts)
	api.Get("/products", controllers.GetProducts)
	api.Get("/products/:id", controllers.GetProductByID)
	api.Post("/products", auth, controllers.CreateProduct)
	api.Delete("/products/:id", auth, controllers.DeleteProduct)

	api.Get("/cart/", auth, controllers.GetCart)
	api.Post("/cart/", auth, controllers.AddToCart)

	api.Post("/order/", auth, ctrl.Orders.CreateOrder)
	api.Get("/order/", auth, controllers.GetMyOrders)
	api.Get("/order/seller", auth, controllers.GetOrdersForSeller)
	api.Post("/order/:id/delivered", auth, controllers.MarkDelivered)

	api.Post("/review/:orderId/", auth, controllers.CreateReview)
	api.Post("/shipping/:orderId/", auth, ctrl.Shipping.ShipOrder)

	api.Get("/analytics/", auth, controllers.FarmerAnalytics)

	api.Get("/notifications/", auth, controllers.GetNotifications)
	api.Patch("/notifications/:id/read", auth, controllers.MarkNotificationRead)

	// Signed by the gateway, not by a user session.
	app.Post("/webhook/payment/", ctrl.Payments.Webhook)

	NotFoundRoute(app)
}
