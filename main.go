package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"farmlink/controllers"
	"farmlink/initializers"
	"farmlink/routes"
	"farmlink/services"
	"farmlink/utils"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	config, err := initializers.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment variables")
	}

	if level, err := zerolog.ParseLevel(config.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	initializers.ConnectDB(&config)
	initializers.ConnectRedis(&config)
	initializers.SeedReferenceData()

	var events *services.EventPublisher
	if config.AmqpUri != "" {
		events, err = services.NewEventPublisher(config.AmqpUri)
		if err != nil {
			log.Warn().Err(err).Msg("Event broker unavailable, domain events disabled")
		} else {
			defer events.Close()
		}
	}

	payments := services.NewPaymentClient(config.StripeSecretKey, config.StripeWebhookSecret)
	notifier := services.NewNotifier(initializers.DB, utils.NewSMTPSender(&config))
	geo := services.NewGeoService(config.ShippingBaseCost, config.ShippingPerKm, config.ShippingFallback)
	search := services.NewSearchService(initializers.DB, initializers.RedisClient, config.UsePostgresSearch)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ClientOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, &config, &routes.Controllers{
		Orders:   controllers.NewOrderController(payments, notifier, events, geo),
		Payments: controllers.NewPaymentController(payments, notifier, events, initializers.RedisClient),
		Shipping: controllers.NewShippingController(notifier, events),
		Products: controllers.NewProductController(search),
	})

	log.Info().Str("port", config.ServerPort).Msg("FarmLink marketplace listening")
	if err := app.Listen(":" + config.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
