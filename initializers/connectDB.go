package initializers

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farmlink/models"
)

var DB *gorm.DB

func ConnectDB(config *Config) {
	var err error
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=America/Port_of_Spain",
		config.DBHost, config.DBUserName, config.DBUserPassword, config.DBName, config.DBPort)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	err = DB.AutoMigrate(
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
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	// One active cart per user, product stock never below zero.
	DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_cart ON carts (user_id) WHERE is_active`)
	DB.Exec(`ALTER TABLE products DROP CONSTRAINT IF EXISTS non_negative_quantity`)
	DB.Exec(`ALTER TABLE products ADD CONSTRAINT non_negative_quantity CHECK (quantity >= 0)`)

	log.Info().Msg("Connected to the database")
}
