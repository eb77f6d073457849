package initializers

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost         string `mapstructure:"POSTGRES_HOST"`
	DBUserName     string `mapstructure:"POSTGRES_USER"`
	DBUserPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string `mapstructure:"POSTGRES_DB"`
	DBPort         string `mapstructure:"POSTGRES_PORT"`
	ServerPort     string `mapstructure:"PORT"`

	RedisUri string `mapstructure:"REDIS_URL"`
	AmqpUri  string `mapstructure:"AMQP_URL"`

	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	JwtSecret    string        `mapstructure:"JWT_SECRET"`
	JwtExpiresIn time.Duration `mapstructure:"JWT_EXPIRED_IN"`
	JwtMaxAge    int           `mapstructure:"JWT_MAXAGE"`

	EmailFrom string `mapstructure:"EMAIL_FROM"`
	SMTPHost  string `mapstructure:"SMTP_HOST"`
	SMTPPort  int    `mapstructure:"SMTP_PORT"`
	SMTPUser  string `mapstructure:"SMTP_USER"`
	SMTPPass  string `mapstructure:"SMTP_PASS"`

	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	ShippingBaseCost string `mapstructure:"SHIPPING_BASE_COST"`
	ShippingPerKm    string `mapstructure:"SHIPPING_PER_KM"`
	ShippingFallback string `mapstructure:"SHIPPING_FALLBACK_COST"`

	UsePostgresSearch bool `mapstructure:"USE_POSTGRES_SEARCH"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigType("env")
	viper.SetConfigName("app")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHIPPING_BASE_COST", "50.00")
	viper.SetDefault("SHIPPING_PER_KM", "1.20")
	viper.SetDefault("SHIPPING_FALLBACK_COST", "100.00")
	viper.SetDefault("USE_POSTGRES_SEARCH", true)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
