package controllers

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/utils"
)

var validate = validator.New()

type RegisterInput struct {
	FarmName    string `json:"farm_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	CountryCode string `json:"country_code" validate:"required,len=2"`
	Region      string `json:"region" validate:"max=50"`
	Location    string `json:"location"`
}

type LoginInput struct {
	FarmName string `json:"farm_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func SignUpUser(c *fiber.Ctx) error {
	var payload RegisterInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := validate.Struct(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if ok, reason := utils.ValidatePassword(payload.Password); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": reason,
		})
	}

	if !utils.ValidateEmail(payload.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}

	if payload.Location != "" && !utils.ValidateLocation(payload.Location) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Location must be 'latitude,longitude'",
		})
	}

	var country models.Country
	if err := initializers.DB.First(&country, "code = ?", strings.ToUpper(payload.CountryCode)).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown country code",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		FarmName:    utils.SanitizeInput(payload.FarmName),
		Email:       strings.ToLower(payload.Email),
		Password:    string(hashedPassword),
		CountryCode: country.Code,
		Region:      utils.SanitizeInput(payload.Region),
		Location:    payload.Location,
	}

	if err := initializers.DB.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Farm name or email already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot create user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   models.FilterUserRecord(&user),
	})
}

// SignInUser signs tokens with the config loaded at startup; the secret is
// never re-read per request.
func SignInUser(config *initializers.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload LoginInput
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}

		if err := validate.Struct(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var user models.User
		err := initializers.DB.First(&user, "farm_name = ?", payload.FarmName).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid farm name or password",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Login failed",
			})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid farm name or password",
			})
		}

		claims := jwt.MapClaims{
			"sub": user.ID.String(),
			"exp": time.Now().Add(config.JwtExpiresIn).Unix(),
			"iat": time.Now().Unix(),
		}

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JwtSecret))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to sign token",
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     "access_token",
			Value:    token,
			Path:     "/",
			MaxAge:   config.JwtMaxAge * 60,
			Secure:   false,
			HTTPOnly: true,
		})

		return c.JSON(fiber.Map{
			"status": "success",
			"token":  token,
		})
	}
}

func LogoutUser(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:    "access_token",
		Value:   "",
		Path:    "/",
		Expires: time.Now().Add(-time.Hour),
	})

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

func GetMe(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   user,
	})
}
