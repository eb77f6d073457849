package controllers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"farmlink/initializers"
	"farmlink/models"
)

// activeCart returns the user's active cart, creating one when none exists.
func activeCart(db *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ? AND is_active = ?", userID, true).
		Preload("Items.Product").
		First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{UserID: userID, IsActive: true}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func GetCart(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	cart, err := activeCart(initializers.DB, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot load cart",
		})
	}

	items := make([]fiber.Map, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, fiber.Map{
			"id":         item.ID,
			"product_id": item.ProductID,
			"name":       item.Product.Name,
			"price":      item.Product.Price.StringFixed(2),
			"quantity":   item.Quantity,
			"subtotal":   item.Product.Price.Mul(decimalFromInt(item.Quantity)).StringFixed(2),
		})
	}

	return c.JSON(fiber.Map{
		"id":    cart.ID,
		"total": cart.Total().StringFixed(2),
		"items": items,
	})
}

type AddToCartInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

func AddToCart(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	var payload AddToCartInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if payload.Quantity < 1 {
		payload.Quantity = 1
	}

	// Only products with enough stock on hand can go in the cart.
	var product models.Product
	if err := initializers.DB.First(&product, "id = ? AND quantity >= ?", payload.ProductID, payload.Quantity).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not available",
		})
	}

	cart, err := activeCart(initializers.DB, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot load cart",
		})
	}

	// Checkout turns one cart into one order for one farmer, so a cart
	// can only hold a single farmer's produce.
	for _, item := range cart.Items {
		if item.Product.FarmerID != product.FarmerID {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Cart already holds produce from another farm; check out first",
			})
		}
	}

	var cartItem models.CartItem
	err = initializers.DB.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&cartItem).Error
	if err == gorm.ErrRecordNotFound {
		cartItem = models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  payload.Quantity,
		}
		if err := initializers.DB.Create(&cartItem).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Cannot add item to cart",
			})
		}
	} else if err == nil {
		// Repeat add merges into the existing line.
		if err := initializers.DB.Model(&cartItem).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", payload.Quantity)).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Cannot update cart item",
			})
		}
	} else {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot load cart item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
	})
}
