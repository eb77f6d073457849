package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
	"farmlink/utils"
)

// ProductController carries the search service; the plain CRUD handlers go
// straight to the database.
type ProductController struct {
	Search *services.SearchService
}

func NewProductController(search *services.SearchService) *ProductController {
	return &ProductController{Search: search}
}

type CreateProductInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gte=0"`
	CategoryID  uint   `json:"category_id" validate:"required"`
	HarvestDate string `json:"harvest_date" validate:"required"`
	IsOrganic   bool   `json:"is_organic"`
}

func CreateProduct(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	var payload CreateProductInput
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

	if _, ok := models.ProductUnits[payload.Unit]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unit must be one of kg, lb, crt, bnd, dz",
		})
	}

	price, err := decimal.NewFromString(payload.Price)
	if err != nil || price.LessThan(decimal.RequireFromString("0.01")) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price must be at least 0.01",
		})
	}

	harvestDate, err := time.Parse("2006-01-02", payload.HarvestDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Harvest date must be YYYY-MM-DD",
		})
	}

	var category models.Category
	if err := initializers.DB.First(&category, "id = ?", payload.CategoryID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown category",
		})
	}

	product := models.Product{
		Name:        utils.SanitizeInput(payload.Name),
		Description: utils.SanitizeInput(payload.Description),
		Price:       price,
		Unit:        payload.Unit,
		Quantity:    payload.Quantity,
		CategoryID:  category.ID,
		FarmerID:    user.ID,
		HarvestDate: harvestDate,
		IsOrganic:   payload.IsOrganic,
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   product,
	})
}

func GetProducts(c *fiber.Ctx) error {
	query := initializers.DB.Model(&models.Product{}).
		Preload("Category").
		Preload("Farmer").
		Order("created_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.code = ?", category)
	}

	var products []models.Product
	return utils.Paginate(c, query, &products)
}

func GetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")

	var product models.Product
	if err := initializers.DB.
		Preload("Category").
		Preload("Farmer").
		First(&product, "id = ?", productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   product,
	})
}

func DeleteProduct(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot get user information",
		})
	}

	productID := c.Params("id")

	var product models.Product
	if err := initializers.DB.First(&product, "id = ? AND farmer_id = ?", productID, user.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	// Products referenced by an order are kept for the order history; the
	// RESTRICT constraint on order_items makes the delete fail.
	if err := initializers.DB.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Product is referenced by existing orders",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

func (pc *ProductController) SearchProducts(c *fiber.Ctx) error {
	query := utils.SanitizeInput(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	products, err := pc.Search.FullTextSearch(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   products,
	})
}
