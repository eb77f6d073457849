package utils

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Paginate runs query with limit/page taken from the request, writes the
// standard success envelope and returns any query error to the caller.
func Paginate(c *fiber.Ctx, query *gorm.DB, out interface{}) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return err
	}

	if err := query.Offset((page - 1) * limit).Limit(limit).Find(out).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   out,
		"meta": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
