package controllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"farmlink/models"
)

func cartLine(price string, quantity int) models.CartItem {
	return models.CartItem{
		Quantity: quantity,
		Product:  models.Product{Price: decimal.RequireFromString(price)},
	}
}

func TestOrderTotals(t *testing.T) {
	items := []models.CartItem{
		cartLine("12.50", 2), // 25.00
		cartLine("3.20", 5),  // 16.00
	}
	taxRate := decimal.RequireFromString("12.5")
	shipping := decimal.RequireFromString("61.37")

	subtotal, tax, total := orderTotals(items, taxRate, shipping)

	assert.True(t, subtotal.Equal(decimal.RequireFromString("41.00")), "subtotal %s", subtotal)
	assert.True(t, tax.Equal(decimal.RequireFromString("5.13")), "tax %s", tax)
	assert.True(t, total.Equal(subtotal.Add(tax).Add(shipping)), "total must be subtotal + tax + shipping")
	assert.True(t, total.Equal(decimal.RequireFromString("107.50")), "total %s", total)
}

func TestOrderTotalsZeroTaxRate(t *testing.T) {
	items := []models.CartItem{cartLine("9.99", 1)}

	subtotal, tax, total := orderTotals(items, decimal.Zero, decimal.RequireFromString("100.00"))

	assert.True(t, subtotal.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, tax.IsZero())
	assert.True(t, total.Equal(decimal.RequireFromString("109.99")))
}

func TestOrderTotalsEmptyCart(t *testing.T) {
	subtotal, tax, total := orderTotals(nil, decimal.RequireFromString("15.0"), decimal.Zero)

	assert.True(t, subtotal.IsZero())
	assert.True(t, tax.IsZero())
	assert.True(t, total.IsZero())
}

func TestOrderTotalsRounding(t *testing.T) {
	// 3 x 0.33 = 0.99; 12.5% of 0.99 = 0.12375, stored as 0.12.
	items := []models.CartItem{cartLine("0.33", 3)}

	_, tax, total := orderTotals(items, decimal.RequireFromString("12.5"), decimal.RequireFromString("50.00"))

	assert.True(t, tax.Equal(decimal.RequireFromString("0.12")), "tax %s", tax)
	assert.True(t, total.Equal(decimal.RequireFromString("51.11")), "total %s", total)
}
