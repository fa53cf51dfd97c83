package service

import (
	"testing"

	"github.com/kariakoo/marketplace/internal/models"

	"github.com/shopspring/decimal"
)

func TestEffectiveUnitPricePrefersOverride(t *testing.T) {
	override := models.NewMoneyFromInt(4500)
	sku := &models.SKU{
		PriceOverride: &override,
		Product:       &models.Product{BasePrice: models.NewMoneyFromInt(5000)},
	}
	mustDecimal(t, EffectiveUnitPrice(sku), 4500, "override price")

	sku.PriceOverride = nil
	mustDecimal(t, EffectiveUnitPrice(sku), 5000, "base price fallback")
}

func TestEffectiveUnitPriceNilSKU(t *testing.T) {
	if !EffectiveUnitPrice(nil).Equal(decimal.Zero) {
		t.Fatalf("expected zero for nil sku")
	}
}

func TestCartSubtotalUsesLivePrices(t *testing.T) {
	override := models.NewMoneyFromInt(900)
	items := []models.CartItem{
		{
			Quantity: 2,
			SKU:      &models.SKU{Product: &models.Product{BasePrice: models.NewMoneyFromInt(1000)}},
		},
		{
			Quantity: 3,
			SKU: &models.SKU{
				PriceOverride: &override,
				Product:       &models.Product{BasePrice: models.NewMoneyFromInt(1000)},
			},
		},
	}
	mustDecimal(t, CartSubtotal(items), 4700, "subtotal")
}
