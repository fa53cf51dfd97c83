package service

import (
	"github.com/kariakoo/marketplace/internal/models"

	"github.com/shopspring/decimal"
)

// EffectiveUnitPrice 计算 SKU 的生效单价：
// 有价格覆盖用覆盖价，否则用商品基准价。
func EffectiveUnitPrice(sku *models.SKU) decimal.Decimal {
	if sku == nil {
		return decimal.Zero
	}
	if sku.PriceOverride != nil {
		return sku.PriceOverride.Decimal
	}
	if sku.Product != nil {
		return sku.Product.BasePrice.Decimal
	}
	return decimal.Zero
}

// CartSubtotal 计算购物车原始小计（实时价格，不含任何优惠）
func CartSubtotal(items []models.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for i := range items {
		unit := EffectiveUnitPrice(items[i].SKU)
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(items[i].Quantity))))
	}
	return subtotal
}
