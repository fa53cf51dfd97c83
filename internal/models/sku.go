package models

import (
	"time"

	"gorm.io/gorm"
)

// SKU 商品 SKU 表（规格+库存+价格覆盖维度）
type SKU struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                                                       // 主键
	ProductID         uint           `gorm:"not null;index;uniqueIndex:idx_sku_product_code" json:"product_id"`                          // 商品ID
	SKUCode           string         `gorm:"column:sku_code;type:varchar(64);not null;uniqueIndex:idx_sku_product_code" json:"sku_code"` // SKU编码（同商品内唯一）
	VariantAttributes JSON           `gorm:"type:json" json:"variant_attributes"`                                                        // 规格属性（如颜色/尺码）
	PriceOverride     *Money         `gorm:"type:decimal(20,2)" json:"price_override,omitempty"`                                         // 价格覆盖（为空时用商品基础价格）
	StockQuantity     int            `gorm:"not null;default:0" json:"stock_quantity"`                                                   // 库存数量
	IsAvailable       bool           `gorm:"default:true;index" json:"is_available"`                                                     // 是否可售
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                                                    // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                                                    // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                                             // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (SKU) TableName() string {
	return "skus"
}
