package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                        // 主键
	SellerID           uint           `gorm:"index;not null" json:"seller_id"`                             // 卖家ID
	CategoryID         uint           `gorm:"index;not null" json:"category_id"`                           // 分类ID
	BrandID            *uint          `gorm:"index" json:"brand_id,omitempty"`                             // 品牌ID
	Title              string         `gorm:"not null" json:"title"`                                       // 商品标题
	Description        string         `gorm:"type:text" json:"description"`                                // 商品描述
	BasePrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"`     // 基础价格
	VerificationStatus string         `gorm:"index;not null;default:'pending'" json:"verification_status"` // 审核状态
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`                         // 是否上架
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Seller   *SellerProfile `gorm:"foreignKey:SellerID" json:"seller,omitempty"`     // 关联卖家
	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 关联分类
	Brand    *Brand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`       // 关联品牌
	SKUs     []SKU          `gorm:"foreignKey:ProductID" json:"skus,omitempty"`      // 关联SKU
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
