package models

import "time"

// OrderItem 订单行表
//
// SKUSnapshot 记录下单时刻的商品与规格信息，
// 后续商品改价改名不影响历史订单展示。
type OrderItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                       // 主键
	OrderID      uint      `gorm:"index;not null" json:"order_id"`                             // 订单ID
	SKUID        uint      `gorm:"column:sku_id;index;not null" json:"sku_id"`                               // SKU ID
	SellerID     uint      `gorm:"index;not null" json:"seller_id"`                            // 卖家ID
	SKUSnapshot  JSON      `gorm:"type:text" json:"sku_snapshot,omitempty"`                    // 下单时商品快照
	Quantity     int       `gorm:"not null" json:"quantity"`                                   // 数量
	UnitPrice    Money     `gorm:"type:decimal(20,2);not null" json:"unit_price"`              // 单价（未优惠）
	LineSubtotal Money     `gorm:"type:decimal(20,2);not null" json:"line_subtotal"`           // 行小计（未优惠）
	LineDiscount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"line_discount"` // 行优惠（活动）
	LineTotal    Money     `gorm:"type:decimal(20,2);not null" json:"line_total"`              // 行实付
	PromotionID  *uint     `gorm:"index" json:"promotion_id,omitempty"`                        // 命中的活动ID
	CreatedAt    time.Time `json:"created_at"`                                                 // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
