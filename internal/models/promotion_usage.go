package models

import "time"

// PromotionUsage 活动使用记录表
//
// 每次结算时活动命中的每个购物车行各写一行，
// 每人使用上限按行数统计，配合事务内的行锁保证不超发。
type PromotionUsage struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                        // 主键
	PromotionID    uint      `gorm:"not null;index:idx_usage_promotion_user" json:"promotion_id"` // 活动ID
	UserID         uint      `gorm:"not null;index:idx_usage_promotion_user" json:"user_id"`      // 用户ID
	OrderID        uint      `gorm:"not null;index" json:"order_id"`                              // 订单ID
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null" json:"discount_amount"`          // 该行实际优惠金额
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
}

// TableName 指定表名
func (PromotionUsage) TableName() string {
	return "promotion_usages"
}
