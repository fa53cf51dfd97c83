package models

import "time"

// PromotionTarget 活动适用目标表
//
// 一个活动可以挂多行目标，目标之间取并集：
// 购物车行命中任意一行即视为命中该活动。
type PromotionTarget struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                                                     // 主键
	PromotionID uint      `gorm:"not null;uniqueIndex:idx_promotion_target,priority:1" json:"promotion_id"`                 // 活动ID
	TargetType  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_promotion_target,priority:2" json:"target_type"` // 目标类型（product/sku/category/seller）
	TargetID    uint      `gorm:"not null;uniqueIndex:idx_promotion_target,priority:3" json:"target_id"`                    // 目标ID
	CreatedAt   time.Time `json:"created_at"`                                                                               // 创建时间
}

// TableName 指定表名
func (PromotionTarget) TableName() string {
	return "promotion_targets"
}
