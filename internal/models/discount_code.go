package models

import (
	"time"

	"gorm.io/gorm"
)

// DiscountCode 折扣码表
//
// 折扣码作用于整单而非单行，与活动优惠叠加计算。
// 是否可用由 ActiveAt 实时推导，不落库。
type DiscountCode struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Code            string         `gorm:"type:varchar(40);uniqueIndex;not null" json:"code"`             // 码值（大小写不敏感，入库统一大写）
	Description     string         `gorm:"type:text" json:"description"`                                  // 描述
	DiscountPercent *Money         `gorm:"type:decimal(5,2)" json:"discount_percent,omitempty"`           // 百分比折扣（与固定金额二选一）
	DiscountAmount  *Money         `gorm:"type:decimal(20,2)" json:"discount_amount,omitempty"`           // 固定金额折扣
	MinOrderAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"` // 使用门槛（按活动折后小计判断）
	MaxUses         *int           `json:"max_uses,omitempty"`                                            // 总使用上限
	UsesCount       int            `gorm:"not null;default:0" json:"uses_count"`                          // 已使用次数
	StartAt         time.Time      `gorm:"index;not null" json:"start_at"`                                // 生效时间
	EndAt           time.Time      `gorm:"index;not null" json:"end_at"`                                  // 失效时间
	CreatedByID     uint           `gorm:"index" json:"created_by_id"`                                    // 创建人ID
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (DiscountCode) TableName() string {
	return "discount_codes"
}

// ActiveAt 判断折扣码在指定时刻是否可用
func (c *DiscountCode) ActiveAt(now time.Time) bool {
	if now.Before(c.StartAt) || now.After(c.EndAt) {
		return false
	}
	if c.MaxUses != nil && c.UsesCount >= *c.MaxUses {
		return false
	}
	return true
}
