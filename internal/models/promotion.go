package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 平台活动表
//
// is_active 不落库：活动是否生效由 ActiveAt 按时间窗口、
// 使用次数上限与烧钱上限实时推导，避免存储标记过期。
type Promotion struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Name            string         `gorm:"not null" json:"name"`                                          // 名称
	PromotionType   string         `gorm:"type:varchar(20);not null" json:"promotion_type"`               // 活动类型（flash/timed/bundle/seller/category）
	Description     string         `gorm:"type:text" json:"description"`                                  // 描述
	DiscountPercent Money          `gorm:"type:decimal(5,2);not null" json:"discount_percent"`            // 折扣百分比（1-70）
	Priority        int            `gorm:"not null;default:100;index" json:"priority"`                    // 优先级（100 普通，200 高；高者先匹配）
	StartAt         time.Time      `gorm:"index;not null" json:"start_at"`                                // 生效时间
	EndAt           time.Time      `gorm:"index;not null" json:"end_at"`                                  // 失效时间
	MinOrderAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"` // 使用门槛（购物车原始总额）
	MaxDiscountCap  *Money         `gorm:"type:decimal(20,2)" json:"max_discount_cap,omitempty"`          // 单次最大优惠金额
	MaxTotalBurn    *Money         `gorm:"type:decimal(20,2)" json:"max_total_burn,omitempty"`            // 累计优惠总额上限（达到后自动失效）
	TotalBurn       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_burn"`       // 累计已优惠金额
	MaxUses         *int           `json:"max_uses,omitempty"`                                            // 总使用上限
	UsesCount       int            `gorm:"not null;default:0" json:"uses_count"`                          // 已使用次数
	MaxUsesPerUser  int            `gorm:"not null;default:1" json:"max_uses_per_user"`                   // 每人使用上限
	CreatedByID     uint           `gorm:"index" json:"created_by_id"`                                    // 创建人ID
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Targets []PromotionTarget `gorm:"foreignKey:PromotionID" json:"targets,omitempty"` // 适用目标集合
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// ActiveAt 判断活动在指定时刻是否生效
func (p *Promotion) ActiveAt(now time.Time) bool {
	if now.Before(p.StartAt) || now.After(p.EndAt) {
		return false
	}
	if p.MaxUses != nil && p.UsesCount >= *p.MaxUses {
		return false
	}
	if p.MaxTotalBurn != nil && p.TotalBurn.Decimal.GreaterThanOrEqual(p.MaxTotalBurn.Decimal) {
		return false
	}
	return true
}

// MatchesItem 判断活动目标集合是否命中某个购物车行（product/sku/category/seller 任一命中即可）
func (p *Promotion) MatchesItem(productID, skuID, categoryID, sellerID uint) bool {
	for _, target := range p.Targets {
		switch target.TargetType {
		case "product":
			if target.TargetID == productID {
				return true
			}
		case "sku":
			if target.TargetID == skuID {
				return true
			}
		case "category":
			if target.TargetID == categoryID {
				return true
			}
		case "seller":
			if target.TargetID == sellerID {
				return true
			}
		}
	}
	return false
}
