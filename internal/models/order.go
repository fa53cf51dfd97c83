package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
//
// 结算时原子生成：总价、优惠明细与商品快照一次写入，
// 后续状态流转只改状态列与对应时间戳，金额不再变化。
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                             // 主键
	OrderNo           string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`            // 订单号（KK 前缀）
	UserID            uint           `gorm:"index;not null" json:"user_id"`                                    // 买家ID
	Status            string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`  // 状态（pending/paid/confirmed/shipped/delivered/completed/cancelled/disputed/refunded）
	Subtotal          Money          `gorm:"type:decimal(20,2);not null" json:"subtotal"`                      // 原始小计（未优惠）
	PromotionDiscount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"promotion_discount"`  // 活动优惠合计
	CodeDiscount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"code_discount"`       // 折扣码优惠
	LoyaltyDiscount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"loyalty_discount"`    // 积分抵扣
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null" json:"total_amount"`                  // 应付总额
	Currency          string         `gorm:"type:varchar(8);not null;default:'TZS'" json:"currency"`           // 币种
	DiscountCodeID    *uint          `gorm:"index" json:"discount_code_id,omitempty"`                          // 使用的折扣码ID
	AppliedIncentives JSONArray      `gorm:"type:text" json:"applied_incentives,omitempty"`                    // 优惠明细快照（类型/来源/金额）
	CartSnapshot      JSON           `gorm:"type:text" json:"cart_snapshot,omitempty"`                         // 下单时刻购物车快照（行+优惠+合计）
	LoyaltyPointsUsed Money          `gorm:"type:decimal(20,2);not null;default:0" json:"loyalty_points_used"` // 抵扣消耗的积分数
	PaymentReference  string         `gorm:"type:varchar(128)" json:"payment_reference"`                       // 支付凭证号
	EscrowReleased    bool           `gorm:"not null;default:false" json:"escrow_released"`                    // 货款是否已放款给卖家
	PaidAt            *time.Time     `json:"paid_at,omitempty"`                                                // 支付时间
	ShippedAt         *time.Time     `json:"shipped_at,omitempty"`                                             // 发货时间
	DeliveredAt       *time.Time     `json:"delivered_at,omitempty"`                                           // 送达时间
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`                                           // 完成时间
	CancelledAt       *time.Time     `json:"cancelled_at,omitempty"`                                           // 取消时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                          // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                   // 软删除时间

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // 订单行
	Delivery *Delivery   `gorm:"foreignKey:OrderID" json:"delivery,omitempty"` // 物流信息
	User     *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`      // 买家
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
