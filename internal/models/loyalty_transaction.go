package models

import "time"

// LoyaltyTransaction 积分流水表
//
// 余额的每次变动都落一行流水，金额为带符号数：
// 抵扣为负，奖励为正。余额列与流水在同一事务内更新。
type LoyaltyTransaction struct {
	ID           uint      `gorm:"primarykey" json:"id"`                             // 主键
	UserID       uint      `gorm:"index;not null" json:"user_id"`                    // 用户ID
	OrderID      *uint     `gorm:"index" json:"order_id,omitempty"`                  // 关联订单ID
	Kind         string    `gorm:"type:varchar(20);not null;index" json:"kind"`      // 流水类型（redeem/referral_reward/admin_adjust）
	Points       Money     `gorm:"type:decimal(20,2);not null" json:"points"`        // 变动积分（带符号）
	BalanceAfter Money     `gorm:"type:decimal(20,2);not null" json:"balance_after"` // 变动后余额
	Remark       string    `gorm:"type:varchar(255)" json:"remark"`                  // 备注
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                          // 创建时间
}

// TableName 指定表名
func (LoyaltyTransaction) TableName() string {
	return "loyalty_transactions"
}
